package mode

// Sentinel values that do not name a single concrete category.
const (
	OriginVarious      = "various"
	SourceMultiple     = "Multiple"
	SourceNotSpecified = "Not precisely specified"
	Other              = "other"
	IncludedFlag       = "Yes"
	CovidRelated       = "Yes"
	NotCovidRelated    = "No"
)

// Article is one charted article of the review. DataOriginList and
// DataSourceList are derived from the raw comma separated fields on load.
type Article struct {
	Include        string
	PublishingYear string
	COVIDResearch  string
	FirstAuthor    string
	SeniorAuthor   string
	DataOrigin     string
	DataSource     string
	ICDChapter     string

	DataOriginList []string
	DataSourceList []string
}

// Country is a row of the country information table.
type Country struct {
	Code        string
	Name        string
	Region      string
	IncomeGroup string
}

// CitableDocuments holds SCImago citable document counts of a country,
// keyed by country display name.
type CitableDocuments struct {
	Name   string
	ByYear map[string]float64
	Total  float64
}

type ICDChapter struct {
	Chapter string
	Name    string
}

type DataSourceInfo struct {
	Source       string
	Abbreviation string
	Origin       string
}

// PublishedPapers is the number of articles indexed by PubMed in one year.
type PublishedPapers struct {
	Year  string
	Total int
}
