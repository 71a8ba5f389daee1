package statistics

import (
	"fmt"
	"io"
	"strconv"

	"scireview/internal/config"
	"scireview/internal/loadfile"
	"scireview/internal/logic/figures"
	"scireview/internal/mode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	log "github.com/sirupsen/logrus"
)

// Report prints the descriptive statistics of the review.
type Report struct {
	out io.Writer
}

func NewReport(out io.Writer) *Report {
	return &Report{out: out}
}

func (r *Report) printf(format string, a ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", a...)
}

func (r *Report) table(headers []string, rows [][]string) {
	t := table.New().Border(lipgloss.NormalBorder()).Headers(headers...).Rows(rows...)
	fmt.Fprintln(r.out, t.String())
}

func (r *Report) Run(articles []mode.Article, refs *loadfile.References, set *figures.Set, cfg config.Statistics) {
	r.Trend(set.Figure2)
	r.Contribution(articles, refs.Countries, cfg.Region)
	r.Rates(set.Figure4)
	r.SameAuthorOrigin(articles)
	r.AuthorAndDataOrigin(articles)
	r.IncomeGroups(articles, refs.Countries)
	r.CrossBorder(articles)
	r.CommonSources(articles, refs.Sources)
	r.AssignedToChapter(articles)
	for _, q := range cfg.DiseaseSource {
		r.DiseaseSource(articles, q.Chapter, q.Source)
	}
}

func (r *Report) Trend(t figures.Figure2Table) {
	total, nonCovid, err := Trend(t)
	if err != nil {
		log.Warnf("figure 2 regression skipped: %v", err)
		return
	}
	span := ""
	if len(t) > 0 {
		span = fmt.Sprintf(" [%s-%s]", t[0].Year, t[len(t)-1].Year)
	}
	r.printf("Normalized all%s | Slope: %.3f, p-value: %.5f", span, total.Slope, total.PValue)
	r.printf("Normalized non COVID%s | Slope: %.3f, p-value: %.5f", span, nonCovid.Slope, nonCovid.PValue)
}

func (r *Report) Contribution(articles []mode.Article, countries *loadfile.Reference[mode.Country], region string) {
	c := Contribution(articles, countries, region)
	rows := make([][]string, 0, len(c.Countries))
	for _, row := range c.Countries {
		rows = append(rows, []string{
			row.Country, row.Name, row.Region,
			strconv.Itoa(int(row.FirstAuthor)), strconv.Itoa(int(row.DataOrigin)),
			fmt.Sprintf("%.2f", row.DistFirstAuthor), fmt.Sprintf("%.2f", row.DistDataOrigin),
		})
	}
	r.table([]string{"Country", "Name", "Region", "First author", "Data origin", "Dist. first author", "Dist. data origin"}, rows)
	r.printf("%s First author: %.2f (n=%d), %s Data origin: %.2f (n=%d)",
		region, c.DistFirstAuthor, c.FirstAuthor, region, c.DistDataOrigin, c.DataOrigin)
}

func (r *Report) Rates(t figures.Figure4Table) {
	for _, rate := range Rates(t) {
		r.printf("%s: Mean Score: %.3f, Standard Deviation: %.3f, Scores List: %v", rate.Region, rate.Mean, rate.Std, rate.Rates)
	}
}

func (r *Report) SameAuthorOrigin(articles []mode.Article) {
	s := SameAuthorOrigin(articles)
	r.printf("Articles with same author origin: %.2f (n=%d)", s.Percent, s.Count)
}

func (r *Report) AuthorAndDataOrigin(articles []mode.Article) {
	o := AuthorAndDataOrigin(articles)
	r.printf("Articles with single data origin: %.2f (n=%d)", o.SingleOrigin.Percent, o.SingleOrigin.Count)
	r.printf("Unique first author origin %d", o.UniqueFirstAuthors)
	r.printf("Unique data origin %d", o.UniqueDataOrigins)
	r.printf("Articles with same author and data origin: %.2f (n=%d)", o.Domestic.Percent, o.Domestic.Count)
	r.printf("Statistics for articles for which first author and data origin do not overlap:")
	rows := make([][]string, 0, len(o.MultiOrigin))
	for _, row := range o.MultiOrigin {
		rows = append(rows, []string{row.Country, strconv.Itoa(int(row.FirstAuthor)), strconv.Itoa(int(row.DataOrigin))})
	}
	r.table([]string{"Country", "Count (First author)", "Count (Data origin)"}, rows)
}

func (r *Report) IncomeGroups(articles []mode.Article, countries *loadfile.Reference[mode.Country]) {
	groups := IncomeGroups(articles, countries)
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{g.Group, strconv.Itoa(g.Count)})
	}
	r.table([]string{"World Bank income group", "First author"}, rows)
}

func (r *Report) CrossBorder(articles []mode.Article) {
	c := CrossBorder(articles)
	r.printf("Crossborder articles: %.2f (n=%d); domestic only articles: %.2f (n=%d)",
		c.CrossBorder.Percent, c.CrossBorder.Count, c.Domestic.Percent, c.Domestic.Count)
	r.printf("Crossborder flows: %d", c.Flows)
}

func (r *Report) CommonSources(articles []mode.Article, sources *loadfile.Reference[mode.DataSourceInfo]) {
	u := CommonSources(articles, sources)
	r.printf("Articles using common data source: %.1f (n=%d)", u.Articles.Percent, u.Articles.Count)
	rows := make([][]string, 0, len(u.ByYear))
	for _, y := range u.ByYear {
		rows = append(rows, []string{y.Year, strconv.Itoa(y.Using), strconv.Itoa(y.Total)})
	}
	r.table([]string{"Publishing year", "Common data source", "Total"}, rows)
}

func (r *Report) AssignedToChapter(articles []mode.Article) {
	s := AssignedToChapter(articles)
	r.printf("Paper assigned to an ICD-10 chapter: %.2f (n=%d)", s.Percent, s.Count)
}

func (r *Report) DiseaseSource(articles []mode.Article, chapter, source string) {
	d := DiseaseSource(articles, chapter, source)
	r.printf("Articles on chapter %s using %s: %.1f (n=%d(/%d))", d.Chapter, d.Source, d.Share.Percent, d.Share.Count, d.Base)
}
