package statistics

import (
	"errors"
	"math"
	"sort"

	"scireview/internal/aggregate"
	"scireview/internal/loadfile"
	"scireview/internal/logic/figures"
	"scireview/internal/mode"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrTooFewPoints = errors.New("regression needs at least 3 points")

// Share is a count of articles and its percentage of a base count.
type Share struct {
	Count   int
	Percent float64
}

func share(count, base int) Share {
	return Share{Count: count, Percent: aggregate.Ratio(count, base, 100)}
}

// Regression is an ordinary least squares fit against the year index.
type Regression struct {
	Slope  float64
	PValue float64
}

// OLS fits y against x = 0..n-1 and returns the slope with its two-sided
// p-value.
func OLS(y []float64) (Regression, error) {
	n := len(y)
	if n < 3 {
		return Regression{}, ErrTooFewPoints
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)

	var sse, sxx float64
	meanX := stat.Mean(x, nil)
	for i := range x {
		r := y[i] - (alpha + beta*x[i])
		sse += r * r
		sxx += (x[i] - meanX) * (x[i] - meanX)
	}
	se := math.Sqrt(sse / float64(n-2) / sxx)
	if se == 0 {
		return Regression{Slope: beta, PValue: 0}, nil
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return Regression{Slope: beta, PValue: 2 * (1 - t.CDF(math.Abs(beta/se)))}, nil
}

// Trend fits the normalised figure 2 series, total and non-COVID only.
func Trend(t figures.Figure2Table) (total, nonCovid Regression, err error) {
	all := make([]float64, len(t))
	other := make([]float64, len(t))
	for i, r := range t {
		all[i] = r.NormalizedNonCovid + r.NormalizedCovid
		other[i] = r.NormalizedNonCovid
	}
	if total, err = OLS(all); err != nil {
		return
	}
	nonCovid, err = OLS(other)
	return
}

// RegionContribution is the summed figure 3 share of one region.
type RegionContribution struct {
	Countries       figures.Figure3Table
	FirstAuthor     aggregate.Count
	DataOrigin      aggregate.Count
	DistFirstAuthor float64
	DistDataOrigin  float64
}

func Contribution(articles []mode.Article, countries *loadfile.Reference[mode.Country], region string) RegionContribution {
	// a zero threshold keeps every country out of the "other" row
	all := figures.Figure3(articles, countries, 0)
	ret := RegionContribution{Countries: all[:len(all)-1]}
	for _, r := range ret.Countries {
		if r.Region != region {
			continue
		}
		ret.FirstAuthor += r.FirstAuthor
		ret.DataOrigin += r.DataOrigin
		ret.DistFirstAuthor += r.DistFirstAuthor
		ret.DistDataOrigin += r.DistDataOrigin
	}
	return ret
}

// RegionRate summarises the per-1000 citable documents rate of a region.
type RegionRate struct {
	Region string
	Mean   float64
	Std    float64
	Rates  []float64
}

// Rates returns the global summary followed by one summary per region,
// regions ascending. The "other" row is not a country and is left out.
func Rates(t figures.Figure4Table) []RegionRate {
	byRegion := make(map[string][]float64)
	var global []float64
	for _, r := range t {
		if r.Country == mode.Other {
			continue
		}
		global = append(global, r.Rate)
		byRegion[r.Region] = append(byRegion[r.Region], r.Rate)
	}
	regions := make([]string, 0, len(byRegion))
	for region := range byRegion {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	ret := []RegionRate{summarise("Global", global)}
	for _, region := range regions {
		ret = append(ret, summarise(region, byRegion[region]))
	}
	return ret
}

func summarise(region string, rates []float64) RegionRate {
	ret := RegionRate{Region: region, Rates: rates, Mean: math.NaN(), Std: math.NaN()}
	if mean, err := stats.Mean(rates); err == nil {
		ret.Mean = mean
	}
	if len(rates) > 1 {
		if std, err := stats.StandardDeviationSample(rates); err == nil {
			ret.Std = std
		}
	}
	return ret
}

// SameAuthorOrigin is the share of articles whose senior author is from the
// first author's country or not recorded.
func SameAuthorOrigin(articles []mode.Article) Share {
	same := aggregate.Filter(articles, func(a mode.Article) bool {
		return a.SeniorAuthor == a.FirstAuthor || a.SeniorAuthor == ""
	})
	return share(len(same), len(articles))
}

type OriginOverview struct {
	SingleOrigin       Share
	UniqueFirstAuthors int
	UniqueDataOrigins  int

	// Domestic is relative to the single-origin articles.
	Domestic Share

	// MultiOrigin counts first authors and exploded origins of articles
	// without a single data origin.
	MultiOrigin []MultiOriginRow
}

type MultiOriginRow struct {
	Country     string
	FirstAuthor aggregate.Count
	DataOrigin  aggregate.Count
}

func AuthorAndDataOrigin(articles []mode.Article) OriginOverview {
	single, multi := aggregate.Partition(articles, func(a mode.Article) bool { return !aggregate.SingleOrigin(a) })

	authors, origins := hashset.New(), hashset.New()
	for _, a := range single {
		authors.Add(a.FirstAuthor)
		origins.Add(a.DataOriginList[0])
	}
	domestic := aggregate.Filter(single, aggregate.Domestic)

	authorCounts := aggregate.CountBy(multi, func(a mode.Article) string { return a.FirstAuthor })
	originCounts := aggregate.CountBy(aggregate.Explode(multi, aggregate.Origins), func(e aggregate.Exploded) string { return e.Value })
	var rows []MultiOriginRow
	for _, key := range aggregate.OuterKeys(authorCounts.Keys(), originCounts.Keys()) {
		rows = append(rows, MultiOriginRow{Country: key, FirstAuthor: authorCounts.Of(key), DataOrigin: originCounts.Of(key)})
	}

	return OriginOverview{
		SingleOrigin:       share(len(single), len(articles)),
		UniqueFirstAuthors: authors.Size(),
		UniqueDataOrigins:  origins.Size(),
		Domestic:           share(len(domestic), len(single)),
		MultiOrigin:        rows,
	}
}

type IncomeGroupCount struct {
	Group string
	Count int
}

// IncomeGroups counts first authors per World Bank income group. Authors
// from countries without reference data are not counted.
func IncomeGroups(articles []mode.Article, countries *loadfile.Reference[mode.Country]) []IncomeGroupCount {
	counts := make(map[string]int)
	for _, a := range articles {
		c, ok := countries.Get(a.FirstAuthor)
		if !ok || c.IncomeGroup == "" {
			continue
		}
		counts[c.IncomeGroup]++
	}
	ret := make([]IncomeGroupCount, 0, len(counts))
	for group, n := range counts {
		ret = append(ret, IncomeGroupCount{Group: group, Count: n})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Group < ret[j].Group })
	return ret
}

// CrossBorderArticle is true when an article uses data from any country
// other than the first author's, or from "various" countries.
func CrossBorderArticle(a mode.Article) bool {
	return !aggregate.Domestic(a)
}

type CrossBorderOverview struct {
	Total       int
	CrossBorder Share
	Domestic    Share
	Flows       int
}

func CrossBorder(articles []mode.Article) CrossBorderOverview {
	cross, domestic := aggregate.Partition(articles, func(a mode.Article) bool { return !CrossBorderArticle(a) })
	flows, _ := figures.Flows(cross)
	return CrossBorderOverview{
		Total:       len(articles),
		CrossBorder: share(len(cross), len(articles)),
		Domestic:    share(len(domestic), len(articles)),
		Flows:       len(flows),
	}
}

type YearShare struct {
	Year  string
	Using int
	Total int
}

type SourceUsage struct {
	Articles Share
	ByYear   []YearShare
}

// CommonSources is the share of articles using at least one data source
// listed in the data source reference table.
func CommonSources(articles []mode.Article, sources *loadfile.Reference[mode.DataSourceInfo]) SourceUsage {
	common := mapset.NewThreadUnsafeSet[string]()
	if sources != nil {
		for _, s := range sources.Rows {
			common.Add(s.Source)
		}
	}
	using := aggregate.Filter(articles, func(a mode.Article) bool {
		for _, s := range a.DataSourceList {
			if common.Contains(s) {
				return true
			}
		}
		return false
	})

	year := func(a mode.Article) string { return a.PublishingYear }
	usingByYear := aggregate.CountBy(using, year)
	totalByYear := aggregate.CountBy(articles, year)
	years := totalByYear.Keys()
	sort.Strings(years)
	ret := SourceUsage{Articles: share(len(using), len(articles))}
	for _, y := range years {
		ret.ByYear = append(ret.ByYear, YearShare{Year: y, Using: int(usingByYear.Of(y)), Total: int(totalByYear.Of(y))})
	}
	return ret
}

func AssignedToChapter(articles []mode.Article) Share {
	return share(len(aggregate.Filter(articles, aggregate.AssignedChapter)), len(articles))
}

// SourceForDisease is the share of articles on an ICD-10 chapter that use
// the given data source. Base is the number of articles on the chapter.
type SourceForDisease struct {
	Chapter string
	Source  string
	Base    int
	Share   Share
}

func DiseaseSource(articles []mode.Article, chapter, source string) SourceForDisease {
	onChapter := aggregate.Filter(articles, func(a mode.Article) bool { return a.ICDChapter == chapter })
	using := aggregate.Filter(onChapter, func(a mode.Article) bool {
		for _, s := range a.DataSourceList {
			if s == source {
				return true
			}
		}
		return false
	})
	return SourceForDisease{Chapter: chapter, Source: source, Base: len(onChapter), Share: share(len(using), len(onChapter))}
}
