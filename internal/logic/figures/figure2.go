package figures

import (
	"sort"

	"scireview/internal/aggregate"
	"scireview/internal/loadfile"
	"scireview/internal/mode"

	log "github.com/sirupsen/logrus"
)

// ScalingFactor normalises review counts per 100,000 published articles.
const ScalingFactor = 100000

// YearCount is the number of included articles of a publishing year, split
// by COVID-19 relatedness.
type YearCount struct {
	Year     string
	NonCovid aggregate.Count
	Covid    aggregate.Count
}

// CountByYear groups articles by publishing year and COVID-19 flag. Years
// are ascending; a flag other than Yes/No is skipped.
func CountByYear(articles []mode.Article) []YearCount {
	byYear := make(map[string]*YearCount)
	for _, a := range articles {
		item, ok := byYear[a.PublishingYear]
		if !ok {
			item = &YearCount{Year: a.PublishingYear}
		}
		switch a.COVIDResearch {
		case mode.CovidRelated:
			item.Covid++
		case mode.NotCovidRelated:
			item.NonCovid++
		default:
			log.Warnf("unknown COVID-19 research flag %q in %s, skipped", a.COVIDResearch, a.PublishingYear)
			continue
		}
		byYear[a.PublishingYear] = item
	}
	ret := make([]YearCount, 0, len(byYear))
	for _, item := range byYear {
		ret = append(ret, *item)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Year < ret[j].Year })
	return ret
}

type Figure2Row struct {
	Year               string
	NonCovid           aggregate.Count
	Covid              aggregate.Count
	Published          int
	Total              aggregate.Count
	NormalizedNonCovid float64
	NormalizedCovid    float64
}

type Figure2Table []Figure2Row

// Figure2 normalises the yearly counts by the number of articles PubMed
// published that year. Years without a published total are dropped.
func Figure2(articles []mode.Article, published *loadfile.Reference[mode.PublishedPapers]) Figure2Table {
	var ret Figure2Table
	for _, yc := range CountByYear(articles) {
		pp, ok := published.Get(yc.Year)
		if !ok {
			log.Warnf("no published paper total for year %s, dropped", yc.Year)
			continue
		}
		ret = append(ret, Figure2Row{
			Year:               yc.Year,
			NonCovid:           yc.NonCovid,
			Covid:              yc.Covid,
			Published:          pp.Total,
			Total:              yc.NonCovid + yc.Covid,
			NormalizedNonCovid: aggregate.Ratio(yc.NonCovid, pp.Total, ScalingFactor),
			NormalizedCovid:    aggregate.Ratio(yc.Covid, pp.Total, ScalingFactor),
		})
	}
	return ret
}

func (t Figure2Table) Header() []string {
	return []string{
		"Year",
		"Count (Non-COVID-19-related)",
		"Count (COVID-19-related)",
		"Paper-published-total",
		"Count (Total)",
		"Normalized (Non-COVID-19-related)",
		"Normalized (COVID-19-related)",
	}
}

func (t Figure2Table) Rows() [][]interface{} {
	ret := make([][]interface{}, 0, len(t))
	for _, r := range t {
		ret = append(ret, []interface{}{
			yearCell(r.Year), countCell(r.NonCovid), countCell(r.Covid), r.Published,
			countCell(r.Total), r.NormalizedNonCovid, r.NormalizedCovid,
		})
	}
	return ret
}
