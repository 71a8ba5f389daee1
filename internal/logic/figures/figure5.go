package figures

import (
	"sort"

	"scireview/internal/aggregate"
	"scireview/internal/loadfile"
	"scireview/internal/mode"
)

// displayNames wraps long country names onto two lines.
var displayNames = map[string]string{
	"United States":  "United\nStates",
	"United Kingdom": "United\nKingdom",
}

// Figure5aRow counts data flows leaving a country (cross-border) next to
// flows used in the country itself (domestic).
type Figure5aRow struct {
	Country         string
	CrossBorder     aggregate.Count
	Domestic        aggregate.Count
	Name            string
	Total           aggregate.Count
	DistCrossBorder float64
	DistDomestic    float64
}

type Figure5aTable []Figure5aRow

// Figure5bRow is one cross-border flow between the first author's country
// and a data origin country.
type Figure5bRow struct {
	FirstAuthor     string
	DataOrigin      string
	NameFirstAuthor string
	NameDataOrigin  string
}

type Figure5bTable []Figure5bRow

// Flows explodes the data origin list of every article, without the
// "various" sentinel, and splits the flows into cross-border and domestic.
func Flows(articles []mode.Article) (crossBorder, domestic []aggregate.Exploded) {
	flows := aggregate.Filter(aggregate.Explode(articles, aggregate.Origins), func(e aggregate.Exploded) bool {
		return e.Value != mode.OriginVarious
	})
	domestic, crossBorder = aggregate.Partition(flows, isCrossBorder)
	return crossBorder, domestic
}

func isCrossBorder(e aggregate.Exploded) bool { return e.Value != e.Article.FirstAuthor }

func flowValue(e aggregate.Exploded) string { return e.Value }

func pairKey(e aggregate.Exploded) string { return e.Article.FirstAuthor + "\x00" + e.Value }

// Figure5 builds the per-country flow table (5a) and the list of frequent
// cross-border pairs (5b). Countries with fewer than otherThreshold flows in
// total go into the "other" row of 5a; pairs occurring fewer than
// pairThreshold times are left out of 5b.
func Figure5(articles []mode.Article, countries *loadfile.Reference[mode.Country], otherThreshold, pairThreshold int) (Figure5aTable, Figure5bTable) {
	crossBorder, domestic := Flows(articles)
	return figure5a(crossBorder, domestic, countries, otherThreshold), figure5b(crossBorder, countries, pairThreshold)
}

func figure5a(crossBorder, domestic []aggregate.Exploded, countries *loadfile.Reference[mode.Country], otherThreshold int) Figure5aTable {
	crossCounts := aggregate.CountBy(crossBorder, flowValue)
	domesticCounts := aggregate.CountBy(domestic, flowValue)

	var rows Figure5aTable
	for _, code := range aggregate.OuterKeys(crossCounts.Keys(), domesticCounts.Keys()) {
		c, _ := countries.Get(code)
		row := Figure5aRow{
			Country:     code,
			CrossBorder: crossCounts.Of(code),
			Domestic:    domesticCounts.Of(code),
			Name:        c.Name,
		}
		row.Total = row.CrossBorder + row.Domestic
		rows = append(rows, row)
	}

	crossDist := aggregate.Distribution(column(rows, func(r Figure5aRow) aggregate.Count { return r.CrossBorder }))
	domesticDist := aggregate.Distribution(column(rows, func(r Figure5aRow) aggregate.Count { return r.Domestic }))
	for i := range rows {
		rows[i].DistCrossBorder = crossDist[i]
		rows[i].DistDomestic = domesticDist[i]
	}

	below := aggregate.Below(aggregate.Count(otherThreshold))
	kept, other := aggregate.Partition(rows, func(r Figure5aRow) bool { return below(r.Total) })
	for i := range kept {
		if name, ok := displayNames[kept[i].Name]; ok {
			kept[i].Name = name
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].CrossBorder > kept[j].CrossBorder })

	otherRow := Figure5aRow{
		Country:         mode.Other,
		Name:            mode.Other,
		CrossBorder:     aggregate.Sum(other, func(r Figure5aRow) aggregate.Count { return r.CrossBorder }),
		Domestic:        aggregate.Sum(other, func(r Figure5aRow) aggregate.Count { return r.Domestic }),
		DistCrossBorder: aggregate.Sum(other, func(r Figure5aRow) float64 { return r.DistCrossBorder }),
		DistDomestic:    aggregate.Sum(other, func(r Figure5aRow) float64 { return r.DistDomestic }),
	}
	otherRow.Total = otherRow.CrossBorder + otherRow.Domestic
	return append(kept, otherRow)
}

func figure5b(crossBorder []aggregate.Exploded, countries *loadfile.Reference[mode.Country], pairThreshold int) Figure5bTable {
	pairs := aggregate.CountBy(crossBorder, pairKey)
	var ret Figure5bTable
	for _, e := range crossBorder {
		if pairs.Of(pairKey(e)) < aggregate.Count(pairThreshold) {
			continue
		}
		author, _ := countries.Get(e.Article.FirstAuthor)
		dataOrigin, _ := countries.Get(e.Value)
		ret = append(ret, Figure5bRow{
			FirstAuthor:     e.Article.FirstAuthor,
			DataOrigin:      e.Value,
			NameFirstAuthor: author.Name,
			NameDataOrigin:  dataOrigin.Name,
		})
	}
	return ret
}

func (t Figure5aTable) Header() []string {
	return []string{
		"Country",
		"Count (Data origin crossborder)",
		"Count (Data origin domestic)",
		"Name (Country)",
		"Count (Data origin)",
		"Distribution (Data origin crossborder)",
		"Distribution (Data origin domestic)",
	}
}

func (t Figure5aTable) Rows() [][]interface{} {
	ret := make([][]interface{}, 0, len(t))
	for _, r := range t {
		ret = append(ret, []interface{}{
			r.Country, countCell(r.CrossBorder), countCell(r.Domestic), r.Name, countCell(r.Total),
			r.DistCrossBorder, r.DistDomestic,
		})
	}
	return ret
}

func (t Figure5bTable) Header() []string {
	return []string{"First author", "Data origin_list", "Name (Country first author)", "Name (Country data origin)"}
}

func (t Figure5bTable) Rows() [][]interface{} {
	ret := make([][]interface{}, 0, len(t))
	for _, r := range t {
		ret = append(ret, []interface{}{r.FirstAuthor, r.DataOrigin, r.NameFirstAuthor, r.NameDataOrigin})
	}
	return ret
}
