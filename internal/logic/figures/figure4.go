package figures

import (
	"sort"

	"scireview/internal/aggregate"
	"scireview/internal/loadfile"
	"scireview/internal/mode"
)

// PerCitableDocuments scales domestic reuse per 1000 citable documents.
const PerCitableDocuments = 1000

// Figure4Row is the domestic data reuse of one country relative to its
// scientific output.
type Figure4Row struct {
	Country    string
	DataOrigin aggregate.Count
	Name       string
	Region     string
	Citable    float64
	Rate       float64

	counted bool
}

type Figure4Table []Figure4Row

// Figure4 counts domestic single-origin articles per country and relates
// them to SCImago citable documents. Only countries above the top-th
// largest distinct citable total that have at least one article are kept;
// all others go into the "other" row. Kept rows are ordered by region,
// then by descending rate.
func Figure4(articles []mode.Article, countries *loadfile.Reference[mode.Country], citable *loadfile.Reference[mode.CitableDocuments], top int) Figure4Table {
	domestic := aggregate.Filter(articles, aggregate.Domestic)
	originCounts := aggregate.CountBy(domestic, origin)

	var rows Figure4Table
	matched := make(map[string]bool)
	for _, code := range aggregate.OuterKeys(originCounts.Keys(), codes(countries)) {
		c, _ := countries.Get(code)
		row := Figure4Row{
			Country:    code,
			DataOrigin: originCounts.Of(code),
			Name:       c.Name,
			Region:     c.Region,
			counted:    originCounts.Has(code),
		}
		if c.Name != "" {
			if cd, ok := citable.Get(c.Name); ok {
				row.Citable = cd.Total
				matched[c.Name] = true
			}
		}
		rows = append(rows, row)
	}
	if citable != nil {
		for _, cd := range citable.Rows {
			if !matched[cd.Name] {
				rows = append(rows, Figure4Row{Name: cd.Name, Citable: cd.Total})
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	var totals []float64
	if citable != nil {
		for _, cd := range citable.Rows {
			totals = append(totals, cd.Total)
		}
	}
	threshold, hasThreshold := aggregate.NthLargestDistinct(totals, top)
	atMost := aggregate.AtMost(threshold)

	for i := range rows {
		rows[i].Rate = aggregate.Ratio(rows[i].DataOrigin, rows[i].Citable, PerCitableDocuments)
	}
	kept, other := aggregate.Partition(rows, func(r Figure4Row) bool {
		return !r.counted || (hasThreshold && atMost(r.Citable))
	})
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Region != kept[j].Region {
			return kept[i].Region < kept[j].Region
		}
		return kept[i].Rate > kept[j].Rate
	})

	otherCount := aggregate.Sum(other, func(r Figure4Row) aggregate.Count { return r.DataOrigin })
	otherCitable := aggregate.Sum(other, func(r Figure4Row) float64 { return r.Citable })
	return append(kept, Figure4Row{
		Country:    mode.Other,
		Name:       mode.Other,
		Region:     mode.Other,
		DataOrigin: otherCount,
		Citable:    otherCitable,
		Rate:       aggregate.Ratio(otherCount, otherCitable, PerCitableDocuments),
	})
}

func (t Figure4Table) Header() []string {
	return []string{
		"Country",
		"Count (Data origin)",
		"Name (Country)",
		"Region (Country)",
		"Citable documents_total",
		"Data origin per 1000 citable documents",
	}
}

func (t Figure4Table) Rows() [][]interface{} {
	ret := make([][]interface{}, 0, len(t))
	for _, r := range t {
		ret = append(ret, []interface{}{
			r.Country, countCell(r.DataOrigin), r.Name, r.Region, r.Citable, r.Rate,
		})
	}
	return ret
}
