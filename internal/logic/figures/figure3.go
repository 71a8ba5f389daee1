package figures

import (
	"sort"

	"scireview/internal/aggregate"
	"scireview/internal/loadfile"
	"scireview/internal/mode"
)

// Figure3Row compares where first authors and their data come from.
type Figure3Row struct {
	Country         string
	FirstAuthor     aggregate.Count
	DataOrigin      aggregate.Count
	Name            string
	Region          string
	DistFirstAuthor float64
	DistDataOrigin  float64
}

type Figure3Table []Figure3Row

// Figure3 counts single-origin articles per first author country and per
// data origin country. Countries with fewer than otherThreshold first
// authors are summed into a trailing "other" row.
func Figure3(articles []mode.Article, countries *loadfile.Reference[mode.Country], otherThreshold int) Figure3Table {
	single := aggregate.Filter(articles, aggregate.SingleOrigin)
	authorCounts := aggregate.CountBy(single, firstAuthor)
	originCounts := aggregate.CountBy(single, origin)

	var rows Figure3Table
	for _, code := range aggregate.OuterKeys(authorCounts.Keys(), originCounts.Keys(), codes(countries)) {
		c, _ := countries.Get(code)
		rows = append(rows, Figure3Row{
			Country:     code,
			FirstAuthor: authorCounts.Of(code),
			DataOrigin:  originCounts.Of(code),
			Name:        c.Name,
			Region:      c.Region,
		})
	}

	authorDist := aggregate.Distribution(column(rows, func(r Figure3Row) aggregate.Count { return r.FirstAuthor }))
	originDist := aggregate.Distribution(column(rows, func(r Figure3Row) aggregate.Count { return r.DataOrigin }))
	for i := range rows {
		rows[i].DistFirstAuthor = authorDist[i]
		rows[i].DistDataOrigin = originDist[i]
	}

	below := aggregate.Below(aggregate.Count(otherThreshold))
	kept, other := aggregate.Partition(rows, func(r Figure3Row) bool { return below(r.FirstAuthor) })
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].FirstAuthor > kept[j].FirstAuthor })

	return append(kept, Figure3Row{
		Country:         mode.Other,
		Name:            mode.Other,
		Region:          mode.Other,
		FirstAuthor:     aggregate.Sum(other, func(r Figure3Row) aggregate.Count { return r.FirstAuthor }),
		DataOrigin:      aggregate.Sum(other, func(r Figure3Row) aggregate.Count { return r.DataOrigin }),
		DistFirstAuthor: aggregate.Sum(other, func(r Figure3Row) float64 { return r.DistFirstAuthor }),
		DistDataOrigin:  aggregate.Sum(other, func(r Figure3Row) float64 { return r.DistDataOrigin }),
	})
}

func (t Figure3Table) Header() []string {
	return []string{
		"Country",
		"Count (First author)",
		"Count (Data origin)",
		"Name (Country)",
		"Region (Country)",
		"Distribution (First author)",
		"Distribution (Data origin)",
	}
}

func (t Figure3Table) Rows() [][]interface{} {
	ret := make([][]interface{}, 0, len(t))
	for _, r := range t {
		ret = append(ret, []interface{}{
			r.Country, countCell(r.FirstAuthor), countCell(r.DataOrigin), r.Name, r.Region,
			r.DistFirstAuthor, r.DistDataOrigin,
		})
	}
	return ret
}

func column[T any, N aggregate.Number](rows []T, value func(T) N) []N {
	ret := make([]N, len(rows))
	for i, r := range rows {
		ret[i] = value(r)
	}
	return ret
}
