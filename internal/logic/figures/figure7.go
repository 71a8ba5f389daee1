package figures

import (
	"scireview/internal/aggregate"
	"scireview/internal/loadfile"
	"scireview/internal/mode"
)

type Figure7Row struct {
	Source       string
	Count        aggregate.Count
	Abbreviation string
	Origin       string
}

type Figure7Table []Figure7Row

// SpecificSources explodes the data source lists and drops the sentinel
// labels.
func SpecificSources(articles []mode.Article) []aggregate.Exploded {
	return aggregate.Filter(aggregate.Explode(articles, aggregate.Sources), func(e aggregate.Exploded) bool {
		return aggregate.SpecificSource(e.Value)
	})
}

// Figure7 counts how often each data source is used. Sources used fewer
// than minCount times are dropped, not bucketed.
func Figure7(articles []mode.Article, sources *loadfile.Reference[mode.DataSourceInfo], minCount int) Figure7Table {
	counts := aggregate.CountBy(SpecificSources(articles), flowValue)
	below := aggregate.Below(aggregate.Count(minCount))

	var ret Figure7Table
	for _, kc := range counts.Sorted() {
		if below(kc.Count) {
			continue
		}
		info, _ := sources.Get(kc.Key)
		ret = append(ret, Figure7Row{
			Source:       kc.Key,
			Count:        kc.Count,
			Abbreviation: info.Abbreviation,
			Origin:       info.Origin,
		})
	}
	return ret
}

func (t Figure7Table) Header() []string {
	return []string{"Data source", "Count (Data source)", "Abbreviation (Data source)", "Country (Data source)"}
}

func (t Figure7Table) Rows() [][]interface{} {
	ret := make([][]interface{}, 0, len(t))
	for _, r := range t {
		ret = append(ret, []interface{}{r.Source, countCell(r.Count), r.Abbreviation, r.Origin})
	}
	return ret
}
