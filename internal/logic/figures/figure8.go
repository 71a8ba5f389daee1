package figures

import (
	"scireview/internal/aggregate"
	"scireview/internal/loadfile"
	"scireview/internal/mode"
)

// Figure8Row links a data source to the ICD-10 chapter of one article.
type Figure8Row struct {
	Source      string
	Chapter     string
	SourceName  string
	ChapterName string
}

type Figure8Table []Figure8Row

// Figure8 cross-tabulates data sources and ICD-10 chapters as a flat list
// of pairs. Sources used fewer than sourceMin times are dropped; chapters
// occurring fewer than chapterMin times among the remaining pairs become
// "other".
func Figure8(articles []mode.Article, sources *loadfile.Reference[mode.DataSourceInfo], chapters *loadfile.Reference[mode.ICDChapter], sourceMin, chapterMin int) Figure8Table {
	rows := SpecificSources(articles)
	sourceCounts := aggregate.CountBy(rows, flowValue)
	rows = aggregate.Filter(rows, func(e aggregate.Exploded) bool {
		return sourceCounts.Of(e.Value) >= aggregate.Count(sourceMin)
	})
	rows = aggregate.Filter(rows, func(e aggregate.Exploded) bool { return aggregate.AssignedChapter(e.Article) })

	chapterCounts := aggregate.CountBy(rows, func(e aggregate.Exploded) string { return e.Article.ICDChapter })
	ret := make(Figure8Table, 0, len(rows))
	for _, e := range rows {
		key := e.Article.ICDChapter
		if chapterCounts.Of(key) < aggregate.Count(chapterMin) {
			key = mode.Other
		}
		info, _ := sources.Get(e.Value)
		row := Figure8Row{Source: e.Value, Chapter: key, SourceName: info.Abbreviation}
		if c, ok := chapters.Get(key); ok {
			row.ChapterName = c.Name
		} else if key == mode.Other {
			row.ChapterName = mode.Other
		}
		ret = append(ret, row)
	}
	return ret
}

func (t Figure8Table) Header() []string {
	return []string{"Abbreviation (Data source)", "Name (ICD-10 chapter)"}
}

func (t Figure8Table) Rows() [][]interface{} {
	ret := make([][]interface{}, 0, len(t))
	for _, r := range t {
		ret = append(ret, []interface{}{r.SourceName, r.ChapterName})
	}
	return ret
}
