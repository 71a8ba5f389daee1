package figures

import (
	"sort"

	"scireview/internal/aggregate"
	"scireview/internal/loadfile"
	"scireview/internal/mode"
)

type Figure6Row struct {
	Chapter      string
	Count        aggregate.Count
	Name         string
	Distribution float64
}

type Figure6Table []Figure6Row

func chapter(a mode.Article) string { return a.ICDChapter }

// Figure6 is the distribution of articles over ICD-10 chapters. Chapters
// holding less than otherThreshold percent of the articles are summed into
// the "other" row.
func Figure6(articles []mode.Article, chapters *loadfile.Reference[mode.ICDChapter], otherThreshold float64) Figure6Table {
	assigned := aggregate.Filter(articles, aggregate.AssignedChapter)
	counts := aggregate.CountBy(assigned, chapter)

	var chapterKeys []string
	if chapters != nil {
		for _, c := range chapters.Rows {
			chapterKeys = append(chapterKeys, c.Chapter)
		}
	}
	var rows Figure6Table
	for _, key := range aggregate.OuterKeys(counts.Keys(), chapterKeys) {
		c, _ := chapters.Get(key)
		rows = append(rows, Figure6Row{Chapter: key, Count: counts.Of(key), Name: c.Name})
	}
	dist := aggregate.Distribution(column(rows, func(r Figure6Row) aggregate.Count { return r.Count }))
	for i := range rows {
		rows[i].Distribution = dist[i]
	}

	below := aggregate.Below(otherThreshold)
	kept, other := aggregate.Partition(rows, func(r Figure6Row) bool { return below(r.Distribution) })
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Count > kept[j].Count })

	return append(kept, Figure6Row{
		Chapter:      mode.Other,
		Name:         mode.Other,
		Count:        aggregate.Sum(other, func(r Figure6Row) aggregate.Count { return r.Count }),
		Distribution: aggregate.Sum(other, func(r Figure6Row) float64 { return r.Distribution }),
	})
}

func (t Figure6Table) Header() []string {
	return []string{"ICD-10 chapter", "Count (ICD-10 chapter)", "Name (ICD-10 chapter)", "Distribution (ICD-10 chapter)"}
}

func (t Figure6Table) Rows() [][]interface{} {
	ret := make([][]interface{}, 0, len(t))
	for _, r := range t {
		ret = append(ret, []interface{}{r.Chapter, countCell(r.Count), r.Name, r.Distribution})
	}
	return ret
}
