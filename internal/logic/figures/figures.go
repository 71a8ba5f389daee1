// Package figures turns the loaded charting table into the derived tables
// behind figures 2 to 8 of the review. Every transform works on its own
// filtered or exploded copy of the articles.
package figures

import (
	"strconv"

	"scireview/internal/aggregate"
	"scireview/internal/config"
	"scireview/internal/loadfile"
	"scireview/internal/mode"
	"scireview/internal/workbook"
)

const (
	SheetFigure2  = "data_figure_2"
	SheetFigure3  = "data_figure_3"
	SheetFigure4  = "data_figure_4"
	SheetFigure5a = "data_figure_5a"
	SheetFigure5b = "data_figure_5b"
	SheetFigure6  = "data_figure_6"
	SheetFigure7  = "data_figure_7"
	SheetFigure8  = "data_figure_8"
)

type Inputs struct {
	Articles   []mode.Article
	Refs       *loadfile.References
	Thresholds config.Thresholds
}

// Output is one derived table and the sheet it is written to.
type Output struct {
	Sheet string
	Table workbook.Table
}

// Set holds every derived table of a run.
type Set struct {
	Figure2  Figure2Table
	Figure3  Figure3Table
	Figure4  Figure4Table
	Figure5a Figure5aTable
	Figure5b Figure5bTable
	Figure6  Figure6Table
	Figure7  Figure7Table
	Figure8  Figure8Table
}

func Build(in Inputs) *Set {
	t := in.Thresholds
	ret := &Set{
		Figure2: Figure2(in.Articles, in.Refs.Published),
		Figure3: Figure3(in.Articles, in.Refs.Countries, t.Figure3Other),
		Figure4: Figure4(in.Articles, in.Refs.Countries, in.Refs.Citable, t.Figure4Top),
		Figure6: Figure6(in.Articles, in.Refs.Chapters, t.Figure6Other),
		Figure7: Figure7(in.Articles, in.Refs.Sources, t.Figure7Min),
		Figure8: Figure8(in.Articles, in.Refs.Sources, in.Refs.Chapters, t.Figure8SourceMin, t.Figure8ChapterMin),
	}
	ret.Figure5a, ret.Figure5b = Figure5(in.Articles, in.Refs.Countries, t.Figure5aOther, t.Figure5bPairs)
	return ret
}

// Outputs lists the tables in sheet order.
func (s *Set) Outputs() []Output {
	return []Output{
		{SheetFigure2, s.Figure2},
		{SheetFigure3, s.Figure3},
		{SheetFigure4, s.Figure4},
		{SheetFigure5a, s.Figure5a},
		{SheetFigure5b, s.Figure5b},
		{SheetFigure6, s.Figure6},
		{SheetFigure7, s.Figure7},
		{SheetFigure8, s.Figure8},
	}
}

func countCell(c aggregate.Count) interface{} { return int(c) }

func yearCell(year string) interface{} {
	if v, err := strconv.Atoi(year); err == nil {
		return v
	}
	return year
}

func origin(a mode.Article) string { return a.DataOriginList[0] }

func firstAuthor(a mode.Article) string { return a.FirstAuthor }

func codes(countries *loadfile.Reference[mode.Country]) []string {
	if countries == nil {
		return nil
	}
	ret := make([]string, 0, len(countries.Rows))
	for _, c := range countries.Rows {
		ret = append(ret, c.Code)
	}
	return ret
}
