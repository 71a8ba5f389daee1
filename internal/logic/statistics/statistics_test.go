package statistics_test

import (
	"bytes"
	"math"
	"testing"

	"scireview/internal/config"
	"scireview/internal/loadfile"
	"scireview/internal/logic/figures"
	. "scireview/internal/logic/statistics"
	"scireview/internal/mode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func article(year, firstAuthor, senior string, origins []string, sources []string, chapter string) mode.Article {
	return mode.Article{
		Include:        mode.IncludedFlag,
		PublishingYear: year,
		COVIDResearch:  mode.NotCovidRelated,
		FirstAuthor:    firstAuthor,
		SeniorAuthor:   senior,
		DataOriginList: origins,
		DataSourceList: sources,
		ICDChapter:     chapter,
	}
}

func fixture() []mode.Article {
	return []mode.Article{
		article("2019", "US", "US", []string{"US"}, []string{"Optum"}, "4"),
		article("2019", "US", "", []string{"GB"}, []string{"CPRD"}, "2"),
		article("2020", "DE", "FR", []string{"DE", "FR"}, []string{"Flatiron Health"}, "2"),
		article("2021", "GB", "GB", []string{mode.OriginVarious}, []string{mode.SourceMultiple}, ""),
	}
}

func countries() *loadfile.Reference[mode.Country] {
	return loadfile.CountryTable([]mode.Country{
		{Code: "US", Name: "United States", Region: "North America", IncomeGroup: "High income"},
		{Code: "GB", Name: "United Kingdom", Region: "Europe", IncomeGroup: "High income"},
		{Code: "DE", Name: "Germany", Region: "European Union", IncomeGroup: "High income"},
		{Code: "FR", Name: "France", Region: "European Union", IncomeGroup: "Upper middle income"},
	})
}

func TestOLS(t *testing.T) {
	r, err := OLS([]float64{1, 3, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, 2, r.Slope, 1e-9)
	assert.InDelta(t, 0, r.PValue, 1e-9)

	r, err = OLS([]float64{2, 1, 3, 2, 4, 3})
	require.NoError(t, err)
	assert.True(t, r.Slope > 0)
	assert.True(t, r.PValue > 0 && r.PValue < 1)

	_, err = OLS([]float64{1, 2})
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestTrend(t *testing.T) {
	table := figures.Figure2Table{
		{Year: "2019", NormalizedNonCovid: 1, NormalizedCovid: 0},
		{Year: "2020", NormalizedNonCovid: 2, NormalizedCovid: 1},
		{Year: "2021", NormalizedNonCovid: 3, NormalizedCovid: 2},
	}
	total, nonCovid, err := Trend(table)
	require.NoError(t, err)
	assert.InDelta(t, 2, total.Slope, 1e-9)
	assert.InDelta(t, 1, nonCovid.Slope, 1e-9)
}

func TestShares(t *testing.T) {
	articles := fixture()

	same := SameAuthorOrigin(articles)
	assert.Equal(t, 3, same.Count)
	assert.InDelta(t, 75, same.Percent, 1e-9)

	o := AuthorAndDataOrigin(articles)
	assert.Equal(t, 2, o.SingleOrigin.Count)
	assert.Equal(t, 1, o.UniqueFirstAuthors)
	assert.Equal(t, 2, o.UniqueDataOrigins)
	assert.Equal(t, 1, o.Domestic.Count)
	assert.InDelta(t, 50, o.Domestic.Percent, 1e-9)
	assert.Equal(t, []MultiOriginRow{
		{Country: "DE", FirstAuthor: 1, DataOrigin: 1},
		{Country: "FR", FirstAuthor: 0, DataOrigin: 1},
		{Country: "GB", FirstAuthor: 1, DataOrigin: 0},
		{Country: mode.OriginVarious, FirstAuthor: 0, DataOrigin: 1},
	}, o.MultiOrigin)

	assigned := AssignedToChapter(articles)
	assert.Equal(t, 3, assigned.Count)
	assert.InDelta(t, 75, assigned.Percent, 1e-9)
}

func TestCrossBorder(t *testing.T) {
	c := CrossBorder(fixture())
	assert.Equal(t, 4, c.Total)
	assert.Equal(t, 3, c.CrossBorder.Count)
	assert.Equal(t, 1, c.Domestic.Count)
	// GB and FR flows; DE is the first author's own country and "various" is no flow
	assert.Equal(t, 2, c.Flows)
}

func TestIncomeGroups(t *testing.T) {
	articles := append(fixture(), article("2021", "XX", "", []string{"XX"}, nil, ""))
	assert.Equal(t, []IncomeGroupCount{{Group: "High income", Count: 4}}, IncomeGroups(articles, countries()))
}

func TestCommonSources(t *testing.T) {
	sources := loadfile.SourceTable([]mode.DataSourceInfo{{Source: "Optum"}, {Source: "Flatiron Health"}})
	u := CommonSources(fixture(), sources)
	assert.Equal(t, 2, u.Articles.Count)
	assert.Equal(t, []YearShare{
		{Year: "2019", Using: 1, Total: 2},
		{Year: "2020", Using: 1, Total: 1},
		{Year: "2021", Using: 0, Total: 1},
	}, u.ByYear)
}

func TestDiseaseSource(t *testing.T) {
	d := DiseaseSource(fixture(), "2", "CPRD")
	assert.Equal(t, 2, d.Base)
	assert.Equal(t, 1, d.Share.Count)
	assert.InDelta(t, 50, d.Share.Percent, 1e-9)

	none := DiseaseSource(fixture(), "7", "CPRD")
	assert.Equal(t, 0, none.Base)
	assert.Equal(t, 0.0, none.Share.Percent)
}

func TestContribution(t *testing.T) {
	c := Contribution(fixture(), countries(), "European Union")
	assert.Len(t, c.Countries, 4)
	assert.Equal(t, 0, int(c.FirstAuthor))
	assert.Equal(t, 0.0, c.DistDataOrigin)

	c = Contribution(fixture(), countries(), "North America")
	assert.Equal(t, 2, int(c.FirstAuthor))
	assert.InDelta(t, 100, c.DistFirstAuthor, 1e-9)
	assert.InDelta(t, 50, c.DistDataOrigin, 1e-9)
}

func TestRates(t *testing.T) {
	table := figures.Figure4Table{
		{Country: "DE", Region: "European Union", Rate: 1},
		{Country: "FR", Region: "European Union", Rate: 3},
		{Country: "US", Region: "North America", Rate: 4},
		{Country: mode.Other, Region: mode.Other, Rate: 100},
	}
	rates := Rates(table)
	require.Len(t, rates, 3)
	assert.Equal(t, "Global", rates[0].Region)
	assert.InDelta(t, 8.0/3, rates[0].Mean, 1e-9)
	assert.Equal(t, "European Union", rates[1].Region)
	assert.InDelta(t, 2, rates[1].Mean, 1e-9)
	assert.InDelta(t, math.Sqrt2, rates[1].Std, 1e-9)
	assert.True(t, math.IsNaN(rates[2].Std))
}

func TestReportRun(t *testing.T) {
	articles := fixture()
	refs := &loadfile.References{
		Countries: countries(),
		Published: loadfile.PublishedTable([]mode.PublishedPapers{
			{Year: "2019", Total: 100}, {Year: "2020", Total: 100}, {Year: "2021", Total: 100},
		}),
	}
	set := figures.Build(figures.Inputs{Articles: articles, Refs: refs, Thresholds: config.Default().Thresholds})

	var out bytes.Buffer
	NewReport(&out).Run(articles, refs, set, config.Default().Statistics)
	text := out.String()
	assert.Contains(t, text, "Normalized all [2019-2021] | Slope:")
	assert.Contains(t, text, "Articles with same author origin: 75.00 (n=3)")
	assert.Contains(t, text, "Crossborder flows: 2")
	assert.Contains(t, text, "Articles on chapter 4 using Optum: 100.0 (n=1(/1))")
}
