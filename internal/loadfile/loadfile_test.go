package loadfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scireview/internal/config"
	. "scireview/internal/loadfile"
	"scireview/internal/mode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

const chartingHeader = "Include;Publishing year;COVID-19 research;First author;Senior author;Data origin;Data source;ICD-10 chapter\n"

func TestReadCharting(t *testing.T) {
	data := chartingHeader +
		"Yes;2019;No;US;US;US;Optum;4\n" +
		"No;2019;No;DE;DE;DE;Other;\n" +
		"Yes;2020;Yes;DE;;DE, FR ,IT;Flatiron Health, Optum;\n" +
		"maybe;2021;No;GB;GB;GB;CPRD;9\n"
	articles, err := ReadCharting(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "US", articles[0].FirstAuthor)
	assert.Equal(t, []string{"US"}, articles[0].DataOriginList)
	assert.Equal(t, "4", articles[0].ICDChapter)

	second := articles[1]
	assert.Equal(t, "2020", second.PublishingYear)
	assert.Equal(t, "", second.SeniorAuthor)
	assert.Equal(t, []string{"DE", "FR", "IT"}, second.DataOriginList)
	assert.Equal(t, []string{"Flatiron Health", "Optum"}, second.DataSourceList)
	assert.Equal(t, "", second.ICDChapter)
}

func TestReadChartingMissingColumn(t *testing.T) {
	_, err := ReadCharting(strings.NewReader("Include;Publishing year\nYes;2019\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadChartingEncoding(t *testing.T) {
	dir := t.TempDir()
	text := chartingHeader + "Yes;2019;No;CH;CH;CH;Zürich registry;2\n"

	latin, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)
	latinPath := filepath.Join(dir, "latin.csv")
	require.NoError(t, os.WriteFile(latinPath, latin, 0644))

	articles, err := LoadCharting(latinPath, "windows-1252")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, []string{"Zürich registry"}, articles[0].DataSourceList)

	bomPath := filepath.Join(dir, "bom.csv")
	require.NoError(t, os.WriteFile(bomPath, append([]byte("\xef\xbb\xbf"), text...), 0644))
	articles, err = LoadCharting(bomPath, "utf-8")
	require.NoError(t, err)
	require.Len(t, articles, 1)

	_, err = LoadCharting(bomPath, "ebcdic")
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"A", "B c", "D "}, SplitSources("A,  B c,D "))
	assert.Equal(t, []string{"US", "GB"}, SplitOrigins(" U S , GB"))
	assert.Equal(t, []string{""}, SplitOrigins(""))

	for _, field := range []string{"US,GB,FR", "DE"} {
		assert.Equal(t, field, strings.Join(SplitOrigins(field), ","))
	}
}

func writeSheet(t *testing.T, path, sheet string, rows ...[]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func referencePaths(t *testing.T) config.Paths {
	dir := t.TempDir()
	p := config.Paths{
		CountryInfo:      filepath.Join(dir, "country.xlsx"),
		CitableDocuments: filepath.Join(dir, "citable.xlsx"),
		ICDChapters:      filepath.Join(dir, "icd.xlsx"),
		DataSources:      filepath.Join(dir, "sources.xlsx"),
		PublishedPapers:  filepath.Join(dir, "published.xlsx"),
	}
	writeSheet(t, p.CountryInfo, SheetCountryInfo,
		[]interface{}{ColCountry, ColCountryName, ColCountryRegion, ColIncomeGroup},
		[]interface{}{"US", "United States", "North America", "High income"},
		[]interface{}{"DE", "Germany", "European Union", "High income"},
		[]interface{}{"US", "Duplicate", "Nowhere", ""},
	)
	writeSheet(t, p.CitableDocuments, SheetCitable,
		[]interface{}{ColCountryName, "Citable documents_2021", "Citable documents_2022", ColCitableTotal},
		[]interface{}{"United States", 100, 150, 250},
		[]interface{}{"Germany", 40, nil, 40},
	)
	writeSheet(t, p.ICDChapters, SheetICDChapters,
		[]interface{}{ColICDChapter, ColChapterName},
		[]interface{}{"2", "Neoplasms"},
		[]interface{}{"other", "Other chapters"},
	)
	writeSheet(t, p.DataSources, SheetDataSources,
		[]interface{}{ColDataSource, ColSourceAbbreviation, ColSourceOrigin},
		[]interface{}{"Flatiron Health", "Flatiron", "US"},
	)
	writeSheet(t, p.PublishedPapers, SheetPublishedPapers,
		[]interface{}{ColYear, ColPublishedTotal},
		[]interface{}{2019, 1000000},
		[]interface{}{2020.0, 1200000},
	)
	return p
}

func TestLoadReferences(t *testing.T) {
	refs, err := LoadReferences(referencePaths(t))
	require.NoError(t, err)

	require.Equal(t, 3, refs.Countries.Len())
	us, ok := refs.Countries.Get("US")
	require.True(t, ok)
	assert.Equal(t, mode.Country{Code: "US", Name: "United States", Region: "North America", IncomeGroup: "High income"}, us)
	_, ok = refs.Countries.Get("FR")
	assert.False(t, ok)

	de, ok := refs.Citable.Get("Germany")
	require.True(t, ok)
	assert.Equal(t, 40.0, de.Total)
	assert.Equal(t, map[string]float64{"2021": 40, "2022": 0}, de.ByYear)

	c, ok := refs.Chapters.Get("2")
	require.True(t, ok)
	assert.Equal(t, "Neoplasms", c.Name)

	s, ok := refs.Sources.Get("Flatiron Health")
	require.True(t, ok)
	assert.Equal(t, "Flatiron", s.Abbreviation)

	pp, ok := refs.Published.Get("2020")
	require.True(t, ok)
	assert.Equal(t, 1200000, pp.Total)
	_, ok = refs.Published.Get("2019")
	assert.True(t, ok)
}

func TestLoadReferencesMissingSheet(t *testing.T) {
	p := referencePaths(t)
	writeSheet(t, p.ICDChapters, "Sheet1", []interface{}{ColICDChapter, ColChapterName})
	_, err := LoadReferences(p)
	require.ErrorIs(t, err, ErrMissingSheet)
}

func TestLoadReferencesMissingColumn(t *testing.T) {
	p := referencePaths(t)
	writeSheet(t, p.DataSources, SheetDataSources, []interface{}{ColDataSource, ColSourceOrigin}, []interface{}{"Optum", "US"})
	_, err := LoadReferences(p)
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestNilReference(t *testing.T) {
	var r *Reference[mode.Country]
	_, ok := r.Get("US")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestAggregateScimago(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, ScimagoFile(dir, "2021"), "Sheet1",
		[]interface{}{"Rank", ColCountry, ColCitableDocuments},
		[]interface{}{1, "United States", 100},
		[]interface{}{2, "Germany", 40},
	)
	writeSheet(t, ScimagoFile(dir, "2022"), "Sheet1",
		[]interface{}{"Rank", ColCountry, ColCitableDocuments},
		[]interface{}{1, "United States", 150},
		[]interface{}{2, "Austria", 10},
	)
	items, err := AggregateScimago(dir, []string{"2021", "2022"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Austria", items[0].Name)
	assert.Equal(t, 10.0, items[0].Total)
	assert.Equal(t, "United States", items[2].Name)
	assert.Equal(t, 250.0, items[2].Total)

	sheet := CitableSheet{Years: []string{"2021", "2022"}, Items: items}
	assert.Equal(t, []string{ColCountryName, "Citable documents_2021", "Citable documents_2022", ColCitableTotal}, sheet.Header())
	assert.Equal(t, []interface{}{"Germany", 40.0, 0.0, 40.0}, sheet.Rows()[1])

	_, err = AggregateScimago(dir, []string{"2023"})
	assert.Error(t, err)
}
