package loadfile

import (
	"fmt"
	"strconv"
	"strings"

	"scireview/internal/config"
	"scireview/internal/mode"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Column names of the auxiliary tables.
const (
	ColCountry            = "Country"
	ColCountryName        = "Name (Country)"
	ColCountryRegion      = "Region (Country)"
	ColIncomeGroup        = "World Bank income group"
	ColCitableTotal       = "Citable documents_total"
	ColCitableDocuments   = "Citable documents"
	ColChapterName        = "Name (ICD-10 chapter)"
	ColSourceAbbreviation = "Abbreviation (Data source)"
	ColSourceOrigin       = "Country (Data source)"
	ColYear               = "Year"
	ColPublishedTotal     = "Paper-published-total"
)

const (
	SheetCountryInfo     = "Country_information"
	SheetCitable         = "Citable_documents_per_country"
	SheetICDChapters     = "ICD-10_chapter_mapping"
	SheetDataSources     = "Data_source_information"
	SheetPublishedPapers = "PubMed_number_paper_published"
)

// Reference is a read-only lookup table keeping the row order of its file.
type Reference[T any] struct {
	Rows  []T
	index map[string]int
}

func newReference[T any](rows []T, key func(T) string) *Reference[T] {
	ret := &Reference[T]{Rows: rows, index: make(map[string]int, len(rows))}
	for i, row := range rows {
		k := key(row)
		if _, ok := ret.index[k]; ok {
			log.Warnf("duplicate reference key %q, keeping first", k)
			continue
		}
		ret.index[k] = i
	}
	return ret
}

func (r *Reference[T]) Get(key string) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	i, ok := r.index[key]
	if !ok {
		return zero, false
	}
	return r.Rows[i], true
}

func (r *Reference[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

func CountryTable(rows []mode.Country) *Reference[mode.Country] {
	return newReference(rows, func(c mode.Country) string { return c.Code })
}

// CitableTable is keyed by country display name, not code.
func CitableTable(rows []mode.CitableDocuments) *Reference[mode.CitableDocuments] {
	return newReference(rows, func(c mode.CitableDocuments) string { return c.Name })
}

func ChapterTable(rows []mode.ICDChapter) *Reference[mode.ICDChapter] {
	return newReference(rows, func(c mode.ICDChapter) string { return c.Chapter })
}

func SourceTable(rows []mode.DataSourceInfo) *Reference[mode.DataSourceInfo] {
	return newReference(rows, func(c mode.DataSourceInfo) string { return c.Source })
}

func PublishedTable(rows []mode.PublishedPapers) *Reference[mode.PublishedPapers] {
	return newReference(rows, func(c mode.PublishedPapers) string { return c.Year })
}

// References bundles every auxiliary table a run needs.
type References struct {
	Countries *Reference[mode.Country]
	Citable   *Reference[mode.CitableDocuments]
	Chapters  *Reference[mode.ICDChapter]
	Sources   *Reference[mode.DataSourceInfo]
	Published *Reference[mode.PublishedPapers]
}

func LoadReferences(p config.Paths) (ret *References, err error) {
	ret = &References{}
	if ret.Countries, err = LoadCountries(p.CountryInfo); err != nil {
		return nil, err
	}
	if ret.Citable, err = LoadCitableDocuments(p.CitableDocuments); err != nil {
		return nil, err
	}
	if ret.Chapters, err = LoadChapters(p.ICDChapters); err != nil {
		return nil, err
	}
	if ret.Sources, err = LoadDataSources(p.DataSources); err != nil {
		return nil, err
	}
	if ret.Published, err = LoadPublishedPapers(p.PublishedPapers); err != nil {
		return nil, err
	}
	log.Infof("reference statistic: countries %d, citable %d, chapters %d, sources %d, years %d",
		ret.Countries.Len(), ret.Citable.Len(), ret.Chapters.Len(), ret.Sources.Len(), ret.Published.Len())
	return ret, nil
}

func LoadCountries(filePath string) (*Reference[mode.Country], error) {
	s, err := openSheet(filePath, SheetCountryInfo, ColCountry, ColCountryName, ColCountryRegion)
	if err != nil {
		return nil, err
	}
	var rows []mode.Country
	for _, rec := range s.rows {
		rows = append(rows, mode.Country{
			Code:        s.cell(rec, ColCountry),
			Name:        s.cell(rec, ColCountryName),
			Region:      s.cell(rec, ColCountryRegion),
			IncomeGroup: s.cell(rec, ColIncomeGroup),
		})
	}
	return CountryTable(rows), nil
}

func LoadCitableDocuments(filePath string) (*Reference[mode.CitableDocuments], error) {
	s, err := openSheet(filePath, SheetCitable, ColCountryName, ColCitableTotal)
	if err != nil {
		return nil, err
	}
	var rows []mode.CitableDocuments
	for _, rec := range s.rows {
		total, err := s.number(rec, ColCitableTotal)
		if err != nil {
			return nil, err
		}
		item := mode.CitableDocuments{
			Name:   s.cell(rec, ColCountryName),
			ByYear: make(map[string]float64),
			Total:  total,
		}
		for col := range s.index {
			year, ok := strings.CutPrefix(col, ColCitableDocuments+"_")
			if !ok || year == "total" {
				continue
			}
			if item.ByYear[year], err = s.number(rec, col); err != nil {
				return nil, err
			}
		}
		rows = append(rows, item)
	}
	return CitableTable(rows), nil
}

func LoadChapters(filePath string) (*Reference[mode.ICDChapter], error) {
	s, err := openSheet(filePath, SheetICDChapters, ColICDChapter, ColChapterName)
	if err != nil {
		return nil, err
	}
	var rows []mode.ICDChapter
	for _, rec := range s.rows {
		rows = append(rows, mode.ICDChapter{
			Chapter: s.cell(rec, ColICDChapter),
			Name:    s.cell(rec, ColChapterName),
		})
	}
	return ChapterTable(rows), nil
}

func LoadDataSources(filePath string) (*Reference[mode.DataSourceInfo], error) {
	s, err := openSheet(filePath, SheetDataSources, ColDataSource, ColSourceAbbreviation)
	if err != nil {
		return nil, err
	}
	var rows []mode.DataSourceInfo
	for _, rec := range s.rows {
		rows = append(rows, mode.DataSourceInfo{
			Source:       s.cell(rec, ColDataSource),
			Abbreviation: s.cell(rec, ColSourceAbbreviation),
			Origin:       s.cell(rec, ColSourceOrigin),
		})
	}
	return SourceTable(rows), nil
}

func LoadPublishedPapers(filePath string) (*Reference[mode.PublishedPapers], error) {
	s, err := openSheet(filePath, SheetPublishedPapers, ColYear, ColPublishedTotal)
	if err != nil {
		return nil, err
	}
	var rows []mode.PublishedPapers
	for _, rec := range s.rows {
		total, err := s.number(rec, ColPublishedTotal)
		if err != nil {
			return nil, err
		}
		rows = append(rows, mode.PublishedPapers{
			Year:  normalizeYear(s.cell(rec, ColYear)),
			Total: int(total),
		})
	}
	return PublishedTable(rows), nil
}

// normalizeYear turns a numeric year cell such as "2019.0" into "2019".
func normalizeYear(v string) string {
	if f, err := strconv.ParseFloat(v, 64); err == nil && f == float64(int(f)) {
		return strconv.Itoa(int(f))
	}
	return v
}

type sheet struct {
	path  string
	name  string
	index map[string]int
	rows  [][]string
}

func openSheet(filePath, sheetName string, required ...string) (*sheet, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%s: %w %q", filePath, ErrMissingSheet, sheetName)
	}
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", filePath, sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s/%s: %w %q", filePath, sheetName, ErrMissingColumn, required)
	}
	index, err := columnIndex(rows[0], required)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", filePath, sheetName, err)
	}
	ret := &sheet{path: filePath, name: sheetName, index: index}
	for _, rec := range rows[1:] {
		if isBlank(rec) {
			continue
		}
		ret.rows = append(ret.rows, rec)
	}
	return ret, nil
}

func (s *sheet) cell(rec []string, col string) string {
	i, ok := s.index[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// number parses a numeric cell; an empty cell counts as zero.
func (s *sheet) number(rec []string, col string) (float64, error) {
	v := s.cell(rec, col)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s/%s column %q: %w", s.path, s.name, col, err)
	}
	return f, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
