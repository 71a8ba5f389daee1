package loadfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"scireview/internal/mode"

	log "github.com/sirupsen/logrus"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrMissingSheet  = errors.New("missing sheet")
)

// Column names of the charting table.
const (
	ColInclude        = "Include"
	ColPublishingYear = "Publishing year"
	ColCOVIDResearch  = "COVID-19 research"
	ColFirstAuthor    = "First author"
	ColSeniorAuthor   = "Senior author"
	ColDataOrigin     = "Data origin"
	ColDataSource     = "Data source"
	ColICDChapter     = "ICD-10 chapter"
)

var chartingColumns = []string{
	ColInclude, ColPublishingYear, ColCOVIDResearch, ColFirstAuthor,
	ColSeniorAuthor, ColDataOrigin, ColDataSource, ColICDChapter,
}

// LoadCharting reads the semicolon separated charting results and returns
// the included articles.
func LoadCharting(filePath, encodingName string) ([]mode.Article, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open charting table: %w", err)
	}
	defer f.Close()

	r, err := decodeReader(f, encodingName)
	if err != nil {
		return nil, err
	}
	articles, err := ReadCharting(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	log.Infof("Loaded %d articles", len(articles))
	return articles, nil
}

// ReadCharting parses an already decoded charting table.
func ReadCharting(r io.Reader) ([]mode.Article, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index, err := columnIndex(header, chartingColumns)
	if err != nil {
		return nil, err
	}

	var articles []mode.Article
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		cell := func(col string) string {
			i := index[col]
			if i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		if cell(ColInclude) != mode.IncludedFlag {
			continue
		}
		item := mode.Article{
			Include:        cell(ColInclude),
			PublishingYear: cell(ColPublishingYear),
			COVIDResearch:  cell(ColCOVIDResearch),
			FirstAuthor:    cell(ColFirstAuthor),
			SeniorAuthor:   cell(ColSeniorAuthor),
			DataOrigin:     cell(ColDataOrigin),
			DataSource:     cell(ColDataSource),
			ICDChapter:     cell(ColICDChapter),
		}
		item.DataSourceList = SplitSources(item.DataSource)
		item.DataOriginList = SplitOrigins(item.DataOrigin)
		articles = append(articles, item)
	}
	return articles, nil
}

// SplitSources splits a data source field on commas and left-trims every label.
func SplitSources(field string) []string {
	parts := strings.Split(field, ",")
	for i, label := range parts {
		parts[i] = strings.TrimLeftFunc(label, unicode.IsSpace)
	}
	return parts
}

// SplitOrigins drops all whitespace from a data origin field before
// splitting it on commas.
func SplitOrigins(field string) []string {
	return strings.Split(strings.Join(strings.Fields(field), ""), ",")
}

func columnIndex(header []string, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}
	return index, nil
}
