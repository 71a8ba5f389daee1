package loadfile

import (
	"fmt"
	"path/filepath"
	"sort"

	"scireview/internal/mode"

	log "github.com/sirupsen/logrus"
)

const scimagoSheet = "Sheet1"

// ScimagoFile is the name of a yearly SCImago country rank export.
func ScimagoFile(dir, year string) string {
	return filepath.Join(dir, fmt.Sprintf("scimagojr country rank %s.xlsx", year))
}

// AggregateScimago outer joins the yearly country rank exports on country
// name and sums the citable documents over all years. A country missing
// from a year contributes 0 for that year.
func AggregateScimago(dir string, years []string) ([]mode.CitableDocuments, error) {
	byName := make(map[string]*mode.CitableDocuments)
	for _, year := range years {
		filePath := ScimagoFile(dir, year)
		s, err := openSheet(filePath, scimagoSheet, ColCountry, ColCitableDocuments)
		if err != nil {
			return nil, err
		}
		for _, rec := range s.rows {
			name := s.cell(rec, ColCountry)
			value, err := s.number(rec, ColCitableDocuments)
			if err != nil {
				return nil, err
			}
			item, ok := byName[name]
			if !ok {
				item = &mode.CitableDocuments{Name: name, ByYear: make(map[string]float64)}
				byName[name] = item
			}
			item.ByYear[year] += value
			item.Total += value
		}
		log.Infof("scimagojr %s: %d countries", year, len(s.rows))
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	ret := make([]mode.CitableDocuments, 0, len(names))
	for _, name := range names {
		ret = append(ret, *byName[name])
	}
	return ret, nil
}

// CitableSheet is the Citable_documents_per_country output table.
type CitableSheet struct {
	Years []string
	Items []mode.CitableDocuments
}

func (c CitableSheet) Header() []string {
	header := []string{ColCountryName}
	for _, year := range c.Years {
		header = append(header, fmt.Sprintf("%s_%s", ColCitableDocuments, year))
	}
	return append(header, ColCitableTotal)
}

func (c CitableSheet) Rows() [][]interface{} {
	ret := make([][]interface{}, 0, len(c.Items))
	for _, item := range c.Items {
		row := []interface{}{item.Name}
		for _, year := range c.Years {
			row = append(row, item.ByYear[year])
		}
		ret = append(ret, append(row, item.Total))
	}
	return ret
}
