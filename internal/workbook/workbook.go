package workbook

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"
	scratchSheet = "~replace"
)

// Table is a derived table with a fixed column schema. Row values must be
// plain string, int or float64 so the cells keep their type.
type Table interface {
	Header() []string
	Rows() [][]interface{}
}

// Writer replaces single sheets in one shared workbook. Every call is a full
// read-modify-write of the file; callers must not write concurrently.
type Writer struct {
	Path string
}

func NewWriter(path string) *Writer {
	return &Writer{Path: path}
}

func (w *Writer) open() (f *excelize.File, created bool, err error) {
	if _, err := os.Stat(w.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return excelize.NewFile(), true, nil
		}
		return nil, false, err
	}
	f, err = excelize.OpenFile(w.Path)
	if err != nil {
		return nil, false, fmt.Errorf("open workbook %s: %w", w.Path, err)
	}
	return f, false, nil
}

// WriteSheet replaces the sheet called name if it exists, appends it
// otherwise, and leaves all other sheets untouched.
func (w *Writer) WriteSheet(name string, t Table) error {
	f, created, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := replaceSheet(f, name); err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	if created && name != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return err
		}
	}

	header := t.Header()
	if err := setRow(f, name, 1, toRow(header)); err != nil {
		return err
	}
	rows := t.Rows()
	for i, row := range rows {
		if err := setRow(f, name, i+2, row); err != nil {
			return err
		}
	}
	if idx, err := f.GetSheetIndex(name); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	if err := f.SaveAs(w.Path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.Path, err)
	}
	log.Infof("write sheet %s: %d rows", name, len(rows))
	return nil
}

func replaceSheet(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx < 0 {
		_, err = f.NewSheet(name)
		return err
	}
	// the last sheet of a workbook cannot be deleted, so build the
	// replacement first and rename it afterwards
	if _, err := f.NewSheet(scratchSheet); err != nil {
		return err
	}
	if err := f.DeleteSheet(name); err != nil {
		return err
	}
	return f.SetSheetName(scratchSheet, name)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toRow(header []string) []interface{} {
	ret := make([]interface{}, len(header))
	for i, v := range header {
		ret[i] = v
	}
	return ret
}

// ReadSheet returns the raw cell values of one sheet, header first.
func ReadSheet(path, name string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return f.GetRows(name, excelize.Options{RawCellValue: true})
}

// SheetNames lists the sheets of a workbook in order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}
