package workbook_test

import (
	"path/filepath"
	"testing"

	. "scireview/internal/workbook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type table struct {
	header []string
	rows   [][]interface{}
}

func (t table) Header() []string      { return t.header }
func (t table) Rows() [][]interface{} { return t.rows }

func TestWriteSheetCreatesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_figures.xlsx")
	w := NewWriter(path)
	require.NoError(t, w.WriteSheet("data_figure_2", table{
		header: []string{"Year", "Count"},
		rows:   [][]interface{}{{2019, 3}, {2020, 1.5}},
	}))

	names, err := SheetNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"data_figure_2"}, names)

	rows, err := ReadSheet(path, "data_figure_2")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Year", "Count"}, {"2019", "3"}, {"2020", "1.5"}}, rows)
}

func TestWriteSheetReplacesOnlyItsSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_figures.xlsx")
	w := NewWriter(path)
	require.NoError(t, w.WriteSheet("a", table{header: []string{"x"}, rows: [][]interface{}{{"old"}, {"older"}}}))
	require.NoError(t, w.WriteSheet("b", table{header: []string{"y"}, rows: [][]interface{}{{"kept"}}}))
	require.NoError(t, w.WriteSheet("a", table{header: []string{"x"}, rows: [][]interface{}{{"new"}}}))

	names, err := SheetNames(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)

	a, err := ReadSheet(path, "a")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x"}, {"new"}}, a)

	b, err := ReadSheet(path, "b")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"y"}, {"kept"}}, b)
}

func TestWriteSheetReplacesOnlySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citable.xlsx")
	w := NewWriter(path)
	require.NoError(t, w.WriteSheet("only", table{header: []string{"x"}, rows: [][]interface{}{{1}}}))
	require.NoError(t, w.WriteSheet("only", table{header: []string{"x"}, rows: [][]interface{}{{2}}}))

	names, err := SheetNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, names)
	rows, err := ReadSheet(path, "only")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x"}, {"2"}}, rows)
}
