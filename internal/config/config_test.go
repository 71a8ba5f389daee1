package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "scireview/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, true)
	assert.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	data := `
paths:
  charting: charting.csv
  encoding: windows-1252
thresholds:
  figure4_top: 10
  figure6_other: 2.5
scimago_years: ["2021", "2022"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "charting.csv", cfg.Paths.Charting)
	assert.Equal(t, "windows-1252", cfg.Paths.Encoding)
	assert.Equal(t, "data_figures.xlsx", cfg.Paths.Workbook)
	assert.Equal(t, 10, cfg.Thresholds.Figure4Top)
	assert.Equal(t, 2.5, cfg.Thresholds.Figure6Other)
	assert.Equal(t, 10, cfg.Thresholds.Figure3Other)
	assert.Equal(t, []string{"2021", "2022"}, cfg.ScimagoYears)
	assert.Len(t, cfg.Statistics.DiseaseSource, 3)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("thresholds: [1, 2"), 0644))
	_, err := Load(path, false)
	assert.Error(t, err)
}
