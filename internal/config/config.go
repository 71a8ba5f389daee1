package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultFile = "scireview.yaml"

// Paths of every input and output file of a run, relative to the working
// directory unless absolute.
type Paths struct {
	Charting         string `yaml:"charting"`
	Encoding         string `yaml:"encoding"`
	CountryInfo      string `yaml:"country_info"`
	CitableDocuments string `yaml:"citable_documents"`
	ICDChapters      string `yaml:"icd_chapters"`
	DataSources      string `yaml:"data_sources"`
	PublishedPapers  string `yaml:"published_papers"`
	ScimagoDir       string `yaml:"scimago_dir"`
	Workbook         string `yaml:"workbook"`
	FigureDir        string `yaml:"figure_dir"`
}

// Thresholds used by the figure transforms. The comparator each one feeds
// is fixed per figure.
type Thresholds struct {
	Figure3Other      int     `yaml:"figure3_other"`
	Figure4Top        int     `yaml:"figure4_top"`
	Figure5aOther     int     `yaml:"figure5a_other"`
	Figure5bPairs     int     `yaml:"figure5b_pairs"`
	Figure6Other      float64 `yaml:"figure6_other"`
	Figure7Min        int     `yaml:"figure7_min"`
	Figure8SourceMin  int     `yaml:"figure8_source_min"`
	Figure8ChapterMin int     `yaml:"figure8_chapter_min"`
}

type Statistics struct {
	Region        string         `yaml:"region"`
	DiseaseSource []DiseaseQuery `yaml:"disease_source"`
}

// DiseaseQuery asks how many articles on an ICD-10 chapter use a source.
type DiseaseQuery struct {
	Chapter string `yaml:"chapter"`
	Source  string `yaml:"source"`
}

type Config struct {
	Paths        Paths      `yaml:"paths"`
	Thresholds   Thresholds `yaml:"thresholds"`
	Statistics   Statistics `yaml:"statistics"`
	ScimagoYears []string   `yaml:"scimago_years"`
}

func Default() *Config {
	return &Config{
		Paths: Paths{
			Charting:         "charting_results/charting_results_20240620.csv",
			Encoding:         "utf-8",
			CountryInfo:      "auxiliary_data/Country_information.xlsx",
			CitableDocuments: "auxiliary_data/Citable_documents_per_country.xlsx",
			ICDChapters:      "auxiliary_data/ICD-10_chapter_mapping.xlsx",
			DataSources:      "auxiliary_data/Data_source_information.xlsx",
			PublishedPapers:  "auxiliary_data/PubMed_number_paper_published.xlsx",
			ScimagoDir:       "auxiliary_data/scimagojr",
			Workbook:         "data_figures.xlsx",
			FigureDir:        "figure_output",
		},
		Thresholds: Thresholds{
			Figure3Other:      10,
			Figure4Top:        20,
			Figure5aOther:     10,
			Figure5bPairs:     2,
			Figure6Other:      5,
			Figure7Min:        5,
			Figure8SourceMin:  5,
			Figure8ChapterMin: 15,
		},
		Statistics: Statistics{
			Region: "European Union",
			DiseaseSource: []DiseaseQuery{
				{Chapter: "2", Source: "Flatiron Health"},
				{Chapter: "4", Source: "Optum"},
				{Chapter: "5", Source: "South London and Maudsley NHS Foundation Trust"},
			},
		},
		ScimagoYears: []string{"2018", "2019", "2020", "2021", "2022"},
	}
}

// Load reads path over the defaults. A missing file is only an error when
// the caller named it explicitly.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

