/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"scireview/internal/config"
	"scireview/internal/loadfile"
	"scireview/internal/logic/figures"
	"scireview/internal/mode"
	"scireview/internal/workbook"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// preprocessCmd represents the preprocess command
var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Write the derived figure tables to the workbook",
	Long: `Loads the charting results and the reference tables, computes the
tables behind figures 2 to 8 and writes each of them to its own sheet of the
output workbook. Sheets already in the workbook are replaced, others kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return process_preprocess(cfg)
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
}

type run struct {
	articles []mode.Article
	refs     *loadfile.References
	set      *figures.Set
}

func load(cfg *config.Config) (*run, error) {
	articles, err := loadfile.LoadCharting(cfg.Paths.Charting, cfg.Paths.Encoding)
	if err != nil {
		return nil, err
	}
	refs, err := loadfile.LoadReferences(cfg.Paths)
	if err != nil {
		return nil, err
	}
	set := figures.Build(figures.Inputs{Articles: articles, Refs: refs, Thresholds: cfg.Thresholds})
	return &run{articles: articles, refs: refs, set: set}, nil
}

func process_preprocess(cfg *config.Config) error {
	r, err := load(cfg)
	if err != nil {
		return err
	}
	w := workbook.NewWriter(cfg.Paths.Workbook)
	for _, out := range r.set.Outputs() {
		if err := w.WriteSheet(out.Sheet, out.Table); err != nil {
			return err
		}
	}
	log.Info("over")
	return nil
}
