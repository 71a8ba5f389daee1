/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"scireview/internal/loadfile"
	"scireview/internal/workbook"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// scimagojrCmd represents the scimagojr command
var scimagojrCmd = &cobra.Command{
	Use:   "scimagojr",
	Short: "Build the citable documents table from SCImago country ranks",
	Long: `Reads one SCImago country rank export per configured year, joins them
on the country name and writes the yearly and total citable documents of
every country to the citable documents reference workbook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := loadfile.AggregateScimago(cfg.Paths.ScimagoDir, cfg.ScimagoYears)
		if err != nil {
			return err
		}
		t := loadfile.CitableSheet{Years: cfg.ScimagoYears, Items: items}
		if err := workbook.NewWriter(cfg.Paths.CitableDocuments).WriteSheet(loadfile.SheetCitable, t); err != nil {
			return err
		}
		log.Infof("%d countries written to %s", len(items), cfg.Paths.CitableDocuments)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scimagojrCmd)
}
