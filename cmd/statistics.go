/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"scireview/internal/logic/statistics"

	"github.com/spf13/cobra"
)

// statisticsCmd represents the statistics command
var statisticsCmd = &cobra.Command{
	Use:   "statistics",
	Short: "Print the descriptive statistics reported in the review",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := load(cfg)
		if err != nil {
			return err
		}
		statistics.NewReport(os.Stdout).Run(r.articles, r.refs, r.set, cfg.Statistics)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statisticsCmd)
}
