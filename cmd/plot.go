/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"scireview/internal/logic/render"

	"github.com/spf13/cobra"
)

// plotCmd represents the plot command
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render figures 2 to 8 as PNG and SVG",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := load(cfg)
		if err != nil {
			return err
		}
		return render.New(cfg.Paths.FigureDir).All(r.set)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
}
