/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"scireview/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	workbookPath string
	verbose      bool
	cfg          *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scireview",
	Short: "Derive the figure tables of the EHR scientometric review",
	Long: `scireview reads the charting results of the review together with the
auxiliary reference tables and writes one derived table per figure into a
shared workbook. The statistics, scimagojr and plot commands work on the
same inputs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		var err error
		if cfg, err = config.Load(cfgFile, cmd.Flags().Changed("config")); err != nil {
			return err
		}
		if workbookPath != "" {
			cfg.Paths.Workbook = workbookPath
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "config file")
	rootCmd.PersistentFlags().StringVar(&workbookPath, "workbook", "", "output workbook, overrides the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}
