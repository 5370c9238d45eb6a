package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "pagefit",
	Short: "pagefit - normalize page image widths",
	Long:  "pagefit rescales a batch of page images to their most common width so they can be bound into a uniform document.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "mirror pipeline log lines to stderr")
}

func addQualityFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("quality", "q", 1.0, "extra height multiplier applied to every page")
	cmd.Flags().Int("jpeg-quality", 95, "JPEG quality of the re-encoded pages (1-100)")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
