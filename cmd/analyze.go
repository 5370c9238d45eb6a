package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pagefit/internal/config"
	"pagefit/internal/pages"
	"pagefit/internal/processor"
	"pagefit/internal/tui"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Report page widths without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags(), configPath)
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg.Verbose)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		sources, err := pages.Collect(args[0], "")
		if err != nil {
			return err
		}
		payloads, err := pages.Encode(sources)
		if err != nil {
			return err
		}

		p := processor.New(processor.Options{Quality: cfg.Quality, Logger: logger})
		analysis, err := p.AnalyzeWidths(payloads)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if analyzeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(analysis)
		}

		fmt.Fprintln(out, tui.RenderSummary([]tui.SummaryRow{
			{Label: "Pages found", Value: fmt.Sprintf("%d", len(sources))},
			{Label: "Pages analyzed", Value: fmt.Sprintf("%d", analysis.TotalPages)},
			{Label: "Target width", Value: fmt.Sprintf("%dpx", analysis.TargetWidth)},
			{Label: "Pages to resize", Value: fmt.Sprintf("%d", analysis.PagesToResize)},
		}))
		fmt.Fprintln(out, tui.HeadingStyle.Render("Width distribution:"))
		fmt.Fprintln(out, tui.RenderSummary(tui.DistributionRows(analysis.WidthDistribution)))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the analysis as JSON")

	rootCmd.AddCommand(analyzeCmd)
}
