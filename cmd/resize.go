package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pagefit/internal/config"
	"pagefit/internal/pages"
	"pagefit/internal/processor"
	"pagefit/internal/tui"
)

var resizeJSON bool

var resizeCmd = &cobra.Command{
	Use:   "resize [flags] <path>",
	Short: "Resize every page to the most common width",
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

		sources, err := pages.Collect(args[0], cfg.OutputDir)
		if err != nil {
			return err
		}
		payloads, err := pages.Encode(sources)
		if err != nil {
			return err
		}

		opts := processor.Options{
			Quality:     cfg.Quality,
			JPEGQuality: cfg.JPEGQuality,
			Logger:      logger,
		}

		var result processor.Result
		if cfg.Progress && !resizeJSON && !cfg.Verbose {
			result = runWithProgress(payloads, opts)
		} else {
			result = processor.Process(payloads, opts)
		}

		if resizeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
		}
		if !result.Success {
			return errors.New(result.Error)
		}

		written, err := pages.WriteAll(cfg.OutputDir, result.ResizedImages)
		if err != nil {
			return err
		}
		if resizeJSON {
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tui.RenderSummary(tui.StatisticsRows(result.Statistics, len(written))))

		outPath := cfg.OutputDir
		if abs, absErr := filepath.Abs(cfg.OutputDir); absErr == nil {
			outPath = abs
		}
		if !result.Statistics.Empty() && !result.Statistics.ProcessSuccess {
			fmt.Fprintf(out, "Resized pages written to: %s\n", outPath)
			fmt.Fprintln(out, tui.WarnStyle.Render("Some pages could not be processed; rerun with --verbose for details."))
			return nil
		}
		fmt.Fprintln(out, tui.SuccessStyle.Render("Resized pages written to: "+outPath))
		return nil
	},
}

func runWithProgress(payloads []string, opts processor.Options) processor.Result {
	updates := make(chan processor.ProgressUpdate, 64)
	opts.Updates = updates

	program := tea.NewProgram(tui.NewModel(updates), tea.WithOutput(os.Stderr))
	uiDone := make(chan struct{})
	go func() {
		_, _ = program.Run()
		close(uiDone)
		for range updates {
		}
	}()

	result := processor.Process(payloads, opts)
	close(updates)
	<-uiDone
	return result
}

func init() {
	addQualityFlags(resizeCmd)
	resizeCmd.Flags().StringP("output", "o", "resized", "destination folder for resized pages")
	resizeCmd.Flags().Bool("progress", true, "show a progress display")
	resizeCmd.Flags().BoolVar(&resizeJSON, "json", false, "print the structured result as JSON")

	rootCmd.AddCommand(resizeCmd)
}
