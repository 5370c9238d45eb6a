package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pagefit/internal/config"
	"pagefit/internal/processor"
)

// processRequest is the JSON document accepted by the process command.
type processRequest struct {
	Images  []string `json:"images"`
	Quality *float64 `json:"quality,omitempty"`
}

var processCmd = &cobra.Command{
	Use:   "process [file|-]",
	Short: "Run the pipeline on a JSON request and print the JSON result",
	Long: `process reads {"images": ["data:image/png;base64,..."], "quality": 1.0}
from a file or stdin and prints {"success", "resized_images", "statistics", "logs"}.`,
	Args: cobra.MaximumNArgs(1),
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

		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		result := runProcess(in, cfg, logger)

		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(result)
	},
}

func runProcess(in io.Reader, cfg config.Config, logger *zap.Logger) processor.Result {
	var req processRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return processor.Result{Error: fmt.Sprintf("invalid request: %v", err)}
	}

	if req.Quality != nil {
		cfg.Quality = *req.Quality
		if err := cfg.Validate(); err != nil {
			return processor.Result{Error: fmt.Sprintf("invalid request: %v", err)}
		}
	}

	return processor.Process(req.Images, processor.Options{
		Quality:     cfg.Quality,
		JPEGQuality: cfg.JPEGQuality,
		Logger:      logger,
	})
}

func init() {
	addQualityFlags(processCmd)

	rootCmd.AddCommand(processCmd)
}
