package processor

import (
	"fmt"
)

// Processor runs one width-normalization pass. Create a new one per batch.
type Processor struct {
	opts Options
	log  *Log
}

func New(opts Options) *Processor {
	if opts.Quality == 0 {
		opts.Quality = DefaultQuality
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = DefaultJPEGQuality
	}
	return &Processor{opts: opts, log: NewLog(opts.Logger)}
}

func (p *Processor) Logs() []string {
	return p.log.Entries()
}

// Process analyzes the batch, resizes every page to the majority width and
// reports statistics. Page-level failures are logged and never fail the run.
func Process(images []string, opts Options) Result {
	p := New(opts)

	analysis, err := p.AnalyzeWidths(images)
	if err != nil {
		return Result{
			Success: false,
			Error:   fmt.Sprintf("could not analyze page widths: %v", err),
			Logs:    p.Logs(),
		}
	}

	pages := p.ResizeUniform(images, analysis.TargetWidth)
	stats := BuildStatistics(&analysis, pages)

	return Result{
		Success:       true,
		ResizedImages: pages,
		Statistics:    stats,
		Logs:          p.Logs(),
	}
}

func (p *Processor) report(stage Stage, done, total, failed int) {
	if p.opts.Updates == nil {
		return
	}
	p.opts.Updates <- ProgressUpdate{Stage: stage, Done: done, Total: total, Failed: failed}
}
