package processor

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

const (
	DefaultQuality     = 1.0
	DefaultJPEGQuality = 95

	analyzeLogEvery = 10
	resizeLogEvery  = 5
)

var (
	ErrNoAnalyzableImages = errors.New("no image in the batch could be analyzed")
	ErrEmptyHeight        = errors.New("computed page height is less than one pixel")
)

type Stage int

const (
	StageAnalyze Stage = iota
	StageResize
)

func (s Stage) String() string {
	switch s {
	case StageAnalyze:
		return "analyze"
	case StageResize:
		return "resize"
	default:
		return "unknown"
	}
}

type Options struct {
	// Quality scales every output height on top of width normalization.
	Quality     float64
	JPEGQuality int
	Logger      *zap.Logger
	Updates     chan<- ProgressUpdate
}

func DefaultOptions() Options {
	return Options{Quality: DefaultQuality, JPEGQuality: DefaultJPEGQuality}
}

type ProgressUpdate struct {
	Stage  Stage
	Done   int
	Total  int
	Failed int
}

type Analysis struct {
	TargetWidth       int            `json:"target_width"`
	WidthDistribution WidthHistogram `json:"width_distribution"`
	TotalPages        int            `json:"total_pages"`
	PagesToResize     int            `json:"pages_to_resize"`
}

type ResizedPage struct {
	// Index is the page's position in the input batch.
	Index        int    `json:"-"`
	Data         string `json:"data"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	OriginalSize [2]int `json:"original_size"`
	// Resized reports a width change only; a quality-driven height change on a
	// page that already had the target width leaves it false.
	Resized bool `json:"resized"`
}

type Statistics struct {
	TotalPages        int            `json:"total_pages"`
	TargetWidth       int            `json:"target_width"`
	PagesResized      int            `json:"pages_resized"`
	PagesUnchanged    int            `json:"pages_unchanged"`
	WidthDistribution WidthHistogram `json:"width_distribution"`
	ProcessSuccess    bool           `json:"process_success"`

	present bool
}

// Empty reports whether the statistics were built without data.
func (s Statistics) Empty() bool {
	return !s.present
}

func (s Statistics) MarshalJSON() ([]byte, error) {
	if s.Empty() {
		return []byte("{}"), nil
	}
	type plain Statistics
	return json.Marshal(plain(s))
}

type Result struct {
	Success       bool
	ResizedImages []ResizedPage
	Statistics    Statistics
	Logs          []string
	Error         string
}

func (r Result) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(struct {
			Success bool     `json:"success"`
			Error   string   `json:"error"`
			Logs    []string `json:"logs,omitempty"`
		}{r.Success, r.Error, r.Logs})
	}

	images := r.ResizedImages
	if images == nil {
		images = []ResizedPage{}
	}
	logs := r.Logs
	if logs == nil {
		logs = []string{}
	}
	return json.Marshal(struct {
		Success       bool          `json:"success"`
		ResizedImages []ResizedPage `json:"resized_images"`
		Statistics    Statistics    `json:"statistics"`
		Logs          []string      `json:"logs"`
	}{r.Success, images, r.Statistics, logs})
}
