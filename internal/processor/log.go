package processor

import (
	"fmt"

	"go.uber.org/zap"
)

// Log collects human-readable progress lines for a single pipeline run.
// Lines are optionally mirrored to a zap logger as they are appended.
type Log struct {
	entries []string
	mirror  *zap.Logger
}

func NewLog(mirror *zap.Logger) *Log {
	if mirror == nil {
		mirror = zap.NewNop()
	}
	return &Log{mirror: mirror.With(zap.String("component", "pagefit"))}
}

func (l *Log) Logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.entries = append(l.entries, line)
	l.mirror.Info(line)
}

func (l *Log) Entries() []string {
	return append([]string(nil), l.entries...)
}
