package renderer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/raytracer/pkg/core"
)

const progressInterval = 5 * time.Second

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// progressReporter logs render progress as percent complete, elapsed time,
// and an ETA extrapolated from the pixel completion rate
type progressReporter struct {
	logger    core.Logger
	total     int64
	completed *atomic.Int64
	start     time.Time
}

func newProgressReporter(logger core.Logger, total int64, completed *atomic.Int64) *progressReporter {
	return &progressReporter{
		logger:    logger,
		total:     total,
		completed: completed,
		start:     time.Now(),
	}
}

func (p *progressReporter) report() {
	done := p.completed.Load()
	if done == 0 {
		return
	}
	elapsed := time.Since(p.start)
	percent := 100.0 * float64(done) / float64(p.total)
	remaining := time.Duration(float64(elapsed) / float64(done) * float64(p.total-done))
	p.logger.Printf("Progress: %5.1f%% (%d/%d pixels), elapsed %s, ETA %s\n",
		percent, done, p.total, elapsed.Round(time.Second), remaining.Round(time.Second))
}

func (p *progressReporter) final() {
	p.logger.Printf("Render complete: %d pixels in %s\n",
		p.total, time.Since(p.start).Round(time.Millisecond))
}
