package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Rendered chart.svg (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks writes pipeline and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnNormalizeStart(_ context.Context, layers int) {
	h.logger.Debug("normalize start", "layers", layers)
}

func (h logHooks) OnNormalizeComplete(_ context.Context, rings, items int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("normalize failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("normalize done", "rings", rings, "items", items, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, vizType string, formats []string) {
	h.logger.Debug("render start", "viz", vizType, "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, vizType string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "viz", vizType, "err", err, "duration", d)
		return
	}
	h.logger.Debug("render done", "viz", vizType, "formats", formats, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
