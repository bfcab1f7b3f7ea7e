package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ParseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogging installs the default slog logger. The returned closer flushes
// and closes the log file. A log file that cannot be opened is reported and
// logging continues on stdout.
func SetupLogging(cfg Logging) (io.Closer, error) {
	out, closer := openLogOutput(cfg)

	var h slog.Handler = slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: ParseLogLevel(cfg.Level),
	})
	if cfg.Dedup > 0 {
		h = NewDedupHandler(h, cfg.Dedup)
	}
	slog.SetDefault(slog.New(h))
	return closer, nil
}

func openLogOutput(cfg Logging) (io.Writer, io.Closer) {
	if cfg.File == "" {
		return os.Stdout, nopCloser{}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "log dir %s: %v, logging to stdout\n", cfg.File, err)
		return os.Stdout, nopCloser{}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file %s: %v, logging to stdout\n", cfg.File, err)
		return os.Stdout, nopCloser{}
	}

	var (
		w      io.Writer = f
		closer io.Closer = f
	)
	if cfg.Flush > 0 {
		bw := newFlushWriter(f, cfg.Flush)
		w, closer = bw, bw
	}
	if cfg.Stdout {
		w = io.MultiWriter(w, os.Stdout)
	}
	return w, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// flushWriter buffers file output and flushes it on a fixed period.
type flushWriter struct {
	mu   sync.Mutex
	f    *os.File
	buf  *bufio.Writer
	stop chan struct{}
	done chan struct{}
}

func newFlushWriter(f *os.File, period time.Duration) *flushWriter {
	w := &flushWriter{
		f:    f,
		buf:  bufio.NewWriterSize(f, 64*1024),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.loop(period)
	return w
}

func (w *flushWriter) loop(period time.Duration) {
	defer close(w.done)
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-t.C:
			w.mu.Lock()
			_ = w.buf.Flush()
			w.mu.Unlock()
		}
	}
}

func (w *flushWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *flushWriter) Close() error {
	close(w.stop)
	<-w.done
	w.mu.Lock()
	defer w.mu.Unlock()
	return errors.Join(w.buf.Flush(), w.f.Close())
}

type dedupKey struct {
	level slog.Level
	msg   string
}

type dedupState struct {
	mu   sync.Mutex
	last map[dedupKey]time.Time
}

// DedupHandler drops records whose (level, message) was already emitted
// within the window. Attributes are not compared.
type DedupHandler struct {
	next   slog.Handler
	window time.Duration
	state  *dedupState
	now    func() time.Time
}

// NewDedupHandler wraps next.
func NewDedupHandler(next slog.Handler, window time.Duration) *DedupHandler {
	return &DedupHandler{
		next:   next,
		window: window,
		state:  &dedupState{last: make(map[dedupKey]time.Time)},
		now:    time.Now,
	}
}

func (h *DedupHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *DedupHandler) Handle(ctx context.Context, r slog.Record) error {
	k := dedupKey{level: r.Level, msg: r.Message}
	now := h.now()

	h.state.mu.Lock()
	prev, seen := h.state.last[k]
	if seen && now.Sub(prev) < h.window {
		h.state.mu.Unlock()
		return nil
	}
	h.state.last[k] = now
	// старые ключи чистим, чтобы карта не росла бесконечно
	if len(h.state.last) > 4096 {
		for key, ts := range h.state.last {
			if now.Sub(ts) >= h.window {
				delete(h.state.last, key)
			}
		}
	}
	h.state.mu.Unlock()

	return h.next.Handle(ctx, r)
}

func (h *DedupHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &DedupHandler{next: h.next.WithAttrs(attrs), window: h.window, state: h.state, now: h.now}
}

func (h *DedupHandler) WithGroup(name string) slog.Handler {
	return &DedupHandler{next: h.next.WithGroup(name), window: h.window, state: h.state, now: h.now}
}
