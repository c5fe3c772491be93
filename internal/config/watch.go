package config

import (
	"context"
	"os"
	"time"
)

// Watcher polls a config file and reloads it when it changes.
type Watcher struct {
	path     string
	interval time.Duration
	modTime  time.Time
	exists   bool
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// NewWatcher creates a watcher for path. The file's current state is the baseline.
func NewWatcher(path string, opts ...WatchOption) *Watcher {
	w := &Watcher{path: path, interval: 500 * time.Millisecond}
	for _, opt := range opts {
		opt(w)
	}
	w.modTime, w.exists = stat(path)
	return w
}

func stat(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Check stats the file once. When it was written, created or removed since
// the last check, the config is reloaded with Load and changed is true.
func (w *Watcher) Check() (cfg *Config, changed bool, err error) {
	modTime, exists := stat(w.path)
	if exists == w.exists && modTime.Equal(w.modTime) {
		return nil, false, nil
	}
	w.modTime, w.exists = modTime, exists

	cfg, err = Load(w.path)
	return cfg, true, err
}

// Run checks the file every interval until ctx is done, calling onChange
// after each reload. A reload that fails passes a nil config and the error.
func (w *Watcher) Run(ctx context.Context, onChange func(*Config, error)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if cfg, changed, err := w.Check(); changed {
				onChange(cfg, err)
			}
		}
	}
}

// Exists reports whether the file existed at the last check.
func (w *Watcher) Exists() bool {
	return w.exists
}
