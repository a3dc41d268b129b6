package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Snapshotter is a store that can persist itself to a file
type Snapshotter interface {
	Save(path string) error
}

// SnapshotWriter periodically writes a store snapshot to disk
// - Writes every interval while running
// - Writes once more on Stop so a clean shutdown loses nothing
type SnapshotWriter struct {
	store    Snapshotter
	path     string
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewSnapshotWriter creates a new snapshot writer job
func NewSnapshotWriter(store Snapshotter, path string, interval time.Duration, logger *slog.Logger) *SnapshotWriter {
	if interval == 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotWriter{
		store:    store,
		path:     path,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the snapshot writer job
func (w *SnapshotWriter) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run()
	w.logger.Info("snapshot writer started", "path", w.path, "interval", w.interval)
}

// Stop stops the job and writes a final snapshot
func (w *SnapshotWriter) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	w.wg.Wait()
	w.write()
	w.logger.Info("snapshot writer stopped", "path", w.path)
}

// run is the main loop
func (w *SnapshotWriter) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.write()
		case <-w.stopCh:
			return
		}
	}
}

func (w *SnapshotWriter) write() {
	start := time.Now()
	if err := w.store.Save(w.path); err != nil {
		w.logger.Error("snapshot write failed", "path", w.path, "error", err)
		return
	}
	w.logger.Debug("snapshot written", "path", w.path, "duration", time.Since(start))
}

// RunOnce writes a snapshot immediately (for testing or manual trigger)
func (w *SnapshotWriter) RunOnce(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.store.Save(w.path)
}

// IsRunning returns whether the writer is running
func (w *SnapshotWriter) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
