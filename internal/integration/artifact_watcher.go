// Package integration handles interactions with the world outside the request path
package integration

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/abelzeko/water-quality/internal/metrics"
)

// ArtifactWatcher periodically re-hashes the artifact files and warns when they no
// longer match what was loaded. It never reloads: the running model stays as loaded.
type ArtifactWatcher struct {
	paths   []string
	loaded  map[string]string
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger

	mu      sync.Mutex
	drifted map[string]bool
	cron    *cron.Cron
}

// NewArtifactWatcher records the digest of every path as loaded
func NewArtifactWatcher(paths []string, m *metrics.Metrics, logger *zap.SugaredLogger) (*ArtifactWatcher, error) {
	loaded := make(map[string]string, len(paths))
	for _, path := range paths {
		digest, err := fileDigest(path)
		if err != nil {
			return nil, fmt.Errorf("failed to hash artifact: %w", err)
		}
		loaded[path] = digest
	}

	return &ArtifactWatcher{
		paths:   paths,
		loaded:  loaded,
		metrics: m,
		logger:  logger,
		drifted: make(map[string]bool),
	}, nil
}

// Check re-hashes every artifact and returns the paths that differ from the loaded version.
// Each changed path is logged and counted once until it changes back.
func (w *ArtifactWatcher) Check() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	for _, path := range w.paths {
		digest, err := fileDigest(path)
		if err != nil {
			w.logger.Warnf("Artifact %s cannot be read: %v", path, err)
			digest = ""
		}

		if digest == w.loaded[path] {
			if w.drifted[path] {
				w.logger.Infof("Artifact %s matches the loaded version again", path)
				delete(w.drifted, path)
			}
			continue
		}

		changed = append(changed, path)
		if !w.drifted[path] {
			w.drifted[path] = true
			w.metrics.ArtifactDriftEvents.Inc()
			w.logger.Warnf("Artifact %s changed on disk since it was loaded; restart to serve the new version", path)
		}
	}
	return changed
}

// Start schedules Check with a cron spec such as "@every 10m" or "0 * * * *"
func (w *ArtifactWatcher) Start(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { w.Check() }); err != nil {
		return fmt.Errorf("failed to set up artifact check: %w", err)
	}

	w.mu.Lock()
	w.cron = c
	w.mu.Unlock()

	c.Start()
	w.logger.Infof("Artifact check scheduled (%s) for %d files", schedule, len(w.paths))
	return nil
}

// Stop halts the schedule and waits for a running check to finish
func (w *ArtifactWatcher) Stop() {
	w.mu.Lock()
	c := w.cron
	w.cron = nil
	w.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
