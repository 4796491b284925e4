package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hiremate/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// CertWatcher watches certificate files for changes and triggers reloads.
// Events are debounced because certificate rotation usually rewrites the
// cert and key files in quick succession.
type CertWatcher struct {
	mu sync.Mutex

	certFile string
	keyFile  string

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan chan struct{}

	reloadCallback func()
	logger         *errors.Logger

	running bool
}

// NewCertWatcher creates a new certificate file watcher
func NewCertWatcher(certFile, keyFile string, debounceDelay time.Duration, reloadCallback func(), logger *errors.Logger) (*CertWatcher, error) {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &CertWatcher{
		certFile:       certFile,
		keyFile:        keyFile,
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		reloadCallback: reloadCallback,
		logger:         logger,
	}, nil
}

// Start begins watching certificate files for changes
func (cw *CertWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return fmt.Errorf("certificate watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cw.fsWatcher = watcher

	for _, file := range []string{cw.certFile, cw.keyFile} {
		if file == "" {
			continue
		}
		if err := cw.addFileToWatcher(file); err != nil {
			cw.logger.Warn("Failed to watch certificate file", "file", file, "error", err.Error())
		}
	}

	cw.running = true
	go cw.watchLoop()

	cw.logger.Info("Certificate file watcher started",
		"cert_file", cw.certFile,
		"key_file", cw.keyFile,
		"debounce_delay", cw.debounceDelay)
	return nil
}

// addFileToWatcher adds a file, or its directory if the file does not exist
// yet (rotation tools often replace files by rename)
func (cw *CertWatcher) addFileToWatcher(file string) error {
	if err := cw.fsWatcher.Add(file); err != nil {
		if os.IsNotExist(err) {
			dir := filepath.Dir(file)
			if err := cw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			return nil
		}
		return fmt.Errorf("failed to watch file %s: %w", file, err)
	}
	return nil
}

// watchLoop processes file system events until stopped
func (cw *CertWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-cw.fsWatcher.Events:
			if !ok {
				return
			}
			if cw.isRelevantEvent(event) {
				cw.scheduleReload()
			}
		case err, ok := <-cw.fsWatcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("Certificate watcher error", "error", err.Error())
		case <-cw.stopChan:
			return
		}
	}
}

// isRelevantEvent reports whether the event touches one of the watched files
func (cw *CertWatcher) isRelevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == filepath.Clean(cw.certFile) || name == filepath.Clean(cw.keyFile)
}

// scheduleReload debounces reloads so one rotation fires one callback
func (cw *CertWatcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.debounceTimer = time.AfterFunc(cw.debounceDelay, cw.reloadCallback)
}

// Stop stops the certificate file watcher
func (cw *CertWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.running {
		return nil
	}

	close(cw.stopChan)

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}

	if cw.fsWatcher != nil {
		if err := cw.fsWatcher.Close(); err != nil {
			cw.logger.LogError(err, "Failed to close file system watcher")
			return err
		}
	}

	cw.running = false
	cw.logger.Info("Certificate file watcher stopped")
	return nil
}
