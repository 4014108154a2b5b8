package token

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/apishell/pkg/log"
)

// DefaultFileName is the token file name inside the apishell home directory.
const DefaultFileName = "token.toml"

// fileRecord is the on-disk layout of a token file.
type fileRecord struct {
	Token     string    `toml:"token"`
	ExpiresAt time.Time `toml:"expires_at"`
}

// FileStore is a Store backed by a TOML file.
// Reads are served from memory; Watch keeps memory in sync with writes made
// by other processes (for example a second apishell running login).
type FileStore struct {
	path   string
	cell   *Cell
	logger log.Logger

	writeMu sync.Mutex

	watchMu sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// ErrAlreadyWatching is returned by Watch while a previous Watch is running.
var ErrAlreadyWatching = errors.New("token file already watched")

// NewFileStore creates a store for the file at path. Call Load to read it.
func NewFileStore(path string, logger log.Logger) *FileStore {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &FileStore{
		path:   path,
		cell:   NewCell(""),
		logger: logger,
	}
}

// DefaultPath returns ~/.apishell/token.toml, or "" if the home directory is unknown.
func DefaultPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".apishell", DefaultFileName)
	}
	return ""
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Value returns the current token, or "" if unset or expired.
func (s *FileStore) Value() string { return s.cell.Value() }

// ExpiresAt returns the expiry of the stored token (zero if none).
func (s *FileStore) ExpiresAt() time.Time { return s.cell.ExpiresAt() }

// Load reads the file into memory. A missing file clears the token.
func (s *FileStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.cell.Clear()
		}
		return fmt.Errorf("read token file: %w", err)
	}

	var rec fileRecord
	if err := toml.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("parse token file: %w", err)
	}
	return s.cell.Set(rec.Token, rec.ExpiresAt)
}

// Set persists the token atomically and then updates memory.
func (s *FileStore) Set(value string, expiresAt time.Time) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	data, err := toml.Marshal(fileRecord{Token: value, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename token file: %w", err)
	}

	return s.cell.Set(value, expiresAt)
}

// Clear deletes the file and the in-memory token.
func (s *FileStore) Clear() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return s.cell.Clear()
}

// Watch starts reloading the token whenever the file changes on disk.
// The watcher is registered before Watch returns; it stops when ctx is
// cancelled or Close is called. A second Watch fails with ErrAlreadyWatching
// until Close has been called.
func (s *FileStore) Watch(ctx context.Context) error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// The directory is watched rather than the file so atomic renames are seen.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.watchLoop(watchCtx, watcher)
	return nil
}

// Close stops a running Watch and waits for it to exit.
func (s *FileStore) Close() error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
	return nil
}

func (s *FileStore) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer s.wg.Done()
	defer watcher.Close()

	name := filepath.Base(s.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := s.Load(); err != nil {
				s.logger.Warn("token file reload failed", log.String("path", s.path), log.Err(err))
				continue
			}
			s.logger.Debug("token file reloaded", log.String("path", s.path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("token watcher error", log.Err(err))
		}
	}
}
