package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/benbjohnson/clock"

	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// All asks Read for every entry.
const All = -1

// Store is an audit log.
type Store interface {
	Append(entry Entry) error
	Read(limit int) ([]Entry, error)
	Clear() error
}

// FileStore is a Store backed by a plaintext file shared by every process on
// the host. Mutations happen only under an exclusive advisory lock.
type FileStore struct {
	path   string
	clock  clock.Clock
	logger log.Logger
}

// NewFileStore creates a FileStore writing to path.
func NewFileStore(path string, logger log.Logger) *FileStore {
	return &FileStore{
		path:   path,
		clock:  clock.New(),
		logger: logger,
	}
}

// WithClock replaces the clock used to timestamp recorded outcomes.
func (s *FileStore) WithClock(c clock.Clock) *FileStore {
	s.clock = c
	return s
}

// Path returns the log file location.
func (s *FileStore) Path() string {
	return s.path
}

// Record appends the entry for outcome, stamped with the current time.
// Failures are returned as ErrHistoryWriteFailed.
func (s *FileStore) Record(outcome service.Outcome) error {
	entry := NewEntry(s.clock.Now(), outcome)
	if err := s.Append(entry); err != nil {
		return service.NewError(service.ErrHistoryWriteFailed, s.path, err)
	}
	return nil
}

// Append writes entry as a single line under an exclusive lock, creating the
// directory and file when needed.
func (s *FileStore) Append(entry Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	unlock, err := lock(f, true)
	if err != nil {
		return fmt.Errorf("failed to lock history file: %w", err)
	}
	defer func() { _ = unlock() }()

	if _, err := f.Write([]byte(entry.Line())); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}

	s.logger.Debug("Recorded history entry", "path", s.path, "command", entry.Command, "target", entry.Target)
	return nil
}

// Read returns the most recent limit entries, oldest first, or every entry
// when limit is negative. A missing file yields no entries. Lines that do not
// parse are skipped.
func (s *FileStore) Read(limit int) ([]Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	unlock, err := lock(f, false)
	if err != nil {
		return nil, fmt.Errorf("failed to lock history file: %w", err)
	}
	defer func() { _ = unlock() }()

	entries := []Entry{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if scanner.Text() == "" {
			continue
		}
		entry, err := ParseLine(scanner.Text())
		if err != nil {
			s.logger.Debug("Skipping malformed history line", "line", lineNo, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if limit >= 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// Clear truncates the log under an exclusive lock, creating it when absent.
func (s *FileStore) Clear() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	// O_TRUNC would empty the file before the lock is held.
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	unlock, err := lock(f, true)
	if err != nil {
		return fmt.Errorf("failed to lock history file: %w", err)
	}
	defer func() { _ = unlock() }()

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate history file: %w", err)
	}

	s.logger.Debug("Cleared history", "path", s.path)
	return nil
}
