// FILE: src/internal/sink/file.go
package sink

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// FileSink is an append-only text destination with size-based rollover.
// With maxBytes > 0, a write that would push the file past the limit
// first rotates: existing backups shift up (<path>.1 → <path>.2, ...),
// the live file becomes <path>.1, and backups past backupCount are
// dropped. With backupCount == 0 the live file is truncated instead.
type FileSink struct {
	path        string
	maxBytes    int64
	backupCount int64

	mu   sync.Mutex
	file *os.File
	size int64
}

// NewFileSink opens (or creates) the file at path for appending.
func NewFileSink(path string, maxBytes, backupCount int64) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open sink file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat sink file: %w", err)
	}

	return &FileSink{
		path:        path,
		maxBytes:    maxBytes,
		backupCount: backupCount,
		file:        f,
		size:        info.Size(),
	}, nil
}

// Path returns the live file path.
func (s *FileSink) Path() string {
	return s.path
}

// Write appends p, rolling over first when the write would exceed the
// size limit. Implements io.Writer.
func (s *FileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxBytes > 0 && s.size > 0 && s.size+int64(len(p)) > s.maxBytes {
		if err := s.rollover(); err != nil {
			return 0, fmt.Errorf("rollover: %w", err)
		}
	}

	n, err := s.file.Write(p)
	s.size += int64(n)
	if err != nil {
		return n, fmt.Errorf("append to %s: %w", s.path, err)
	}
	return n, nil
}

// Close flushes and closes the live file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *FileSink) rollover() error {
	if err := s.file.Close(); err != nil {
		return err
	}

	if s.backupCount > 0 {
		// Shift the backup chain from the oldest down
		oldest := s.backup(s.backupCount)
		if _, err := os.Stat(oldest); err == nil {
			if err := os.Remove(oldest); err != nil {
				return err
			}
		}
		for i := s.backupCount - 1; i >= 1; i-- {
			src := s.backup(i)
			if _, err := os.Stat(src); err != nil {
				continue
			}
			if err := os.Rename(src, s.backup(i+1)); err != nil {
				return err
			}
		}
		if err := os.Rename(s.path, s.backup(1)); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	s.file = f
	s.size = 0
	return nil
}

func (s *FileSink) backup(n int64) string {
	return s.path + "." + strconv.FormatInt(n, 10)
}
