package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/ports"
)

// FileStore keeps console history in a plain text file, one command per line.
type FileStore struct {
	path    string
	maxSize int
	mu      sync.Mutex
	lines   []string
	// loadErr keeps Save from replacing a file Load could not read.
	loadErr error
}

// NewFileStore creates a store backed by path. maxSize bounds the lines kept
// on Save; 0 keeps everything.
func NewFileStore(path string, maxSize int) *FileStore {
	return &FileStore{path: path, maxSize: maxSize}
}

// Load reads the history file. A missing file yields an empty history.
func (f *FileStore) Load() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.lines, f.loadErr = nil, nil
			return nil, nil
		}
		f.loadErr = err
		return nil, err
	}
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		f.loadErr = err
		return nil, err
	}
	f.lines, f.loadErr = lines, nil
	return append([]string(nil), lines...), nil
}

// Append records one submitted line. Blank lines are not recorded.
func (f *FileStore) Append(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}
	f.mu.Lock()
	f.lines = append(f.lines, line)
	f.mu.Unlock()
}

// Lines returns a copy of the in-memory history.
func (f *FileStore) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

// Save rewrites the history file with the retained lines.
func (f *FileStore) Save() error {
	f.mu.Lock()
	if f.loadErr != nil {
		err := f.loadErr
		f.mu.Unlock()
		return fmt.Errorf("history %s was not loaded, keeping it: %w", f.path, err)
	}
	lines := f.lines
	if f.maxSize > 0 && len(lines) > f.maxSize {
		lines = lines[len(lines)-f.maxSize:]
	}
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), domain.SecureFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Clear forgets every line and removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines, f.loadErr = nil, nil
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ ports.HistoryRepository = (*FileStore)(nil)
