// Package payloads locates the injection payload collection.
package payloads

import (
	"os"

	"github.com/burst-go/burst/internal/ports"
)

// DirSource looks for payload files in a directory.
type DirSource struct {
	dir string
}

// NewDirSource builds a source over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Dir returns the searched directory.
func (s *DirSource) Dir() string {
	return s.dir
}

// Available reports whether dir holds at least one regular file.
func (s *DirSource) Available() bool {
	if s.dir == "" {
		return false
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			return true
		}
	}
	return false
}

var _ ports.PayloadSource = (*DirSource)(nil)
