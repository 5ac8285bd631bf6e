// Package fs exposes served folders, either a local directory or a git ref, through
// folder-relative paths.
package fs

import (
	"time"

	"github.com/CageChen/filehub/fileutil"
)

// FileInfo holds file metadata.
type FileInfo struct {
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// FileSystem is the read side of a served folder. Paths are slash separated and
// relative to the folder root; "" and "." name the root. Listed entries carry
// folder-relative paths too.
type FileSystem interface {
	ReadFile(path string) (string, error)
	ReadLines(path string) ([]string, error)
	Stat(path string) (FileInfo, error)
	ListFiles(path string) ([]fileutil.Entry, error)
	ListDirectories(path string) ([]fileutil.Entry, error)
}

// Mutator is the write side of a served folder. An empty path is reported as
// missing, never taken to mean the root. Results are folder-relative paths.
type Mutator interface {
	Create(path, content string) (string, error)
	Write(path, content string) (string, error)
	WriteLines(path string, lines []string) (string, error)
	Append(path, content string, newline bool) (string, error)
	AppendLines(path string, lines []string, newline bool) (string, error)
	Rename(path, newName string) (string, error)
	Move(source, target string) (string, error)
	Copy(source, target string) (string, error)
	Truncate(path string) (string, error)
	Delete(path string) error
}
