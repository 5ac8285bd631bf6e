package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Entry is one child of a listed directory.
type Entry struct {
	Name string
	Path string
	// IsFile is set for regular files, symlinks followed.
	IsFile  bool
	Size    int64
	ModTime time.Time
}

// ListFiles returns the regular files directly inside the directory at path.
func ListFiles(path string) ([]Entry, error) {
	return list(path, true)
}

// ListDirectories returns the entries directly inside the directory at path
// that are not regular files.
func ListDirectories(path string) ([]Entry, error) {
	return list(path, false)
}

func list(dir string, files bool) ([]Entry, error) {
	if dir == "" {
		return nil, ErrPathMissing
	}
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		e := entryOf(dir, child)
		if e.IsFile == files {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func entryOf(dir string, child fs.DirEntry) Entry {
	e := Entry{
		Name: child.Name(),
		Path: filepath.Join(dir, child.Name()),
	}
	info, err := os.Stat(e.Path)
	if err != nil {
		// dangling symlink or entry removed since the listing
		if info, err = child.Info(); err != nil {
			return e
		}
	}
	e.IsFile = info.Mode().IsRegular()
	e.Size = info.Size()
	e.ModTime = info.ModTime()
	return e
}

// FilterByPrefix returns the entries whose name starts with prefix. Absent
// entries or an absent prefix give an empty result; the empty prefix is absent and
// does not match every name.
func FilterByPrefix(entries []Entry, prefix string) []Entry {
	return filter(entries, prefix, strings.HasPrefix)
}

// FilterBySuffix returns the entries whose name ends with suffix. Absent
// entries or an absent suffix give an empty result; the empty suffix is absent and
// does not match every name.
func FilterBySuffix(entries []Entry, suffix string) []Entry {
	return filter(entries, suffix, strings.HasSuffix)
}

func filter(entries []Entry, affix string, match func(s, affix string) bool) []Entry {
	result := []Entry{}
	if affix == "" {
		return result
	}
	for _, e := range entries {
		if match(e.Name, affix) {
			result = append(result, e)
		}
	}
	return result
}

// OrderByLastModified sorts entries in place by modification time, oldest
// first unless descending is set. Entries with equal times keep their order.
func OrderByLastModified(entries []Entry, descending bool) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if descending {
			return b.ModTime.Compare(a.ModTime)
		}
		return a.ModTime.Compare(b.ModTime)
	})
}
