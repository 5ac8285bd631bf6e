package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/CageChen/filehub/fileutil"
)

// LocalFS serves a local directory. Every operation goes through fileutil.
type LocalFS struct {
	root string
}

var (
	_ FileSystem = (*LocalFS)(nil)
	_ Mutator    = (*LocalFS)(nil)
)

// NewLocalFS creates a LocalFS rooted at the given directory.
func NewLocalFS(root string) *LocalFS {
	return &LocalFS{root: filepath.Clean(root)}
}

// abs resolves a folder-relative path, refusing anything outside the root.
func (l *LocalFS) abs(path string) (string, error) {
	if path == "" || path == "." {
		return l.root, nil
	}
	full := filepath.Join(l.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(l.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", os.ErrPermission
	}
	return full, nil
}

// target resolves a path that is about to be changed. The root itself is off limits.
func (l *LocalFS) target(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	full, err := l.abs(path)
	if err != nil {
		return "", err
	}
	if full == l.root {
		return "", os.ErrPermission
	}
	return full, nil
}

func (l *LocalFS) rel(full string) string {
	rel, err := filepath.Rel(l.root, full)
	if err != nil {
		return full
	}
	return filepath.ToSlash(rel)
}

// ReadFile returns the content of the file at path.
func (l *LocalFS) ReadFile(path string) (string, error) {
	full, err := l.abs(path)
	if err != nil {
		return "", err
	}
	return fileutil.ReadFile(full)
}

// ReadLines returns the lines of the file at path.
func (l *LocalFS) ReadLines(path string) ([]string, error) {
	full, err := l.abs(path)
	if err != nil {
		return nil, err
	}
	return fileutil.ParseFile(full)
}

// Stat returns metadata for the file or directory at path.
func (l *LocalFS) Stat(path string) (FileInfo, error) {
	full, err := l.abs(path)
	if err != nil {
		return FileInfo{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		Name:    info.Name(),
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// ListFiles lists the regular files directly inside the directory at path.
func (l *LocalFS) ListFiles(path string) ([]fileutil.Entry, error) {
	return l.list(path, fileutil.ListFiles)
}

// ListDirectories lists everything else directly inside the directory at path.
func (l *LocalFS) ListDirectories(path string) ([]fileutil.Entry, error) {
	return l.list(path, fileutil.ListDirectories)
}

func (l *LocalFS) list(path string, lister func(string) ([]fileutil.Entry, error)) ([]fileutil.Entry, error) {
	full, err := l.abs(path)
	if err != nil {
		return nil, err
	}
	entries, err := lister(full)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Path = l.rel(entries[i].Path)
	}
	return entries, nil
}

// Create creates or truncates the file at path and writes content into it.
func (l *LocalFS) Create(path, content string) (string, error) {
	return l.apply(path, func(full string) (string, error) {
		return fileutil.CreateFile(full, content)
	})
}

// Write replaces the content of the file at path.
func (l *LocalFS) Write(path, content string) (string, error) {
	return l.apply(path, func(full string) (string, error) {
		return fileutil.WriteToFile(full, content)
	})
}

// WriteLines replaces the content of the file at path with lines.
func (l *LocalFS) WriteLines(path string, lines []string) (string, error) {
	return l.apply(path, func(full string) (string, error) {
		return fileutil.WriteLines(full, lines)
	})
}

// Append appends content to the file at path.
func (l *LocalFS) Append(path, content string, newline bool) (string, error) {
	return l.apply(path, func(full string) (string, error) {
		return fileutil.AppendToFile(full, content, newline)
	})
}

// AppendLines appends lines to the file at path.
func (l *LocalFS) AppendLines(path string, lines []string, newline bool) (string, error) {
	return l.apply(path, func(full string) (string, error) {
		return fileutil.AppendLines(full, lines, newline)
	})
}

// Rename gives the file at path a new name in the same directory.
func (l *LocalFS) Rename(path, newName string) (string, error) {
	if newName == "." || newName == ".." || strings.ContainsAny(newName, `/\`) {
		return "", os.ErrPermission
	}
	return l.apply(path, func(full string) (string, error) {
		return fileutil.RenameFile(full, newName)
	})
}

// Move moves source to target inside the folder.
func (l *LocalFS) Move(source, target string) (string, error) {
	return l.apply2(source, target, fileutil.MoveFile)
}

// Copy copies source to target inside the folder.
func (l *LocalFS) Copy(source, target string) (string, error) {
	return l.apply2(source, target, fileutil.CopyFile)
}

// Truncate empties the file at path.
func (l *LocalFS) Truncate(path string) (string, error) {
	return l.apply(path, fileutil.TruncateFile)
}

// Delete removes the file or empty directory at path.
func (l *LocalFS) Delete(path string) error {
	full, err := l.target(path)
	if err != nil {
		return err
	}
	return fileutil.DeleteFile(full)
}

func (l *LocalFS) apply(path string, op func(string) (string, error)) (string, error) {
	full, err := l.target(path)
	if err != nil {
		return "", err
	}
	result, err := op(full)
	if err != nil {
		return "", err
	}
	return l.rel(result), nil
}

func (l *LocalFS) apply2(source, target string, op func(string, string) (string, error)) (string, error) {
	src, err := l.target(source)
	if err != nil {
		return "", err
	}
	dst, err := l.target(target)
	if err != nil {
		return "", err
	}
	result, err := op(src, dst)
	if err != nil {
		return "", err
	}
	return l.rel(result), nil
}
