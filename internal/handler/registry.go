package handler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/CageChen/filehub/internal/config"
	mfs "github.com/CageChen/filehub/internal/fs"
)

var (
	errReadOnly     = errors.New("folder is read-only")
	errCrossFolder  = errors.New("source and target must be in the same folder")
	errUnknownOrder = errors.New("order must be asc or desc")
)

// Registry resolves request paths of the form {alias}/{relativePath} to served
// folders. It guards the configuration shared by all handlers.
type Registry struct {
	mu  sync.RWMutex
	cfg *config.Config
}

// NewRegistry creates a registry over cfg
func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{cfg: cfg}
}

// target is a resolved request path
type target struct {
	folder config.Folder
	fs     mfs.FileSystem
	rel    string
}

// mutator returns the write side of the folder, if it has one
func (t target) mutator() (mfs.Mutator, error) {
	if !t.folder.Writable() {
		return nil, errReadOnly
	}
	m, ok := t.fs.(mfs.Mutator)
	if !ok {
		return nil, errReadOnly
	}
	return m, nil
}

// display prefixes a folder-relative path with the folder alias
func (t target) display(rel string) string {
	if rel == "" || rel == "." {
		return t.folder.Alias
	}
	return t.folder.Alias + "/" + rel
}

// fsForFolder returns the appropriate FileSystem for a folder config.
func fsForFolder(folder config.Folder) mfs.FileSystem {
	if folder.GitRef != "" {
		return mfs.NewGitFS(folder.Path, folder.GitRef)
	}
	return mfs.NewLocalFS(folder.Path)
}

// Resolve maps a request path to its folder and folder-relative path
func (r *Registry) Resolve(requestPath string) (target, error) {
	requestPath = strings.TrimPrefix(requestPath, "/")
	if requestPath == "" {
		return target{}, os.ErrNotExist
	}

	alias, rel, _ := strings.Cut(requestPath, "/")
	for _, segment := range strings.Split(rel, "/") {
		if segment == ".." {
			return target{}, os.ErrPermission
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.cfg.FolderByAlias(alias)
	if !ok {
		return target{}, os.ErrNotExist
	}
	folder := r.cfg.Folders[i]
	return target{folder: folder, fs: fsForFolder(folder), rel: rel}, nil
}

// excluded reports whether a folder-relative path is hidden by global or folder excludes
func (r *Registry) excluded(t target, rel string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.IsExcluded(rel) || r.cfg.IsFolderExcluded(filepath.FromSlash(rel), t.folder.Exclude)
}

func (r *Registry) isMarkdown(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.IsMarkdownFile(path)
}
