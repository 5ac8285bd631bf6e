package fs

import (
	"bytes"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"os/exec"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/CageChen/filehub/fileutil"
)

// GitFS serves a git ref (branch, tag, or commit) read-only. It is also an
// io/fs.FS, so files pinned at the ref can be read as resources.
type GitFS struct {
	repoPath string
	ref      string
}

var (
	_ FileSystem = (*GitFS)(nil)
	_ iofs.FS    = (*GitFS)(nil)
)

// NewGitFS creates a GitFS that reads files from the given ref in the repository at repoPath.
func NewGitFS(repoPath, ref string) *GitFS {
	return &GitFS{repoPath: repoPath, ref: ref}
}

func (g *GitFS) git(args ...string) ([]byte, error) {
	cmd := exec.Command("git", append([]string{"-C", g.repoPath}, args...)...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}

// treeEntry is one line of `git ls-tree -l`.
type treeEntry struct {
	name   string
	isTree bool
	size   int64
}

// lsTree runs ls-tree -l and parses "<mode> <type> <hash> <size>\t<name>" lines.
func (g *GitFS) lsTree(objPath string) ([]treeEntry, error) {
	args := []string{"ls-tree", "-l", g.ref}
	if objPath != "" {
		args = append(args, objPath)
	}
	out, err := g.git(args...)
	if err != nil {
		return nil, os.ErrNotExist
	}

	var entries []treeEntry
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		tabIdx := strings.IndexByte(line, '\t')
		if tabIdx < 0 {
			continue
		}
		fields := strings.Fields(line[:tabIdx])
		if len(fields) < 4 {
			continue
		}
		size, _ := strconv.ParseInt(fields[3], 10, 64)
		entries = append(entries, treeEntry{
			name:   path.Base(line[tabIdx+1:]),
			isTree: fields[1] == "tree",
			size:   size,
		})
	}
	return entries, nil
}

func cleanObjPath(p string) string {
	p = strings.Trim(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// ReadFile reads the content of the file at path from the git ref.
func (g *GitFS) ReadFile(p string) (string, error) {
	data, err := g.show(cleanObjPath(p))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadLines reads the lines of the file at path from the git ref.
func (g *GitFS) ReadLines(p string) ([]string, error) {
	return fileutil.ParseResource(g, cleanObjPath(p))
}

func (g *GitFS) show(objPath string) ([]byte, error) {
	if objPath == "" {
		return nil, fmt.Errorf("cannot read directory as file")
	}
	info, err := g.Stat(objPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir {
		return nil, fmt.Errorf("cannot read directory as file")
	}
	return g.git("show", g.ref+":"+objPath)
}

// Stat returns metadata for the file or directory at the given path in the git ref.
func (g *GitFS) Stat(p string) (FileInfo, error) {
	objPath := cleanObjPath(p)

	if objPath == "" {
		if _, err := g.git("rev-parse", "--verify", g.ref); err != nil {
			return FileInfo{}, os.ErrNotExist
		}
		return FileInfo{Name: g.ref, IsDir: true, ModTime: g.modTime("")}, nil
	}

	entries, err := g.lsTree(objPath)
	if err != nil || len(entries) == 0 {
		return FileInfo{}, os.ErrNotExist
	}
	e := entries[0]
	return FileInfo{
		Name:    e.name,
		IsDir:   e.isTree,
		Size:    e.size,
		ModTime: g.modTime(objPath),
	}, nil
}

// ListFiles lists the blobs directly inside the tree at path.
func (g *GitFS) ListFiles(p string) ([]fileutil.Entry, error) {
	return g.list(p, true)
}

// ListDirectories lists the subtrees directly inside the tree at path.
func (g *GitFS) ListDirectories(p string) ([]fileutil.Entry, error) {
	return g.list(p, false)
}

func (g *GitFS) list(p string, files bool) ([]fileutil.Entry, error) {
	objPath := cleanObjPath(p)
	info, err := g.Stat(objPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir {
		return nil, fmt.Errorf("%s is not a directory", objPath)
	}

	lsPath := ""
	if objPath != "" {
		lsPath = objPath + "/"
	}
	children, err := g.lsTree(lsPath)
	if err != nil {
		return nil, err
	}

	entries := []fileutil.Entry{}
	for _, c := range children {
		if c.isTree == files {
			continue
		}
		childPath := path.Join(objPath, c.name)
		entries = append(entries, fileutil.Entry{
			Name:    c.name,
			Path:    childPath,
			IsFile:  !c.isTree,
			Size:    c.size,
			ModTime: g.modTime(childPath),
		})
	}
	return entries, nil
}

// Open implements io/fs.FS for the blobs of the ref.
func (g *GitFS) Open(name string) (iofs.File, error) {
	if !iofs.ValidPath(name) {
		return nil, &iofs.PathError{Op: "open", Path: name, Err: iofs.ErrInvalid}
	}
	info, err := g.Stat(name)
	if err != nil {
		return nil, &iofs.PathError{Op: "open", Path: name, Err: iofs.ErrNotExist}
	}
	if info.IsDir {
		return nil, &iofs.PathError{Op: "open", Path: name, Err: errors.New("is a directory")}
	}
	data, err := g.git("show", g.ref+":"+name)
	if err != nil {
		return nil, &iofs.PathError{Op: "open", Path: name, Err: err}
	}
	info.Size = int64(len(data))
	return &gitFile{Reader: bytes.NewReader(data), info: info}, nil
}

type gitFile struct {
	*bytes.Reader
	info FileInfo
}

func (f *gitFile) Stat() (iofs.FileInfo, error) { return gitFileInfo{info: f.info}, nil }
func (f *gitFile) Close() error                 { return nil }

type gitFileInfo struct{ info FileInfo }

func (i gitFileInfo) Name() string        { return i.info.Name }
func (i gitFileInfo) Size() int64         { return i.info.Size }
func (i gitFileInfo) Mode() iofs.FileMode { return 0o444 }
func (i gitFileInfo) ModTime() time.Time  { return i.info.ModTime }
func (i gitFileInfo) IsDir() bool         { return false }
func (i gitFileInfo) Sys() any            { return nil }

func (g *GitFS) modTime(objPath string) time.Time {
	args := []string{"log", "-1", "--format=%ct", g.ref}
	if objPath != "" {
		args = append(args, "--", objPath)
	}
	out, err := g.git(args...)
	if err != nil {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
