package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// RenameFile moves the file at path to a sibling named newName, replacing any
// existing entry there. It returns the new path.
func RenameFile(path, newName string) (string, error) {
	if path == "" {
		return "", ErrPathMissing
	}
	target := filepath.Join(filepath.Dir(path), newName)
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}

// MoveFile moves source to target, replacing an existing target. An empty
// directory at target is replaced too; a non-empty one is an error. Regular
// files are copied and removed when the move crosses devices. It returns target.
func MoveFile(source, target string) (string, error) {
	if source == "" {
		return "", ErrSourcePathMissing
	}
	if target == "" {
		return "", ErrTargetPathMissing
	}
	if info, err := os.Lstat(source); err == nil && !info.IsDir() {
		if err := removeEmptyDir(target); err != nil {
			return "", err
		}
	}
	err := os.Rename(source, target)
	if err == nil {
		return target, nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return "", err
	}
	info, serr := os.Stat(source)
	if serr != nil || !info.Mode().IsRegular() {
		return "", err
	}
	if err := copyContents(source, target, info.Mode().Perm()); err != nil {
		return "", err
	}
	if err := os.Remove(source); err != nil {
		return "", err
	}
	return target, nil
}

// CopyFile copies the content of source to target, replacing an existing
// target, including an empty directory. Copying a directory creates an empty directory at target. It returns
// target.
func CopyFile(source, target string) (string, error) {
	if source == "" {
		return "", ErrSourcePathMissing
	}
	if target == "" {
		return "", ErrTargetPathMissing
	}
	info, err := os.Stat(source)
	if err != nil {
		return "", err
	}
	if existing, err := os.Stat(target); err == nil && os.SameFile(info, existing) {
		return target, nil
	}
	if info.IsDir() {
		err = replaceWithDir(target, info.Mode().Perm())
	} else if err = removeEmptyDir(target); err == nil {
		err = copyContents(source, target, info.Mode().Perm())
	}
	if err != nil {
		return "", err
	}
	return target, nil
}

// TruncateFile empties the existing file at path. It returns path.
func TruncateFile(path string) (string, error) {
	if path == "" {
		return "", ErrPathMissing
	}
	if err := os.Truncate(path, 0); err != nil {
		return "", err
	}
	return path, nil
}

// DeleteFile removes the file or empty directory at path.
func DeleteFile(path string) error {
	if path == "" {
		return ErrPathMissing
	}
	return os.Remove(path)
}

func copyContents(source, target string, perm os.FileMode) (err error) {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

func replaceWithDir(target string, perm os.FileMode) error {
	if _, err := os.Lstat(target); err == nil {
		if err := os.Remove(target); err != nil {
			return err
		}
	}
	return os.Mkdir(target, perm)
}

// removeEmptyDir clears a directory standing at target so a file can take its
// place. Only an empty directory can be removed; anything else is left alone.
func removeEmptyDir(target string) error {
	info, err := os.Lstat(target)
	if err != nil || !info.IsDir() {
		return nil
	}
	return os.Remove(target)
}
