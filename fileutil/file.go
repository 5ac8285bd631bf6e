package fileutil

import (
	"os"
	"strings"
)

const filePerm = 0o644

// Exists reports whether path names an existing file or directory.
// An absent path does not exist.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile returns the whole content of the file at path.
func ReadFile(path string) (string, error) {
	if path == "" {
		return "", ErrPathMissing
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseFile returns the lines of the file at path. Lines end at "\n", "\r\n"
// or "\r"; the terminators are not part of the returned lines.
func ParseFile(path string) ([]string, error) {
	if path == "" {
		return nil, ErrPathMissing
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitLines(data)
}

// CreateFile creates the file at path, truncating it if it already exists,
// and writes content into it. It returns path.
func CreateFile(path, content string) (string, error) {
	if path == "" {
		return "", ErrPathMissing
	}
	if err := write(path, os.O_CREATE|os.O_TRUNC, content); err != nil {
		return "", err
	}
	return path, nil
}

// WriteToFile replaces the content of the existing file at path. Empty content
// leaves an empty file. It returns path.
func WriteToFile(path, content string) (string, error) {
	if path == "" {
		return "", ErrPathMissing
	}
	if err := write(path, os.O_TRUNC, content); err != nil {
		return "", err
	}
	return path, nil
}

// WriteLines joins lines with LineSeparator and writes them with WriteToFile.
func WriteLines(path string, lines []string) (string, error) {
	return WriteToFile(path, strings.Join(lines, LineSeparator))
}

// AppendToFile appends content to the end of the existing file at path. When
// prependSeparator is set, LineSeparator is written before content. Empty
// content appends nothing, separator included. It returns path.
func AppendToFile(path, content string, prependSeparator bool) (string, error) {
	if path == "" {
		return "", ErrPathMissing
	}
	if content != "" && prependSeparator {
		content = LineSeparator + content
	}
	if err := write(path, os.O_APPEND, content); err != nil {
		return "", err
	}
	return path, nil
}

// AppendLines joins lines with LineSeparator and appends them with AppendToFile.
// Lines that join to nothing, such as []string{""}, count as absent content:
// nothing is appended, not even the separator.
func AppendLines(path string, lines []string, prependSeparator bool) (string, error) {
	return AppendToFile(path, strings.Join(lines, LineSeparator), prependSeparator)
}

// write opens path for writing with the extra flags, writes content and
// closes the file, reporting the first error.
func write(path string, flag int, content string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|flag, filePerm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if content == "" {
		return nil
	}
	_, err = f.WriteString(content)
	return err
}
