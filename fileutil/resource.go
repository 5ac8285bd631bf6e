package fileutil

import (
	"io/fs"
	"strings"
)

// ReadResource reads the named resource from loader and returns its lines
// concatenated without separators.
func ReadResource(loader fs.FS, name string) (string, error) {
	lines, err := ParseResource(loader, name)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, ""), nil
}

// ParseResource reads the named resource from loader line by line.
// Names follow the io/fs rules: slash separated, no leading slash.
func ParseResource(loader fs.FS, name string) ([]string, error) {
	if loader == nil {
		return nil, ErrLoaderMissing
	}
	if name == "" {
		return nil, ErrPathMissing
	}
	f, err := loader.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLines(f, maxLineSize)
}
