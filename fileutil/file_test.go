package fileutil_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/CageChen/filehub/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContent = "This is a test file."

func newFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func readString(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestExists(t *testing.T) {
	t.Parallel()

	t.Run("absent path", func(t *testing.T) {
		t.Parallel()
		assert.False(t, fileutil.Exists(""))
	})

	t.Run("existing file", func(t *testing.T) {
		t.Parallel()
		assert.True(t, fileutil.Exists(newFile(t, "test.txt", "")))
	})

	t.Run("existing directory", func(t *testing.T) {
		t.Parallel()
		assert.True(t, fileutil.Exists(t.TempDir()))
	})

	t.Run("deleted file", func(t *testing.T) {
		t.Parallel()

		path := newFile(t, "test.txt", "")
		require.NoError(t, fileutil.DeleteFile(path))
		assert.False(t, fileutil.Exists(path))
	})
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		path := newFile(t, "test.txt", "")
		_, err := fileutil.WriteToFile(path, "abc")
		require.NoError(t, err)

		content, err := fileutil.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "abc", content)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fileutil.ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{name: "empty file", content: "", expected: []string{}},
		{name: "single line", content: "one", expected: []string{"one"}},
		{name: "trailing newline", content: "one\n", expected: []string{"one"}},
		{name: "unix", content: "a\nb", expected: []string{"a", "b"}},
		{name: "windows", content: "a\r\nb\r\n", expected: []string{"a", "b"}},
		{name: "old mac", content: "a\rb", expected: []string{"a", "b"}},
		{name: "blank lines kept", content: "a\n\nb", expected: []string{"a", "", "b"}},
		{name: "trailing carriage return", content: "a\r", expected: []string{"a"}},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			lines, err := fileutil.ParseFile(newFile(t, "test.txt", test.content))
			require.NoError(t, err)
			assert.Equal(t, test.expected, lines)
		})
	}
}

func TestWriteLines(t *testing.T) {
	t.Parallel()

	path := newFile(t, "test.txt", "")

	_, err := fileutil.WriteLines(path, []string{"a", "b"})
	require.NoError(t, err)

	content, err := fileutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a"+fileutil.LineSeparator+"b", content)

	lines, err := fileutil.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)

	_, err = fileutil.WriteLines(path, nil)
	require.NoError(t, err)
	assert.Empty(t, readString(t, path))
}

func TestCreateFile(t *testing.T) {
	t.Parallel()

	t.Run("new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "test.txt")
		result, err := fileutil.CreateFile(path, "")
		require.NoError(t, err)
		assert.Equal(t, path, result)
		assert.True(t, fileutil.Exists(path))
		assert.Empty(t, readString(t, path))
	})

	t.Run("with content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "test.txt")
		_, err := fileutil.CreateFile(path, testContent)
		require.NoError(t, err)
		assert.Equal(t, testContent, readString(t, path))
	})

	t.Run("truncates existing file", func(t *testing.T) {
		t.Parallel()

		path := newFile(t, "test.txt", "a much longer original content")
		_, err := fileutil.CreateFile(path, "short")
		require.NoError(t, err)
		assert.Equal(t, "short", readString(t, path))
	})

	t.Run("missing parent directory", func(t *testing.T) {
		t.Parallel()

		_, err := fileutil.CreateFile(filepath.Join(t.TempDir(), "no", "test.txt"), "")
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestWriteToFile(t *testing.T) {
	t.Parallel()

	t.Run("replaces content", func(t *testing.T) {
		t.Parallel()

		path := newFile(t, "test.txt", "a much longer original content")
		result, err := fileutil.WriteToFile(path, testContent)
		require.NoError(t, err)
		assert.Equal(t, path, result)
		assert.Equal(t, testContent, readString(t, path))
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()

		path := newFile(t, "test.txt", "original")
		_, err := fileutil.WriteToFile(path, "")
		require.NoError(t, err)
		assert.Empty(t, readString(t, path))
	})

	t.Run("file must exist", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "test.txt")
		_, err := fileutil.WriteToFile(path, testContent)
		require.ErrorIs(t, err, fs.ErrNotExist)
		assert.False(t, fileutil.Exists(path))
	})
}

func TestAppendToFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		content          string
		prependSeparator bool
		expected         string
	}{
		{name: "plain", content: "Y", expected: "XY"},
		{name: "with separator", content: "Y", prependSeparator: true, expected: "X" + fileutil.LineSeparator + "Y"},
		{name: "absent content", content: "", expected: "X"},
		{name: "absent content ignores separator", content: "", prependSeparator: true, expected: "X"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "test.txt")
			_, err := fileutil.CreateFile(path, "X")
			require.NoError(t, err)

			result, err := fileutil.AppendToFile(path, test.content, test.prependSeparator)
			require.NoError(t, err)
			assert.Equal(t, path, result)
			assert.Equal(t, test.expected, readString(t, path))
		})
	}
}

func TestAppendLines(t *testing.T) {
	t.Parallel()

	path := newFile(t, "test.txt", "a")

	_, err := fileutil.AppendLines(path, []string{"b", "c"}, true)
	require.NoError(t, err)

	_, err = fileutil.AppendLines(path, nil, true)
	require.NoError(t, err)

	// a single empty line joins to empty content
	_, err = fileutil.AppendLines(path, []string{""}, true)
	require.NoError(t, err)

	sep := fileutil.LineSeparator
	assert.Equal(t, "a"+sep+"b"+sep+"c", readString(t, path))
}

func TestAppendToFileRequiresExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.txt")
	_, err := fileutil.AppendToFile(path, "X", false)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, fileutil.Exists(path))
}
