package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/CageChen/filehub/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFileCommands(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	sep := fileutil.LineSeparator

	out, err := run(t, "exists", file)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = run(t, "touch", file, "hello")
	require.NoError(t, err)
	assert.Equal(t, file+"\n", out)

	out, err = run(t, "cat", file)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	_, err = run(t, "append", "--newline", file, "world")
	require.NoError(t, err)

	out, err = run(t, "lines", "-n", file)
	require.NoError(t, err)
	assert.Equal(t, "     1\thello\n     2\tworld\n", out)

	_, err = run(t, "write", file, "--line", "x", "--line", "y")
	require.NoError(t, err)
	out, err = run(t, "cat", file)
	require.NoError(t, err)
	assert.Equal(t, "x"+sep+"y", out)

	_, err = run(t, "rename", file, "b.txt")
	require.NoError(t, err)
	renamed := filepath.Join(dir, "b.txt")
	assert.NoFileExists(t, file)

	copied := filepath.Join(dir, "c.txt")
	_, err = run(t, "cp", renamed, copied)
	require.NoError(t, err)
	assert.FileExists(t, renamed)

	moved := filepath.Join(dir, "d.txt")
	_, err = run(t, "mv", copied, moved)
	require.NoError(t, err)
	assert.NoFileExists(t, copied)

	_, err = run(t, "truncate", moved)
	require.NoError(t, err)
	out, err = run(t, "cat", moved)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "rm", moved)
	require.NoError(t, err)
	out, err = run(t, "exists", moved)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestMissingArguments(t *testing.T) {
	tests := []struct {
		args []string
		want error
	}{
		{[]string{"cat"}, fileutil.ErrPathMissing},
		{[]string{"touch"}, fileutil.ErrPathMissing},
		{[]string{"write"}, fileutil.ErrPathMissing},
		{[]string{"append", "--line", "a"}, fileutil.ErrPathMissing},
		{[]string{"truncate"}, fileutil.ErrPathMissing},
		{[]string{"rm"}, fileutil.ErrPathMissing},
		{[]string{"mv"}, fileutil.ErrSourcePathMissing},
		{[]string{"cp", "only-source"}, fileutil.ErrTargetPathMissing},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"old.md", "new.md", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.md"), past, past))

	out, err := run(t, "ls", dir, "--suffix", ".md", "--order", "asc")
	require.NoError(t, err)
	assert.Equal(t, "old.md\nnew.md\n", out)

	out, err = run(t, "ls", dir, "--prefix", "n", "--order", "desc")
	require.NoError(t, err)
	lines := strings.Fields(out)
	assert.ElementsMatch(t, []string{"new.md", "notes.txt"}, lines)

	out, err = run(t, "ls", "--dirs", dir)
	require.NoError(t, err)
	assert.Equal(t, "sub\n", out)

	_, err = run(t, "ls", dir, "--order", "newest")
	assert.Error(t, err)

	_, err = run(t, "ls", filepath.Join(dir, "absent"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTopicsAndVersion(t *testing.T) {
	out, err := run(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "config")
	assert.Contains(t, out, "Lines")

	out, err = run(t, "topics", "paths")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Paths\n"))

	_, err = run(t, "topics", "nope")
	assert.Error(t, err)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "filehub 0.3.0\n", out)
}
