// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/JonDotsoy/icalendar.go/internal/exc"
)

func newMapFS(t *testing.T, m fstest.MapFS, options ...FileSystemLocalOption) FileSystem {
	t.Helper()
	options = append([]FileSystemLocalOption{WithOptionFSFactory(func(string) fs.FS { return m })}, options...)
	local, err := NewFileSystemLocal("/", options...)
	require.NoError(t, err)
	return local
}

var testFS = fstest.MapFS{
	"cal/a.ics":       {Data: []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")},
	"cal/b.ical":      {Data: []byte("b")},
	"cal/notes.txt":   {Data: []byte("not a calendar")},
	"cal/sub/c.ics":   {Data: []byte("c")},
	"empty/readme.md": {Data: []byte("nothing")},
}

func paths(files []File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path())
	}
	return out
}

func code(t *testing.T, err error) string {
	t.Helper()
	var e exc.Exception
	require.True(t, errors.As(err, &e), "expected exception, got %v", err)
	return e.Code()
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	local := newMapFS(t, testFS)
	files, err := local.Open(ctx, "/cal/a.ics")
	require.NoError(t, err)
	require.Equal(t, []string{"/cal/a.ics"}, paths(files))
	body, err := files[0].Body(ctx)
	require.NoError(t, err)
	require.Equal(t, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", string(body))

	files, err = local.Open(ctx, "file:///cal/notes.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"/cal/notes.txt"}, paths(files))
}

func TestOpenDirectory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	files, err := newMapFS(t, testFS).Open(ctx, "/cal")
	require.NoError(t, err)
	require.Equal(t, []string{"/cal/a.ics", "/cal/b.ical"}, paths(files))

	body, err := files[1].Body(ctx)
	require.NoError(t, err)
	require.Equal(t, "b", string(body))

	filtered := newMapFS(t, testFS, WithOptionFileFilter(func(ctx context.Context, fname string) bool {
		return filepath.Ext(fname) == ".txt"
	}))
	files, err = filtered.Open(ctx, "/cal")
	require.NoError(t, err)
	require.Equal(t, []string{"/cal/notes.txt"}, paths(files))
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	local := newMapFS(t, testFS)

	_, err := local.Open(ctx, "/missing.ics")
	require.Error(t, err)
	require.Equal(t, exc.CodeFileNotFound, code(t, err))
	require.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = local.Open(ctx, "/empty")
	require.Error(t, err)
	require.Equal(t, exc.CodeFileNotFound, code(t, err))
}

func TestFileSystemMulti(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first := newMapFS(t, fstest.MapFS{"a.ics": {Data: []byte("first")}})
	second := newMapFS(t, fstest.MapFS{"a.ics": {Data: []byte("second")}, "b.ics": {Data: []byte("b")}})
	multi := FileSystemMulti{first, second}

	files, err := multi.Open(ctx, "/a.ics")
	require.NoError(t, err)
	body, err := files[0].Body(ctx)
	require.NoError(t, err)
	require.Equal(t, "first", string(body))

	files, err = multi.Open(ctx, "/b.ics")
	require.NoError(t, err)
	require.Equal(t, []string{"/b.ics"}, paths(files))

	_, err = multi.Open(ctx, "/c.ics")
	require.Equal(t, exc.CodeFileNotFound, code(t, err))

	require.Error(t, multi.Write(ctx, "/a.ics", "x"))
}

func TestWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	local, err := NewFileSystemLocal(root)
	require.NoError(t, err)
	require.NoError(t, local.Write(ctx, "/out/cal.ics", "BEGIN:VCALENDAR\r\n"))

	b, err := os.ReadFile(filepath.Join(root, "out", "cal.ics"))
	require.NoError(t, err)
	require.Equal(t, "BEGIN:VCALENDAR\r\n", string(b))

	files, err := local.Open(ctx, "/out")
	require.NoError(t, err)
	require.Equal(t, []string{"/out/cal.ics"}, paths(files))
}

func TestFileString(t *testing.T) {
	t.Parallel()

	f := NewFileString("/inline.ics", "FOO:BAR")
	require.Equal(t, "/inline.ics", f.Path())
	body, err := f.Body(context.Background())
	require.NoError(t, err)
	require.Equal(t, "FOO:BAR", string(body))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Body(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSupported(t *testing.T) {
	t.Parallel()

	for name, expected := range map[string]bool{
		"a.ics":       true,
		"A.ICS":       true,
		"b.ical":      true,
		"c.icalendar": true,
		"d.ifb":       true,
		"e.vcs":       false,
		"ics":         false,
	} {
		require.Equal(t, expected, Supported(name), name)
	}
}
