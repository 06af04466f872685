package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("index.html", []byte("<p>one</p>"), 0)
	id2 := fs.Add("index.html", []byte("<p>two</p>"), 0)
	assert.Equal(t, FileID(0), id1)
	assert.Equal(t, FileID(1), id2)

	// старая версия остаётся доступной по ID
	assert.Equal(t, "<p>one</p>", string(fs.Get(id1).Content))

	latest, ok := fs.GetByPath("./index.html")
	require.True(t, ok)
	assert.Equal(t, id2, latest.ID)
	assert.Equal(t, 2, fs.Len())
}

func TestLoadKeepsBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	raw := []byte("\xEF\xBB\xBF<form>\r\n<input>\r\n</form>")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	fs := NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)

	file := fs.Get(id)
	assert.Equal(t, raw, file.Content)
	assert.NotZero(t, file.Flags&FileHasBOM)
	assert.NotZero(t, file.Flags&FileHasCRLF)
	assert.Zero(t, file.Flags&FileVirtual)
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Load(filepath.Join(t.TempDir(), "missing.html"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, fs.Len())
}

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("inline.html", []byte("ab\ncd\n\nef"))
	file := fs.Get(id)

	cases := []struct {
		off  int
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}},
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 4, Col: 1}},
		{8, LineCol{Line: 4, Col: 2}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, file.Position(tc.off), "offset %d", tc.off)
	}

	start, end := fs.Resolve(Span{File: id, Start: 3, End: 8})
	assert.Equal(t, LineCol{Line: 2, Col: 1}, start)
	assert.Equal(t, LineCol{Line: 4, Col: 2}, end)
}

func TestFormatPath(t *testing.T) {
	base := t.TempDir()
	fs := NewFileSetWithBase(base)
	id := fs.AddVirtual(filepath.Join(base, "public", "index.html"), nil)
	file := fs.Get(id)

	assert.Equal(t, "public/index.html", file.FormatPath("relative", fs.BaseDir()))
	assert.Equal(t, "index.html", file.FormatPath("basename", ""))
	assert.Equal(t, file.Path, file.FormatPath("unknown", ""))
}

func TestSpan(t *testing.T) {
	sp := At(3, 10)
	assert.True(t, sp.Empty())
	assert.Equal(t, "3:10-10", sp.String())

	sp.End = 14
	assert.Equal(t, uint32(4), sp.Len())
}
