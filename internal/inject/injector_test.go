package inject

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiid/internal/markup"
	"uiid/internal/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestProcessFileRewritesInPlace(t *testing.T) {
	path := writeFile(t, t.TempDir(), "index.html", "<form>\r\n  <button>Go</button>\r\n</form>\r\n")

	res, err := New(Options{}).ProcessFile(path, markup.SyntaxMarkup)
	require.NoError(t, err)
	assert.True(t, res.Modified)
	require.Len(t, res.Injections, 2)
	assert.Equal(t, "form-1", res.Injections[0].ID)
	assert.Equal(t, source.LineCol{Line: 1, Col: 6}, res.Injections[0].Pos)
	assert.Equal(t, source.LineCol{Line: 2, Col: 10}, res.Injections[1].Pos)

	assert.Equal(t,
		"<form id=\"form-1\" data-testid=\"form-1\">\r\n  <button id=\"button-1\" data-testid=\"button-1\">Go</button>\r\n</form>\r\n",
		readFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestProcessFileSecondRunUnchanged(t *testing.T) {
	path := writeFile(t, t.TempDir(), "App.jsx", `const App = () => <Layout><Header title="x" /></Layout>;`)
	inj := New(Options{})

	first, err := inj.ProcessFile(path, markup.SyntaxComponent)
	require.NoError(t, err)
	require.True(t, first.Modified)
	after := readFile(t, path)

	second, err := inj.ProcessFile(path, markup.SyntaxComponent)
	require.NoError(t, err)
	assert.False(t, second.Modified)
	assert.Equal(t, after, readFile(t, path))
}

func TestProcessFileDryRun(t *testing.T) {
	const content = `<nav><a href="/">Home</a></nav>`
	path := writeFile(t, t.TempDir(), "nav.html", content)

	res, err := New(Options{DryRun: true}).ProcessFile(path, markup.SyntaxMarkup)
	require.NoError(t, err)
	assert.True(t, res.Modified)
	assert.Len(t, res.Injections, 2)
	assert.Equal(t, content, readFile(t, path))
}

func TestProcessFileReadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.html")
	res, err := New(Options{}).ProcessFile(path, markup.SyntaxMarkup)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "read "+path)
	assert.False(t, res.Modified)
}

func TestProcessFileCustomVocabulary(t *testing.T) {
	widget, err := ParseSelector(`div[class*="widget"] as widget`)
	require.NoError(t, err)
	path := writeFile(t, t.TempDir(), "w.html", `<div class="weather-widget"></div><button></button>`)

	inj := New(Options{Markup: Vocabulary{Elements: []Element{widget}}})
	res, err := inj.ProcessFile(path, markup.SyntaxMarkup)
	require.NoError(t, err)
	require.Len(t, res.Injections, 1)
	assert.Equal(t, "widget-1", res.Injections[0].ID)
	assert.Equal(t, `<div id="widget-1" data-testid="widget-1" class="weather-widget"></div><button></button>`, readFile(t, path))
}

func TestDiskCache(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)
	hash := [32]byte{1, 2, 3}

	clean, err := cache.IsClean("a.html", "v1", hash)
	require.NoError(t, err)
	assert.False(t, clean)

	require.NoError(t, cache.MarkClean("a.html", "v1", hash))
	clean, err = cache.IsClean("a.html", "v1", hash)
	require.NoError(t, err)
	assert.True(t, clean)

	clean, err = cache.IsClean("a.html", "v1", [32]byte{9})
	require.NoError(t, err)
	assert.False(t, clean, "content changed")

	clean, err = cache.IsClean("a.html", "v2", hash)
	require.NoError(t, err)
	assert.False(t, clean, "vocabulary changed")

	require.NoError(t, cache.DropAll())
	clean, err = cache.IsClean("a.html", "v1", hash)
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestProcessFileUsesCache(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)
	path := writeFile(t, t.TempDir(), "page.html", `<button>Go</button>`)
	inj := New(Options{Cache: cache})

	first, err := inj.ProcessFile(path, markup.SyntaxMarkup)
	require.NoError(t, err)
	require.True(t, first.Modified)
	assert.False(t, first.Cached)

	second, err := inj.ProcessFile(path, markup.SyntaxMarkup)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.False(t, second.Modified)

	// editing the file invalidates the record
	writeFile(t, filepath.Dir(path), "page.html", readFile(t, path)+"<input>")
	third, err := inj.ProcessFile(path, markup.SyntaxMarkup)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.True(t, third.Modified)
}
