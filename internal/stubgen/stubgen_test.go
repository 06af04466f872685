package stubgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const apiSource = `const API_KEY = "x";

const fetchVenues = async (city) => {
  return fetch(url(city));
};

let formatVenue = (venue) => venue.name;

async function getForecast(city) {
  return fetch(city);
}

function fetchVenues(city) {}

var handler = function () {};
`

func TestExtractFunctions(t *testing.T) {
	got := ExtractFunctions([]byte(apiSource))
	assert.Equal(t, []string{"fetchVenues", "formatVenue", "getForecast"}, got)
}

func TestExtractFunctionsNone(t *testing.T) {
	assert.Empty(t, ExtractFunctions([]byte(`export const PAGE_SIZE = 20;`)))
}

func TestRender(t *testing.T) {
	out, err := Render(Template{
		Module:      "api",
		Ext:         ".js",
		Functions:   []string{"fetchVenues", "getForecast"},
		GeneratedAt: time.Date(2026, 3, 4, 5, 6, 7, 8_000_000, time.FixedZone("X", 3600)),
	})
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, " * Auto-generated unit tests for api.js\n")
	assert.Contains(t, text, " * Generated on: 2026-03-04T04:06:07.008Z\n")
	assert.Contains(t, text, "describe('api', () => {")
	assert.Contains(t, text, "expect(typeof getForecast).toBe('function');")
	assert.Contains(t, text, "const result = await fetchVenues();")
	assert.Equal(t, 2, strings.Count(text, "test('should handle errors gracefully'"))
	assert.Less(t, strings.Index(text, "describe('fetchVenues'"), strings.Index(text, "describe('getForecast'"))
	assert.True(t, strings.HasSuffix(text, "  });\n});\n"))
}

func TestTestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("public", "api.test.js"), TestPath(filepath.Join("public", "api.js")))
	assert.Equal(t, "Venue.test.tsx", TestPath("Venue.tsx"))
	assert.True(t, IsTestFile("public/api.test.js"))
	assert.True(t, IsTestFile("src/Venue.spec.tsx"))
	assert.False(t, IsTestFile("src/tester.js"))
}

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	api := writeSource(t, dir, "api.js", apiSource)
	constants := writeSource(t, dir, "constants.js", "export const A = 1;\n")
	existing := writeSource(t, dir, "utils.js", "const trim = (s) => s.trim();\n")
	writeSource(t, dir, "utils.test.js", "// hand written\n")
	vendored := filepath.Join(dir, "node_modules", "lib", "index.js")
	missing := filepath.Join(dir, "missing.js")
	styles := writeSource(t, dir, "styles.css", "body {}\n")

	core, logs := observer.New(zapcore.DebugLevel)
	gen := &Generator{
		Jobs:   2,
		Now:    func() time.Time { return time.Unix(0, 0) },
		Logger: zap.New(core),
	}
	results, err := gen.Generate(context.Background(), []string{api, constants, existing, vendored, missing, styles, filepath.Join(dir, "utils.test.js")})
	require.NoError(t, err)
	require.Len(t, results, 7)

	assert.Equal(t, StatusWritten, results[0].Status)
	assert.Equal(t, filepath.Join(dir, "api.test.js"), results[0].Output)
	written, err := os.ReadFile(results[0].Output)
	require.NoError(t, err)
	assert.Contains(t, string(written), "describe('formatVenue'")
	assert.Contains(t, string(written), "1970-01-01T00:00:00.000Z")

	assert.Equal(t, StatusSkipped, results[1].Status)
	assert.True(t, errors.Is(results[1].Err, ErrNoFunctions))
	assert.NoFileExists(t, filepath.Join(dir, "constants.test.js"))

	assert.Equal(t, StatusSkipped, results[2].Status)
	assert.Equal(t, "test file exists", results[2].Reason)
	kept, err := os.ReadFile(filepath.Join(dir, "utils.test.js"))
	require.NoError(t, err)
	assert.Equal(t, "// hand written\n", string(kept))

	assert.Equal(t, StatusSkipped, results[3].Status)
	assert.Equal(t, "contains node_modules", results[3].Reason)

	assert.Equal(t, StatusFailed, results[4].Status)
	assert.ErrorIs(t, results[4].Err, os.ErrNotExist)

	assert.Equal(t, "unsupported extension", results[5].Reason)
	assert.Equal(t, "is a test file", results[6].Reason)

	assert.Equal(t, 1, logs.FilterMessage("failed to read source").Len())
	assert.Equal(t, 1, logs.FilterMessage("generated test file").Len())
}

func TestGenerateSkipMarkersKeepDependencies(t *testing.T) {
	dir := t.TempDir()
	vendored := writeSource(t, dir, "node_modules/lib/api.js", apiSource)
	extra := writeSource(t, dir, "legacy/api.js", apiSource)

	gen := &Generator{SkipMarkers: []string{"legacy"}}
	results, err := gen.Generate(context.Background(), []string{vendored, extra})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "contains node_modules", results[0].Reason)
	assert.Equal(t, "contains legacy", results[1].Reason)
	assert.NoFileExists(t, filepath.Join(dir, "node_modules", "lib", "api.test.js"))
}

func TestGenerateForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "utils.js", "function trim(s) { return s.trim(); }\n")
	writeSource(t, dir, "utils.test.js", "// stale\n")

	gen := &Generator{Force: true}
	results, err := gen.Generate(context.Background(), []string{src})
	require.NoError(t, err)
	assert.Equal(t, StatusWritten, results[0].Status)

	out, err := os.ReadFile(filepath.Join(dir, "utils.test.js"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "describe('trim'")
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := &Generator{Jobs: 1}
	_, err := gen.Generate(ctx, []string{"a.js", "b.js"})
	assert.ErrorIs(t, err, context.Canceled)
}
