package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiid/internal/inject"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, inject.DefaultRules(), cfg.Rules())

	markupVocab, componentVocab, err := cfg.Vocabularies()
	require.NoError(t, err)
	assert.Equal(t, inject.DefaultMarkupVocabulary(), markupVocab)
	assert.Equal(t, inject.DefaultComponentVocabulary(), componentVocab)
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "public", "pages")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[inject]
exclude = ["dist/**"]
markup_elements = ["header", "footer", 'div[class*="widget"]']
cache = true

[stubs]
jobs = 2
force = true
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, []string{"dist/**"}, cfg.Rules().Exclude)
	assert.Equal(t, []string{"node_modules"}, cfg.Rules().SkipMarkers, "unset keys keep defaults")
	assert.True(t, cfg.Inject.Cache)
	assert.Equal(t, StubsConfig{Jobs: 2, Force: true}, cfg.Stubs)

	markupVocab, _, err := cfg.Vocabularies()
	require.NoError(t, err)
	require.Len(t, markupVocab.Elements, 13)
	assert.Equal(t, inject.Element{Name: "div", Require: "class", Contains: "widget"}, markupVocab.Elements[12])
}

func TestLoadFileSkipMarkersKeepDependencies(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[inject]
skip_markers = ["vendor"]
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	rules := cfg.Rules()
	assert.Equal(t, []string{"node_modules", "vendor"}, rules.SkipMarkers)
	assert.Equal(t, "contains node_modules", rules.SkipReason("web/node_modules/lib/index.html"))
	assert.Equal(t, "contains vendor", rules.SkipReason("web/vendor/index.html"))
}

func TestLoadFileReplaceDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[inject]
replace_defaults = true
markup_elements = ["button"]
component_elements = ["form"]
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	markupVocab, componentVocab, err := cfg.Vocabularies()
	require.NoError(t, err)
	assert.Equal(t, []inject.Element{{Name: "button"}}, markupVocab.Elements)
	assert.Equal(t, []inject.Element{{Name: "form"}}, componentVocab.Elements)
	assert.True(t, componentVocab.Components)
}

func TestLoadFileErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":    "[inject\n",
		"unknown":   "[inject]\ncolour = true\n",
		"pattern":   "[inject]\nexclude = [\"[oops\"]\n",
		"selector":  "[inject]\nmarkup_elements = [\"div[\"]\n",
		"extension": "[inject]\nmarkup_ext = [\"html\"]\n",
		"jobs":      "[stubs]\njobs = -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), body)
			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoadExplicitPathWins(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[stubs]\njobs = 1\n")
	other := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(other, []byte("[stubs]\njobs = 7\n"), 0o600))

	cfg, err := Load(other, dir)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Stubs.Jobs)
}
