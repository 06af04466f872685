package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"uiid/internal/inject"
)

func TestRunInjectWithUIFailingProgram(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(page, []byte("<button>Go</button>"), 0o644))

	core, logs := observer.New(zapcore.WarnLevel)
	prevLogger, prevRun := logger, runProgram
	logger = zap.New(core)
	runProgram = func(tea.Model) error { return errors.New("no tty") }
	t.Cleanup(func() {
		logger, runProgram = prevLogger, prevRun
	})

	runner := &inject.Runner{Injector: inject.New(inject.Options{}), Rules: inject.DefaultRules()}
	sum := runInjectWithUI("uiid inject", []string{page}, runner)

	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, 1, sum.Modified)
	assert.Equal(t, 1, logs.FilterMessage("progress ui failed").Len())

	got, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(got), `id="button-1"`)
}
