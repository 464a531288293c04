package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedBeforeInit(t *testing.T) {
	Log = nil
	_, err := Named("preview")
	assert.Error(t, err)
	assert.Panics(t, func() { MustNamed("preview") })
}

func TestInitConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Config{Output: &buf, TimeLocation: time.UTC}))
	t.Cleanup(func() { Log = nil })

	l := MustNamed("export")
	l.Debug("hidden")
	l.Infof("rendered %d formats", 3)
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.Contains(t, out, "qrgen.export")
	assert.Contains(t, out, "rendered 3 formats")
	assert.NotContains(t, out, "hidden")
}

func TestInitFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		Log = nil
	})

	require.NoError(t, Init(Config{Debug: true, LogToFile: true, LogsDir: "logs", Output: &bytes.Buffer{}}))
	Log.Debug("to file")
	require.NoError(t, Log.Sync())

	files, err := filepath.Glob(filepath.Join(dir, "logs", "qrgen-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Errorf("ignored %v", 1) })
}
