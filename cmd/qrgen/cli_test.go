package qrgen

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/pkg/logger"
	qr "github.com/Badsnus/qrgen-studio/pkg/qrcode"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEncode(t *testing.T) {
	out, err := run(t, "", "encode", "-t", "wifi", "-f", "ssid=HomeNet", "-f", "password=secret")
	require.NoError(t, err)
	assert.Equal(t, "WIFI:T:WPA;S:HomeNet;P:secret;;\n", out)

	out, err = run(t, "", "encode", "-t", "wifi", "-f", "ssid=HomeNet", "--placeholder")
	require.NoError(t, err)
	assert.Equal(t, "WIFI:T:WPA;S:Network;P:password;;\n", out)

	_, err = run(t, "", "encode", "-t", "fax")
	assert.ErrorContains(t, err, `unknown type "fax"`)
}

func TestTypesAndPresets(t *testing.T) {
	out, err := run(t, "", "types")
	require.NoError(t, err)
	assert.Contains(t, out, "googlereviews")
	assert.Contains(t, out, "payment")

	out, err = run(t, "", "types", "--schema", "wifi")
	require.NoError(t, err)
	assert.Contains(t, out, "ssid")

	out, err = run(t, "", "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "Ocean")
}

func TestHints(t *testing.T) {
	out, err := run(t, "", "hints", "-t", "email", "-f", "email=nope")
	require.NoError(t, err)
	assert.Contains(t, out, "email: ")

	out, err = run(t, "", "hints", "-t", "email", "-f", "email=me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "no hints\n", out)
}

func TestExportFromStateFile(t *testing.T) {
	dir := t.TempDir()
	stateJSON, err := run(t, "", "encode", "-t", "url", "-f", "url=https://example.com", "--preset", "ocean", "--json")
	require.NoError(t, err)
	statePath := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(statePath, []byte(stateJSON), 0o600))

	base := filepath.Join(dir, "code")
	out, err := run(t, "", "export", "--state", statePath, "--size", "300", "--format", "png,svg,png", "-o", base)
	require.NoError(t, err)
	assert.Contains(t, out, base+".png")
	assert.Contains(t, out, base+".svg")

	f, err := os.Open(base + ".png")
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)

	svg, err := os.ReadFile(base + ".svg")
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestExportValidation(t *testing.T) {
	_, err := run(t, "", "export", "--size", "333", "-o", filepath.Join(t.TempDir(), "x"))
	assert.ErrorContains(t, err, "unsupported export size")

	_, err = run(t, "", "export", "--format", "gif")
	assert.ErrorContains(t, err, "gif")

	_, err = run(t, "", "export", "--format", "png,svg", "-o", "-")
	assert.Error(t, err)
}

func TestWriteBundleRecordsOnlyWrittenFiles(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	formats := []qr.Format{qr.FormatPNG, qr.FormatSVG}
	files := map[qr.Format][]byte{qr.FormatPNG: []byte("png"), qr.FormatSVG: []byte("<svg/>")}

	recorded := 0
	record := func() { recorded++ }

	missing := filepath.Join(t.TempDir(), "missing", "code")
	assert.Error(t, writeBundle(cmd, missing, formats, files, record))
	assert.Zero(t, recorded)

	base := filepath.Join(t.TempDir(), "code")
	require.NoError(t, writeBundle(cmd, base, formats, files, record))
	assert.Equal(t, 1, recorded)
	assert.FileExists(t, base+".svg")
}

func TestExportStdout(t *testing.T) {
	out, err := run(t, "", "export", "-t", "text", "-f", "text=hi", "--size", "200", "--format", "svg", "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg") || strings.HasPrefix(out, "<?xml"))
}

func TestPreviewScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	script := strings.Join([]string{
		"type wifi",
		"set ssid HomeNet",
		"set password secret",
		"show",
		"entitled",
		"show",
		"bogus",
		"quit",
	}, "\n")

	out, err := run(t, script, "preview", "-o", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "300px WIFI:T:WPA;S:Network;P:password;;", lines[0])
	assert.Equal(t, "300px WIFI:T:WPA;S:HomeNet;P:secret;;", lines[1])
	assert.Contains(t, lines[2], "unknown command")

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStateOpts(t *testing.T) {
	opts := stateOpts{
		qrType:         "URL",
		fields:         map[string]string{"url": "https://a.example"},
		preset:         "sunset",
		fg:             "#123456",
		gradient:       "radial",
		gradientColors: []string{"#ff0000", "#0000ff"},
		logoSize:       0.3,
		logoMargin:     -1,
	}
	state, err := opts.build(0, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, entity.TypeURL, state.Type)
	assert.Equal(t, "#123456", state.Style.Foreground)
	assert.Equal(t, entity.DotClassy, state.Style.DotPattern)
	assert.True(t, state.Style.Gradient.Enabled)
	assert.Equal(t, entity.GradientRadial, state.Style.Gradient.Type)
	assert.Equal(t, "#0000ff", state.Style.Gradient.Color2)
	assert.Equal(t, 0.3, state.Style.Logo.Size)

	opts = stateOpts{gradientColors: []string{"#fff"}, logoMargin: -1}
	_, err = opts.build(0, logger.Nop())
	assert.Error(t, err)

	opts = stateOpts{preset: "neon", logoMargin: -1}
	_, err = opts.build(0, logger.Nop())
	assert.ErrorContains(t, err, "unknown preset")
}

func TestStateOptsBadLogoIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))

	opts := stateOpts{logo: path, logoMargin: -1}
	state, err := opts.build(0, logger.Nop())
	require.NoError(t, err)
	assert.Empty(t, state.Style.Logo.Image)
}
