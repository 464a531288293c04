package service

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qrgen-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/internal/domain/payload"
	"github.com/Badsnus/qrgen-studio/pkg/logger"
	qr "github.com/Badsnus/qrgen-studio/pkg/qrcode"
)

type fakeRecorder struct {
	mu      sync.Mutex
	records []string
	err     error
}

func (r *fakeRecorder) RecordDownload(_ context.Context, id string, format qr.Format) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, id+"/"+string(format))
	return r.err
}

func wifiState() entity.State {
	s := entity.NewState()
	s.Type = entity.TypeWiFi
	s.Fields = entity.FormFields{"ssid": "HomeNet", "password": "secret"}
	return s
}

func TestExportUsesRealPayload(t *testing.T) {
	renderer := &fakeRenderer{}
	recorder := &fakeRecorder{}
	g := NewExportGenerator(renderer, recorder, logger.Nop(), ExportConfig{})

	var buf bytes.Buffer
	err := g.Export(context.Background(), wifiState(), ExportOptions{Size: 1000, Format: qr.FormatPNG, SnapshotID: "abc"}, &buf)
	require.NoError(t, err)

	assert.Equal(t, "png:WIFI:T:WPA;S:HomeNet;P:secret;;", buf.String())
	assert.Equal(t, 1000, renderer.calls()[0].Size)
	assert.Equal(t, []string{"abc/png"}, recorder.records)
}

func TestExportValidation(t *testing.T) {
	g := NewExportGenerator(&fakeRenderer{}, nil, logger.Nop(), ExportConfig{})

	err := g.Export(context.Background(), wifiState(), ExportOptions{Size: 999, Format: qr.FormatPNG}, &bytes.Buffer{})
	assert.ErrorIs(t, err, errorz.ErrUnsupportedSize)

	err = g.Export(context.Background(), wifiState(), ExportOptions{Size: 1000, Format: "gif"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, errorz.ErrUnsupportedFormat)

	for _, size := range ExportSizes {
		req, err := g.BuildExportRequest(entity.NewState(), size)
		require.NoError(t, err)
		assert.Equal(t, size, req.Size)
		assert.Equal(t, payload.SiteURL, req.Data)
	}
}

func TestExportWaitsForLogoWithinGracePeriod(t *testing.T) {
	renderer := &fakeRenderer{pending: true}
	g := NewExportGenerator(renderer, nil, logger.Nop(), ExportConfig{GracePeriod: 20 * time.Millisecond})

	start := time.Now()
	var buf bytes.Buffer
	err := g.Export(context.Background(), wifiState(), ExportOptions{Size: 500, Format: qr.FormatSVG}, &buf)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Contains(t, buf.String(), "svg:")
}

func TestExportCancelled(t *testing.T) {
	renderer := &fakeRenderer{pending: true}
	g := NewExportGenerator(renderer, nil, logger.Nop(), ExportConfig{GracePeriod: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := g.Export(ctx, wifiState(), ExportOptions{Size: 500, Format: qr.FormatPNG}, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExportRecordFailureDoesNotFailDownload(t *testing.T) {
	recorder := &fakeRecorder{err: errorz.ErrNotFound}
	g := NewExportGenerator(&fakeRenderer{}, recorder, logger.Nop(), ExportConfig{})

	err := g.Export(context.Background(), wifiState(), ExportOptions{Size: 300, Format: qr.FormatJPEG, SnapshotID: "gone"}, &bytes.Buffer{})
	assert.NoError(t, err)
}

func TestExportBundle(t *testing.T) {
	renderer := &fakeRenderer{}
	recorder := &fakeRecorder{}
	g := NewExportGenerator(renderer, recorder, logger.Nop(), ExportConfig{})

	out, err := g.ExportBundle(context.Background(), wifiState(), 800, qr.Formats)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, "jpeg:WIFI:T:WPA;S:HomeNet;P:secret;;", string(out[qr.FormatJPEG]))
	assert.Len(t, renderer.calls(), 1, "one render for all formats")
	assert.Empty(t, recorder.records, "bundles are recorded by the caller")

	g.RecordDownloads(context.Background(), "abc", qr.Formats)
	assert.ElementsMatch(t, []string{"abc/png", "abc/svg", "abc/jpeg"}, recorder.records)

	g.RecordDownloads(context.Background(), "", qr.Formats)
	assert.Len(t, recorder.records, 3, "unsaved codes are not recorded")
}

func TestExportCalendar(t *testing.T) {
	g := NewExportGenerator(&fakeRenderer{}, nil, logger.Nop(), ExportConfig{})

	s := entity.NewState()
	s.Type = entity.TypeEvent
	s.Fields = entity.FormFields{"title": "Launch", "start": "2026-03-01T09:30"}
	data, err := g.ExportCalendar(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Launch")

	_, err = g.ExportCalendar(wifiState())
	assert.ErrorIs(t, err, errorz.ErrUnsupportedFormat)
}
