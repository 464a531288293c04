package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qrgen-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/pkg/logger"
	qr "github.com/Badsnus/qrgen-studio/pkg/qrcode"
)

func TestHistorySaveSnapshot(t *testing.T) {
	codes, events := &memCodes{}, &memEvents{}
	h := NewHistoryService(codes, events, logger.Nop())

	state := wifiState()
	saved, err := h.Save(context.Background(), "user-1", state)
	require.NoError(t, err)

	assert.Equal(t, "code-1", saved.ID)
	assert.Equal(t, "WiFi", saved.Label)
	assert.Equal(t, "WIFI:T:WPA;S:HomeNet;P:secret;;", saved.Payload)
	assert.Equal(t, state.Fields, saved.State.Fields)
	assert.Equal(t, []entity.EventType{entity.EventQRSaved}, events.types())

	// Editing the state afterwards leaves the snapshot untouched.
	state.Fields["ssid"] = "Other"
	again, err := h.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "HomeNet", again.State.Fields["ssid"])
}

func TestHistoryListNewestFirst(t *testing.T) {
	h := NewHistoryService(&memCodes{}, nil, logger.Nop())
	ctx := context.Background()

	for _, ssid := range []string{"a", "b", "c"} {
		s := wifiState()
		s.Fields["ssid"] = ssid
		_, err := h.Save(ctx, "user-1", s)
		require.NoError(t, err)
	}
	_, err := h.Save(ctx, "user-2", wifiState())
	require.NoError(t, err)

	list, err := h.List(ctx, "user-1", 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].State.Fields["ssid"])
	assert.Equal(t, "b", list[1].State.Fields["ssid"])

	list, err = h.List(ctx, "user-1", 0, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].State.Fields["ssid"])
}

func TestHistoryRecordDownload(t *testing.T) {
	codes, events := &memCodes{}, &memEvents{}
	h := NewHistoryService(codes, events, logger.Nop())
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return at }

	saved, err := h.Save(context.Background(), "user-1", wifiState())
	require.NoError(t, err)

	require.NoError(t, h.RecordDownload(context.Background(), saved.ID, qr.FormatPNG))
	require.NoError(t, h.RecordDownload(context.Background(), saved.ID, qr.FormatSVG))
	require.NoError(t, h.RecordDownload(context.Background(), saved.ID, qr.FormatPNG))

	got, err := h.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.DownloadCount)
	require.NotNil(t, got.LastDownloadedAt)
	assert.Equal(t, at, *got.LastDownloadedAt)
	assert.Equal(t, []string{"png", "svg"}, got.Formats)
	assert.Equal(t, []entity.EventType{entity.EventQRSaved, entity.EventQRDownloaded, entity.EventQRDownloaded, entity.EventQRDownloaded}, events.types())

	err = h.RecordDownload(context.Background(), "missing", qr.FormatPNG)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}

func TestHistoryAnalyticsFailureIsIgnored(t *testing.T) {
	h := NewHistoryService(&memCodes{}, &memEvents{err: errBackend}, logger.Nop())

	_, err := h.Save(context.Background(), "user-1", wifiState())
	assert.NoError(t, err)
}

func TestHistoryStorageFailure(t *testing.T) {
	h := NewHistoryService(&memCodes{err: errBackend}, nil, logger.Nop())

	_, err := h.Save(context.Background(), "user-1", wifiState())
	assert.ErrorIs(t, err, errBackend)
}

func TestExportRecordsThroughHistory(t *testing.T) {
	codes := &memCodes{}
	h := NewHistoryService(codes, nil, logger.Nop())
	saved, err := h.Save(context.Background(), "user-1", wifiState())
	require.NoError(t, err)

	g := NewExportGenerator(&fakeRenderer{}, h, logger.Nop(), ExportConfig{})
	formats := []qr.Format{qr.FormatPNG, qr.FormatJPEG}
	_, err = g.ExportBundle(context.Background(), saved.State, 1000, formats)
	require.NoError(t, err)
	g.RecordDownloads(context.Background(), saved.ID, formats)

	got, err := h.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.DownloadCount)
	assert.ElementsMatch(t, []string{"png", "jpeg"}, got.Formats)
}
