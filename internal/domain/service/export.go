package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Badsnus/qrgen-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen-studio/internal/domain/dto"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/internal/domain/payload"
	"github.com/Badsnus/qrgen-studio/internal/domain/utils/calendar"
	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
	qr "github.com/Badsnus/qrgen-studio/pkg/qrcode"
)

// ExportSizes are the output sizes offered for download, in px.
var ExportSizes = []int{200, 300, 400, 500, 600, 800, 1000, 1200, 1500, 2000}

const (
	DefaultExportSize  = 1000
	DefaultGracePeriod = 500 * time.Millisecond
)

func ValidExportSize(size int) bool {
	return slices.Contains(ExportSizes, size)
}

type downloadRecorder interface {
	RecordDownload(ctx context.Context, id string, format qr.Format) error
}

type ExportConfig struct {
	GracePeriod time.Duration
}

type ExportOptions struct {
	Size   int
	Format qr.Format
	// SnapshotID is the saved code being downloaded; empty for unsaved codes.
	SnapshotID string
}

// ExportGenerator renders final downloads. Unlike the preview it always encodes the real
// payload.
type ExportGenerator struct {
	renderer Renderer
	history  downloadRecorder
	logger   *types.Logger
	grace    time.Duration
}

func NewExportGenerator(renderer Renderer, history downloadRecorder, logger *types.Logger, cfg ExportConfig) *ExportGenerator {
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = DefaultGracePeriod
	}
	return &ExportGenerator{
		renderer: renderer,
		history:  history,
		logger:   logger,
		grace:    cfg.GracePeriod,
	}
}

func (g *ExportGenerator) BuildExportRequest(state entity.State, size int) (dto.RenderRequest, error) {
	if !ValidExportSize(size) {
		return dto.RenderRequest{}, fmt.Errorf("%w: %d", errorz.ErrUnsupportedSize, size)
	}
	return BuildRenderRequest(state.Style, payload.Encode(state.Type, state.Fields), size), nil
}

// Export renders state and writes it to w in the requested format.
func (g *ExportGenerator) Export(ctx context.Context, state entity.State, opts ExportOptions, w io.Writer) error {
	if !slices.Contains(qr.Formats, opts.Format) {
		return fmt.Errorf("%w: %q", errorz.ErrUnsupportedFormat, opts.Format)
	}
	img, err := g.render(ctx, state, opts.Size)
	if err != nil {
		return err
	}
	if err := img.Encode(w, opts.Format); err != nil {
		return fmt.Errorf("encode %s: %w", opts.Format, err)
	}
	g.recordDownload(ctx, opts.SnapshotID, opts.Format)
	return nil
}

// ExportBundle renders once and serializes every requested format in parallel. It records
// no downloads; see RecordDownloads.
func (g *ExportGenerator) ExportBundle(ctx context.Context, state entity.State, size int, formats []qr.Format) (map[qr.Format][]byte, error) {
	for _, f := range formats {
		if !slices.Contains(qr.Formats, f) {
			return nil, fmt.Errorf("%w: %q", errorz.ErrUnsupportedFormat, f)
		}
	}
	img, err := g.render(ctx, state, size)
	if err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		out = make(map[qr.Format][]byte, len(formats))
	)
	eg, _ := errgroup.WithContext(ctx)
	for _, f := range formats {
		f := f
		eg.Go(func() error {
			var buf bytes.Buffer
			if err := img.Encode(&buf, f); err != nil {
				return fmt.Errorf("encode %s: %w", f, err)
			}
			mu.Lock()
			out[f] = buf.Bytes()
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordDownloads counts a bundle against a saved code. Call it once the files have been
// handed to the user.
func (g *ExportGenerator) RecordDownloads(ctx context.Context, snapshotID string, formats []qr.Format) {
	for _, f := range formats {
		g.recordDownload(ctx, snapshotID, f)
	}
}

// ExportCalendar returns the .ics companion of an event-type code.
func (g *ExportGenerator) ExportCalendar(state entity.State) ([]byte, error) {
	if state.Type != entity.TypeEvent {
		return nil, fmt.Errorf("%w: calendar export needs an event code, got %s", errorz.ErrUnsupportedFormat, state.Type)
	}
	return calendar.EventToICS(state.Fields, time.Now())
}

func (g *ExportGenerator) render(ctx context.Context, state entity.State, size int) (RenderedImage, error) {
	req, err := g.BuildExportRequest(state, size)
	if err != nil {
		return nil, err
	}
	img, err := g.renderer.Render(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	// The logo may still be loading. Give it the grace period, then serialize whatever is
	// drawn so far.
	timer := time.NewTimer(g.grace)
	defer timer.Stop()
	select {
	case <-img.Ready():
	case <-timer.C:
		g.logger.Warnf("logo not ready after %s, exporting without waiting", g.grace)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return img, nil
}

// recordDownload bumps the counter of a saved code. A failure here does not fail the
// download the user already has.
func (g *ExportGenerator) recordDownload(ctx context.Context, id string, format qr.Format) {
	if id == "" || g.history == nil {
		return
	}
	if err := g.history.RecordDownload(ctx, id, format); err != nil {
		g.logger.Errorf("(snapshot: %s) failed to record %s download: %v", id, format, err)
	}
}
