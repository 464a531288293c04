package service

import (
	"context"
	"sync"
	"time"

	"github.com/Badsnus/qrgen-studio/internal/domain/dto"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/internal/domain/payload"
	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
)

const (
	DefaultPreviewSize     = 300
	DefaultPreviewDebounce = 300 * time.Millisecond
)

// Clock schedules delayed calls. The real clock is backed by time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns the wall clock.
func RealClock() Clock {
	return realClock{}
}

// DisplayTarget is where the preview is shown. The controller is its only writer.
type DisplayTarget interface {
	Clear()
	Mount(img RenderedImage, req dto.RenderRequest)
}

type PreviewConfig struct {
	Size     int
	Debounce time.Duration
}

// PreviewController owns the editable state and keeps the preview in sync with it.
// Changes are debounced on the trailing edge: every change cancels the pending rebuild
// and schedules a new one, so a burst of edits yields one rebuild of the final state.
type PreviewController struct {
	renderer Renderer
	target   DisplayTarget
	clock    Clock
	logger   *types.Logger
	debounce time.Duration

	mu       sync.Mutex
	ctx      context.Context
	state    entity.State
	size     int
	entitled bool
	mounted  bool
	closed   bool
	pending  Timer
	// generation invalidates callbacks of timers that were stopped too late.
	generation uint64

	// renderMu serializes rebuilds so the target sees Clear/Mount pairs in order.
	renderMu sync.Mutex
}

func NewPreviewController(
	renderer Renderer,
	target DisplayTarget,
	clock Clock,
	logger *types.Logger,
	cfg PreviewConfig,
	initial entity.State,
) *PreviewController {
	if cfg.Size <= 0 {
		cfg.Size = DefaultPreviewSize
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultPreviewDebounce
	}
	if clock == nil {
		clock = RealClock()
	}
	if initial.Fields == nil {
		initial.Fields = entity.FormFields{}
	}
	return &PreviewController{
		renderer: renderer,
		target:   target,
		clock:    clock,
		logger:   logger,
		debounce: cfg.Debounce,
		ctx:      context.Background(),
		state:    initial.Clone(),
		size:     cfg.Size,
	}
}

// Mount renders the current state immediately and starts reacting to changes.
// Changes made before Mount only update the state.
func (c *PreviewController) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.ctx = ctx
	c.mu.Unlock()

	c.rebuild()
}

// Update applies fn to the state and schedules a rebuild.
func (c *PreviewController) Update(fn func(s *entity.State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	fn(&c.state)
	if c.state.Fields == nil {
		c.state.Fields = entity.FormFields{}
	}
	c.state.Style.Normalize()
	c.scheduleLocked()
}

// SetType switches the QR type. Field values are kept so switching back restores them.
func (c *PreviewController) SetType(t entity.QRType) {
	c.Update(func(s *entity.State) { s.Type = t })
}

func (c *PreviewController) SetField(name, value string) {
	c.Update(func(s *entity.State) { s.Fields[name] = value })
}

func (c *PreviewController) SetStyle(style entity.StyleConfig) {
	c.Update(func(s *entity.State) { s.Style = style })
}

func (c *PreviewController) ApplyPreset(p entity.Preset) {
	c.Update(func(s *entity.State) { s.Style.ApplyPreset(p) })
}

// SetEntitled switches between the placeholder and the real payload.
func (c *PreviewController) SetEntitled(entitled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.entitled == entitled {
		return
	}
	c.entitled = entitled
	c.scheduleLocked()
}

// SetPreviewSize changes the on-screen size only. Export sizes are chosen per export.
func (c *PreviewController) SetPreviewSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || size <= 0 || size == c.size {
		return
	}
	c.size = size
	c.scheduleLocked()
}

// Flush runs a pending rebuild now instead of waiting out the debounce.
func (c *PreviewController) Flush() {
	c.mu.Lock()
	if c.closed || c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.pending.Stop()
	c.pending = nil
	c.generation++
	c.mu.Unlock()

	c.rebuild()
}

// Close cancels a pending rebuild. Later changes are ignored.
func (c *PreviewController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.generation++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// State returns a copy of the current state.
func (c *PreviewController) State() entity.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *PreviewController) PreviewSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Request returns the render request the next rebuild would use.
func (c *PreviewController) Request() dto.RenderRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestLocked()
}

func (c *PreviewController) scheduleLocked() {
	if !c.mounted {
		return
	}
	if c.pending != nil {
		c.pending.Stop()
	}
	c.generation++
	gen := c.generation
	c.pending = c.clock.AfterFunc(c.debounce, func() { c.fire(gen) })
}

func (c *PreviewController) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.mu.Unlock()

	c.rebuild()
}

// rebuild discards the previous render and draws the state as it is now.
func (c *PreviewController) rebuild() {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	req := c.requestLocked()
	ctx := c.ctx
	c.mu.Unlock()

	c.target.Clear()
	img, err := c.renderer.Render(ctx, req)
	if err != nil {
		c.logger.Errorf("preview render failed (size %d): %v", req.Size, err)
		return
	}
	c.target.Mount(img, req)
}

func (c *PreviewController) requestLocked() dto.RenderRequest {
	return BuildRenderRequest(c.state.Style, previewPayload(c.state, c.entitled), c.size)
}

// previewPayload withholds the real scan target until the user is entitled. Without any
// data there is nothing to withhold and the encoder's own fallback is shown.
func previewPayload(s entity.State, entitled bool) string {
	if !entitled && payload.HasData(s.Type, s.Fields) {
		return payload.Placeholder(s.Type)
	}
	return payload.Encode(s.Type, s.Fields)
}
