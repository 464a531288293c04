package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Badsnus/qrgen-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen-studio/internal/domain/dto"
	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	qr "github.com/Badsnus/qrgen-studio/pkg/qrcode"
)

// manualClock fires timers only when Advance is called.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs every timer that became due, in order.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

func (c *manualClock) active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type fakeImage struct {
	ready chan struct{}
	data  string
}

func readyImage(data string) *fakeImage {
	img := &fakeImage{ready: make(chan struct{}), data: data}
	close(img.ready)
	return img
}

func (i *fakeImage) Ready() <-chan struct{} { return i.ready }

func (i *fakeImage) Encode(w io.Writer, f qr.Format) error {
	_, err := io.WriteString(w, string(f)+":"+i.data)
	return err
}

type fakeRenderer struct {
	mu       sync.Mutex
	requests []dto.RenderRequest
	err      error
	// pending makes rendered images never become ready.
	pending bool
}

func (r *fakeRenderer) Render(_ context.Context, req dto.RenderRequest) (RenderedImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if r.err != nil {
		return nil, r.err
	}
	if r.pending {
		return &fakeImage{ready: make(chan struct{}), data: req.Data}, nil
	}
	return readyImage(req.Data), nil
}

func (r *fakeRenderer) calls() []dto.RenderRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dto.RenderRequest(nil), r.requests...)
}

type fakeTarget struct {
	mu      sync.Mutex
	clears  int
	mounted []dto.RenderRequest
}

func (t *fakeTarget) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clears++
}

func (t *fakeTarget) Mount(_ RenderedImage, req dto.RenderRequest) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mounted = append(t.mounted, req)
}

func (t *fakeTarget) mounts() []dto.RenderRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]dto.RenderRequest(nil), t.mounted...)
}

var errBackend = errors.New("backend down")

type memCodes struct {
	mu    sync.Mutex
	seq   int
	codes []*entity.QRCode
	err   error
	// failOn makes the n-th insert fail with errBackend.
	failOn int
}

func (m *memCodes) Create(_ context.Context, code *entity.QRCode) (*entity.QRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.insertErr(); err != nil {
		return nil, err
	}
	code.ID = fmt.Sprintf("code-%d", m.seq+1)
	m.insert(code)
	return code, nil
}

func (m *memCodes) CreateOnce(_ context.Context, code *entity.QRCode) (*entity.QRCode, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.codes {
		if c.ID == code.ID {
			cp := *c
			return &cp, false, nil
		}
	}
	if err := m.insertErr(); err != nil {
		return nil, false, err
	}
	m.insert(code)
	return code, true, nil
}

func (m *memCodes) insertErr() error {
	if m.err != nil {
		return m.err
	}
	if m.failOn > 0 && m.seq+1 == m.failOn {
		m.failOn = 0
		return errBackend
	}
	return nil
}

func (m *memCodes) insert(code *entity.QRCode) {
	m.seq++
	code.CreatedAt = time.Date(2026, 1, 1, 0, m.seq, 0, 0, time.UTC)
	m.codes = append(m.codes, code)
}

func (m *memCodes) Get(_ context.Context, id string) (*entity.QRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.codes {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (m *memCodes) GetByUser(_ context.Context, userID string, limit, offset int) ([]entity.QRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.QRCode
	for i := len(m.codes) - 1; i >= 0; i-- {
		if m.codes[i].UserID == userID {
			out = append(out, *m.codes[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memCodes) RecordDownload(_ context.Context, id string, format string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.codes {
		if c.ID == id {
			c.DownloadCount++
			c.LastDownloadedAt = &at
			if !slices.Contains(c.Formats, format) {
				c.Formats = append(c.Formats, format)
			}
			return nil
		}
	}
	return errorz.ErrNotFound
}

type memEvents struct {
	mu     sync.Mutex
	events []entity.Event
	err    error
}

func (m *memEvents) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.events = append(m.events, *event)
	return event, nil
}

func (m *memEvents) types() []entity.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.EventType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}
