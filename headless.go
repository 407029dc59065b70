package uc

import (
	"sync"
	"time"
)

// HeadlessPlatform is an in-process Platform with no display server:
// windows are backed by recording contexts, events are injected
// programmatically, and the clipboard is in-memory. It drives the
// full pump in tests, tools, and CI.
type HeadlessPlatform struct {
	mu         sync.Mutex
	pending    []Event
	nextHandle NativeHandle
	wake       chan struct{}
	clip       MemoryClipboard

	// NewContext allows plugging a different context factory (the
	// software rasterizer, for example). Defaults to recording
	// contexts.
	NewContext func(width, height int) DrawContext
}

// NewHeadlessPlatform creates a headless platform.
func NewHeadlessPlatform() *HeadlessPlatform {
	return &HeadlessPlatform{
		wake: make(chan struct{}, 1),
	}
}

// Name identifies the backend.
func (p *HeadlessPlatform) Name() string { return "headless" }

// CreateWindow allocates a handle and a context.
func (p *HeadlessPlatform) CreateWindow(title string, width, height int) (NativeHandle, DrawContext, error) {
	p.mu.Lock()
	p.nextHandle++
	handle := p.nextHandle
	p.mu.Unlock()

	factory := p.NewContext
	if factory == nil {
		factory = func(w, h int) DrawContext { return NewRecordingContext(w, h) }
	}
	return handle, factory(width, height), nil
}

func (p *HeadlessPlatform) DestroyWindow(NativeHandle)          {}
func (p *HeadlessPlatform) ShowWindow(NativeHandle, bool)       {}
func (p *HeadlessPlatform) SetWindowTitle(NativeHandle, string) {}

// Inject queues an event as if the native layer produced it. Safe to
// call from any goroutine.
func (p *HeadlessPlatform) Inject(ev Event) {
	p.mu.Lock()
	p.pending = append(p.pending, ev)
	p.mu.Unlock()
	p.Wake()
}

// PollEvents drains injected events in FIFO order.
func (p *HeadlessPlatform) PollEvents(post func(Event)) {
	p.mu.Lock()
	batch := p.pending
	p.pending = nil
	p.mu.Unlock()
	for _, ev := range batch {
		post(ev)
	}
}

// WaitEvents blocks until an injection, a wake, or the timeout.
func (p *HeadlessPlatform) WaitEvents(timeout time.Duration) {
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	select {
	case <-p.wake:
	case <-time.After(timeout):
	}
}

// Wake unblocks WaitEvents.
func (p *HeadlessPlatform) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Clipboard returns the in-memory clipboard.
func (p *HeadlessPlatform) Clipboard() Clipboard { return &p.clip }

// Shutdown releases nothing; headless windows are plain memory.
func (p *HeadlessPlatform) Shutdown() {}

var _ Platform = (*HeadlessPlatform)(nil)
