package uc

import "time"

// Platform is the capability set a native backend supplies: window
// creation keyed by opaque handles, an event collector the pump
// drains, a blocking wait for idle iterations, and the clipboard.
//
// The core depends only on this interface; concrete X11, Win32, and
// Cocoa backends live outside the module.
type Platform interface {
	// Name identifies the backend ("x11", "win32", "headless").
	Name() string

	// CreateWindow creates a native window and a render context bound
	// to it.
	CreateWindow(title string, width, height int) (NativeHandle, DrawContext, error)

	// DestroyWindow releases the native window.
	DestroyWindow(handle NativeHandle)

	// ShowWindow maps or unmaps the window.
	ShowWindow(handle NativeHandle, visible bool)

	// SetWindowTitle updates the native title bar.
	SetWindowTitle(handle NativeHandle, title string)

	// PollEvents drains pending native events, pushing each through
	// post. Called once per pump iteration.
	PollEvents(post func(Event))

	// WaitEvents blocks until an event arrives, Wake is called, or
	// the timeout elapses. Called when the queue is empty to avoid
	// busy-spinning.
	WaitEvents(timeout time.Duration)

	// Wake unblocks a concurrent WaitEvents call. Safe to call from
	// any goroutine.
	Wake()

	// Clipboard returns the platform clipboard.
	Clipboard() Clipboard

	// Shutdown releases backend resources.
	Shutdown()
}
