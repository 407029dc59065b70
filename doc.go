// Package uc is the UltraCanvas core runtime: windows, a widget tree,
// an event pump, and a 2D vector drawing abstraction bound to native
// backends.
//
// # Overview
//
// uc turns a tree of UI elements into correctly ordered pixels and
// correctly dispatched events. The runtime is single-threaded and
// cooperative: all UI state is owned by the goroutine that calls
// [App.Run]. Background goroutines hand work back to the UI thread by
// posting events with [App.PostEvent].
//
// # Quick Start
//
//	import "github.com/ultracanvas/uc"
//
//	app, err := uc.Initialize(uc.NewHeadlessPlatform())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Shutdown()
//
//	win, _ := app.CreateWindow("demo", 800, 600)
//	win.AddChild(myElement)
//	win.Show()
//	app.Run()
//
// # Architecture
//
// The module is organized into:
//   - Public API: App, Window, Container, Element, Event, DrawContext
//   - imaging: decoded-image and pixmap caches with fit modes
//   - raster: a pure-Go software DrawContext
//   - textarea: the multi-line text editing widget
//   - cache: byte-budget LRU used by the image pipeline
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Element bounds are in the parent's coordinate space
//   - Angles in radians
package uc

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
