// Package imaging is the UltraCanvas image pipeline: lazily decoded
// images, backend-ready pixmaps derived at a requested size and fit
// mode, and the two cooperating byte-budget LRU caches that sit
// between them.
//
// The decoded-image cache holds raw source bytes plus dimension
// metadata keyed by origin (file path or memory blob). The pixmap
// cache holds derived pixel buffers keyed by origin plus the requested
// (width, height, fit) triple. The caches evict independently; a
// pixmap-cache miss re-runs the decode-and-resize pipeline from the
// decoded entry (or from disk if that was evicted too).
//
// Cache methods are safe for concurrent use, so background goroutines
// may decode ahead of the UI thread. Everything else in the package is
// plain value plumbing.
package imaging
