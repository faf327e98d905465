// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fx

// Surface is the rendering target abstraction shared by both backends.
//
// A Surface carries the logical pixel dimensions the pipeline operates on.
// For the software backend it owns the pixel storage; for the GPU backend it
// is dimension metadata over the renderer's texture set.
//
// Surfaces are NOT thread-safe. The renderer's surface belongs exclusively
// to the pipeline for the duration of a run.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int
}

// ResizableSurface is an optional interface for surfaces that support
// resizing. Operations that swap dimensions require it on the GPU path.
type ResizableSurface interface {
	Surface

	// Resize changes the surface dimensions. Existing content may be
	// discarded or preserved depending on implementation.
	Resize(width, height int) error
}

// ContextSurface is an optional interface for surfaces that expose an
// immediate-mode drawing context. The surface execution path requires it.
type ContextSurface interface {
	Surface

	// Context returns the surface's drawing context.
	Context() Context
}

// Context is the immediate-mode drawing capability consumed by the surface
// execution path. It keeps an affine transform stack; Save/Restore bracket
// temporary transforms so an operation never leaks state into the next one.
type Context interface {
	// Save pushes the current transform onto the state stack.
	Save()

	// Restore pops the most recently saved transform.
	Restore()

	// Translate moves the origin by (dx, dy) in current user space.
	Translate(dx, dy float64)

	// Rotate turns user space by angle radians, clockwise for positive
	// angles in the y-down coordinate system.
	Rotate(angle float64)

	// Scale scales user space by (sx, sy). Negative factors mirror.
	Scale(sx, sy float64)

	// DrawSurface draws src with its top-left corner at (dx, dy) in user
	// space, through the current transform.
	DrawSurface(src Surface, dx, dy float64) error
}
