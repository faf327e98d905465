// Package fx provides a small image-processing pipeline for Go.
//
// # Overview
//
// fx applies chains of raster operations (rotation, flips, color matrices)
// to images. Every operation runs on two interchangeable backends: a pure Go
// software renderer and a GPU renderer built on gogpu/wgpu. Both backends
// produce byte-identical output for the built-in operations.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/fx"
//	    _ "github.com/gogpu/fx/backend/software"
//	)
//
//	r, err := fx.NewRenderer("")          // best available backend
//	if err != nil { ... }
//	defer r.Close()
//
//	r.LoadImage(src)
//	p := fx.NewPipeline(&fx.Rotation{Degrees: 90})
//	if err := p.Run(r); err != nil { ... }
//	out, err := r.Snapshot()
//
// # Architecture
//
// The library is organized into:
//   - Public API: Operation, Pipeline, Renderer capability interfaces, Matrix
//   - Backends: backend/software (CPU surfaces), backend/wgpu (WebGPU HAL)
//   - Internal: image (affine raster drawing)
//
// Backends register themselves on import; applications blank-import the ones
// they want available.
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Positive rotation angles turn clockwise
package fx

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
