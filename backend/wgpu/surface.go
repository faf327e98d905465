package wgpu

import (
	"fmt"

	"github.com/gogpu/fx"
)

// Surface carries the renderer's logical dimensions. The pixel storage lives
// in the tracked textures; Resize updates the metadata only, texture
// reallocation is the operation protocol's job.
type Surface struct {
	width  int
	height int
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Resize changes the logical dimensions. Tracked textures are untouched.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("wgpu: invalid surface dimensions %dx%d", width, height)
	}
	s.width = width
	s.height = height
	return nil
}

var (
	_ fx.Surface          = (*Surface)(nil)
	_ fx.ResizableSurface = (*Surface)(nil)
)
