package software

import (
	"github.com/gogpu/fx"
	intimage "github.com/gogpu/fx/internal/image"
)

// Surface is a CPU surface backed by a premultiplied RGBA8 pixel buffer.
// It exposes an immediate-mode drawing context, which is what operations
// on the surface execution path render through.
type Surface struct {
	buf *intimage.ImageBuf
	ctx *Context
}

// NewSurface creates a transparent surface with the given dimensions.
func NewSurface(width, height int) (*Surface, error) {
	buf, err := intimage.NewImageBuf(width, height)
	if err != nil {
		return nil, err
	}
	return newSurface(buf), nil
}

// newSurface wraps an existing pixel buffer. The surface takes ownership.
func newSurface(buf *intimage.ImageBuf) *Surface {
	s := &Surface{buf: buf}
	s.ctx = newContext(s)
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.buf.Width()
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.buf.Height()
}

// Context returns the surface's drawing context. The context is created
// with the surface and lives as long as it does.
func (s *Surface) Context() fx.Context {
	return s.ctx
}

// Verify Surface implements the surface execution contracts.
var (
	_ fx.Surface        = (*Surface)(nil)
	_ fx.ContextSurface = (*Surface)(nil)
)
