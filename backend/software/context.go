package software

import (
	"fmt"

	"github.com/gogpu/fx"
	intimage "github.com/gogpu/fx/internal/image"
)

// Context is an immediate-mode drawing context over a software surface.
//
// It maintains a current affine transform and a Save/Restore stack.
// Transform methods post-multiply, so the most recently applied transform
// acts first on drawn geometry, matching the usual 2D canvas convention.
type Context struct {
	surface   *Surface
	transform intimage.Affine
	stack     []intimage.Affine
}

func newContext(s *Surface) *Context {
	return &Context{
		surface:   s,
		transform: intimage.Identity(),
	}
}

// Save pushes the current transform onto the state stack.
func (c *Context) Save() {
	c.stack = append(c.stack, c.transform)
}

// Restore pops the most recently saved transform. Restoring with an empty
// stack resets the transform to identity.
func (c *Context) Restore() {
	if n := len(c.stack); n > 0 {
		c.transform = c.stack[n-1]
		c.stack = c.stack[:n-1]
		return
	}
	c.transform = intimage.Identity()
}

// Translate moves the user-space origin by (dx, dy).
func (c *Context) Translate(dx, dy float64) {
	c.transform = c.transform.Multiply(intimage.Translate(dx, dy))
}

// Rotate turns user space by angle radians, clockwise for positive angles
// in the y-down coordinate system.
func (c *Context) Rotate(angle float64) {
	c.transform = c.transform.Multiply(intimage.Rotate(angle))
}

// Scale scales user space by (sx, sy). Negative factors mirror.
func (c *Context) Scale(sx, sy float64) {
	c.transform = c.transform.Multiply(intimage.Scale(sx, sy))
}

// DrawSurface draws src with its top-left corner at (dx, dy) in user space,
// composited source-over through the current transform.
//
// Pixel-aligned transforms (90-degree turns, mirrors, whole-pixel
// translations) are drawn with nearest sampling and are lossless; every
// other transform samples bilinearly.
func (c *Context) DrawSurface(src fx.Surface, dx, dy float64) error {
	from, ok := src.(*Surface)
	if !ok {
		return fmt.Errorf("software: cannot draw %T onto a software surface", src)
	}

	m := c.transform.Multiply(intimage.Translate(dx, dy))
	interp := intimage.InterpBilinear
	if m.IsPixelAligned() {
		interp = intimage.InterpNearest
	}
	return intimage.Draw(c.surface.buf, from.buf, m, interp)
}

var _ fx.Context = (*Context)(nil)
