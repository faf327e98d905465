package software

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/fx"
	intimage "github.com/gogpu/fx/internal/image"
)

// Name is the registry identifier of this backend.
const Name = "software"

// Priority is the backend's registry priority. Software sits below GPU
// backends so auto-selection prefers hardware when it is available.
const Priority = 10

// poolBucketCap bounds how many released buffers the renderer retains per
// dimension pair. Pipelines ping-pong between at most a few same-sized
// surfaces, so a small cap captures all the reuse.
const poolBucketCap = 4

// ErrRendererClosed is returned by renderer methods after Close.
var ErrRendererClosed = errors.New("software: renderer is closed")

func init() {
	fx.RegisterRenderer(Name, Priority, func() (fx.Renderer, error) {
		return New()
	}, nil)
}

// Renderer executes operations on the CPU through the surface execution
// path. It owns the active surface and recycles released pixel buffers
// through an internal pool.
//
// Renderers are not safe for concurrent use; each pipeline run owns its
// renderer exclusively.
type Renderer struct {
	surface *Surface
	pool    *intimage.Pool
	closed  bool
}

// New creates a software renderer. The renderer starts with a transparent
// 1x1 surface; LoadImage replaces it with real content.
func New() (*Renderer, error) {
	r := &Renderer{pool: intimage.NewPool(poolBucketCap)}
	surf, err := r.NewSurface(1, 1)
	if err != nil {
		return nil, err
	}
	r.surface = surf.(*Surface)
	return r, nil
}

// Identifier returns the backend name, "software".
func (r *Renderer) Identifier() string {
	return Name
}

// Surface returns the active surface.
func (r *Renderer) Surface() fx.Surface {
	if r.surface == nil {
		return nil
	}
	return r.surface
}

// LoadImage replaces the active surface with the image's pixels, resizing
// to the image bounds. Non-RGBA images are converted through the standard
// color model, premultiplying alpha.
func (r *Renderer) LoadImage(img image.Image) error {
	if r.closed {
		return ErrRendererClosed
	}
	if img == nil {
		return errors.New("software: nil image")
	}

	buf, err := intimage.FromImage(img)
	if err != nil {
		return fmt.Errorf("software: load image: %w", err)
	}

	prev := r.surface
	r.surface = newSurface(buf)
	if prev != nil {
		r.pool.Put(prev.buf)
	}
	return nil
}

// Snapshot copies the active surface into a standard library image.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	if r.closed {
		return nil, ErrRendererClosed
	}
	return r.surface.buf.ToRGBA(), nil
}

// NewSurface allocates a fresh, transparent surface of the given size. The
// surface is not active until SetSurface installs it.
func (r *Renderer) NewSurface(width, height int) (fx.Surface, error) {
	if r.closed {
		return nil, ErrRendererClosed
	}
	buf := r.pool.Get(width, height)
	if buf == nil {
		return nil, fmt.Errorf("software: invalid surface dimensions %dx%d", width, height)
	}
	return newSurface(buf), nil
}

// CloneSurface returns a copy of the active surface's pixels.
func (r *Renderer) CloneSurface() (fx.Surface, error) {
	if r.closed {
		return nil, ErrRendererClosed
	}
	cur := r.surface.buf
	buf := r.pool.Get(cur.Width(), cur.Height())
	if buf == nil {
		return nil, fmt.Errorf("software: invalid surface dimensions %dx%d", cur.Width(), cur.Height())
	}
	// Every buffer this renderer hands out uses packed rows, so the raw
	// byte copy preserves the pixel layout.
	copy(buf.Data(), cur.Data())
	return newSurface(buf), nil
}

// SetSurface replaces the active surface. The previous surface's buffer
// returns to the pool; callers must not use it afterwards.
func (r *Renderer) SetSurface(s fx.Surface) error {
	if r.closed {
		return ErrRendererClosed
	}
	next, ok := s.(*Surface)
	if !ok {
		return fmt.Errorf("software: cannot adopt %T as the active surface", s)
	}

	prev := r.surface
	r.surface = next
	if prev != nil && prev != next {
		r.pool.Put(prev.buf)
	}
	return nil
}

// Close releases the renderer's surface. Idempotent; all other methods
// fail after Close.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.surface = nil
	r.pool = nil
	return nil
}

// Verify Renderer implements the surface execution capability.
var _ fx.SurfaceRenderer = (*Renderer)(nil)
