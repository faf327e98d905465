package fx

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Shared in-memory renderer fakes. They record the protocol calls an
// operation makes so tests can assert on exact call ordering.

// fakeTexture implements Texture with mutable dimensions.
type fakeTexture struct {
	label  string
	width  int
	height int
	format TextureFormat
}

func (t *fakeTexture) Label() string         { return t.label }
func (t *fakeTexture) Width() int            { return t.width }
func (t *fakeTexture) Height() int           { return t.height }
func (t *fakeTexture) Format() TextureFormat { return t.format }

// fakeGPUSurface implements ResizableSurface and records resizes.
type fakeGPUSurface struct {
	width, height int
	trace         *[]string
}

func (s *fakeGPUSurface) Width() int  { return s.width }
func (s *fakeGPUSurface) Height() int { return s.height }

func (s *fakeGPUSurface) Resize(w, h int) error {
	s.width, s.height = w, h
	*s.trace = append(*s.trace, fmt.Sprintf("resize:%dx%d", w, h))
	return nil
}

// fakeGPURenderer implements GPURenderer over two tracked textures with
// ping-pong input promotion, mirroring the real wgpu backend's contract.
type fakeGPURenderer struct {
	surface  *fakeGPUSurface
	input    *fakeTexture
	scratch  *fakeTexture
	trace    []string
	passes   []ShaderPass
	allocErr error
	passErr  error
}

func newFakeGPURenderer(w, h int) *fakeGPURenderer {
	r := &fakeGPURenderer{
		input:   &fakeTexture{label: "tex0", width: w, height: h, format: TextureFormatRGBA8},
		scratch: &fakeTexture{label: "tex1", width: w, height: h, format: TextureFormatRGBA8},
	}
	r.surface = &fakeGPUSurface{width: w, height: h, trace: &r.trace}
	return r
}

func (r *fakeGPURenderer) Identifier() string { return "fake-gpu" }
func (r *fakeGPURenderer) Surface() Surface   { return r.surface }
func (r *fakeGPURenderer) Close() error       { return nil }

func (r *fakeGPURenderer) LoadImage(image.Image) error { return errors.New("not implemented") }
func (r *fakeGPURenderer) Snapshot() (*image.RGBA, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeGPURenderer) Device() DeviceHandle  { return nil }
func (r *fakeGPURenderer) InputTexture() Texture { return r.input }
func (r *fakeGPURenderer) Textures() []Texture   { return []Texture{r.input, r.scratch} }

func (r *fakeGPURenderer) AllocateTexture(t Texture, w, h int, format TextureFormat) error {
	if r.allocErr != nil {
		return r.allocErr
	}
	ft, ok := t.(*fakeTexture)
	if !ok || (ft != r.input && ft != r.scratch) {
		return errors.New("untracked texture")
	}
	ft.width, ft.height, ft.format = w, h, format
	r.trace = append(r.trace, fmt.Sprintf("alloc:%s:%dx%d", ft.label, w, h))
	return nil
}

func (r *fakeGPURenderer) RunShaderPass(pass ShaderPass) error {
	if r.passErr != nil {
		return r.passErr
	}
	r.trace = append(r.trace, "pass")
	r.passes = append(r.passes, pass)
	r.input, r.scratch = r.scratch, r.input
	return nil
}

// fakeContext records drawing-context calls.
type fakeContext struct {
	trace []string
}

func (c *fakeContext) Save()    { c.trace = append(c.trace, "save") }
func (c *fakeContext) Restore() { c.trace = append(c.trace, "restore") }

func (c *fakeContext) Translate(dx, dy float64) {
	c.trace = append(c.trace, fmt.Sprintf("translate:%g,%g", dx, dy))
}

func (c *fakeContext) Rotate(angle float64) {
	c.trace = append(c.trace, fmt.Sprintf("rotate:%.4f", angle))
}

func (c *fakeContext) Scale(sx, sy float64) {
	c.trace = append(c.trace, fmt.Sprintf("scale:%g,%g", sx, sy))
}

func (c *fakeContext) DrawSurface(src Surface, dx, dy float64) error {
	c.trace = append(c.trace, fmt.Sprintf("draw:%dx%d@%g,%g", src.Width(), src.Height(), dx, dy))
	return nil
}

// fakeCPUSurface implements ContextSurface.
type fakeCPUSurface struct {
	width, height int
	ctx           *fakeContext
}

func (s *fakeCPUSurface) Width() int       { return s.width }
func (s *fakeCPUSurface) Height() int      { return s.height }
func (s *fakeCPUSurface) Context() Context { return s.ctx }

// fakeCPURenderer implements SurfaceRenderer backed by an image.RGBA, enough
// for both the surface protocol and the Snapshot/LoadImage path.
type fakeCPURenderer struct {
	active  *fakeCPUSurface
	img     *image.RGBA
	created []*fakeCPUSurface
	set     []Surface
}

func newFakeCPURenderer(w, h int) *fakeCPURenderer {
	return &fakeCPURenderer{
		active: &fakeCPUSurface{width: w, height: h, ctx: &fakeContext{}},
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

func (r *fakeCPURenderer) Identifier() string { return "fake-cpu" }
func (r *fakeCPURenderer) Surface() Surface   { return r.active }
func (r *fakeCPURenderer) Close() error       { return nil }

func (r *fakeCPURenderer) LoadImage(img image.Image) error {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	r.img = dst
	r.active = &fakeCPUSurface{width: b.Dx(), height: b.Dy(), ctx: &fakeContext{}}
	return nil
}

func (r *fakeCPURenderer) Snapshot() (*image.RGBA, error) {
	dst := image.NewRGBA(r.img.Bounds())
	copy(dst.Pix, r.img.Pix)
	return dst, nil
}

func (r *fakeCPURenderer) NewSurface(w, h int) (Surface, error) {
	s := &fakeCPUSurface{width: w, height: h, ctx: &fakeContext{}}
	r.created = append(r.created, s)
	return s, nil
}

func (r *fakeCPURenderer) CloneSurface() (Surface, error) {
	return &fakeCPUSurface{width: r.active.width, height: r.active.height, ctx: &fakeContext{}}, nil
}

func (r *fakeCPURenderer) SetSurface(s Surface) error {
	r.set = append(r.set, s)
	if cs, ok := s.(*fakeCPUSurface); ok {
		r.active = cs
	}
	return nil
}

// fakeBareRenderer satisfies Renderer but neither execution capability.
type fakeBareRenderer struct{}

func (fakeBareRenderer) Identifier() string             { return "bare" }
func (fakeBareRenderer) Surface() Surface               { return nil }
func (fakeBareRenderer) LoadImage(image.Image) error    { return nil }
func (fakeBareRenderer) Snapshot() (*image.RGBA, error) { return nil, errors.New("no content") }
func (fakeBareRenderer) Close() error                   { return nil }

// Compile-time capability checks for the fakes.
var (
	_ GPURenderer      = (*fakeGPURenderer)(nil)
	_ SurfaceRenderer  = (*fakeCPURenderer)(nil)
	_ Renderer         = fakeBareRenderer{}
	_ ResizableSurface = (*fakeGPUSurface)(nil)
	_ ContextSurface   = (*fakeCPUSurface)(nil)
)
