package fx

import "errors"

// Errors shared by operations and the dispatch layer.
var (
	// ErrInvalidConfiguration is returned by Validate when an operation's
	// options are malformed (wrong type, out of domain). It is raised before
	// any renderer state is touched.
	ErrInvalidConfiguration = errors.New("fx: invalid configuration")

	// ErrUnsupportedRenderer is returned by Render when the renderer
	// satisfies neither the GPU nor the surface execution capability.
	ErrUnsupportedRenderer = errors.New("fx: renderer supports no execution path")
)

// Operation is a single image-processing step in a pipeline.
//
// Operations are stateless with respect to the renderer: Render acts purely
// by mutating the renderer's surface/texture state and returns no value.
// An operation either completes fully or fails before mutating anything;
// there is no partial-completion recovery (a mid-path backend failure is
// fatal to the pipeline run).
type Operation interface {
	// Name returns the registry identifier of the operation ("rotation").
	Name() string

	// Validate checks the configured options without side effects.
	// It fails with an error wrapping ErrInvalidConfiguration and must be
	// consulted before any surface mutation.
	Validate() error

	// Render executes the operation against the renderer, dispatching to
	// the execution path matching the renderer's capability set.
	Render(r Renderer) error
}
