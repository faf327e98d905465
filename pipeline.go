package fx

import (
	"fmt"
	"time"
)

// Pipeline is an ordered chain of operations applied to one renderer.
//
// A pipeline holds no renderer state of its own and can be reused across
// renderers and runs.
type Pipeline struct {
	operations []Operation
}

// NewPipeline creates a pipeline over the given operations.
func NewPipeline(operations ...Operation) *Pipeline {
	return &Pipeline{operations: operations}
}

// Add appends an operation to the pipeline.
func (p *Pipeline) Add(op Operation) {
	p.operations = append(p.operations, op)
}

// Operations returns the pipeline's operations in execution order.
func (p *Pipeline) Operations() []Operation {
	return p.operations
}

// Run validates every operation, then renders each in order against r.
//
// Validation of the whole chain happens before any operation mutates the
// renderer, so a misconfigured step never leaves partially-transformed
// state. The first render error aborts the run; there is no rollback and no
// retry, a failed run leaves the renderer in whatever state the failing
// operation reached.
func (p *Pipeline) Run(r Renderer) error {
	for _, op := range p.operations {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("%s: %w", op.Name(), err)
		}
	}

	log := Logger()
	for _, op := range p.operations {
		start := time.Now()
		if err := op.Render(r); err != nil {
			return fmt.Errorf("%s: %w", op.Name(), err)
		}
		log.Debug("operation complete",
			"op", op.Name(),
			"backend", r.Identifier(),
			"width", r.Surface().Width(),
			"height", r.Surface().Height(),
			"elapsed", time.Since(start))
	}
	return nil
}
