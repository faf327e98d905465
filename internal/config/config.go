// Package config loads JSON pipeline descriptions for the fx CLI.
//
// A description names the renderer backend and the operation chain:
//
//	{
//	    "backend": "wgpu",
//	    "operations": [
//	        {"name": "rotation", "options": {"degrees": 90}},
//	        {"name": "flip", "options": {"axis": "horizontal"}}
//	    ]
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gogpu/fx"
)

// Pipeline is a decoded pipeline description.
type Pipeline struct {
	// Backend names the renderer backend. Empty selects the best available.
	Backend string `json:"backend,omitempty"`

	// Operations are applied in order.
	Operations []OperationSpec `json:"operations"`
}

// OperationSpec is one operation entry: the registry name and its options.
type OperationSpec struct {
	Name    string     `json:"name"`
	Options fx.Options `json:"options,omitempty"`
}

// Load reads a JSON pipeline description from path.
func Load(path string) (Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Pipeline{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a JSON pipeline description.
func Parse(data []byte) (Pipeline, error) {
	var p Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		return Pipeline{}, err
	}
	return p, nil
}

// Build resolves the description into a runnable pipeline through the
// operation registry. Unknown operation names and malformed options fail
// here, before any renderer exists. Registry and configuration errors stay
// reachable through errors.Is/As.
func (p Pipeline) Build() (*fx.Pipeline, error) {
	ops := make([]fx.Operation, 0, len(p.Operations))
	for i, spec := range p.Operations {
		if spec.Name == "" {
			return nil, fmt.Errorf("config: operation %d has no name", i)
		}
		op, err := fx.NewOperation(spec.Name, spec.Options)
		if err != nil {
			return nil, fmt.Errorf("config: operation %d (%s): %w", i, spec.Name, err)
		}
		ops = append(ops, op)
	}
	return fx.NewPipeline(ops...), nil
}
