// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fx

import (
	"sort"
	"sync"
)

// OperationFactory builds an operation from loose options.
// Factories should normalize options eagerly and return descriptive errors;
// domain checks that must run at pipeline time belong in Validate.
type OperationFactory func(opts Options) (Operation, error)

var (
	opsMu sync.RWMutex
	ops   = make(map[string]OperationFactory)
)

// RegisterOperation adds an operation factory under a unique name.
// Built-in operations register themselves in init; registering an existing
// name replaces the previous factory.
func RegisterOperation(name string, factory OperationFactory) {
	opsMu.Lock()
	defer opsMu.Unlock()
	ops[name] = factory
}

// NewOperation builds a registered operation from options.
func NewOperation(name string, opts Options) (Operation, error) {
	opsMu.RLock()
	factory, ok := ops[name]
	opsMu.RUnlock()

	if !ok {
		return nil, &OperationNotFoundError{Name: name}
	}
	return factory(opts)
}

// OperationNames returns all registered operation names, sorted.
func OperationNames() []string {
	opsMu.RLock()
	defer opsMu.RUnlock()

	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OperationNotFoundError indicates a named operation is not registered.
type OperationNotFoundError struct {
	Name string
}

func (e *OperationNotFoundError) Error() string {
	return "fx: operation not found: " + e.Name
}
