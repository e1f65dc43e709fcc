// Package fn implements the scalar function engine: function descriptors,
// domain-validity predicates, the unary/binary/variadic dispatchers and the
// name registry the planner binds against.
//
// Dispatch is stateless and thread-safe per invocation: a call reads only
// its input columns and descriptor and writes a newly allocated output
// column. The one exception is the lazily bound sine implementation, whose
// first-use resolution is synchronized exactly once (see sine.go).
package fn

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/quokkadb/quokka/internal/column"
	qerrors "github.com/quokkadb/quokka/internal/errors"
)

// Nullability is a descriptor's null-derivation policy.
type Nullability int

const (
	// Total functions never introduce nulls beyond pre-existing input nulls.
	Total Nullability = iota
	// ConditionallyNullable functions additionally null every row whose raw
	// input fails the domain-validity predicate.
	ConditionallyNullable
)

// Kernel executes a function over argument columns of logical row count
// rows, producing a freshly allocated output column.
type Kernel func(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error)

// Descriptor is the static identity of an operation: canonical name, fixed
// arity, nullability policy and implementation. Descriptors are registered
// once at process start and read-only afterwards.
type Descriptor struct {
	name        string
	arity       int
	nullability Nullability
	kernel      Kernel
}

// NewDescriptor builds a descriptor. Arity is fixed; variadic-with-declared
// argument-types functions register the declared count.
func NewDescriptor(name string, arity int, nullability Nullability, kernel Kernel) *Descriptor {
	return &Descriptor{name: name, arity: arity, nullability: nullability, kernel: kernel}
}

// Name returns the canonical function name.
func (d *Descriptor) Name() string { return d.name }

// Arity returns the declared argument count.
func (d *Descriptor) Arity() int { return d.arity }

// Nullability returns the descriptor's null-derivation policy.
func (d *Descriptor) Nullability() Nullability { return d.nullability }

// Execute validates the call shape and runs the kernel. Structural failures
// (arity, row-count mismatch, unsupported operand types inside the kernel)
// return an error; domain-invalid rows become nulls, never errors.
func (d *Descriptor) Execute(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
	if len(args) != d.arity {
		return nil, qerrors.NewArityError(d.name, d.arity, len(args))
	}
	if rows < 0 {
		return nil, qerrors.NewInvalidInputError(d.name, "negative row count")
	}
	for _, a := range args {
		if a == nil {
			return nil, qerrors.NewInvalidInputError(d.name, "nil argument column")
		}
		if a.Len() != rows {
			return nil, qerrors.NewInvalidInputError(d.name, "argument row count does not match batch")
		}
	}
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return d.kernel(args, rows, mem)
}
