// Package quokka provides the scalar-expression evaluation core of a
// columnar analytical query executor: type-aware math and type-generic
// functions applied to batches of columnar data with null propagation,
// numeric promotion and constant-batch exploitation. This package is the
// sole public API of the library.
package quokka

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/quokkadb/quokka/internal/column"
	"github.com/quokkadb/quokka/internal/exec"
	"github.com/quokkadb/quokka/internal/fn"
)

// Column is a batch of same-typed values with an optional null bitmap and an
// optional constant flag.
type Column = column.Column

// Batch is a set of named columns sharing one row count.
type Batch = exec.Batch

// Function is the resolved identity of a registered scalar function.
type Function struct {
	d *fn.Descriptor
}

// Name returns the function's canonical name.
func (f *Function) Name() string { return f.d.Name() }

// Arity returns the function's declared argument count.
func (f *Function) Arity() int { return f.d.Arity() }

// Resolve looks a function up by name or alias in the process registry.
func Resolve(name string) (*Function, error) {
	d, err := fn.Default().Resolve(name)
	if err != nil {
		return nil, err
	}
	return &Function{d: d}, nil
}

// FunctionNames lists every registered name, aliases included.
func FunctionNames() []string {
	return fn.Default().Names()
}

// FromFloat64s builds a Float64 column; valid may be nil when no row is null.
func FromFloat64s(mem memory.Allocator, values []float64, valid []bool) *Column {
	return column.FromFloat64s(mem, values, valid)
}

// FromInt64s builds an Int64 column; valid may be nil when no row is null.
func FromInt64s(mem memory.Allocator, values []int64, valid []bool) *Column {
	return column.FromInt64s(mem, values, valid)
}

// FromStrings builds a String column; valid may be nil when no row is null.
func FromStrings(mem memory.Allocator, values []string, valid []bool) *Column {
	return column.FromStrings(mem, values, valid)
}

// ConstFloat64 builds a constant Float64 column broadcasting v to length rows.
func ConstFloat64(mem memory.Allocator, v float64, length int) *Column {
	return column.ConstFloat64(mem, v, length)
}

// ConstInt64 builds a constant Int64 column broadcasting v to length rows.
func ConstInt64(mem memory.Allocator, v int64, length int) *Column {
	return column.ConstInt64(mem, v, length)
}

// NewBatch creates an empty batch with the given row count.
func NewBatch(rows int) *Batch {
	return exec.NewBatch(rows)
}

// Executor evaluates registered functions over column batches. It is safe
// for concurrent use.
type Executor struct {
	ex *exec.Executor
}

// NewExecutor creates an executor; a nil allocator uses the Go allocator.
func NewExecutor(mem memory.Allocator) *Executor {
	return &Executor{ex: exec.NewExecutor(mem)}
}

// Eval executes the named function over args with the given row count.
func (e *Executor) Eval(name string, args []*Column, rows int) (*Column, error) {
	return e.ex.Eval(name, args, rows)
}

// EvalInto evaluates fnName over named argument columns of b and binds the
// output to result.
func (e *Executor) EvalInto(b *Batch, result, fnName string, argNames ...string) error {
	return e.ex.EvalInto(b, result, fnName, argNames...)
}
