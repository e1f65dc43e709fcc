package fn

import (
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/quokkadb/quokka/internal/column"
	qerrors "github.com/quokkadb/quokka/internal/errors"
	"github.com/quokkadb/quokka/internal/types"
)

// totalFloat builds a kernel for a total unary elementary function: row-wise
// float64 in, float64 out, no nulls beyond pre-existing input nulls. Range
// overflow follows native floating-point semantics; IEEE Inf/NaN results are
// stored, not converted to null.
func totalFloat(name string, f func(float64) float64) Kernel {
	return func(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
		in := args[0]
		get, err := in.Floats()
		if err != nil {
			return nil, qerrors.NewUnsupportedTypeError(name, in.Type().String())
		}

		b := array.NewFloat64Builder(mem)
		defer b.Release()

		if in.Constant() {
			// A constant input evaluates once and broadcasts the result.
			if in.IsNull(0) {
				b.AppendNull()
			} else {
				b.Append(f(get(0)))
			}
			return column.NewConst(types.Of(types.Float64), b.NewArray(), rows)
		}

		b.Reserve(rows)
		for i := 0; i < rows; i++ {
			if in.IsNull(i) {
				b.AppendNull()
				continue
			}
			b.Append(f(get(i)))
		}
		return column.New(types.Of(types.Float64), b.NewArray())
	}
}

// nullableFloat builds a kernel for a conditionally nullable unary function:
// the validity predicate is evaluated against the raw input before the
// transform, and a failing row becomes null with its cell left zero-valued.
// The output is always Float64 and always logically nullable.
func nullableFloat(name string, invalid func(float64) bool, f func(float64) float64) Kernel {
	return func(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
		in := args[0]
		get, err := in.Floats()
		if err != nil {
			return nil, qerrors.NewUnsupportedTypeError(name, in.Type().String())
		}

		b := array.NewFloat64Builder(mem)
		defer b.Release()

		if in.Constant() {
			if in.IsNull(0) || invalid(get(0)) {
				b.AppendNull()
			} else {
				b.Append(f(get(0)))
			}
			return column.NewConst(types.Of(types.Float64), b.NewArray(), rows)
		}

		b.Reserve(rows)
		for i := 0; i < rows; i++ {
			if in.IsNull(i) {
				b.AppendNull()
				continue
			}
			v := get(i)
			if invalid(v) {
				b.AppendNull()
				continue
			}
			b.Append(f(v))
		}
		return column.New(types.Of(types.Float64), b.NewArray())
	}
}

// constFloat builds a zero-argument kernel producing a constant Float64
// column (the e and pi functions).
func constFloat(value float64) Kernel {
	return func(_ []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.Append(value)
		return column.NewConst(types.Of(types.Float64), b.NewArray(), rows)
	}
}
