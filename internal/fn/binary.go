package fn

import (
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/quokkadb/quokka/internal/column"
	qerrors "github.com/quokkadb/quokka/internal/errors"
	"github.com/quokkadb/quokka/internal/types"
)

// binaryOp describes a two-argument function with forced floating promotion:
// both operands promote to float64 regardless of native type and decimal
// operands are disallowed. The result is always Float64.
type binaryOp struct {
	name  string
	apply func(a, b float64) float64
	// invalid classifies an operand pair as producing an undefined result;
	// nil means the function is total. The same predicate serves the bulk
	// and the scalar paths so they cannot diverge.
	invalid func(a, b float64) bool
	// wholeBatchInvalid reports whether a constant operand alone makes every
	// row of the batch invalid, letting the bulk path fill the null bitmap
	// once instead of testing per row.
	wholeBatchInvalid func(v float64, isLeft bool) bool
}

// applyScalar is the per-row form used when both operands vary. It reports
// the computed cell and whether the pair was domain-invalid.
func (op *binaryOp) applyScalar(a, b float64) (float64, bool) {
	if op.invalid != nil && op.invalid(a, b) {
		return 0, true
	}
	return op.apply(a, b), false
}

// applyBulk is the whole-column vectorized form: vec holds the varying
// operand, scalar the constant one (on the left when scalarOnLeft). Nulls
// already present in nulls are preserved; domain failures are added to it.
// Both forms produce identical results for identical logical inputs.
func (op *binaryOp) applyBulk(vec []float64, scalar float64, scalarOnLeft bool, out []float64, nulls *column.Bitmap) {
	if op.wholeBatchInvalid != nil && op.wholeBatchInvalid(scalar, scalarOnLeft) {
		nulls.Fill(true)
		return
	}
	for i, v := range vec {
		if nulls.Get(i) {
			continue
		}
		a, b := scalar, v
		if !scalarOnLeft {
			a, b = v, scalar
		}
		if op.invalid != nil && op.invalid(a, b) {
			nulls.Set(i)
			continue
		}
		out[i] = op.apply(a, b)
	}
}

// floatsOf materializes a column's values and null bitmap as plain slices
// for the bulk path.
func floatsOf(c *column.Column, rows int) ([]float64, *column.Bitmap, error) {
	get, err := c.Floats()
	if err != nil {
		return nil, nil, err
	}
	vals := make([]float64, rows)
	nulls := column.NewBitmap(rows)
	for i := 0; i < rows; i++ {
		if c.IsNull(i) {
			nulls.Set(i)
			continue
		}
		vals[i] = get(i)
	}
	return vals, nulls, nil
}

// kernel dispatches over the four operand shapes. Constant inputs are never
// materialized to full length unless the result representation requires it:
// constant-vs-constant evaluates once and broadcasts.
func (op *binaryOp) kernel(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
	left, right := args[0], args[1]
	for _, c := range []*column.Column{left, right} {
		if c.Kind().IsDecimal() || c.Kind() == types.Int128 {
			return nil, qerrors.NewUnsupportedTypeError(op.name, c.Type().String())
		}
	}
	lf, err := left.Floats()
	if err != nil {
		return nil, qerrors.NewUnsupportedTypeError(op.name, left.Type().String())
	}
	rf, err := right.Floats()
	if err != nil {
		return nil, qerrors.NewUnsupportedTypeError(op.name, right.Type().String())
	}

	b := array.NewFloat64Builder(mem)
	defer b.Release()

	if left.Constant() && right.Constant() {
		if left.IsNull(0) || right.IsNull(0) {
			b.AppendNull()
		} else if v, null := op.applyScalar(lf(0), rf(0)); null {
			b.AppendNull()
		} else {
			b.Append(v)
		}
		return column.NewConst(types.Of(types.Float64), b.NewArray(), rows)
	}

	if left.Constant() != right.Constant() {
		// Bulk path: one varying operand, one scalar.
		varying, scalar := left, right
		scalarOnLeft := false
		if left.Constant() {
			varying, scalar = right, left
			scalarOnLeft = true
		}
		vals, nulls, err := floatsOf(varying, rows)
		if err != nil {
			return nil, qerrors.NewInternalError("Execute", err)
		}
		out := make([]float64, rows)
		if scalar.IsNull(0) {
			nulls.Fill(true)
		} else {
			var sv float64
			if scalarOnLeft {
				sv = lf(0)
			} else {
				sv = rf(0)
			}
			op.applyBulk(vals, sv, scalarOnLeft, out, nulls)
		}
		b.AppendValues(out, nulls.Valid())
		return column.New(types.Of(types.Float64), b.NewArray())
	}

	// Scalar path: both operands vary.
	b.Reserve(rows)
	for i := 0; i < rows; i++ {
		if left.IsNull(i) || right.IsNull(i) {
			b.AppendNull()
			continue
		}
		v, null := op.applyScalar(lf(i), rf(i))
		if null {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return column.New(types.Of(types.Float64), b.NewArray())
}
