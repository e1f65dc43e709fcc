package fn

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/decimal256"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"golang.org/x/exp/constraints"

	"github.com/quokkadb/quokka/internal/column"
	qerrors "github.com/quokkadb/quokka/internal/errors"
	"github.com/quokkadb/quokka/internal/types"
)

// Kind-generic unary arithmetic: sign, abs, negative, positive, radians,
// degrees and the binary-string conversion. Result tags come from the type
// lattice; kernels switch on the input's physical representation.

// reader is the subset of a typed Arrow array a kernel loop reads.
type reader[T any] interface {
	Value(int) T
	IsNull(int) bool
}

// appender is the subset of a typed Arrow builder a kernel loop writes.
type appender[R any] interface {
	Append(R)
	AppendNull()
}

// mapRows applies f over n physical rows, passing input nulls through.
func mapRows[T, R any](src reader[T], dst appender[R], n int, f func(T) R) {
	for i := 0; i < n; i++ {
		if src.IsNull(i) {
			dst.AppendNull()
			continue
		}
		dst.Append(f(src.Value(i)))
	}
}

// dispatchUnary runs build over the input's physical storage (a single row
// for a constant column) and wraps the produced array in a fresh column of
// outType with the input's shape.
func dispatchUnary(in *column.Column, rows int, outType types.Type, mem memory.Allocator,
	build func(src arrow.Array, n int, dst array.Builder) error) (*column.Column, error) {

	src := in.Array()
	defer src.Release()

	n := rows
	if in.Constant() {
		n = 1
	}

	dst := array.NewBuilder(mem, outType.Arrow())
	defer dst.Release()
	if err := build(src, n, dst); err != nil {
		return nil, err
	}
	out := dst.NewArray()
	if in.Constant() {
		return column.NewConst(outType, out, rows)
	}
	return column.New(outType, out)
}

func signOf[T constraints.Signed | constraints.Float](v T) int8 {
	switch {
	case v < 0:
		return -1
	case v == 0:
		return 0
	default:
		return 1
	}
}

// signKernel maps every numeric kind to Int8 in {-1, 0, 1}. The unsigned
// domain (boolean) never produces -1.
func signKernel(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
	in := args[0]
	if !in.Kind().IsNumeric() {
		return nil, qerrors.NewUnsupportedTypeError("sign", in.Type().String())
	}
	return dispatchUnary(in, rows, types.Of(types.Int8), mem, func(src arrow.Array, n int, dst array.Builder) error {
		out := dst.(*array.Int8Builder)
		switch a := src.(type) {
		case *array.Boolean:
			for i := 0; i < n; i++ {
				if a.IsNull(i) {
					out.AppendNull()
					continue
				}
				if a.Value(i) {
					out.Append(1)
				} else {
					out.Append(0)
				}
			}
		case *array.Int8:
			mapRows(a, out, n, signOf[int8])
		case *array.Int16:
			mapRows(a, out, n, signOf[int16])
		case *array.Int32:
			mapRows(a, out, n, signOf[int32])
		case *array.Int64:
			mapRows(a, out, n, signOf[int64])
		case *array.Decimal32:
			mapRows(a, out, n, signOf[decimal.Decimal32])
		case *array.Decimal64:
			mapRows(a, out, n, signOf[decimal.Decimal64])
		case *array.Decimal128:
			mapRows(a, out, n, func(v decimal128.Num) int8 { return int8(v.Sign()) })
		case *array.Decimal256:
			mapRows(a, out, n, func(v decimal256.Num) int8 { return int8(v.Sign()) })
		case *array.Float32:
			mapRows(a, out, n, signOf[float32])
		case *array.Float64:
			mapRows(a, out, n, signOf[float64])
		default:
			return qerrors.NewUnsupportedTypeError("sign", in.Type().String())
		}
		return nil
	})
}

func negate[T constraints.Signed | constraints.Float](v T) T {
	return -v
}

// negativeKernel negates every numeric kind except the unsigned boolean tag,
// keeping the input's type per the unary lattice mapping.
func negativeKernel(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
	in := args[0]
	if !in.Kind().IsNumeric() || in.Kind() == types.Boolean {
		return nil, qerrors.NewUnsupportedTypeError("negative", in.Type().String())
	}
	return dispatchUnary(in, rows, in.Type(), mem, func(src arrow.Array, n int, dst array.Builder) error {
		switch a := src.(type) {
		case *array.Int8:
			mapRows(a, dst.(*array.Int8Builder), n, negate[int8])
		case *array.Int16:
			mapRows(a, dst.(*array.Int16Builder), n, negate[int16])
		case *array.Int32:
			mapRows(a, dst.(*array.Int32Builder), n, negate[int32])
		case *array.Int64:
			mapRows(a, dst.(*array.Int64Builder), n, negate[int64])
		case *array.Decimal32:
			mapRows(a, dst.(*array.Decimal32Builder), n, negate[decimal.Decimal32])
		case *array.Decimal64:
			mapRows(a, dst.(*array.Decimal64Builder), n, negate[decimal.Decimal64])
		case *array.Decimal128:
			mapRows(a, dst.(*array.Decimal128Builder), n, func(v decimal128.Num) decimal128.Num { return v.Negate() })
		case *array.Decimal256:
			mapRows(a, dst.(*array.Decimal256Builder), n, func(v decimal256.Num) decimal256.Num { return v.Negate() })
		case *array.Float32:
			mapRows(a, dst.(*array.Float32Builder), n, negate[float32])
		case *array.Float64:
			mapRows(a, dst.(*array.Float64Builder), n, negate[float64])
		default:
			return qerrors.NewUnsupportedTypeError("negative", in.Type().String())
		}
		return nil
	})
}

// positiveKernel is the identity over the numeric domain; the output shares
// the input's immutable storage.
func positiveKernel(args []*column.Column, rows int, _ memory.Allocator) (*column.Column, error) {
	in := args[0]
	if _, err := types.UnaryResult(in.Kind()); err != nil {
		return nil, qerrors.NewUnsupportedTypeError("positive", in.Type().String())
	}
	arr := in.Array()
	if in.Constant() {
		return column.NewConst(in.Type(), arr, rows)
	}
	return column.New(in.Type(), arr)
}

// absWiden widens first, then negates, so the minimum representable input
// cannot overflow.
func absWiden[T constraints.Signed, R constraints.Signed](v T) R {
	w := R(v)
	if w < 0 {
		w = -w
	}
	return w
}

func absSame[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// absKernel computes absolute value with the lattice's magnitude widening:
// signed integers widen one step, decimals and floats keep their type.
func absKernel(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
	in := args[0]
	outKind, err := types.AbsResult(in.Kind())
	if err != nil {
		return nil, qerrors.NewUnsupportedTypeError("abs", in.Type().String())
	}

	// Unsigned input maps to itself.
	if in.Kind() == types.Boolean {
		return positiveKernel(args, rows, mem)
	}

	outType := types.Of(outKind)
	if outKind.IsDecimal() && in.Kind().IsDecimal() {
		outType = in.Type()
	}

	return dispatchUnary(in, rows, outType, mem, func(src arrow.Array, n int, dst array.Builder) error {
		switch a := src.(type) {
		case *array.Int8:
			mapRows(a, dst.(*array.Int16Builder), n, absWiden[int8, int16])
		case *array.Int16:
			mapRows(a, dst.(*array.Int32Builder), n, absWiden[int16, int32])
		case *array.Int32:
			mapRows(a, dst.(*array.Int64Builder), n, absWiden[int32, int64])
		case *array.Int64:
			mapRows(a, dst.(*array.Decimal128Builder), n, func(v int64) decimal128.Num {
				w := decimal128.FromI64(v)
				if v < 0 {
					w = w.Negate()
				}
				return w
			})
		case *array.Decimal32:
			mapRows(a, dst.(*array.Decimal32Builder), n, absSame[decimal.Decimal32])
		case *array.Decimal64:
			mapRows(a, dst.(*array.Decimal64Builder), n, absSame[decimal.Decimal64])
		case *array.Decimal128:
			// Covers both Int128 and Decimal128 storage.
			mapRows(a, dst.(*array.Decimal128Builder), n, func(v decimal128.Num) decimal128.Num {
				if v.Sign() < 0 {
					return v.Negate()
				}
				return v
			})
		case *array.Decimal256:
			mapRows(a, dst.(*array.Decimal256Builder), n, func(v decimal256.Num) decimal256.Num {
				if v.Sign() < 0 {
					return v.Negate()
				}
				return v
			})
		case *array.Float32:
			mapRows(a, dst.(*array.Float32Builder), n, absSame[float32])
		case *array.Float64:
			mapRows(a, dst.(*array.Float64Builder), n, math.Abs)
		default:
			return qerrors.NewUnsupportedTypeError("abs", in.Type().String())
		}
		return nil
	})
}

func scaleBy[T constraints.Signed | constraints.Float](factor float64) func(T) T {
	return func(v T) T {
		return T(float64(v) * factor)
	}
}

// scaleKernel implements radians/degrees: multiply by a fixed factor and
// cast back to the input's type. Integer inputs truncate; decimal inputs are
// outside the kernel's physical domain (the planner casts them to double).
func scaleKernel(name string, factor float64) Kernel {
	return func(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
		in := args[0]
		if !in.Kind().IsSignedInteger() && !in.Kind().IsFloat() {
			return nil, qerrors.NewUnsupportedTypeError(name, in.Type().String())
		}
		return dispatchUnary(in, rows, in.Type(), mem, func(src arrow.Array, n int, dst array.Builder) error {
			switch a := src.(type) {
			case *array.Int8:
				mapRows(a, dst.(*array.Int8Builder), n, scaleBy[int8](factor))
			case *array.Int16:
				mapRows(a, dst.(*array.Int16Builder), n, scaleBy[int16](factor))
			case *array.Int32:
				mapRows(a, dst.(*array.Int32Builder), n, scaleBy[int32](factor))
			case *array.Int64:
				mapRows(a, dst.(*array.Int64Builder), n, scaleBy[int64](factor))
			case *array.Float32:
				mapRows(a, dst.(*array.Float32Builder), n, scaleBy[float32](factor))
			case *array.Float64:
				mapRows(a, dst.(*array.Float64Builder), n, scaleBy[float64](factor))
			default:
				return qerrors.NewUnsupportedTypeError(name, in.Type().String())
			}
			return nil
		})
	}
}

// binString renders v's two's-complement bit pattern with no leading zeros;
// bin(0) is "0" and bin(-1) is 64 one-bits.
func binString(v int64) string {
	n := uint64(v)
	var buf [64]byte
	i := len(buf)
	for {
		i--
		buf[i] = '0' + byte(n&1)
		n >>= 1
		if n == 0 {
			break
		}
	}
	return string(buf[i:])
}

// binKernel converts integer values to their base-2 string representation.
func binKernel(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
	in := args[0]
	get, err := in.Ints()
	if err != nil {
		return nil, qerrors.NewUnsupportedTypeError("bin", in.Type().String())
	}

	b := array.NewStringBuilder(mem)
	defer b.Release()

	if in.Constant() {
		if in.IsNull(0) {
			b.AppendNull()
		} else {
			b.Append(binString(get(0)))
		}
		return column.NewConst(types.Of(types.String), b.NewArray(), rows)
	}

	for i := 0; i < rows; i++ {
		if in.IsNull(i) {
			b.AppendNull()
			continue
		}
		b.Append(binString(get(i)))
	}
	return column.New(types.Of(types.String), b.NewArray())
}
