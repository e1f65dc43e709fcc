package fn_test

import (
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quokkadb/quokka/internal/column"
	"github.com/quokkadb/quokka/internal/fn"
	"github.com/quokkadb/quokka/internal/testutil"
	"github.com/quokkadb/quokka/internal/types"
)

func TestPow(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	base := column.FromFloat64s(mem.Allocator, []float64{2, 10, 5}, nil)
	defer base.Release()
	exponent := column.FromFloat64s(mem.Allocator, []float64{10, 3, 0}, nil)
	defer exponent.Release()

	out := evalFn(t, "pow", base, exponent)
	defer out.Release()

	testutil.AssertFloat64Column(t, out, []float64{1024, 1000, 1})
}

func TestAtan2(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	y := column.FromFloat64s(mem.Allocator, []float64{1, -1, 0}, nil)
	defer y.Release()
	x := column.FromFloat64s(mem.Allocator, []float64{1, 1, 1}, nil)
	defer x.Release()

	out := evalFn(t, "atan2", y, x)
	defer out.Release()

	testutil.AssertFloat64Column(t, out, []float64{math.Pi / 4, -math.Pi / 4, 0})
}

func TestLog_ChangeOfBase(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	base := column.FromFloat64s(mem.Allocator, []float64{2, 10, 3}, nil)
	defer base.Release()
	arg := column.FromFloat64s(mem.Allocator, []float64{8, 1000, 81}, nil)
	defer arg.Release()

	out := evalFn(t, "log", base, arg)
	defer out.Release()

	testutil.AssertFloat64Column(t, out, []float64{3, 3, 4})
}

func TestLog_InvalidPairsBecomeNull(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	tests := []struct {
		name     string
		base     []float64
		arg      []float64
		expected []float64
	}{
		{
			name:     "base one",
			base:     []float64{1, 1 + 1e-12, 2},
			arg:      []float64{8, 8, 8},
			expected: []float64{null, null, 3},
		},
		{
			name:     "non-positive base",
			base:     []float64{0, -2, 2},
			arg:      []float64{8, 8, 8},
			expected: []float64{null, null, 3},
		},
		{
			name:     "non-positive argument",
			base:     []float64{2, 2, 2},
			arg:      []float64{0, -1, 8},
			expected: []float64{null, null, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := column.FromFloat64s(mem.Allocator, tt.base, nil)
			defer base.Release()
			arg := column.FromFloat64s(mem.Allocator, tt.arg, nil)
			defer arg.Release()

			out := evalFn(t, "log", base, arg)
			defer out.Release()

			testutil.AssertFloat64Column(t, out, tt.expected)
		})
	}
}

// The bulk path (one constant operand) and the per-row path (two varying
// operands) must agree cell for cell on identical logical inputs, nulls
// included.
func TestLog_BulkAndScalarPathsAgree(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	args := []float64{-1, 0, 0.5, 1, 2, 8, 1024}
	bases := []float64{-1, 0, 0.5, 1, 1 + 1e-12, 2, 10}

	for _, b := range bases {
		constBase := column.ConstFloat64(mem.Allocator, b, len(args))
		vecBase := column.FromFloat64s(mem.Allocator, repeat(b, len(args)), nil)
		vecArgs := column.FromFloat64s(mem.Allocator, args, nil)

		bulk := evalFn(t, "log", constBase, vecArgs)
		scalar := evalFn(t, "log", vecBase, vecArgs)

		for i := range args {
			assert.Equal(t, scalar.IsNull(i), bulk.IsNull(i),
				"null disagreement at log(%v, %v)", b, args[i])
			if !scalar.IsNull(i) {
				assert.InDelta(t, scalar.Float64(i), bulk.Float64(i), 1e-12,
					"value disagreement at log(%v, %v)", b, args[i])
			}
		}

		bulk.Release()
		scalar.Release()
		constBase.Release()
		vecBase.Release()
		vecArgs.Release()
	}
}

func TestLog_ConstantArgumentBulkPath(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	bases := column.FromFloat64s(mem.Allocator, []float64{2, 4, 1, 0}, nil)
	defer bases.Release()
	arg := column.ConstFloat64(mem.Allocator, 16, 4)
	defer arg.Release()

	out := evalFn(t, "log", bases, arg)
	defer out.Release()

	testutil.AssertFloat64Column(t, out, []float64{4, 2, null, null})
}

func TestLog_NullScalarNullsWholeBatch(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	base := column.ConstNullFloat64(mem.Allocator, 3)
	defer base.Release()
	arg := column.FromFloat64s(mem.Allocator, []float64{2, 4, 8}, nil)
	defer arg.Release()

	out := evalFn(t, "log", base, arg)
	defer out.Release()

	testutil.AssertAllNull(t, out)
}

func TestBinary_ConstantPair(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	base := column.ConstFloat64(mem.Allocator, 2, 512)
	defer base.Release()
	arg := column.ConstFloat64(mem.Allocator, 8, 512)
	defer arg.Release()

	out := evalFn(t, "log", base, arg)
	defer out.Release()

	testutil.AssertConstant(t, out, 512)
	assert.InDelta(t, 3.0, out.Float64(511), 1e-12)

	// Invalid constant pair broadcasts a null.
	one := column.ConstFloat64(mem.Allocator, 1, 512)
	defer one.Release()
	invalid := evalFn(t, "log", one, arg)
	defer invalid.Release()
	testutil.AssertConstant(t, invalid, 512)
	testutil.AssertAllNull(t, invalid)
}

func TestBinary_NullPropagation(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	left := column.FromFloat64s(mem.Allocator, []float64{2, 2, 2}, []bool{true, false, true})
	defer left.Release()
	right := column.FromFloat64s(mem.Allocator, []float64{3, 3, 3}, []bool{true, true, false})
	defer right.Release()

	out := evalFn(t, "pow", left, right)
	defer out.Release()

	testutil.AssertFloat64Column(t, out, []float64{8, null, null})
}

func TestBinary_DecimalOperandRejected(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	b := array.NewDecimal128Builder(mem.Allocator, &arrow.Decimal128Type{Precision: 38, Scale: 0})
	defer b.Release()
	b.Append(decimal128.FromI64(5))
	arr := b.NewArray()
	defer arr.Release()

	dec, err := column.NewConst(types.DecimalOf(types.Decimal128, 38, 0), arr, 2)
	require.NoError(t, err)
	defer dec.Release()

	other := column.FromFloat64s(mem.Allocator, []float64{1, 2}, nil)
	defer other.Release()

	d, err := fn.Default().Resolve("pow")
	require.NoError(t, err)

	_, err = d.Execute([]*column.Column{dec, other}, 2, mem.Allocator)
	assert.Error(t, err)
	_, err = d.Execute([]*column.Column{other, dec}, 2, mem.Allocator)
	assert.Error(t, err)
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
