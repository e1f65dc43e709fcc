package fn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quokkadb/quokka/internal/column"
	"github.com/quokkadb/quokka/internal/fn"
	"github.com/quokkadb/quokka/internal/testutil"
)

// null marks an expected null cell in float assertions.
var null = math.NaN()

func evalFn(t *testing.T, name string, inputs ...*column.Column) *column.Column {
	t.Helper()

	d, err := fn.Default().Resolve(name)
	require.NoError(t, err)

	rows := 0
	if len(inputs) > 0 {
		rows = inputs[0].Len()
	}
	out, err := d.Execute(inputs, rows, nil)
	require.NoError(t, err)
	return out
}

func TestUnaryMath_TotalFunctions(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	tests := []struct {
		name     string
		inputs   []float64
		expected []float64
	}{
		{"sin", []float64{0, math.Pi / 2}, []float64{0, 1}},
		{"cos", []float64{0, math.Pi}, []float64{1, -1}},
		{"tan", []float64{0, math.Pi / 4}, []float64{0, 1}},
		{"atan", []float64{0, 1}, []float64{0, math.Pi / 4}},
		{"sinh", []float64{0, 1}, []float64{0, math.Sinh(1)}},
		{"cosh", []float64{0, 1}, []float64{1, math.Cosh(1)}},
		{"tanh", []float64{0, 1}, []float64{0, math.Tanh(1)}},
		{"asinh", []float64{0, 1}, []float64{0, math.Asinh(1)}},
		{"exp", []float64{0, 1}, []float64{1, math.E}},
		{"cbrt", []float64{8, -27}, []float64{2, -3}},
		{"cot", []float64{math.Pi / 4}, []float64{1}},
		{"sec", []float64{0}, []float64{1}},
		{"cosec", []float64{math.Pi / 2}, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := column.FromFloat64s(mem.Allocator, tt.inputs, nil)
			defer in.Release()

			out := evalFn(t, tt.name, in)
			defer out.Release()

			testutil.AssertFloat64Column(t, out, tt.expected)
		})
	}
}

func TestUnaryMath_DomainInvalidBecomesNull(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	tests := []struct {
		name     string
		inputs   []float64
		expected []float64
	}{
		{"sqrt", []float64{4, -1, 0}, []float64{2, null, 0}},
		{"asin", []float64{1, 2, -2, 0}, []float64{math.Pi / 2, null, null, 0}},
		{"acos", []float64{1, 2, -2}, []float64{0, null, null}},
		{"acosh", []float64{1, 0.5}, []float64{0, null}},
		{"atanh", []float64{0, 1, -1}, []float64{0, null, null}},
		{"ln", []float64{math.E, 0, -1}, []float64{1, null, null}},
		{"log2", []float64{8, 0}, []float64{3, null}},
		{"log10", []float64{1000, -5}, []float64{3, null}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := column.FromFloat64s(mem.Allocator, tt.inputs, nil)
			defer in.Release()

			out := evalFn(t, tt.name, in)
			defer out.Release()

			testutil.AssertFloat64Column(t, out, tt.expected)
		})
	}
}

func TestUnaryMath_NullPassthrough(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	in := column.FromFloat64s(mem.Allocator, []float64{1, 0, 4}, []bool{true, false, true})
	defer in.Release()

	out := evalFn(t, "sqrt", in)
	defer out.Release()

	testutil.AssertFloat64Column(t, out, []float64{1, null, 2})
}

func TestUnaryMath_IntegerInputPromotes(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	in := column.FromInt64s(mem.Allocator, []int64{0, 1, 4}, nil)
	defer in.Release()

	out := evalFn(t, "sqrt", in)
	defer out.Release()

	testutil.AssertFloat64Column(t, out, []float64{0, 1, 2})
}

func TestUnaryMath_StringRejected(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	in := column.FromStrings(mem.Allocator, []string{"x"}, nil)
	defer in.Release()

	d, err := fn.Default().Resolve("sin")
	require.NoError(t, err)
	_, err = d.Execute([]*column.Column{in}, 1, mem.Allocator)
	assert.Error(t, err)
}

func TestUnaryMath_ConstantInput(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	t.Run("valid constant broadcasts", func(t *testing.T) {
		in := column.ConstFloat64(mem.Allocator, 9, 128)
		defer in.Release()

		out := evalFn(t, "sqrt", in)
		defer out.Release()

		testutil.AssertConstant(t, out, 128)
		assert.InDelta(t, 3.0, out.Float64(0), 1e-12)
		assert.InDelta(t, 3.0, out.Float64(127), 1e-12)
	})

	t.Run("invalid constant is null everywhere", func(t *testing.T) {
		in := column.ConstFloat64(mem.Allocator, -1, 64)
		defer in.Release()

		out := evalFn(t, "sqrt", in)
		defer out.Release()

		testutil.AssertConstant(t, out, 64)
		testutil.AssertAllNull(t, out)
	})

	t.Run("constant equals per-row result", func(t *testing.T) {
		constIn := column.ConstFloat64(mem.Allocator, 2.5, 4)
		defer constIn.Release()
		vecIn := column.FromFloat64s(mem.Allocator, []float64{2.5, 2.5, 2.5, 2.5}, nil)
		defer vecIn.Release()

		constOut := evalFn(t, "exp", constIn)
		defer constOut.Release()
		vecOut := evalFn(t, "exp", vecIn)
		defer vecOut.Release()

		for i := range 4 {
			assert.InDelta(t, vecOut.Float64(i), constOut.Float64(i), 1e-12, "row %d", i)
		}
	})
}

func TestConstants(t *testing.T) {
	out := evalFn(t, "pi")
	defer out.Release()
	// Zero-argument call yields an empty constant column; row count comes
	// from the caller.
	assert.True(t, out.Constant())

	d, err := fn.Default().Resolve("pi")
	require.NoError(t, err)
	pi, err := d.Execute(nil, 3, nil)
	require.NoError(t, err)
	defer pi.Release()
	assert.Equal(t, 3, pi.Len())
	assert.InDelta(t, math.Pi, pi.Float64(2), 1e-12)

	d, err = fn.Default().Resolve("e")
	require.NoError(t, err)
	e, err := d.Execute(nil, 1, nil)
	require.NoError(t, err)
	defer e.Release()
	assert.InDelta(t, math.E, e.Float64(0), 1e-12)
}

func TestAliases_ProduceIdenticalResults(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	base := column.FromFloat64s(mem.Allocator, []float64{2, 3, 10}, nil)
	defer base.Release()
	exponent := column.FromFloat64s(mem.Allocator, []float64{3, 2, 0.5}, nil)
	defer exponent.Release()

	want := evalFn(t, "pow", base, exponent)
	defer want.Release()

	for _, alias := range []string{"power", "dpow", "fpow"} {
		t.Run(alias, func(t *testing.T) {
			got := evalFn(t, alias, base, exponent)
			defer got.Release()
			for i := range 3 {
				assert.InDelta(t, want.Float64(i), got.Float64(i), 1e-12, "row %d", i)
			}
		})
	}
}
