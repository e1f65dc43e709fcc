// Package testutil provides common testing utilities to reduce code
// duplication across test files in the quokka function engine.
//
// It consolidates the patterns most tests repeat:
// - Memory allocator setup and cleanup
// - Typed column construction for every numeric width
// - Null-aware column assertions
package testutil

import (
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quokkadb/quokka/internal/column"
	"github.com/quokkadb/quokka/internal/types"
)

// defaultEpsilon is the tolerance used by float column assertions.
const defaultEpsilon = 1e-9

// TestMemoryContext provides a memory allocator with automatic cleanup.
type TestMemoryContext struct {
	Allocator memory.Allocator
	cleanup   func()
}

// Release performs cleanup of the memory context.
func (tmc *TestMemoryContext) Release() {
	if tmc.cleanup != nil {
		tmc.cleanup()
	}
}

// SetupMemoryTest creates a memory allocator with automatic cleanup for tests.
// Returns a TestMemoryContext that should be released with defer.
//
// Example usage:
//
//	mem := testutil.SetupMemoryTest(t)
//	defer mem.Release()
func SetupMemoryTest(tb testing.TB) *TestMemoryContext {
	tb.Helper()
	allocator := memory.NewGoAllocator()

	return &TestMemoryContext{
		Allocator: allocator,
		cleanup: func() {
			// Allocator cleanup is handled by the Go GC.
		},
	}
}

// Int8Column builds an Int8 column; valid may be nil when no row is null.
func Int8Column(mem memory.Allocator, values []int8, valid []bool) *column.Column {
	b := array.NewInt8Builder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	col, err := column.New(types.Of(types.Int8), b.NewArray())
	if err != nil {
		panic(err)
	}
	return col
}

// Int16Column builds an Int16 column; valid may be nil when no row is null.
func Int16Column(mem memory.Allocator, values []int16, valid []bool) *column.Column {
	b := array.NewInt16Builder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	col, err := column.New(types.Of(types.Int16), b.NewArray())
	if err != nil {
		panic(err)
	}
	return col
}

// Float32Column builds a Float32 column; valid may be nil when no row is null.
func Float32Column(mem memory.Allocator, values []float32, valid []bool) *column.Column {
	b := array.NewFloat32Builder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	col, err := column.New(types.Of(types.Float32), b.NewArray())
	if err != nil {
		panic(err)
	}
	return col
}

// BooleanColumn builds a Boolean column; valid may be nil when no row is null.
func BooleanColumn(mem memory.Allocator, values []bool, valid []bool) *column.Column {
	b := array.NewBooleanBuilder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	col, err := column.New(types.Of(types.Boolean), b.NewArray())
	if err != nil {
		panic(err)
	}
	return col
}

// AssertFloat64Column verifies the values and null placement of a Float64
// column. A NaN entry in expected asserts that the row is null.
func AssertFloat64Column(t *testing.T, col *column.Column, expected []float64) {
	t.Helper()

	require.NotNil(t, col, "result column should not be nil")
	require.Equal(t, types.Float64, col.Kind(), "result kind should be Float64")
	require.Equal(t, len(expected), col.Len(), "row count should match")

	get, err := col.Floats()
	require.NoError(t, err)

	for i, want := range expected {
		if math.IsNaN(want) {
			assert.True(t, col.IsNull(i), "row %d should be null", i)
			continue
		}
		require.False(t, col.IsNull(i), "row %d should not be null", i)
		assert.InDelta(t, want, get(i), defaultEpsilon, "row %d value", i)
	}
}

// AssertInt64Column verifies the values of an integer column promoted to
// int64. Every row must be non-null.
func AssertInt64Column(t *testing.T, col *column.Column, expected []int64) {
	t.Helper()

	require.NotNil(t, col, "result column should not be nil")
	require.Equal(t, len(expected), col.Len(), "row count should match")

	get, err := col.Ints()
	require.NoError(t, err)

	for i, want := range expected {
		require.False(t, col.IsNull(i), "row %d should not be null", i)
		assert.Equal(t, want, get(i), "row %d value", i)
	}
}

// AssertStringColumn verifies the values of a String column. Every row must
// be non-null.
func AssertStringColumn(t *testing.T, col *column.Column, expected []string) {
	t.Helper()

	require.NotNil(t, col, "result column should not be nil")
	require.Equal(t, types.String, col.Kind(), "result kind should be String")
	require.Equal(t, len(expected), col.Len(), "row count should match")

	for i, want := range expected {
		require.False(t, col.IsNull(i), "row %d should not be null", i)
		got, err := col.StringValue(i)
		require.NoError(t, err)
		assert.Equal(t, want, got, "row %d value", i)
	}
}

// AssertAllNull verifies that every row of col is null.
func AssertAllNull(t *testing.T, col *column.Column) {
	t.Helper()

	require.NotNil(t, col, "result column should not be nil")
	for i := range col.Len() {
		assert.True(t, col.IsNull(i), "row %d should be null", i)
	}
}

// AssertConstant verifies that col broadcasts a single value over rows rows.
func AssertConstant(t *testing.T, col *column.Column, rows int) {
	t.Helper()

	require.NotNil(t, col, "result column should not be nil")
	assert.True(t, col.Constant(), "column should be constant")
	assert.Equal(t, rows, col.Len(), "broadcast row count should match")
}
