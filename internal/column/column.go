// Package column provides the batch-oriented typed data container the
// function engine operates on: an immutable Arrow-backed value vector with
// an optional null bitmap and an optional constant flag. A constant column
// physically stores a single value that is logically broadcast over all
// rows of the batch.
package column

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/quokkadb/quokka/internal/types"
)

// Column is a batch of same-typed values. It is immutable once constructed;
// dispatchers always build a fresh Column rather than mutating inputs.
type Column struct {
	typ      types.Type
	arr      arrow.Array
	length   int
	constant bool
}

// New wraps an Arrow array as a non-constant column. The logical row count
// equals the array length.
func New(typ types.Type, arr arrow.Array) (*Column, error) {
	if arr == nil {
		return nil, fmt.Errorf("column: nil array")
	}
	return &Column{typ: typ, arr: arr, length: arr.Len()}, nil
}

// NewConst wraps a one-element Arrow array as a constant column broadcast
// over length rows.
func NewConst(typ types.Type, arr arrow.Array, length int) (*Column, error) {
	if arr == nil {
		return nil, fmt.Errorf("column: nil array")
	}
	if arr.Len() != 1 {
		return nil, fmt.Errorf("column: constant storage must hold exactly one value, got %d", arr.Len())
	}
	if length < 0 {
		return nil, fmt.Errorf("column: negative row count %d", length)
	}
	return &Column{typ: typ, arr: arr, length: length, constant: true}, nil
}

// Type returns the column's logical type.
func (c *Column) Type() types.Type {
	return c.typ
}

// Kind returns the column's logical type tag.
func (c *Column) Kind() types.Kind {
	return c.typ.Kind
}

// Len returns the logical row count.
func (c *Column) Len() int {
	return c.length
}

// Constant reports whether the column broadcasts a single stored value.
func (c *Column) Constant() bool {
	return c.constant
}

// Array returns the underlying Arrow array (retains a reference).
func (c *Column) Array() arrow.Array {
	c.arr.Retain()
	return c.arr
}

// Release releases the underlying Arrow memory.
func (c *Column) Release() {
	if c.arr != nil {
		c.arr.Release()
	}
}

// phys maps a logical row index to the physical storage index.
func (c *Column) phys(i int) int {
	if c.constant {
		return 0
	}
	return i
}

// IsNull reports whether the logical row i is null.
func (c *Column) IsNull(i int) bool {
	return c.arr.IsNull(c.phys(i))
}

// HasNulls reports whether any logical row is null.
func (c *Column) HasNulls() bool {
	return c.arr.NullN() > 0
}

// Float64 returns row i promoted to float64. Valid for integer, float and
// boolean columns; callers gate the kind via Floats.
func (c *Column) Float64(i int) float64 {
	get, err := c.Floats()
	if err != nil {
		panic(err)
	}
	return get(i)
}

// Int64 returns row i promoted to int64. Valid for boolean and integer
// columns up to 64 bits; callers gate the kind via Ints.
func (c *Column) Int64(i int) int64 {
	get, err := c.Ints()
	if err != nil {
		panic(err)
	}
	return get(i)
}

// Floats returns a constant-aware row accessor promoting the column's values
// to float64. Decimal and string columns are rejected; functions that force
// floating promotion declare decimals unsupported.
func (c *Column) Floats() (func(int) float64, error) {
	switch a := c.arr.(type) {
	case *array.Boolean:
		return func(i int) float64 {
			if a.Value(c.phys(i)) {
				return 1
			}
			return 0
		}, nil
	case *array.Int8:
		return func(i int) float64 { return float64(a.Value(c.phys(i))) }, nil
	case *array.Int16:
		return func(i int) float64 { return float64(a.Value(c.phys(i))) }, nil
	case *array.Int32:
		return func(i int) float64 { return float64(a.Value(c.phys(i))) }, nil
	case *array.Int64:
		return func(i int) float64 { return float64(a.Value(c.phys(i))) }, nil
	case *array.Float32:
		return func(i int) float64 { return float64(a.Value(c.phys(i))) }, nil
	case *array.Float64:
		return func(i int) float64 { return a.Value(c.phys(i)) }, nil
	default:
		return nil, fmt.Errorf("column: %s does not promote to float64", c.typ)
	}
}

// Ints returns a constant-aware row accessor promoting the column's values
// to int64. Valid for boolean and integer columns up to 64 bits.
func (c *Column) Ints() (func(int) int64, error) {
	switch a := c.arr.(type) {
	case *array.Boolean:
		return func(i int) int64 {
			if a.Value(c.phys(i)) {
				return 1
			}
			return 0
		}, nil
	case *array.Int8:
		return func(i int) int64 { return int64(a.Value(c.phys(i))) }, nil
	case *array.Int16:
		return func(i int) int64 { return int64(a.Value(c.phys(i))) }, nil
	case *array.Int32:
		return func(i int) int64 { return int64(a.Value(c.phys(i))) }, nil
	case *array.Int64:
		return func(i int) int64 { return a.Value(c.phys(i)) }, nil
	default:
		return nil, fmt.Errorf("column: %s does not promote to int64", c.typ)
	}
}

// StringValue returns the string at logical row i of a string column.
func (c *Column) StringValue(i int) (string, error) {
	a, ok := c.arr.(*array.String)
	if !ok {
		return "", fmt.Errorf("column: %s is not a string column", c.typ)
	}
	return a.Value(c.phys(i)), nil
}

func (c *Column) String() string {
	shape := "vector"
	if c.constant {
		shape = "const"
	}
	return fmt.Sprintf("Column[%s %s len=%d nulls=%d]", c.typ, shape, c.length, c.arr.NullN())
}

// Convenience constructors used by the executor and tests.

// FromFloat64s builds a Float64 column; valid may be nil when no row is null.
func FromFloat64s(mem memory.Allocator, values []float64, valid []bool) *Column {
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	col, _ := New(types.Of(types.Float64), b.NewArray())
	return col
}

// FromInt64s builds an Int64 column; valid may be nil when no row is null.
func FromInt64s(mem memory.Allocator, values []int64, valid []bool) *Column {
	b := array.NewInt64Builder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	col, _ := New(types.Of(types.Int64), b.NewArray())
	return col
}

// FromInt32s builds an Int32 column; valid may be nil when no row is null.
func FromInt32s(mem memory.Allocator, values []int32, valid []bool) *Column {
	b := array.NewInt32Builder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	col, _ := New(types.Of(types.Int32), b.NewArray())
	return col
}

// FromStrings builds a String column; valid may be nil when no row is null.
func FromStrings(mem memory.Allocator, values []string, valid []bool) *Column {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	col, _ := New(types.Of(types.String), b.NewArray())
	return col
}

// ConstFloat64 builds a constant Float64 column broadcasting v to length rows.
func ConstFloat64(mem memory.Allocator, v float64, length int) *Column {
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.Append(v)
	col, _ := NewConst(types.Of(types.Float64), b.NewArray(), length)
	return col
}

// ConstInt64 builds a constant Int64 column broadcasting v to length rows.
func ConstInt64(mem memory.Allocator, v int64, length int) *Column {
	b := array.NewInt64Builder(mem)
	defer b.Release()
	b.Append(v)
	col, _ := NewConst(types.Of(types.Int64), b.NewArray(), length)
	return col
}

// ConstNullFloat64 builds a constant Float64 column whose broadcast value is
// null for every row.
func ConstNullFloat64(mem memory.Allocator, length int) *Column {
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.AppendNull()
	col, _ := NewConst(types.Of(types.Float64), b.NewArray(), length)
	return col
}
