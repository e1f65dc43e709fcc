// Package types defines the closed set of logical type tags used by the
// scalar function engine and the result-type lattice over them.
package types

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Kind is a logical type tag. Every column handled by the engine carries
// exactly one Kind; dispatch and result-type deduction are keyed by it.
type Kind int

const (
	Boolean Kind = iota
	Int8
	Int16
	Int32
	Int64
	Int128
	Decimal32
	Decimal64
	Decimal128
	Decimal256
	Float32
	Float64
	String
)

// AllKinds lists every declared tag. Lattice totality tests enumerate it.
var AllKinds = []Kind{
	Boolean, Int8, Int16, Int32, Int64, Int128,
	Decimal32, Decimal64, Decimal128, Decimal256,
	Float32, Float64, String,
}

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Int128:
		return "int128"
	case Decimal32:
		return "decimal32"
	case Decimal64:
		return "decimal64"
	case Decimal128:
		return "decimal128"
	case Decimal256:
		return "decimal256"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsInteger reports whether k is a (signed) integer tag. Boolean is treated
// as the single unsigned integer width the engine supports.
func (k Kind) IsInteger() bool {
	switch k {
	case Boolean, Int8, Int16, Int32, Int64, Int128:
		return true
	default:
		return false
	}
}

// IsSignedInteger reports whether k is a signed integer tag.
func (k Kind) IsSignedInteger() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Int128:
		return true
	default:
		return false
	}
}

// IsDecimal reports whether k is a fixed-precision decimal tag.
func (k Kind) IsDecimal() bool {
	switch k {
	case Decimal32, Decimal64, Decimal128, Decimal256:
		return true
	default:
		return false
	}
}

// IsFloat reports whether k is a floating-point tag.
func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64
}

// IsNumeric reports whether k participates in arithmetic at all.
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k.IsDecimal() || k.IsFloat()
}

// DecimalDigits returns the maximum number of base-10 digits a decimal tag
// can hold, or 0 for non-decimal tags.
func (k Kind) DecimalDigits() int {
	switch k {
	case Decimal32:
		return 9
	case Decimal64:
		return 18
	case Decimal128:
		return 38
	case Decimal256:
		return 76
	default:
		return 0
	}
}

// Type pairs a Kind with the precision/scale a decimal tag carries. For
// non-decimal kinds Precision and Scale are zero.
type Type struct {
	Kind      Kind
	Precision int32
	Scale     int32
}

// Of returns the Type for a non-decimal kind.
func Of(k Kind) Type {
	return Type{Kind: k}
}

// DecimalOf returns the Type for a decimal kind with precision and scale.
func DecimalOf(k Kind, precision, scale int32) Type {
	return Type{Kind: k, Precision: precision, Scale: scale}
}

func (t Type) String() string {
	if t.Kind.IsDecimal() {
		return fmt.Sprintf("%s(%d,%d)", t.Kind, t.Precision, t.Scale)
	}
	return t.Kind.String()
}

// Arrow maps a Type to its physical Arrow representation. Int128 values are
// stored as 128-bit decimals with scale 0; Go has no native int128.
func (t Type) Arrow() arrow.DataType {
	switch t.Kind {
	case Boolean:
		return arrow.FixedWidthTypes.Boolean
	case Int8:
		return arrow.PrimitiveTypes.Int8
	case Int16:
		return arrow.PrimitiveTypes.Int16
	case Int32:
		return arrow.PrimitiveTypes.Int32
	case Int64:
		return arrow.PrimitiveTypes.Int64
	case Int128:
		return &arrow.Decimal128Type{Precision: 38, Scale: 0}
	case Decimal32:
		return &arrow.Decimal32Type{Precision: t.Precision, Scale: t.Scale}
	case Decimal64:
		return &arrow.Decimal64Type{Precision: t.Precision, Scale: t.Scale}
	case Decimal128:
		return &arrow.Decimal128Type{Precision: t.Precision, Scale: t.Scale}
	case Decimal256:
		return &arrow.Decimal256Type{Precision: t.Precision, Scale: t.Scale}
	case Float32:
		return arrow.PrimitiveTypes.Float32
	case Float64:
		return arrow.PrimitiveTypes.Float64
	case String:
		return arrow.BinaryTypes.String
	default:
		panic(fmt.Sprintf("no arrow representation for %s", t.Kind))
	}
}

// KindOfArrow maps an Arrow data type back to its logical tag.
func KindOfArrow(dt arrow.DataType) (Kind, error) {
	switch dt.ID() {
	case arrow.BOOL:
		return Boolean, nil
	case arrow.INT8:
		return Int8, nil
	case arrow.INT16:
		return Int16, nil
	case arrow.INT32:
		return Int32, nil
	case arrow.INT64:
		return Int64, nil
	case arrow.DECIMAL32:
		return Decimal32, nil
	case arrow.DECIMAL64:
		return Decimal64, nil
	case arrow.DECIMAL128:
		return Decimal128, nil
	case arrow.DECIMAL256:
		return Decimal256, nil
	case arrow.FLOAT32:
		return Float32, nil
	case arrow.FLOAT64:
		return Float64, nil
	case arrow.STRING:
		return String, nil
	default:
		return 0, fmt.Errorf("unsupported arrow type: %s", dt.Name())
	}
}
