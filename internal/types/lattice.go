package types

import "fmt"

// The lattice is the total, pure mapping from operand tag(s) to result tag.
// Every function family consults it at dispatch time; an unmapped input is a
// registration-time defect, reported as an error and never as a per-row
// condition.

// UnaryResult deduces the result tag of a sign-preserving unary transform
// (negative, positive, radians, degrees). The numeric domain maps to itself.
func UnaryResult(k Kind) (Kind, error) {
	if !k.IsNumeric() {
		return 0, fmt.Errorf("unary arithmetic not defined for %s", k)
	}
	return k, nil
}

// AbsResult deduces the result tag of absolute value. Signed integers widen
// one step so that negating the minimum representable value cannot overflow;
// everything else in the numeric domain maps to itself.
func AbsResult(k Kind) (Kind, error) {
	switch k {
	case Boolean:
		return Boolean, nil
	case Int8:
		return Int16, nil
	case Int16:
		return Int32, nil
	case Int32:
		return Int64, nil
	case Int64:
		return Int128, nil
	case Int128:
		return Int128, nil
	case Decimal32, Decimal64, Decimal128, Decimal256, Float32, Float64:
		return k, nil
	default:
		return 0, fmt.Errorf("abs not defined for %s", k)
	}
}

// integer rank within the widening chain; Boolean behaves as the narrowest
// integer when it participates in arithmetic.
func intRank(k Kind) int {
	switch k {
	case Boolean:
		return 0
	case Int8:
		return 1
	case Int16:
		return 2
	case Int32:
		return 3
	case Int64:
		return 4
	case Int128:
		return 5
	default:
		return -1
	}
}

func decimalRank(k Kind) int {
	switch k {
	case Decimal32:
		return 1
	case Decimal64:
		return 2
	case Decimal128:
		return 3
	case Decimal256:
		return 4
	default:
		return -1
	}
}

// minDecimalFor returns the narrowest decimal tag whose digit capacity can
// hold any value of the integer tag k.
func minDecimalFor(k Kind) Kind {
	switch k {
	case Boolean, Int8, Int16:
		return Decimal32
	case Int32:
		return Decimal64
	case Int64:
		return Decimal128
	case Int128:
		return Decimal256
	default:
		return Decimal128
	}
}

// BinaryResult deduces the result tag of a widening binary arithmetic
// operation over ordinary column operands:
//   - two integers promote to the wider of the two (never narrower than Int8),
//   - an integer paired with a decimal promotes to a decimal wide enough to
//     hold the integer,
//   - a float paired with anything promotes to float (Float32 only when both
//     operands are Float32),
//   - strings do not participate.
func BinaryResult(a, b Kind) (Kind, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return 0, fmt.Errorf("binary arithmetic not defined for (%s, %s)", a, b)
	}

	if a.IsFloat() || b.IsFloat() {
		if a == Float32 && b == Float32 {
			return Float32, nil
		}
		return Float64, nil
	}

	if a.IsDecimal() || b.IsDecimal() {
		da, db := a, b
		if !da.IsDecimal() {
			da = minDecimalFor(a)
		}
		if !db.IsDecimal() {
			db = minDecimalFor(b)
		}
		if decimalRank(da) >= decimalRank(db) {
			return da, nil
		}
		return db, nil
	}

	// Integer vs integer: wider wins, with Int8 as the floor so boolean
	// arithmetic yields a real integer.
	ra, rb := intRank(a), intRank(b)
	r := ra
	if rb > r {
		r = rb
	}
	switch r {
	case 0, 1:
		return Int8, nil
	case 2:
		return Int16, nil
	case 3:
		return Int32, nil
	case 4:
		return Int64, nil
	default:
		return Int128, nil
	}
}
