package fn

import (
	"math"
)

// The math function library. Validity rules follow the MySQL semantics for
// the inverse functions: a domain-invalid input yields a null cell, never an
// error, so one bad row cannot abort a batch.

const (
	eValue  = 2.7182818284590452353602874713526624977572470
	piValue = 3.1415926535897932384626433832795028841971693

	// logEpsilon guards against bases so close to 1 that the change-of-base
	// division blows up.
	logEpsilon = 1e-9
)

func acosInvalid(x float64) bool { return x < -1 || x > 1 }
func asinInvalid(x float64) bool { return x < -1 || x > 1 }
func acoshInvalid(x float64) bool { return x < 1 }
func atanhInvalid(x float64) bool { return x <= -1 || x >= 1 }
func sqrtInvalid(x float64) bool { return x < 0 }
func logArgInvalid(x float64) bool { return x <= 0 }

// logInvalid classifies a (base, argument) pair for the two-argument
// logarithm. It is the single predicate behind both the bulk and the scalar
// paths.
func logInvalid(base, x float64) bool {
	return base <= 0 || math.Abs(base-1.0) < logEpsilon || x <= 0
}

// logBaseInvalid reports whether a constant base alone invalidates the whole
// batch; logXInvalid does the same for a constant argument.
func logWholeBatchInvalid(v float64, isLeft bool) bool {
	if isLeft {
		return v <= 0 || math.Abs(v-1.0) < logEpsilon
	}
	return v <= 0
}

func cot(x float64) float64 { return 1.0 / math.Tan(x) }
func sec(x float64) float64 { return 1.0 / math.Cos(x) }
func cosec(x float64) float64 { return 1.0 / math.Sin(x) }

func logBase(base, x float64) float64 {
	return math.Log(x) / math.Log(base)
}

var (
	powOp = &binaryOp{
		name:  "pow",
		apply: math.Pow,
	}
	atan2Op = &binaryOp{
		name:  "atan2",
		apply: math.Atan2,
	}
	logOp = &binaryOp{
		name:              "log",
		apply:             logBase,
		invalid:           logInvalid,
		wholeBatchInvalid: logWholeBatchInvalid,
	}
)

// RegisterMathFunctions installs the math library into r in a fixed order.
// It is meant to run exactly once during single-threaded startup, before any
// lookup.
func RegisterMathFunctions(r *Registry) error {
	descriptors := []*Descriptor{
		NewDescriptor("acos", 1, ConditionallyNullable, nullableFloat("acos", acosInvalid, math.Acos)),
		NewDescriptor("acosh", 1, ConditionallyNullable, nullableFloat("acosh", acoshInvalid, math.Acosh)),
		NewDescriptor("asin", 1, ConditionallyNullable, nullableFloat("asin", asinInvalid, math.Asin)),
		NewDescriptor("asinh", 1, Total, totalFloat("asinh", math.Asinh)),
		NewDescriptor("atan", 1, Total, totalFloat("atan", math.Atan)),
		NewDescriptor("atanh", 1, ConditionallyNullable, nullableFloat("atanh", atanhInvalid, math.Atanh)),
		NewDescriptor("atan2", 2, Total, atan2Op.kernel),
		NewDescriptor("cos", 1, Total, totalFloat("cos", math.Cos)),
		NewDescriptor("cosh", 1, Total, totalFloat("cosh", math.Cosh)),
		NewDescriptor("e", 0, Total, constFloat(eValue)),
		NewDescriptor("ln", 1, ConditionallyNullable, nullableFloat("ln", logArgInvalid, math.Log)),
		NewDescriptor("log", 2, ConditionallyNullable, logOp.kernel),
		NewDescriptor("log2", 1, ConditionallyNullable, nullableFloat("log2", logArgInvalid, math.Log2)),
		NewDescriptor("log10", 1, ConditionallyNullable, nullableFloat("log10", logArgInvalid, math.Log10)),
		NewDescriptor("pi", 0, Total, constFloat(piValue)),
		NewDescriptor("sign", 1, Total, signKernel),
		NewDescriptor("abs", 1, Total, absKernel),
		NewDescriptor("negative", 1, Total, negativeKernel),
		NewDescriptor("positive", 1, Total, positiveKernel),
		NewDescriptor("sin", 1, Total, totalFloat("sin", processSine.call)),
		NewDescriptor("sinh", 1, Total, totalFloat("sinh", math.Sinh)),
		NewDescriptor("sqrt", 1, ConditionallyNullable, nullableFloat("sqrt", sqrtInvalid, math.Sqrt)),
		NewDescriptor("cbrt", 1, Total, totalFloat("cbrt", math.Cbrt)),
		NewDescriptor("tan", 1, Total, totalFloat("tan", math.Tan)),
		NewDescriptor("tanh", 1, Total, totalFloat("tanh", math.Tanh)),
		NewDescriptor("cot", 1, Total, totalFloat("cot", cot)),
		NewDescriptor("sec", 1, Total, totalFloat("sec", sec)),
		NewDescriptor("cosec", 1, Total, totalFloat("cosec", cosec)),
		NewDescriptor("pow", 2, Total, powOp.kernel),
		NewDescriptor("exp", 1, Total, totalFloat("exp", math.Exp)),
		NewDescriptor("radians", 1, Total, scaleKernel("radians", piValue/180.0)),
		NewDescriptor("degrees", 1, Total, scaleKernel("degrees", 180.0/piValue)),
		NewDescriptor("bin", 1, Total, binKernel),
		NewDescriptor("normal_cdf", 3, ConditionallyNullable, normalCdfKernel),
	}
	for _, d := range descriptors {
		if err := r.Register(d); err != nil {
			return err
		}
	}

	aliases := [][2]string{
		{"ln", "dlog1"},
		{"log10", "dlog10"},
		{"sqrt", "dsqrt"},
		{"pow", "power"},
		{"pow", "dpow"},
		{"pow", "fpow"},
		{"exp", "dexp"},
	}
	for _, a := range aliases {
		if err := r.RegisterAlias(a[0], a[1]); err != nil {
			return err
		}
	}
	return nil
}
