package fn

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/quokkadb/quokka/internal/column"
	qerrors "github.com/quokkadb/quokka/internal/errors"
	"github.com/quokkadb/quokka/internal/types"
)

// normalCdfKernel evaluates the Gaussian CDF over (mean, stddev, value)
// triples. Each argument is independently unwrapped when constant; a row is
// null when any input cell is null or the standard deviation is not strictly
// positive. The result is always logically nullable.
func normalCdfKernel(args []*column.Column, rows int, mem memory.Allocator) (*column.Column, error) {
	gets := make([]func(int) float64, len(args))
	for i, a := range args {
		get, err := a.Floats()
		if err != nil {
			return nil, qerrors.NewUnsupportedTypeError("normal_cdf", a.Type().String())
		}
		gets[i] = get
	}
	mean, sd, value := args[0], args[1], args[2]

	b := array.NewFloat64Builder(mem)
	defer b.Release()

	if mean.Constant() && sd.Constant() && value.Constant() {
		if mean.IsNull(0) || sd.IsNull(0) || value.IsNull(0) || !normalCdfValid(gets[1](0)) {
			b.AppendNull()
		} else {
			b.Append(normalCdf(gets[0](0), gets[1](0), gets[2](0)))
		}
		return column.NewConst(types.Of(types.Float64), b.NewArray(), rows)
	}

	b.Reserve(rows)
	for i := 0; i < rows; i++ {
		if mean.IsNull(i) || sd.IsNull(i) || value.IsNull(i) {
			b.AppendNull()
			continue
		}
		s := gets[1](i)
		if !normalCdfValid(s) {
			b.AppendNull()
			continue
		}
		b.Append(normalCdf(gets[0](i), s, gets[2](i)))
	}
	return column.New(types.Of(types.Float64), b.NewArray())
}

func normalCdfValid(sd float64) bool {
	return sd > 0
}

func normalCdf(mean, sd, v float64) float64 {
	return 0.5 * (math.Erf((v-mean)/(sd*math.Sqrt2)) + 1)
}
