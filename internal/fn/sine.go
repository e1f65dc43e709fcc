package fn

import (
	"math"
	"sync"
)

// sineKernel caches the elementary sine implementation the sin function
// calls. A resolver may bind a faster math-library implementation; it runs
// exactly once across all threads on first use and every later read is
// lock-free. When the resolver is absent or fails, the statically linked
// math.Sin is used, so the substitution is externally unobservable.
type sineKernel struct {
	once    sync.Once
	resolve func() func(float64) float64
	fn      func(float64) float64
}

func newSineKernel(resolve func() func(float64) float64) *sineKernel {
	return &sineKernel{resolve: resolve}
}

func (s *sineKernel) get() func(float64) float64 {
	s.once.Do(func() {
		if s.resolve != nil {
			if fn := s.resolve(); fn != nil {
				s.fn = fn
				return
			}
		}
		s.fn = math.Sin
	})
	return s.fn
}

func (s *sineKernel) call(x float64) float64 {
	return s.get()(x)
}

// processSine is the process-wide instance. No dynamic math-library binding
// is available on a pure-Go build, so the default resolver yields nothing
// and the static fallback is cached.
var processSine = newSineKernel(nil)
