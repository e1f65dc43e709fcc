package fn

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSineKernel_ResolverBoundOnce(t *testing.T) {
	var calls int32
	k := newSineKernel(func() func(float64) float64 {
		atomic.AddInt32(&calls, 1)
		return func(x float64) float64 { return x + 1 }
	})

	assert.InDelta(t, 1.0, k.call(0), 1e-12)
	assert.InDelta(t, 3.5, k.call(2.5), 1e-12)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSineKernel_FallbackWhenResolverAbsent(t *testing.T) {
	k := newSineKernel(nil)

	assert.InDelta(t, math.Sin(1.25), k.call(1.25), 1e-15)
	assert.InDelta(t, 0.0, k.call(0), 1e-15)
}

func TestSineKernel_FallbackWhenResolverFails(t *testing.T) {
	var calls int32
	k := newSineKernel(func() func(float64) float64 {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	assert.InDelta(t, math.Sin(0.5), k.call(0.5), 1e-15)
	assert.InDelta(t, math.Sin(-2), k.call(-2), 1e-15)
	// A failed resolver is not retried.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSineKernel_ConcurrentFirstUse(t *testing.T) {
	var calls int32
	k := newSineKernel(func() func(float64) float64 {
		atomic.AddInt32(&calls, 1)
		return math.Sin
	})

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				x := float64(i) / 10
				assert.InDelta(t, math.Sin(x), k.call(x), 1e-15)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestProcessSine_MatchesStaticSin(t *testing.T) {
	for _, x := range []float64{0, 0.5, math.Pi / 2, math.Pi, -3, 100} {
		assert.InDelta(t, math.Sin(x), processSine.call(x), 1e-15)
	}
}
