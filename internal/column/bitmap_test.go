package column_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quokkadb/quokka/internal/column"
)

func TestBitmap_SetAndGet(t *testing.T) {
	b := column.NewBitmap(100)
	require.Equal(t, 100, b.Len())

	assert.False(t, b.AnySet())

	b.Set(0)
	b.Set(63)
	b.Set(64)
	b.Set(99)

	assert.True(t, b.Get(0))
	assert.True(t, b.Get(63))
	assert.True(t, b.Get(64))
	assert.True(t, b.Get(99))
	assert.False(t, b.Get(1))
	assert.False(t, b.Get(65))
	assert.True(t, b.AnySet())

	b.Clear(63)
	assert.False(t, b.Get(63))

	b.SetTo(1, true)
	assert.True(t, b.Get(1))
	b.SetTo(1, false)
	assert.False(t, b.Get(1))
}

func TestBitmap_Fill(t *testing.T) {
	b := column.NewBitmap(70)
	b.Fill(true)
	for i := range 70 {
		assert.True(t, b.Get(i), "row %d", i)
	}

	b.Fill(false)
	for i := range 70 {
		assert.False(t, b.Get(i), "row %d", i)
	}
	assert.False(t, b.AnySet())
}

func TestBitmap_Valid(t *testing.T) {
	b := column.NewBitmap(5)
	b.Set(1)
	b.Set(4)

	assert.Equal(t, []bool{true, false, true, true, false}, b.Valid())
}

func TestBitmap_BoundsChecked(t *testing.T) {
	b := column.NewBitmap(8)

	assert.Panics(t, func() { b.Set(8) })
	assert.Panics(t, func() { b.Set(-1) })
	assert.Panics(t, func() { b.Get(8) })
	assert.Panics(t, func() { b.Clear(100) })
	assert.Panics(t, func() { column.NewBitmap(-1) })
}

func TestBitmap_ZeroLength(t *testing.T) {
	b := column.NewBitmap(0)
	assert.Equal(t, 0, b.Len())
	assert.False(t, b.AnySet())
	assert.Empty(t, b.Valid())
	b.Fill(true)
	assert.False(t, b.AnySet())
}
