package column

import "fmt"

const bitmapWordBits = 64

// Bitmap is a fixed-length null bitmap: bit i set means row i is null.
// All accessors are length-checked; a whole-batch state change goes through
// Fill, which is applied in one pass and never partially.
type Bitmap struct {
	words []uint64
	n     int
}

// NewBitmap returns an all-clear bitmap of length n.
func NewBitmap(n int) *Bitmap {
	if n < 0 {
		panic(fmt.Sprintf("bitmap: negative length %d", n))
	}
	return &Bitmap{
		words: make([]uint64, (n+bitmapWordBits-1)/bitmapWordBits),
		n:     n,
	}
}

// Len returns the number of rows the bitmap covers.
func (b *Bitmap) Len() int {
	return b.n
}

func (b *Bitmap) check(i int) {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("bitmap: index %d out of range [0, %d)", i, b.n))
	}
}

// Set marks row i as null.
func (b *Bitmap) Set(i int) {
	b.check(i)
	b.words[i/bitmapWordBits] |= 1 << uint(i%bitmapWordBits)
}

// Clear marks row i as not null.
func (b *Bitmap) Clear(i int) {
	b.check(i)
	b.words[i/bitmapWordBits] &^= 1 << uint(i%bitmapWordBits)
}

// SetTo marks row i null or not null.
func (b *Bitmap) SetTo(i int, null bool) {
	if null {
		b.Set(i)
	} else {
		b.Clear(i)
	}
}

// Get reports whether row i is null.
func (b *Bitmap) Get(i int) bool {
	b.check(i)
	return b.words[i/bitmapWordBits]&(1<<uint(i%bitmapWordBits)) != 0
}

// Fill marks every row null or not null in a single pass.
func (b *Bitmap) Fill(null bool) {
	var w uint64
	if null {
		w = ^uint64(0)
	}
	for i := range b.words {
		b.words[i] = w
	}
}

// AnySet reports whether at least one row is null.
func (b *Bitmap) AnySet() bool {
	for i, w := range b.words {
		if i == len(b.words)-1 && b.n%bitmapWordBits != 0 {
			w &= (1 << uint(b.n%bitmapWordBits)) - 1
		}
		if w != 0 {
			return true
		}
	}
	return false
}

// Valid returns the inverted bitmap as a validity slice in the form Arrow
// builders consume: valid[i] is true when row i is not null.
func (b *Bitmap) Valid() []bool {
	valid := make([]bool, b.n)
	for i := 0; i < b.n; i++ {
		valid[i] = !b.Get(i)
	}
	return valid
}
