// Package exec implements the evaluation call contract consumed by the
// query executor: resolve a function, feed it argument columns and a row
// count, and populate a result slot with a freshly built column.
package exec

import (
	"fmt"

	"github.com/quokkadb/quokka/internal/column"
)

// Batch is a set of named columns sharing one logical row count. Columns are
// single-owner: releasing the batch releases every column it holds.
type Batch struct {
	columns map[string]*column.Column
	order   []string
	rows    int
}

// NewBatch creates an empty batch of the given row count.
func NewBatch(rows int) *Batch {
	return &Batch{
		columns: make(map[string]*column.Column),
		rows:    rows,
	}
}

// Rows returns the batch's logical row count.
func (b *Batch) Rows() int {
	return b.rows
}

// AddColumn attaches a column under name. The column's row count must match
// the batch; an existing name is rejected.
func (b *Batch) AddColumn(name string, c *column.Column) error {
	if c == nil {
		return fmt.Errorf("batch: nil column %q", name)
	}
	if c.Len() != b.rows {
		return fmt.Errorf("batch: column %q has %d rows, batch has %d", name, c.Len(), b.rows)
	}
	if _, ok := b.columns[name]; ok {
		return fmt.Errorf("batch: column %q already present", name)
	}
	b.columns[name] = c
	b.order = append(b.order, name)
	return nil
}

// Column returns the column bound to name.
func (b *Batch) Column(name string) (*column.Column, bool) {
	c, ok := b.columns[name]
	return c, ok
}

// Names returns column names in insertion order.
func (b *Batch) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Release releases every column the batch owns.
func (b *Batch) Release() {
	for _, name := range b.order {
		b.columns[name].Release()
	}
	b.columns = nil
	b.order = nil
}
