// Package catalog materializes view-to-table dependency edges from the
// metadata service into ordinary column batches. The function engine only
// assumes such rows arrive as Columns; fetching is paginated with a fixed
// per-fetch row cap and a bounded timeout per page.
package catalog

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/cespare/xxhash/v2"

	"github.com/quokkadb/quokka/internal/column"
	"github.com/quokkadb/quokka/internal/config"
	"github.com/quokkadb/quokka/internal/exec"
	"github.com/quokkadb/quokka/internal/types"
)

// Dependency row schema, in column order.
const (
	ColCatalog   = "view_catalog"
	ColSchema    = "view_schema"
	ColView      = "view_name"
	ColRefSchema = "table_schema"
	ColRefTable  = "table_name"
)

// DependencyEdge is one view→table dependency row as the metadata service
// reports it.
type DependencyEdge struct {
	Catalog   string
	Schema    string
	View      string
	RefSchema string
	RefTable  string
}

// MetaClient fetches dependency pages from the metadata service. A short
// page (fewer rows than limit) signals the end of the stream.
type MetaClient interface {
	ViewDependencies(ctx context.Context, offset, limit int) ([]DependencyEdge, error)
}

// Scanner pulls dependency edges page by page and materializes each page as
// a batch of string columns. Edges already seen on earlier pages are dropped
// so that overlapping pages from a retrying service cannot duplicate rows.
type Scanner struct {
	client   MetaClient
	mem      memory.Allocator
	pageRows int
	timeout  time.Duration
	maxRows  int

	seen    *roaring64.Bitmap
	offset  int
	fetched int
	done    bool
}

// NewScanner creates a scanner using the global configuration's fetch limits.
func NewScanner(client MetaClient, mem memory.Allocator) *Scanner {
	cfg := config.GetGlobalConfig()
	return NewScannerWithConfig(client, mem, cfg)
}

// NewScannerWithConfig creates a scanner with explicit limits.
func NewScannerWithConfig(client MetaClient, mem memory.Allocator, cfg config.Config) *Scanner {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &Scanner{
		client:   client,
		mem:      mem,
		pageRows: cfg.CatalogFetchRows,
		timeout:  time.Duration(cfg.CatalogTimeoutMillis) * time.Millisecond,
		maxRows:  cfg.CatalogMaxTotalRows,
		seen:     roaring64.New(),
	}
}

// edgeID hashes an edge to its 64-bit identity for cross-page dedup.
func edgeID(e DependencyEdge) uint64 {
	var h xxhash.Digest
	h.Reset()
	_, _ = h.WriteString(e.Catalog)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(e.Schema)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(e.View)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(e.RefSchema)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(e.RefTable)
	return h.Sum64()
}

// Next fetches the next page and returns it as a batch, or eos=true when the
// stream is exhausted. Each fetch runs under the scanner's bounded timeout.
func (s *Scanner) Next(ctx context.Context) (batch *exec.Batch, eos bool, err error) {
	if s.done {
		return nil, true, nil
	}

	limit := s.pageRows
	if s.maxRows > 0 && s.fetched+limit > s.maxRows {
		limit = s.maxRows - s.fetched
		if limit <= 0 {
			s.done = true
			return nil, true, nil
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	edges, err := s.client.ViewDependencies(fetchCtx, s.offset, limit)
	if err != nil {
		return nil, false, err
	}
	s.offset += len(edges)
	s.fetched += len(edges)
	if len(edges) < limit {
		s.done = true
	}

	fresh := edges[:0:0]
	for _, e := range edges {
		id := edgeID(e)
		if s.seen.Contains(id) {
			continue
		}
		s.seen.Add(id)
		fresh = append(fresh, e)
	}

	if len(fresh) == 0 {
		if s.done {
			return nil, true, nil
		}
		return exec.NewBatch(0), false, nil
	}

	return s.materialize(fresh)
}

// Seen returns the number of distinct edges observed so far.
func (s *Scanner) Seen() uint64 {
	return s.seen.GetCardinality()
}

func (s *Scanner) materialize(edges []DependencyEdge) (*exec.Batch, bool, error) {
	batch := exec.NewBatch(len(edges))

	cols := []struct {
		name string
		get  func(DependencyEdge) string
	}{
		{ColCatalog, func(e DependencyEdge) string { return e.Catalog }},
		{ColSchema, func(e DependencyEdge) string { return e.Schema }},
		{ColView, func(e DependencyEdge) string { return e.View }},
		{ColRefSchema, func(e DependencyEdge) string { return e.RefSchema }},
		{ColRefTable, func(e DependencyEdge) string { return e.RefTable }},
	}
	for _, c := range cols {
		b := array.NewStringBuilder(s.mem)
		for _, e := range edges {
			b.Append(c.get(e))
		}
		col, err := column.New(types.Of(types.String), b.NewArray())
		b.Release()
		if err != nil {
			batch.Release()
			return nil, false, err
		}
		if err := batch.AddColumn(c.name, col); err != nil {
			col.Release()
			batch.Release()
			return nil, false, err
		}
	}
	return batch, s.done, nil
}
