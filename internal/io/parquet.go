// Package io loads columnar data into batches the executor can evaluate
// functions over. Parquet is the interchange format; writing is out of
// scope, the engine only consumes batches.
package io

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/quokkadb/quokka/internal/column"
	"github.com/quokkadb/quokka/internal/exec"
	"github.com/quokkadb/quokka/internal/types"
)

// ParquetReader reads a parquet stream into a column batch.
type ParquetReader struct {
	reader io.Reader
	mem    memory.Allocator
}

// NewParquetReader creates a reader over r.
func NewParquetReader(r io.Reader, mem memory.Allocator) *ParquetReader {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &ParquetReader{reader: r, mem: mem}
}

// Read materializes the whole file as one batch. Multi-chunk columns are
// concatenated; column kinds outside the engine's type set are rejected.
func (r *ParquetReader) Read() (*exec.Batch, error) {
	data, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	readerAt := bytes.NewReader(data)

	pqReader, err := file.NewParquetReader(readerAt)
	if err != nil {
		return nil, fmt.Errorf("creating parquet file reader: %w", err)
	}

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, r.mem)
	if err != nil {
		return nil, fmt.Errorf("creating arrow file reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	defer table.Release()

	return r.tableToBatch(table)
}

func (r *ParquetReader) tableToBatch(table arrow.Table) (*exec.Batch, error) {
	batch := exec.NewBatch(int(table.NumRows()))
	schema := table.Schema()

	for i := 0; i < int(table.NumCols()); i++ {
		field := schema.Field(i)
		chunked := table.Column(i).Data()

		var arr arrow.Array
		chunks := chunked.Chunks()
		switch len(chunks) {
		case 0:
			return nil, fmt.Errorf("column %s has no data", field.Name)
		case 1:
			arr = chunks[0]
			arr.Retain()
		default:
			concatenated, err := array.Concatenate(chunks, r.mem)
			if err != nil {
				return nil, fmt.Errorf("concatenating column %s: %w", field.Name, err)
			}
			arr = concatenated
		}

		kind, err := types.KindOfArrow(arr.DataType())
		if err != nil {
			arr.Release()
			batch.Release()
			return nil, fmt.Errorf("column %s: %w", field.Name, err)
		}
		typ := types.Of(kind)
		if dec, ok := arr.DataType().(arrow.DecimalType); ok {
			typ = types.DecimalOf(kind, dec.GetPrecision(), dec.GetScale())
		}

		col, err := column.New(typ, arr)
		if err != nil {
			arr.Release()
			batch.Release()
			return nil, err
		}
		if err := batch.AddColumn(field.Name, col); err != nil {
			col.Release()
			batch.Release()
			return nil, err
		}
	}
	return batch, nil
}
