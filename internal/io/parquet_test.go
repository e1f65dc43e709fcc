package io_test

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qio "github.com/quokkadb/quokka/internal/io"
	"github.com/quokkadb/quokka/internal/testutil"
	"github.com/quokkadb/quokka/internal/types"
)

func writeParquet(t *testing.T, tbl arrow.Table) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	err := pqarrow.WriteTable(tbl, &buf, 1024,
		parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	require.NoError(t, err)
	return &buf
}

func TestParquetReader_RoundTrip(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "x", Type: arrow.PrimitiveTypes.Float64},
		{Name: "n", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "label", Type: arrow.BinaryTypes.String},
	}, nil)

	rb := array.NewRecordBuilder(mem.Allocator, schema)
	defer rb.Release()

	rb.Field(0).(*array.Float64Builder).AppendValues([]float64{1.5, 4, 9}, nil)
	rb.Field(1).(*array.Int64Builder).AppendValues([]int64{10, 0, 30}, []bool{true, false, true})
	rb.Field(2).(*array.StringBuilder).AppendValues([]string{"a", "b", "c"}, nil)

	rec := rb.NewRecord()
	defer rec.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()

	buf := writeParquet(t, tbl)

	batch, err := qio.NewParquetReader(buf, mem.Allocator).Read()
	require.NoError(t, err)
	defer batch.Release()

	assert.Equal(t, 3, batch.Rows())
	assert.Equal(t, []string{"x", "n", "label"}, batch.Names())

	x, ok := batch.Column("x")
	require.True(t, ok)
	assert.Equal(t, types.Float64, x.Kind())
	assert.InDelta(t, 1.5, x.Float64(0), 1e-12)

	n, ok := batch.Column("n")
	require.True(t, ok)
	assert.Equal(t, types.Int64, n.Kind())
	assert.True(t, n.IsNull(1))

	label, ok := batch.Column("label")
	require.True(t, ok)
	testutil.AssertStringColumn(t, label, []string{"a", "b", "c"})
}

func TestParquetReader_GarbageInput(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	_, err := qio.NewParquetReader(bytes.NewReader([]byte("not parquet")), mem.Allocator).Read()
	assert.Error(t, err)
}
