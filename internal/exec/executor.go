package exec

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/quokkadb/quokka/internal/column"
	"github.com/quokkadb/quokka/internal/config"
	qerrors "github.com/quokkadb/quokka/internal/errors"
	"github.com/quokkadb/quokka/internal/fn"
	"github.com/quokkadb/quokka/internal/parallel"
)

// Executor evaluates registered scalar functions over column batches. A
// single Executor is safe for concurrent use: every call reads only its
// inputs and writes a newly allocated output column.
type Executor struct {
	mem memory.Allocator
	reg *fn.Registry
	cfg config.Config
}

// Option configures an Executor.
type Option func(*Executor)

// WithRegistry substitutes the function registry (tests bind stubs here).
func WithRegistry(r *fn.Registry) Option {
	return func(e *Executor) { e.reg = r }
}

// WithConfig overrides the global configuration.
func WithConfig(cfg config.Config) Option {
	return func(e *Executor) { e.cfg = cfg }
}

// NewExecutor creates an executor backed by the process registry and the
// global configuration.
func NewExecutor(mem memory.Allocator, opts ...Option) *Executor {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	e := &Executor{
		mem: mem,
		reg: fn.Default(),
		cfg: config.GetGlobalConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval resolves name and executes it over args with the given row count.
// Unknown names and unsupported operand combinations are structural errors;
// domain-invalid rows surface as nulls in the returned column.
func (e *Executor) Eval(name string, args []*column.Column, rows int) (*column.Column, error) {
	d, err := e.reg.Resolve(name)
	if err != nil {
		return nil, err
	}
	return d.Execute(args, rows, e.mem)
}

// EvalInto evaluates fnName over the named argument columns of b and binds
// the output column to result.
func (e *Executor) EvalInto(b *Batch, result, fnName string, argNames ...string) error {
	args := make([]*column.Column, len(argNames))
	for i, name := range argNames {
		c, ok := b.Column(name)
		if !ok {
			return qerrors.NewInvalidInputError(fnName, "column not found: "+name)
		}
		args[i] = c
	}
	out, err := e.Eval(fnName, args, b.Rows())
	if err != nil {
		return err
	}
	if err := b.AddColumn(result, out); err != nil {
		out.Release()
		return qerrors.NewInternalError("Execute", err)
	}
	return nil
}

// EvalBatches evaluates the same function over independent batches,
// fanning out to the worker pool when the batches are large enough to be
// worth it. Errors are reported per batch, in batch order.
func (e *Executor) EvalBatches(batches []*Batch, result, fnName string, argNames ...string) []error {
	if len(batches) == 0 {
		return nil
	}

	parallelizable := len(batches) > 1
	if parallelizable {
		parallelizable = false
		for _, b := range batches {
			if b.Rows() >= e.cfg.ParallelThreshold {
				parallelizable = true
				break
			}
		}
	}

	if !parallelizable {
		errs := make([]error, len(batches))
		for i, b := range batches {
			errs[i] = e.EvalInto(b, result, fnName, argNames...)
		}
		return errs
	}

	workers := e.cfg.WorkerPoolSize
	if workers > e.cfg.MaxParallelism {
		workers = e.cfg.MaxParallelism
	}
	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	return parallel.ProcessIndexed(pool, batches, func(_ int, b *Batch) error {
		return e.EvalInto(b, result, fnName, argNames...)
	})
}
