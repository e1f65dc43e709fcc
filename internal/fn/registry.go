package fn

import (
	"sort"
	"sync"

	qerrors "github.com/quokkadb/quokka/internal/errors"
)

// Registry binds function names (and aliases) to descriptors. Registration
// is append-only and runs during single-threaded startup; lookups afterwards
// are read-only and therefore lock-free.
type Registry struct {
	byName map[string]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register inserts a primary binding by canonical name. Duplicate primary
// names are a startup defect, not a recoverable condition.
func (r *Registry) Register(d *Descriptor) error {
	if _, ok := r.byName[d.Name()]; ok {
		return qerrors.NewDuplicateFunctionError(d.Name())
	}
	r.byName[d.Name()] = d
	return nil
}

// RegisterAlias binds an additional name to an already registered
// implementation; the alias resolves to the same descriptor.
func (r *Registry) RegisterAlias(primary, alias string) error {
	d, ok := r.byName[primary]
	if !ok {
		return qerrors.NewUnknownFunctionError(primary)
	}
	if _, ok := r.byName[alias]; ok {
		return qerrors.NewDuplicateFunctionError(alias)
	}
	r.byName[alias] = d
	return nil
}

// Resolve returns the descriptor bound to name. Resolving the same name
// twice returns the same descriptor. There is no fuzzy matching: an unknown
// name is reported to the caller as-is.
func (r *Registry) Resolve(name string) (*Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return nil, qerrors.NewUnknownFunctionError(name)
	}
	return d, nil
}

// Names returns every bound name, aliases included, in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process registry. The math library is installed on
// first use, exactly once, before any lookup through this accessor; the
// registry is read-only afterwards.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		if err := RegisterMathFunctions(defaultRegistry); err != nil {
			// A registration conflict is a programming defect surfaced at
			// process start.
			panic(err)
		}
	})
	return defaultRegistry
}
