// Package algo resolves named, configured sub-models. A Factory maps an
// algorithm name to a constructor and builds each (name, parameter set) pair
// once, caching the instance for the life of the factory.
package algo

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sawpanic/resxsec/internal/config"
)

var (
	// ErrNotRegistered is returned for an algorithm name with no constructor
	ErrNotRegistered = errors.New("algorithm not registered")
	// ErrWrongType is returned when a resolved instance lacks the requested capability
	ErrWrongType = errors.New("algorithm has wrong type")
)

// DefaultParamSet is used when no parameter set is named
const DefaultParamSet = "Default"

// ID names a configured algorithm instance
type ID struct {
	Name     string `json:"name"`
	ParamSet string `json:"param_set"`
}

func (id ID) String() string { return id.Name + "/" + id.ParamSet }

// Environment is what a constructor may use to resolve its own dependencies
type Environment interface {
	Resolve(id ID) (any, error)
	GlobalConfig() *config.Registry
	ConfigSet(id ID) (*config.Registry, error)
}

// Constructor builds an instance from its parameter set
type Constructor func(env Environment, cfg *config.Registry) (any, error)

type entry struct {
	done chan struct{}
	val  any
	err  error
}

// Factory is the concurrency-safe Environment backed by a config pool
type Factory struct {
	pool *config.Pool

	mu        sync.Mutex
	ctors     map[string]Constructor
	instances map[ID]*entry
}

// NewFactory returns a factory reading parameter sets from pool
func NewFactory(pool *config.Pool) *Factory {
	return &Factory{
		pool:      pool,
		ctors:     make(map[string]Constructor),
		instances: make(map[ID]*entry),
	}
}

// Register binds name to ctor, replacing any earlier binding
func (f *Factory) Register(name string, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[name] = ctor
}

// Registered lists the algorithm names with constructors
func (f *Factory) Registered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.ctors))
	for name := range f.ctors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GlobalConfig implements Environment
func (f *Factory) GlobalConfig() *config.Registry { return f.pool.Global }

// ConfigSet implements Environment
func (f *Factory) ConfigSet(id ID) (*config.Registry, error) {
	return f.pool.Set(id.Name, id.ParamSet)
}

// Resolve implements Environment. Constructors run outside the factory lock
// so they can resolve their own sub-models; concurrent callers of the same ID
// wait for the first build. A failed build is not cached. A missing parameter
// set gives the constructor an empty registry, so constructors must supply
// their own defaults. Dependency cycles between constructors deadlock.
func (f *Factory) Resolve(id ID) (any, error) {
	if id.ParamSet == "" {
		id.ParamSet = DefaultParamSet
	}

	f.mu.Lock()
	if e, ok := f.instances[id]; ok {
		f.mu.Unlock()
		<-e.done
		return e.val, e.err
	}
	ctor, ok := f.ctors[id.Name]
	if !ok {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, id.Name)
	}
	e := &entry{done: make(chan struct{})}
	f.instances[id] = e
	f.mu.Unlock()

	cfg, err := f.ConfigSet(id)
	if errors.Is(err, config.ErrSetNotFound) {
		cfg, err = config.NewRegistry(id.String()), nil
	}
	if err == nil {
		e.val, err = ctor(f, cfg)
	}
	if err != nil {
		e.val, e.err = nil, fmt.Errorf("building %s: %w", id, err)
		f.mu.Lock()
		delete(f.instances, id)
		f.mu.Unlock()
	}
	close(e.done)
	return e.val, e.err
}

// Get resolves id and asserts the instance to T
func Get[T any](env Environment, id ID) (T, error) {
	var zero T
	v, err := env.Resolve(id)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T, want %T", ErrWrongType, id, v, (*T)(nil))
	}
	return t, nil
}

// SubAlg resolves the sub-model whose name and parameter set are stored under
// nameKey and setKey, read from cfg first and the global list second. The set
// defaults to DefaultParamSet.
func SubAlg[T any](env Environment, cfg *config.Registry, nameKey, setKey string) (T, error) {
	_, v, err := SubAlgID[T](env, cfg, nameKey, setKey)
	return v, err
}

// SubAlgID is SubAlg that also reports which ID was resolved
func SubAlgID[T any](env Environment, cfg *config.Registry, nameKey, setKey string) (ID, T, error) {
	var zero T
	l := config.Lookup{Local: cfg, Global: env.GlobalConfig()}
	name, err := l.String(nameKey, nameKey)
	if err != nil {
		return ID{}, zero, err
	}
	set, err := l.StringDef(setKey, setKey, DefaultParamSet)
	if err != nil {
		return ID{}, zero, err
	}
	id := ID{Name: name, ParamSet: set}
	v, err := Get[T](env, id)
	return id, v, err
}
