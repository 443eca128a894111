// Package config holds the configuration registries the cross-section code
// reads at configure time: a global parameter list plus named parameter sets
// per sub-model, loaded from YAML.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrKeyNotFound is returned when a key is in neither the local nor the global registry
	ErrKeyNotFound = errors.New("config key not found")
	// ErrTypeMismatch is returned when a key holds a value of another type
	ErrTypeMismatch = errors.New("config value has wrong type")
	// ErrSetNotFound is returned for an unknown (algorithm, parameter set) pair
	ErrSetNotFound = errors.New("config set not found")
)

// Registry is a named key/value store with typed accessors. A Registry is
// filled once and then only read; it is not safe for concurrent mutation.
type Registry struct {
	name  string
	items map[string]any
}

// NewRegistry returns an empty registry
func NewRegistry(name string) *Registry {
	return &Registry{name: name, items: make(map[string]any)}
}

// Name identifies the registry in error messages
func (r *Registry) Name() string { return r.name }

// Set stores v under key
func (r *Registry) Set(key string, v any) {
	r.items[key] = v
}

// SetString stores raw after parsing it as a bool, an int or a float when
// possible, so values from the command line behave like YAML values.
func (r *Registry) SetString(key, raw string) {
	r.items[key] = ParseValue(raw)
}

// Has reports whether key is present
func (r *Registry) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.items[key]
	return ok
}

func (r *Registry) get(key string) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	v, ok := r.items[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrKeyNotFound, key, r.name)
	}
	return v, nil
}

// GetDouble returns a numeric value; integers are widened
func (r *Registry) GetDouble(key string) (float64, error) {
	v, err := r.get(key)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	}
	return 0, fmt.Errorf("%w: %s in %s is %T, want number", ErrTypeMismatch, key, r.name, v)
}

// GetDoubleDef returns def when key is absent
func (r *Registry) GetDoubleDef(key string, def float64) (float64, error) {
	if !r.Has(key) {
		return def, nil
	}
	return r.GetDouble(key)
}

// GetBool returns a boolean value
func (r *Registry) GetBool(key string) (bool, error) {
	v, err := r.get(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s in %s is %T, want bool", ErrTypeMismatch, key, r.name, v)
	}
	return b, nil
}

// GetBoolDef returns def when key is absent
func (r *Registry) GetBoolDef(key string, def bool) (bool, error) {
	if !r.Has(key) {
		return def, nil
	}
	return r.GetBool(key)
}

// GetString returns a string value
func (r *Registry) GetString(key string) (string, error) {
	v, err := r.get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s in %s is %T, want string", ErrTypeMismatch, key, r.name, v)
	}
	return s, nil
}

// GetStringDef returns def when key is absent
func (r *Registry) GetStringDef(key, def string) (string, error) {
	if !r.Has(key) {
		return def, nil
	}
	return r.GetString(key)
}

// GetInt returns an integer value
func (r *Registry) GetInt(key string) (int, error) {
	v, err := r.get(key)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %s in %s is %T, want int", ErrTypeMismatch, key, r.name, v)
	}
	return i, nil
}

// ParseValue converts a command-line string into the type YAML would decode
func ParseValue(raw string) any {
	s := strings.TrimSpace(raw)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
