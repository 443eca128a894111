package config

import (
	"errors"
	"fmt"
)

// Lookup resolves keys against a sub-model's own set first and the global
// parameter list second
type Lookup struct {
	Local  *Registry
	Global *Registry
}

// Double returns localKey from the local set, else globalKey from the global list
func (l Lookup) Double(localKey, globalKey string) (float64, error) {
	if l.Local.Has(localKey) {
		return l.Local.GetDouble(localKey)
	}
	v, err := l.Global.GetDouble(globalKey)
	if errors.Is(err, ErrKeyNotFound) {
		return 0, fmt.Errorf("%w: %s (local) / %s (global)", ErrKeyNotFound, localKey, globalKey)
	}
	return v, err
}

// String returns localKey from the local set, else globalKey from the global list
func (l Lookup) String(localKey, globalKey string) (string, error) {
	if l.Local.Has(localKey) {
		return l.Local.GetString(localKey)
	}
	v, err := l.Global.GetString(globalKey)
	if errors.Is(err, ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s (local) / %s (global)", ErrKeyNotFound, localKey, globalKey)
	}
	return v, err
}

// StringDef is String with a default for keys found in neither registry
func (l Lookup) StringDef(localKey, globalKey, def string) (string, error) {
	v, err := l.String(localKey, globalKey)
	if errors.Is(err, ErrKeyNotFound) {
		return def, nil
	}
	return v, err
}

// Bool reads a local-only flag with a default
func (l Lookup) Bool(localKey string, def bool) (bool, error) {
	return l.Local.GetBoolDef(localKey, def)
}
