package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sawpanic/resxsec/internal/pdg"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// GlobalName names the global parameter list
const GlobalName = "GlobalParameterList"

// Pool is the global parameter list plus the named parameter sets of every
// sub-model, keyed by algorithm name and then parameter-set name
type Pool struct {
	Global *Registry
	Sets   map[string]map[string]*Registry
}

// poolFile mirrors the YAML layout
type poolFile struct {
	Global     map[string]any                       `yaml:"global"`
	Algorithms map[string]map[string]map[string]any `yaml:"algorithms"`
}

// ParsePool decodes a YAML pool
func ParsePool(data []byte) (*Pool, error) {
	var f poolFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config pool: %w", err)
	}

	p := &Pool{Global: NewRegistry(GlobalName), Sets: make(map[string]map[string]*Registry)}
	for k, v := range f.Global {
		p.Global.Set(k, v)
	}
	for alg, sets := range f.Algorithms {
		p.Sets[alg] = make(map[string]*Registry, len(sets))
		for name, items := range sets {
			r := NewRegistry(alg + "/" + name)
			for k, v := range items {
				r.Set(k, v)
			}
			p.Sets[alg][name] = r
		}
	}
	return p, nil
}

// LoadPool reads and validates a YAML pool file
func LoadPool(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config pool: %w", err)
	}
	p, err := ParsePool(data)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("config pool %s: %w", path, err)
	}
	return p, nil
}

// DefaultPool returns the pool compiled into the binary
func DefaultPool() (*Pool, error) {
	p, err := ParsePool(defaultsYAML)
	if err != nil {
		return nil, err
	}
	return p, p.Validate()
}

// Set returns the parameter set paramSet of algorithm alg
func (p *Pool) Set(alg, paramSet string) (*Registry, error) {
	r, ok := p.Sets[alg][paramSet]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrSetNotFound, alg, paramSet)
	}
	return r, nil
}

// Algorithms lists the algorithm names that carry parameter sets
func (p *Pool) Algorithms() []string {
	out := make([]string, 0, len(p.Sets))
	for alg := range p.Sets {
		out = append(out, alg)
	}
	sort.Strings(out)
	return out
}

// Override writes command-line overrides into the global list
func (p *Pool) Override(values map[string]string) {
	for k, v := range values {
		p.Global.SetString(k, v)
	}
}

var positiveKeys = []string{
	"RS-Zeta", "Zeta", "RS-Omega", "Omega", "RES-Ma", "Ma", "RES-Mv", "Mv",
}

// Validate rejects non-positive model masses and constants and a DIS/RES
// join cut below the nucleon mass, in the global list and in every set
func (p *Pool) Validate() error {
	if err := validateRegistry(p.Global); err != nil {
		return err
	}
	for _, alg := range p.Algorithms() {
		for _, r := range p.Sets[alg] {
			if err := validateRegistry(r); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRegistry(r *Registry) error {
	for _, key := range positiveKeys {
		if !r.Has(key) {
			continue
		}
		v, err := r.GetDouble(key)
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("%s: %s must be positive, got %g", r.Name(), key, v)
		}
	}
	if r.Has("Wcut") {
		v, err := r.GetDouble("Wcut")
		if err != nil {
			return err
		}
		if v < pdg.NucleonMass {
			return fmt.Errorf("%s: Wcut %g is below the nucleon mass", r.Name(), v)
		}
	}
	return nil
}
