package baryonres

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk layout of a resonance data set
type tableFile struct {
	Resonances []struct {
		Name  string  `yaml:"name"`
		Mass  float64 `yaml:"mass"`
		Width float64 `yaml:"width"`
		Norm  float64 `yaml:"bw_norm"`
		Index *int    `yaml:"index"` // defaults to the oscillator quanta of the state
	} `yaml:"resonances"`
}

// LoadTableFile reads a YAML resonance data set
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resonance data set: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes a YAML resonance data set
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse resonance data set YAML: %w", err)
	}
	if len(f.Resonances) == 0 {
		return nil, fmt.Errorf("resonance data set is empty")
	}

	records := make([]Record, 0, len(f.Resonances))
	for _, row := range f.Resonances {
		res, err := ParseResonance(row.Name)
		if err != nil {
			return nil, err
		}
		idx := res.OscillatorQuanta()
		if row.Index != nil {
			idx = *row.Index
		}
		records = append(records, Record{
			Resonance: res,
			Mass:      row.Mass,
			Width:     row.Width,
			Norm:      row.Norm,
			Index:     idx,
		})
	}
	return NewTable(records)
}
