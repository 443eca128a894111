package baryonres

import (
	"fmt"
	"sort"
)

// Record is one row of a baryon resonance data set
type Record struct {
	Resonance Resonance `yaml:"-" db:"-"`
	Name      string    `yaml:"name" db:"name"`
	Mass      float64   `yaml:"mass" db:"mass"`   // GeV
	Width     float64   `yaml:"width" db:"width"` // GeV
	Norm      float64   `yaml:"bw_norm" db:"bw_norm"`
	Index     int       `yaml:"index" db:"res_index"`
}

// DataSet supplies resonance masses, widths and model indices
type DataSet interface {
	Lookup(res Resonance) (Record, error)
}

// Table is an in-memory DataSet keyed by resonance
type Table struct {
	records map[Resonance]Record
}

// NewTable validates records and builds a Table
func NewTable(records []Record) (*Table, error) {
	t := &Table{records: make(map[Resonance]Record, len(records))}
	for _, rec := range records {
		res := rec.Resonance
		if !res.Known() {
			parsed, err := ParseResonance(rec.Name)
			if err != nil {
				return nil, err
			}
			res = parsed
		}
		if rec.Mass <= 0 || rec.Width <= 0 {
			return nil, fmt.Errorf("resonance %s: mass and width must be positive (mass=%g, width=%g)",
				res, rec.Mass, rec.Width)
		}
		if rec.Norm < 0 {
			return nil, fmt.Errorf("resonance %s: negative Breit-Wigner norm %g", res, rec.Norm)
		}
		rec.Resonance = res
		rec.Name = res.String()
		t.records[res] = rec
	}
	return t, nil
}

// Lookup implements DataSet
func (t *Table) Lookup(res Resonance) (Record, error) {
	rec, ok := t.records[res]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrUnknownResonance, res)
	}
	return rec, nil
}

// Records returns the table rows sorted by resonance id
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resonance < out[j].Resonance })
	return out
}

// PDGTable returns the built-in data set with PDG-average masses and widths
func PDGTable() *Table {
	rows := []struct {
		res         Resonance
		mass, width float64
	}{
		{P33_1232, 1.232, 0.117},
		{S11_1535, 1.530, 0.150},
		{D13_1520, 1.515, 0.110},
		{S11_1650, 1.650, 0.125},
		{D13_1700, 1.720, 0.200},
		{D15_1675, 1.675, 0.145},
		{S31_1620, 1.630, 0.140},
		{D33_1700, 1.700, 0.300},
		{P11_1440, 1.440, 0.350},
		{P33_1600, 1.570, 0.250},
		{P13_1720, 1.720, 0.250},
		{F15_1680, 1.685, 0.120},
		{P31_1910, 1.890, 0.280},
		{P33_1920, 1.920, 0.260},
		{F35_1905, 1.880, 0.330},
		{F37_1950, 1.930, 0.285},
		{P11_1710, 1.710, 0.140},
		{F17_1970, 1.970, 0.325},
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			Resonance: row.res,
			Mass:      row.mass,
			Width:     row.width,
			Index:     row.res.OscillatorQuanta(),
		})
	}
	t, err := NewTable(records)
	if err != nil {
		panic(fmt.Sprintf("baryonres: built-in table invalid: %v", err))
	}
	return t
}
