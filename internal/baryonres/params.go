package baryonres

import "fmt"

// Params are the per-call resonance parameters handed to the calculators
type Params struct {
	Resonance Resonance
	Mass      float64
	Width     float64
	Norm      float64
	Index     int
	L         int
}

// Provider resolves Params from an attached DataSet. It keeps no per-call
// state, so one Provider may serve concurrent evaluations.
type Provider struct {
	ds DataSet
}

// NewProvider attaches a data set
func NewProvider(ds DataSet) Provider {
	return Provider{ds: ds}
}

// DataSet returns the attached data set
func (p Provider) DataSet() DataSet { return p.ds }

// Retrieve looks res up in the data set
func (p Provider) Retrieve(res Resonance) (Params, error) {
	if p.ds == nil {
		return Params{}, fmt.Errorf("baryonres: provider has no data set attached")
	}
	rec, err := p.ds.Lookup(res)
	if err != nil {
		return Params{}, err
	}
	return Params{
		Resonance: res,
		Mass:      rec.Mass,
		Width:     rec.Width,
		Norm:      rec.Norm,
		Index:     rec.Index,
		L:         res.OrbitalAngularMom(),
	}, nil
}
