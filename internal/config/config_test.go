package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryTypedAccessors(t *testing.T) {
	r := NewRegistry("test")
	r.Set("f", 0.5)
	r.Set("i", 3)
	r.Set("b", true)
	r.Set("s", "BreitWignerLRes")

	f, err := r.GetDouble("f")
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	widened, err := r.GetDouble("i")
	require.NoError(t, err)
	assert.Equal(t, 3.0, widened)

	i, err := r.GetInt("i")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	b, err := r.GetBool("b")
	require.NoError(t, err)
	assert.True(t, b)

	s, err := r.GetString("s")
	require.NoError(t, err)
	assert.Equal(t, "BreitWignerLRes", s)

	_, err = r.GetDouble("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = r.GetBool("f")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = r.GetDouble("s")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	def, err := r.GetDoubleDef("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7.0, def)
	bdef, err := r.GetBoolDef("missing", true)
	require.NoError(t, err)
	assert.True(t, bdef)
	_, err = r.GetBoolDef("s", false)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, "test", r.Name())
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, true, ParseValue("true"))
	assert.Equal(t, 12, ParseValue(" 12 "))
	assert.Equal(t, 0.84, ParseValue("0.84"))
	assert.Equal(t, "BaryonResDataSQL", ParseValue("BaryonResDataSQL"))
}

func TestLookupLocalThenGlobal(t *testing.T) {
	global := NewRegistry(GlobalName)
	global.Set("RS-Zeta", 0.762)
	global.Set("RES-Ma", 1.032)
	local := NewRegistry("local")
	local.Set("Ma", 1.1)
	local.Set("weight-with-breit-wigner", false)

	l := Lookup{Local: local, Global: global}

	ma, err := l.Double("Ma", "RES-Ma")
	require.NoError(t, err)
	assert.Equal(t, 1.1, ma)

	zeta, err := l.Double("Zeta", "RS-Zeta")
	require.NoError(t, err)
	assert.Equal(t, 0.762, zeta)

	_, err = l.Double("Omega", "RS-Omega")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	bw, err := l.Bool("weight-with-breit-wigner", true)
	require.NoError(t, err)
	assert.False(t, bw)
	join, err := l.Bool("use-dis-res-joining-scheme", false)
	require.NoError(t, err)
	assert.False(t, join)

	name, err := l.StringDef("alg", "alg", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", name)

	noLocal := Lookup{Global: global}
	zeta, err = noLocal.Double("Zeta", "RS-Zeta")
	require.NoError(t, err)
	assert.Equal(t, 0.762, zeta)
}

func TestDefaultPool(t *testing.T) {
	p, err := DefaultPool()
	require.NoError(t, err)

	wcut, err := p.Global.GetDouble("Wcut")
	require.NoError(t, err)
	assert.Equal(t, 1.7, wcut)

	set, err := p.Set("ReinSehgalRESPXSec", "Default")
	require.NoError(t, err)
	name, err := set.GetString("breit-wigner-alg-name")
	require.NoError(t, err)
	assert.Equal(t, "BreitWignerLRes", name)

	_, err = p.Set("ReinSehgalRESPXSec", "Nope")
	assert.ErrorIs(t, err, ErrSetNotFound)

	assert.Contains(t, p.Algorithms(), "RSHelicityAmplModelNCn")
}

func TestPoolValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		ok   bool
	}{
		{"valid", "global: {RS-Zeta: 0.762, Wcut: 1.7}", true},
		{"negative zeta", "global: {RS-Zeta: -1}", false},
		{"zero omega in set", "algorithms: {X: {Default: {Omega: 0}}}", false},
		{"wcut below nucleon", "global: {Wcut: 0.5}", false},
		{"non-numeric ma", "global: {RES-Ma: heavy}", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePool([]byte(tt.yaml))
			require.NoError(t, err)
			if tt.ok {
				assert.NoError(t, p.Validate())
			} else {
				assert.Error(t, p.Validate())
			}
		})
	}
}

func TestLoadPoolAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("global:\n  RS-Omega: 1.05\n"), 0o644))

	p, err := LoadPool(path)
	require.NoError(t, err)
	p.Override(map[string]string{"RS-Omega": "1.2", "Wcut": "2"})

	omega, err := p.Global.GetDouble("RS-Omega")
	require.NoError(t, err)
	assert.Equal(t, 1.2, omega)
	wcut, err := p.Global.GetDouble("Wcut")
	require.NoError(t, err)
	assert.Equal(t, 2.0, wcut)

	_, err = LoadPool(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("global: [unterminated"), 0o644))
	_, err = LoadPool(path)
	assert.Error(t, err)
}
