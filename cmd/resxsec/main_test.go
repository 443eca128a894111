package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/resxsec/internal/algo"
	"github.com/sawpanic/resxsec/internal/xsec"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEnergyGrid(t *testing.T) {
	grid, err := energyGrid(1, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1.5, 2, 2.5, 3}, grid)

	grid, err = energyGrid(2, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, grid)

	for _, bad := range [][3]float64{{1, 3, 0}, {0, 3, 4}, {3, 1, 4}} {
		_, err := energyGrid(bad[0], bad[1], int(bad[2]))
		assert.Error(t, err, bad)
	}
}

func TestEvalCommand(t *testing.T) {
	out, err := run(t, "eval", "--log-level", "error", "--E", "1.5", "--W", "1.23", "--q2", "0.4")
	require.NoError(t, err)
	assert.Contains(t, out, "res:P33(1232)")
	assert.Contains(t, out, "ReinSehgalRESPXSec/Default")
	assert.Contains(t, out, "cm2/GeV^2")
}

func TestEvalExplain(t *testing.T) {
	out, err := run(t, "eval", "--log-level", "error", "--param-set", "NoBreitWigner", "--explain")
	require.NoError(t, err)

	var tr xsec.Trace
	require.NoError(t, json.Unmarshal([]byte(out), &tr))
	assert.Equal(t, "CC", tr.Variant)
	assert.Equal(t, 1.0, tr.Weight)
	assert.Greater(t, tr.Result, 0.0)
}

func TestEvalRejectsBadInput(t *testing.T) {
	_, err := run(t, "eval", "--log-level", "error", "--res", "Z99(9999)")
	assert.Error(t, err)

	_, err = run(t, "eval", "--log-level", "error", "--kps", "bogus")
	assert.Error(t, err)

	_, err = run(t, "eval", "--log-level", "loud")
	assert.Error(t, err)

	_, err = run(t, "eval", "--log-level", "error", "--set", "RES-Ma=-1")
	assert.Error(t, err)
}

func TestResonancesCommand(t *testing.T) {
	out, err := run(t, "resonances", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "P33(1232)")
	assert.Contains(t, out, "F17(1970)")
	assert.Contains(t, out, "norm(L-dep)")
}

func TestNamespaceTracksParameters(t *testing.T) {
	o := &rootOptions{}
	a := xsec.Parameters{ParamSet: "X/Default", WeightBW: true}
	b := a
	b.FKR.Ma = 1.1
	assert.NotEqual(t, o.namespace(a), o.namespace(b))
	assert.Equal(t, o.namespace(a), o.namespace(a))

	c := a
	c.DataSetID = algo.ID{Name: "BaryonResDataFile", ParamSet: algo.DefaultParamSet}
	d := a
	d.BreitWigner = algo.ID{Name: "BreitWignerLDependent", ParamSet: algo.DefaultParamSet}
	assert.NotEqual(t, o.namespace(a), o.namespace(c))
	assert.NotEqual(t, o.namespace(a), o.namespace(d))
}

func TestNamespaceTracksConfigSources(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(first, []byte("global:\n  RES-Ma: 1.032\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("global:\n  RES-Ma: 1.1\n"), 0o600))

	p := xsec.Parameters{ParamSet: "X/Default"}
	builtin := (&rootOptions{}).namespace(p)
	one := (&rootOptions{configPath: first}).namespace(p)
	two := (&rootOptions{configPath: second}).namespace(p)
	assert.NotEqual(t, builtin, one)
	assert.NotEqual(t, one, two)

	// same path, edited contents
	before := (&rootOptions{configPath: first}).namespace(p)
	require.NoError(t, os.WriteFile(first, []byte("global:\n  RES-Ma: 0.9\n"), 0o600))
	assert.NotEqual(t, before, (&rootOptions{configPath: first}).namespace(p))

	assert.NotEqual(t, builtin, (&rootOptions{dataFile: "table.yaml"}).namespace(p))
	assert.Equal(t,
		(&rootOptions{overrides: map[string]string{"RES-Ma": "1.1", "RES-Mv": "0.8"}}).namespace(p),
		(&rootOptions{overrides: map[string]string{"RES-Mv": "0.8", "RES-Ma": "1.1"}}).namespace(p))
}

func TestNamespaceTracksResolvedSubModels(t *testing.T) {
	keyFor := func(paramSet string) string {
		o := &rootOptions{paramSet: paramSet}
		x, cleanup, err := o.evaluator(context.Background())
		require.NoError(t, err)
		defer cleanup()
		return o.namespace(x.Parameters())
	}
	assert.NotEqual(t, keyFor(algo.DefaultParamSet), keyFor("NoBreitWigner"))
}
