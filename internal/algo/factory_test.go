package algo

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/resxsec/internal/config"
)

type greeter interface{ Greet() string }

type hello struct{ who string }

func (h hello) Greet() string { return "hello " + h.who }

func testPool(t *testing.T) *config.Pool {
	t.Helper()
	p, err := config.ParsePool([]byte(`
global:
  greeter-alg-name: Hello
algorithms:
  Hello:
    Default: {who: world}
    Alt: {who: there}
  Outer:
    Default: {greeter-alg-name: Hello, greeter-param-set: Alt}
`))
	require.NoError(t, err)
	return p
}

func helloCtor(calls *int32) Constructor {
	return func(env Environment, cfg *config.Registry) (any, error) {
		atomic.AddInt32(calls, 1)
		who, err := cfg.GetStringDef("who", "nobody")
		if err != nil {
			return nil, err
		}
		return hello{who: who}, nil
	}
}

func TestResolveCachesPerID(t *testing.T) {
	var calls int32
	f := NewFactory(testPool(t))
	f.Register("Hello", helloCtor(&calls))

	a, err := Get[greeter](f, ID{Name: "Hello", ParamSet: "Default"})
	require.NoError(t, err)
	b, err := Get[greeter](f, ID{Name: "Hello"})
	require.NoError(t, err)
	c, err := Get[greeter](f, ID{Name: "Hello", ParamSet: "Alt"})
	require.NoError(t, err)

	assert.Equal(t, "hello world", a.Greet())
	assert.Equal(t, a, b)
	assert.Equal(t, "hello there", c.Greet())
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestResolveMissingSetUsesEmptyRegistry(t *testing.T) {
	var calls int32
	f := NewFactory(testPool(t))
	f.Register("Hello", helloCtor(&calls))

	g, err := Get[greeter](f, ID{Name: "Hello", ParamSet: "Unlisted"})
	require.NoError(t, err)
	assert.Equal(t, "hello nobody", g.Greet())
}

func TestResolveErrors(t *testing.T) {
	f := NewFactory(testPool(t))
	_, err := f.Resolve(ID{Name: "Nope"})
	assert.ErrorIs(t, err, ErrNotRegistered)

	f.Register("Number", func(Environment, *config.Registry) (any, error) { return 42, nil })
	_, err = Get[greeter](f, ID{Name: "Number"})
	assert.ErrorIs(t, err, ErrWrongType)

	boom := errors.New("boom")
	var calls int32
	f.Register("Flaky", func(Environment, *config.Registry) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, boom
		}
		return hello{who: "again"}, nil
	})
	_, err = f.Resolve(ID{Name: "Flaky"})
	assert.ErrorIs(t, err, boom)
	g, err := Get[greeter](f, ID{Name: "Flaky"})
	require.NoError(t, err)
	assert.Equal(t, "hello again", g.Greet())
}

func TestSubAlgLocalThenGlobal(t *testing.T) {
	var calls int32
	f := NewFactory(testPool(t))
	f.Register("Hello", helloCtor(&calls))
	f.Register("Outer", func(env Environment, cfg *config.Registry) (any, error) {
		return SubAlg[greeter](env, cfg, "greeter-alg-name", "greeter-param-set")
	})

	outer, err := Get[greeter](f, ID{Name: "Outer"})
	require.NoError(t, err)
	assert.Equal(t, "hello there", outer.Greet())

	// no local keys: name from the global list, set defaults to Default
	g, err := SubAlg[greeter](f, config.NewRegistry("empty"), "greeter-alg-name", "greeter-param-set")
	require.NoError(t, err)
	assert.Equal(t, "hello world", g.Greet())

	_, err = SubAlg[greeter](f, config.NewRegistry("empty"), "missing-alg-name", "missing-param-set")
	assert.ErrorIs(t, err, config.ErrKeyNotFound)

	id, _, err := SubAlgID[greeter](f, config.NewRegistry("empty"), "greeter-alg-name", "greeter-param-set")
	require.NoError(t, err)
	assert.Equal(t, ID{Name: "Hello", ParamSet: DefaultParamSet}, id)
}

func TestResolveConcurrent(t *testing.T) {
	var calls int32
	f := NewFactory(testPool(t))
	f.Register("Hello", helloCtor(&calls))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := Get[greeter](f, ID{Name: "Hello"})
			assert.NoError(t, err)
			assert.Equal(t, "hello world", g.Greet())
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"Hello"}, f.Registered())
}
