package opython

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport(t *testing.T) {
	m, err := Import("fixtures")
	require.NoError(t, err)
	assert.Equal(t, "fixtures", m.Name())
	assert.Equal(t, KindModule, m.Kind())
	assert.True(t, m.IsModule())

	v, err := m.Get("answer")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	require.NoError(t, m.Set("answer", 43))
	v, err = m.Get("answer")
	require.NoError(t, err)
	assert.Equal(t, 43, v)
	require.NoError(t, m.Set("answer", 42))

	_, err = Import("nonexistent_module")
	assert.ErrorIs(t, err, ErrImport)
}

func TestModule_Names(t *testing.T) {
	m, err := Import("fixtures")
	require.NoError(t, err)

	names, err := m.Names()
	require.NoError(t, err)
	assert.Contains(t, names, "Greeter")
	assert.Contains(t, names, "identity")
	assert.NotContains(t, names, "__name__")
}

func TestModule_Submodule(t *testing.T) {
	m, err := Import("os")
	require.NoError(t, err)

	sub, err := m.Module("path")
	require.NoError(t, err)
	assert.Equal(t, "os.path", sub.Name())

	r, err := sub.Call("basename", "/tmp/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "file.txt", r)
}

func TestModule_Class(t *testing.T) {
	m, err := Import("fixtures")
	require.NoError(t, err)

	c, err := m.Class("Greeter")
	require.NoError(t, err)
	assert.Equal(t, "Greeter", c.Name())
	assert.True(t, c.IsClass())

	inst, err := c.New("World")
	require.NoError(t, err)
	assert.Equal(t, KindInstance, inst.Kind())
	assert.Same(t, c, inst.Class())

	r, err := inst.Call("greet")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", r)

	r, err = inst.Call("greet", Kwargs{"greeting": "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hi World", r)

	name, err := inst.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "World", name)

	require.NoError(t, inst.Set("name", "Go"))
	r, err = inst.Call("greet")
	require.NoError(t, err)
	assert.Equal(t, "Hello Go", r)

	r, err = c.Call("create", "Factory")
	require.NoError(t, err)
	created, ok := r.(*Object)
	require.True(t, ok, "expected *Object, got %T", r)
	r, err = created.CallMethod("greet")
	require.NoError(t, err)
	assert.Equal(t, "Hello Factory", r)

	count, err := c.Get("created")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 2)
}

func TestModule_ClassErrors(t *testing.T) {
	m, err := Import("fixtures")
	require.NoError(t, err)

	_, err = m.Class("Missing")
	assert.ErrorIs(t, err, ErrAttribute)

	_, err = m.Class("identity")
	assert.ErrorIs(t, err, ErrType)

	c, err := m.Class("Boom")
	require.NoError(t, err)

	_, err = c.New()
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "ValueError", perr.Type)
	assert.Equal(t, "no construction", perr.Message)

	m2, err := Import("fixtures")
	require.NoError(t, err)
	g, err := m2.Class("Greeter")
	require.NoError(t, err)
	_, err = g.New()
	assert.ErrorIs(t, err, ErrRuntime, "missing constructor argument")
}

func TestModule_Function(t *testing.T) {
	m, err := Import("fixtures")
	require.NoError(t, err)

	f, err := m.Function("divide")
	require.NoError(t, err)
	assert.Equal(t, "fixtures.divide", f.Name())
	assert.Equal(t, KindFunction, f.Kind())

	r, err := f.Call(9, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)

	_, err = m.Function("answer")
	assert.ErrorIs(t, err, ErrType)

	_, err = m.Function("missing")
	assert.ErrorIs(t, err, ErrAttribute)
}

func TestResolver(t *testing.T) {
	m, err := Import("fixtures")
	require.NoError(t, err)
	c, err := m.Class("Greeter")
	require.NoError(t, err)
	inst, err := c.New("R")
	require.NoError(t, err)

	for _, r := range []Resolver{m, c, inst, m.Object} {
		obj, err := r.Resolve("__class__")
		require.NoError(t, err)
		assert.True(t, obj.IsClass())
	}

	// facades marshal as the object they wrap
	r, err := Call("fixtures", "type_name", inst)
	require.NoError(t, err)
	assert.Equal(t, "Greeter", r)
}
