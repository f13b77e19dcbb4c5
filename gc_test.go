package opython

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInterpreter_StaleAfterStop restarts the default interpreter, objects
// from the previous run must not reach the new one
func TestInterpreter_StaleAfterStop(t *testing.T) {
	i := Default()

	m, err := Import("fixtures")
	require.NoError(t, err)
	obj, err := i.Wrap("kept")
	require.NoError(t, err)
	gen := i.Generation()

	require.True(t, Stop())
	assert.Equal(t, 0, i.Outstanding(), "finalization released every reference")
	require.True(t, Start())
	assert.Equal(t, gen+1, i.Generation())

	_, err = obj.Value()
	assert.ErrorIs(t, err, ErrStale)
	_, err = m.Get("answer")
	assert.ErrorIs(t, err, ErrStale)
	assert.False(t, obj.Valid())

	// closing stale objects is harmless
	obj.Close()
	m.Close()

	// extensions prepared the new interpreter
	r, err := Call("fixtures", "identity", "fresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh", r)
}

func TestInterpreter_Collect(t *testing.T) {
	i := Default()

	_, err := i.ModuleFromSource("cycles", `
def make():
    for _ in range(10):
        a = []
        b = [a]
        a.append(b)
`)
	require.NoError(t, err)

	_, err = i.Collect()
	require.NoError(t, err)

	_, err = Call("cycles", "make")
	require.NoError(t, err)

	n, err := i.Collect()
	require.NoError(t, err)
	assert.Positive(t, n)
}

func TestInterpreter_SecondInterpreterRefused(t *testing.T) {
	other, err := NewCore(nil)
	require.NoError(t, err)

	assert.False(t, other.Start(), "python is owned by the default interpreter")
	_, err = other.CallWithModule("builtins", "len", "abc")
	assert.ErrorIs(t, err, ErrStartFailed)
}
