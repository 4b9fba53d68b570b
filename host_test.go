package argsh_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arg-sh/argsh"
)

func newHost() (*argsh.Host, *bytes.Buffer, *bytes.Buffer) {
	sc := argsh.NewMapScope("argsh-demo")
	h := argsh.NewHost(sc, "argsh-demo")
	var stdout, stderr bytes.Buffer
	h.Stdout, h.Stderr = &stdout, &stderr
	return h, &stdout, &stderr
}

func TestHelpExitsZeroWritesOnlyStdout(t *testing.T) {
	h, stdout, stderr := newHost()
	code, err := h.Args("demo", []string{"--help"}, []string{"name", "Name"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestUserErrorExitsTwoWritesOnlyStderr(t *testing.T) {
	h, stdout, stderr := newHost()
	code, err := h.Args("demo", []string{}, []string{"env|e:!", "Env"})
	require.Error(t, err)
	assert.Equal(t, 2, code)
	assert.Empty(t, stdout.String())
	assert.NotEmpty(t, stderr.String())
}

func TestNoMutationOnHelp(t *testing.T) {
	sc := argsh.NewMapScope("argsh-demo")
	require.NoError(t, sc.SetScalar("name", "preset"))
	h := argsh.NewHost(sc, "argsh-demo")
	var stdout, stderr bytes.Buffer
	h.Stdout, h.Stderr = &stdout, &stderr

	code, err := h.Args("demo", []string{"--help"}, []string{"name", "Name"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	value, _ := sc.GetScalar("name")
	assert.Equal(t, "preset", value)
}

func TestIdempotentDefaults(t *testing.T) {
	h, _, _ := newHost()
	code, err := h.Args("demo", []string{}, []string{"verbose|v:+", "Verbose"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	value, bound := h.Scope.GetScalar("verbose")
	assert.True(t, bound)
	assert.Equal(t, "0", value)
}

func TestUsageDispatchesAndUpdatesPath(t *testing.T) {
	sc := argsh.NewMapScope("argsh-demo")
	sc.RegisterFunction("serve", func([]string) error { return nil })
	h := argsh.NewHost(sc, "argsh-demo")
	var stdout, stderr bytes.Buffer
	h.Stdout, h.Stderr = &stdout, &stderr

	code, dispatch, err := h.Usage("demo", []string{"serve", "--port", "8080"}, []string{"serve|s", "Start"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	require.NotNil(t, dispatch)
	assert.Equal(t, "serve", dispatch.Handler)
	assert.Equal(t, []string{"--port", "8080"}, dispatch.Tail)
	assert.Equal(t, []string{"argsh-demo", "serve"}, h.Path)
}

func TestFieldNameRoundTrip(t *testing.T) {
	variable, err := argsh.FieldName("dry-run|d:+", true)
	require.NoError(t, err)
	assert.Equal(t, "dry_run", variable)

	display, err := argsh.FieldName("dry-run|d:+", false)
	require.NoError(t, err)
	assert.Equal(t, "dry-run", display)
}
