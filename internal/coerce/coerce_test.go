package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arg-sh/argsh/internal/coerce"
)

func TestCoerceIntCanonicalizesLeadingZeros(t *testing.T) {
	r := coerce.NewRegistry()
	out, err := r.Coerce("int", "count", "007")
	require.NoError(t, err)
	assert.Equal(t, "7", out)
}

func TestCoerceIntRejectsFraction(t *testing.T) {
	r := coerce.NewRegistry()
	_, err := r.Coerce("int", "count", "1.5")
	assert.Error(t, err)
}

func TestCoerceFloatPassesThrough(t *testing.T) {
	r := coerce.NewRegistry()
	out, err := r.Coerce("float", "ratio", "-3.14")
	require.NoError(t, err)
	assert.Equal(t, "-3.14", out)
}

func TestCoerceBooleanNeverRejects(t *testing.T) {
	r := coerce.NewRegistry()
	for raw, want := range map[string]string{"": "0", "0": "0", "false": "0", "anything": "1", "1": "1"} {
		out, err := r.Coerce("boolean", "flag", raw)
		require.NoError(t, err)
		assert.Equal(t, want, out)
	}
}

func TestCoerceFileRejectsMissingPath(t *testing.T) {
	r := coerce.NewRegistry()
	_, err := r.Coerce("file", "input", "/no/such/path-argsh-test")
	assert.Error(t, err)
}

func TestCoerceUnknownTypeIsSpecError(t *testing.T) {
	r := coerce.NewRegistry()
	_, err := r.Coerce("bogus", "field", "x")
	assert.Error(t, err)
}

func TestRegisterCustomCoercer(t *testing.T) {
	r := coerce.NewRegistry()
	r.Register("upper", func(raw string) (string, error) {
		out := ""
		for _, c := range raw {
			if c >= 'a' && c <= 'z' {
				c -= 32
			}
			out += string(c)
		}
		return out, nil
	})
	out, err := r.Coerce("upper", "name", "hi")
	require.NoError(t, err)
	assert.Equal(t, "HI", out)
}
