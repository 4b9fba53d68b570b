package argparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arg-sh/argsh/internal/argparse"
	"github.com/arg-sh/argsh/internal/coerce"
	"github.com/arg-sh/argsh/internal/scope"
)

func newScope() *scope.MapScope { return scope.NewMapScope("argsh") }

// Scenario 1: simple positional + typed flag.
func TestSimplePositionalAndTypedFlag(t *testing.T) {
	sc := newScope()
	reg := coerce.NewRegistry()

	fields, err := argparse.ParseFields([]string{
		"name", "Name",
		"age|a:~int", "Age",
	}, sc)
	require.NoError(t, err)

	err = argparse.Run(fields, []string{"alice", "--age", "42"}, sc, reg)
	require.NoError(t, err)

	name, _ := sc.GetScalar("name")
	age, _ := sc.GetScalar("age")
	assert.Equal(t, "alice", name)
	assert.Equal(t, "42", age)
}

// Scenario 2: type rejection leaves earlier writes alone but does fail.
func TestTypeRejection(t *testing.T) {
	sc := newScope()
	reg := coerce.NewRegistry()

	fields, err := argparse.ParseFields([]string{
		"name", "Name",
		"age|a:~int", "Age",
	}, sc)
	require.NoError(t, err)

	err = argparse.Run(fields, []string{"alice", "--age", "foo"}, sc, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age")
	assert.Contains(t, err.Error(), "foo")
}

// Scenario 3: required flag absent.
func TestRequiredFlagAbsent(t *testing.T) {
	sc := newScope()
	reg := coerce.NewRegistry()

	fields, err := argparse.ParseFields([]string{"env|e:!", "Env"}, sc)
	require.NoError(t, err)

	err = argparse.Run(fields, []string{}, sc, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flag")
}

// Scenario 4: boolean counting via repeated short flags.
func TestBooleanCounting(t *testing.T) {
	sc := newScope()
	sc.DeclareArray("verbose")
	reg := coerce.NewRegistry()

	fields, err := argparse.ParseFields([]string{"verbose|v:+", "Verbose"}, sc)
	require.NoError(t, err)

	err = argparse.Run(fields, []string{"-vvv"}, sc, reg)
	require.NoError(t, err)
	assert.Equal(t, 3, sc.ArrayLen("verbose"))
}

func TestRepeatableFlagAppendsEachOccurrence(t *testing.T) {
	sc := newScope()
	sc.DeclareArray("x")
	reg := coerce.NewRegistry()

	fields, err := argparse.ParseFields([]string{"x|x", "X value"}, sc)
	require.NoError(t, err)

	err = argparse.Run(fields, []string{"--x", "v1", "--x", "v2", "--x", "v3"}, sc, reg)
	require.NoError(t, err)

	got, _ := sc.GetScalar("x")
	assert.Equal(t, "v3", got)
	assert.Equal(t, 3, sc.ArrayLen("x"))
}

func TestEqualsFormAndEmptyValue(t *testing.T) {
	sc := newScope()
	reg := coerce.NewRegistry()

	fields, err := argparse.ParseFields([]string{"label|l", "Label"}, sc)
	require.NoError(t, err)

	err = argparse.Run(fields, []string{"--label="}, sc, reg)
	require.NoError(t, err)

	val, bound := sc.GetScalar("label")
	assert.True(t, bound)
	assert.Equal(t, "", val)
}

func TestShortClusterWithInlineValue(t *testing.T) {
	sc := newScope()
	reg := coerce.NewRegistry()

	fields, err := argparse.ParseFields([]string{
		"verbose|v:+", "Verbose",
		"name|n", "Name",
	}, sc)
	require.NoError(t, err)

	err = argparse.Run(fields, []string{"-vnbob"}, sc, reg)
	require.NoError(t, err)

	name, _ := sc.GetScalar("name")
	verbose, _ := sc.GetScalar("verbose")
	assert.Equal(t, "bob", name)
	assert.Equal(t, "1", verbose)
}

func TestArrayPositionalConsumesRemaining(t *testing.T) {
	sc := newScope()
	sc.DeclareArray("files")
	reg := coerce.NewRegistry()

	fields, err := argparse.ParseFields([]string{"files", "Files"}, sc)
	require.NoError(t, err)

	err = argparse.Run(fields, []string{"a", "b", "c"}, sc, reg)
	require.NoError(t, err)
	assert.Equal(t, 3, sc.ArrayLen("files"))
}

func TestTooManyPositionals(t *testing.T) {
	sc := newScope()
	reg := coerce.NewRegistry()

	fields, err := argparse.ParseFields([]string{"name", "Name"}, sc)
	require.NoError(t, err)

	err = argparse.Run(fields, []string{"alice", "bob"}, sc, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many arguments")
}

func TestUnknownFlagSuggestsClosest(t *testing.T) {
	sc := newScope()
	reg := coerce.NewRegistry()

	fields, err := argparse.ParseFields([]string{"verbose|v:+", "Verbose"}, sc)
	require.NoError(t, err)

	err = argparse.Run(fields, []string{"--verbos"}, sc, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Did you mean 'verbose'?")
}

func TestOddLengthSpecIsSpecError(t *testing.T) {
	sc := newScope()
	_, err := argparse.ParseFields([]string{"name"}, sc)
	require.Error(t, err)
}
