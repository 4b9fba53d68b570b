package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arg-sh/argsh/internal/argparse"
	"github.com/arg-sh/argsh/internal/render"
	"github.com/arg-sh/argsh/internal/router"
	"github.com/arg-sh/argsh/internal/scope"
)

func TestHelpShowsArgumentsAndOptions(t *testing.T) {
	sc := scope.NewMapScope("argsh-demo")
	fields, err := argparse.ParseFields([]string{
		"name", "Name of the resource",
		"age|a:~int", "Age in years",
		"#secret|s:+", "Hidden switch",
	}, sc)
	require.NoError(t, err)

	text := render.Help(&render.Model{
		Path:   []string{"argsh-demo"},
		Title:  "Manage resources",
		Fields: fields,
	})

	assert.Contains(t, text, "Manage resources")
	assert.Contains(t, text, "Usage: argsh-demo")
	assert.Contains(t, text, "Arguments:")
	assert.Contains(t, text, "Name of the resource")
	assert.Contains(t, text, "Options:")
	assert.Contains(t, text, "--age")
	assert.NotContains(t, text, "secret")
}

func TestHelpListsCommands(t *testing.T) {
	entries, err := router.ParseEntries([]string{
		"serve|s", "Start the server",
		"#internal", "Hidden",
	})
	require.NoError(t, err)

	text := render.Help(&render.Model{
		Path:     []string{"argsh-demo"},
		Title:    "argsh-demo",
		Commands: entries,
	})

	assert.Contains(t, text, "Commands:")
	assert.Contains(t, text, "serve")
	assert.NotContains(t, text, "internal")
}

func TestHelpGroupSeparatorBecomesSectionHeading(t *testing.T) {
	sc := scope.NewMapScope("argsh-demo")
	fields, err := argparse.ParseFields([]string{
		"-", "Connection options",
		"host|h", "Hostname",
	}, sc)
	require.NoError(t, err)

	text := render.Help(&render.Model{Path: []string{"argsh-demo"}, Title: "t", Fields: fields})
	assert.Contains(t, text, "Connection options:")
}
