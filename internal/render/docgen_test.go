package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arg-sh/argsh/internal/argparse"
	"github.com/arg-sh/argsh/internal/render"
	"github.com/arg-sh/argsh/internal/scope"
)

func sampleModel(t *testing.T) *render.Model {
	t.Helper()
	sc := scope.NewMapScope("argsh-demo")
	fields, err := argparse.ParseFields([]string{
		"name", "Name of the resource",
		"age|a:~int", "Age in years",
	}, sc)
	require.NoError(t, err)
	return &render.Model{Path: []string{"argsh-demo"}, Title: "Manage resources", Fields: fields}
}

func TestDocMarkdownMentionsFlags(t *testing.T) {
	out, err := render.Doc(sampleModel(t), render.FormatMD, "")
	require.NoError(t, err)
	assert.Contains(t, out, "age")
}

func TestDocYAMLMentionsCommand(t *testing.T) {
	out, err := render.Doc(sampleModel(t), render.FormatYAML, "")
	require.NoError(t, err)
	assert.Contains(t, out, "argsh-demo")
}

func TestDocLLMOpenAISchemaHasFunctionEnvelope(t *testing.T) {
	out, err := render.Doc(sampleModel(t), "llm", render.LLMOpenAI)
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "function"`)
	assert.Contains(t, out, `"age"`)
}

func TestDocLLMAnthropicSchemaHasInputSchema(t *testing.T) {
	out, err := render.Doc(sampleModel(t), "llm", render.LLMAnthropic)
	require.NoError(t, err)
	assert.Contains(t, out, `"input_schema"`)
}

func TestDocUnknownFormatErrors(t *testing.T) {
	_, err := render.Doc(sampleModel(t), "docx", "")
	assert.Error(t, err)
}
