package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"gopkg.in/yaml.v3"

	"github.com/arg-sh/argsh/internal/field"
)

// Format names accepted by the docgen operation (spec.md §6).
const (
	FormatMan  = "man"
	FormatMD   = "md"
	FormatRST  = "rst"
	FormatYAML = "yaml"
)

// LLM schema flavors (spec.md §6: "llm openai|anthropic|gemini").
const (
	LLMOpenAI    = "openai"
	LLMAnthropic = "anthropic"
	LLMGemini    = "gemini"
)

// Doc renders m as format, or as an LLM tool schema when format is
// "llm" and flavor names one of openai/anthropic/gemini.
func Doc(m *Model, format, flavor string) (string, error) {
	switch format {
	case FormatMan:
		return docMan(m)
	case FormatMD:
		return docBuffered(m, doc.GenMarkdown)
	case FormatRST:
		return docBuffered(m, doc.GenReST)
	case FormatYAML:
		return docYAML(m)
	case "llm":
		return docLLMSchema(m, flavor)
	default:
		return "", fmt.Errorf("unknown documentation format %q", format)
	}
}

func docBuffered(m *Model, gen func(*cobra.Command, io.Writer) error) (string, error) {
	cmd := buildCommand(m)
	var buf bytes.Buffer
	if err := gen(cmd, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func docMan(m *Model) (string, error) {
	cmd := buildCommand(m)
	header := &doc.GenManHeader{Title: cmd.Name(), Section: "1"}
	var buf bytes.Buffer
	if err := doc.GenMan(cmd, header, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// docSchema is the (command, positionals, flags, description) tuple
// spec.md §4.6 says every documentation format derives from; yaml and
// the LLM tool schemas marshal it directly instead of riding cobra/doc.
type docSchema struct {
	Command     string       `json:"command" yaml:"command"`
	Description string       `json:"description" yaml:"description"`
	Positionals []docField   `json:"positionals,omitempty" yaml:"positionals,omitempty"`
	Flags       []docField   `json:"flags,omitempty" yaml:"flags,omitempty"`
	Commands    []docCommand `json:"commands,omitempty" yaml:"commands,omitempty"`
}

type docField struct {
	Name        string `json:"name" yaml:"name"`
	Short       string `json:"short,omitempty" yaml:"short,omitempty"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required" yaml:"required"`
	Multiple    bool   `json:"multiple" yaml:"multiple"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type docCommand struct {
	Name        string   `json:"name" yaml:"name"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

func buildSchema(m *Model) docSchema {
	s := docSchema{
		Command:     joinPath(m.Path),
		Description: m.Title,
	}
	for _, f := range m.VisibleFields() {
		if f.Kind == field.Separator {
			continue
		}
		df := docField{Name: f.DisplayName, Short: f.Short, Type: f.Type, Required: f.Required, Multiple: f.Multiple, Description: f.Description}
		if f.Kind == field.Positional {
			s.Positionals = append(s.Positionals, df)
		} else {
			s.Flags = append(s.Flags, df)
		}
	}
	for _, e := range m.VisibleCommands() {
		s.Commands = append(s.Commands, docCommand{Name: e.Name, Aliases: e.Aliases, Description: e.Description})
	}
	return s
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

func docYAML(m *Model) (string, error) {
	out, err := yaml.Marshal(buildSchema(m))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// docLLMSchema emits a JSON tool-call schema. The three flavors share
// the same parameter shape (argsh's field set maps onto a flat object
// of named properties); only the outer envelope differs per provider
// convention, since none of the pack's examples pull in a dedicated
// JSON-schema library for this shape (see DESIGN.md).
func docLLMSchema(m *Model, flavor string) (string, error) {
	schema := buildSchema(m)

	properties := map[string]any{}
	var required []string
	for _, f := range append(append([]docField{}, schema.Positionals...), schema.Flags...) {
		properties[f.Name] = map[string]any{
			"type":        jsonType(f.Type),
			"description": f.Description,
		}
		if f.Required {
			required = append(required, f.Name)
		}
	}

	parameters := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		parameters["required"] = required
	}

	var envelope any
	switch flavor {
	case LLMAnthropic:
		envelope = map[string]any{
			"name":         schema.Command,
			"description":  schema.Description,
			"input_schema": parameters,
		}
	case LLMGemini:
		envelope = map[string]any{
			"name":        schema.Command,
			"description": schema.Description,
			"parameters":  parameters,
		}
	case LLMOpenAI, "":
		envelope = map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        schema.Command,
				"description": schema.Description,
				"parameters":  parameters,
			},
		}
	default:
		return "", fmt.Errorf("unknown llm schema flavor %q", flavor)
	}

	out, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func jsonType(coercerType string) string {
	switch coercerType {
	case field.TypeInt:
		return "integer"
	case field.TypeFloat:
		return "number"
	case field.TypeBoolean:
		return "boolean"
	default:
		return "string"
	}
}
