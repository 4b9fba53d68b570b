package render

import (
	"fmt"
	"strings"

	"github.com/arg-sh/argsh/internal/env"
	"github.com/arg-sh/argsh/internal/field"
	"github.com/arg-sh/argsh/internal/router"
	"github.com/arg-sh/argsh/internal/tty"
)

// minDescriptionWidth keeps wrapped description text from collapsing
// to an unreadable column when the gutter label is wide and the
// terminal is narrow.
const minDescriptionWidth = 20

// Help renders the help text of spec.md §4.6 to a string.
func Help(m *Model) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", m.Title)
	fmt.Fprintf(&b, "Usage: %s%s\n", strings.Join(m.Path, " "), usageTail(m))

	if positionals := m.Positionals(); len(positionals) > 0 {
		b.WriteString("\nArguments:\n")
		writeFieldRows(&b, positionalRows(positionals))
	}

	writeOptionSections(&b, m.VisibleFields())

	if len(m.Commands) > 0 {
		b.WriteString("\nCommands:\n")
		writeCommandRows(&b, m.VisibleCommands())
	}

	fmt.Fprintf(&b, "\nUse %q for more information.\n", strings.Join(m.Path, " ")+" --help")

	return b.String()
}

func usageTail(m *Model) string {
	if len(m.Commands) > 0 {
		return " <command>"
	}
	var parts []string
	for _, f := range m.Positionals() {
		parts = append(parts, positionalSignature(f))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

// positionalSignature implements spec.md §4.6's formatting rule:
// <name> required & unset, [name] has-default, ...name array-typed.
func positionalSignature(f *field.Field) string {
	switch {
	case f.Multiple:
		return "..." + f.DisplayName
	case f.HasDefault:
		return "[" + f.DisplayName + "]"
	default:
		return "<" + f.DisplayName + ">"
	}
}

type row struct {
	gutter string
	label  string
	desc   string
}

func positionalRows(fields []*field.Field) []row {
	rows := make([]row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, row{gutter: requiredGutter(f), label: positionalSignature(f), desc: f.Description})
	}
	return rows
}

func requiredGutter(f *field.Field) string {
	if f.Required {
		return "!"
	}
	return " "
}

// writeOptionSections groups flags by the group separators interleaved
// in the field list (spec.md §4.6: "group separators emit section
// titles"), rendering an implicit "Options:" heading for the first run
// of flags that precede any separator.
func writeOptionSections(b *strings.Builder, fields []*field.Field) {
	var current []row
	heading := "Options:"

	flush := func() {
		if len(current) == 0 {
			return
		}
		fmt.Fprintf(b, "\n%s\n", heading)
		writeFieldRows(b, current)
		current = nil
	}

	for _, f := range fields {
		if f.Kind == field.Separator {
			flush()
			heading = f.Description + ":"
			continue
		}
		if f.Kind != field.Flag {
			continue
		}
		current = append(current, row{gutter: requiredGutter(f), label: flagSignature(f), desc: f.Description})
	}
	flush()
}

func flagSignature(f *field.Field) string {
	var parts []string
	if f.Short != "" {
		parts = append(parts, "-"+f.Short+",")
	}
	long := "--" + f.DisplayName
	if !f.Boolean {
		typ := f.Type
		if f.Multiple {
			typ = "..." + typ
		}
		long += " " + typ
	}
	parts = append(parts, long)
	return strings.Join(parts, " ")
}

func writeFieldRows(b *strings.Builder, rows []row) {
	width := env.FieldWidth()
	descWidth, wrap := descriptionWidth(width)

	for _, r := range rows {
		label := r.gutter + " " + r.label
		lines := wrapDescription(r.desc, descWidth, wrap)

		if len(label) >= width {
			fmt.Fprintf(b, "  %s\n", label)
			for _, line := range lines {
				fmt.Fprintf(b, "%s%s\n", strings.Repeat(" ", width+2), line)
			}
			continue
		}

		fmt.Fprintf(b, "  %-*s%s\n", width, label, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", strings.Repeat(" ", width+2), line)
		}
	}
}

// descriptionWidth reports how many columns are available for
// description text right of the gutter, and whether wrapping should
// happen at all: spec.md §4.6 only wraps "when stdout is a tty" — a
// redirected/piped stdout gets the unwrapped, single-line description
// the teacher's own help output produces.
func descriptionWidth(gutterWidth int) (int, bool) {
	if !tty.IsTTY() {
		return 0, false
	}
	available := tty.Width(80) - gutterWidth - 2
	if available < minDescriptionWidth {
		available = minDescriptionWidth
	}
	return available, true
}

// wrapDescription greedily word-wraps desc to width columns. wrap=false
// (non-tty stdout) returns desc as a single unwrapped line.
func wrapDescription(desc string, width int, wrap bool) []string {
	if !wrap || desc == "" {
		return []string{desc}
	}

	words := strings.Fields(desc)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return lines
}

func writeCommandRows(b *strings.Builder, entries []*router.Entry) {
	rows := make([]row, 0, len(entries))
	for _, e := range entries {
		label := e.Name
		if len(e.Aliases) > 0 {
			label += " (" + strings.Join(e.Aliases, ", ") + ")"
		}
		rows = append(rows, row{gutter: " ", label: label, desc: e.Description})
	}
	writeFieldRows(b, rows)
}
