package render

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arg-sh/argsh/internal/field"
)

// buildCommand projects a Model onto a *cobra.Command, purely as a
// substrate for documentation generation (cobra/doc) and shell
// completion (carapace) — argsh's own two engines still own actual
// command-line parsing. Grounded on the teacher's Generate(), which
// builds the same kind of tree from reflected struct tags instead of
// field-spec strings.
func buildCommand(m *Model) *cobra.Command {
	name := "argsh"
	if len(m.Path) > 0 {
		name = m.Path[len(m.Path)-1]
	}

	cmd := &cobra.Command{
		Use:   name + usageTail(m),
		Short: firstLine(m.Title),
		Long:  m.Title,
	}

	fs := cmd.Flags()
	for _, f := range m.Fields {
		if f.Kind != field.Flag {
			continue
		}
		addFlag(fs, f)
		if f.Hidden {
			_ = fs.MarkHidden(f.DisplayName)
		}
		if f.Required {
			_ = cmd.MarkFlagRequired(f.DisplayName)
		}
	}

	for _, e := range m.Commands {
		sub := &cobra.Command{
			Use:     e.Name,
			Aliases: e.Aliases,
			Short:   e.Description,
			Hidden:  e.Hidden,
			Run:     func(*cobra.Command, []string) {},
		}
		cmd.AddCommand(sub)
	}

	return cmd
}

func addFlag(fs *pflag.FlagSet, f *field.Field) {
	short := f.Short
	if len(short) != 1 {
		short = ""
	}
	switch {
	case f.Boolean:
		fs.BoolP(f.DisplayName, short, false, f.Description)
	default:
		fs.StringP(f.DisplayName, short, "", f.Description)
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
