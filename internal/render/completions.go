package render

import (
	"bytes"
	"fmt"

	"github.com/rsteube/carapace"
)

// Shell completion targets (spec.md §4.6 and §6).
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
	ShellFish = "fish"
)

// Completion renders a shell completion script for m under shell.
// The script bytes come from cobra's own generators: a bash
// `complete -o default -F` function, a zsh `#compdef` function, and a
// fish script built on `complete -c`. All three ask the program itself
// for candidates at completion time rather than listing commands and
// flags statically. carapace.Gen(cmd).Standalone() is also applied to
// the built command; that command is local to this call, so only the
// generated script text reaches the caller.
func Completion(m *Model, shell string) (string, error) {
	cmd := buildCommand(m)
	carapace.Gen(cmd).Standalone()

	var buf bytes.Buffer
	var err error

	switch shell {
	case ShellBash:
		err = cmd.GenBashCompletionV2(&buf, true)
	case ShellZsh:
		err = cmd.GenZshCompletion(&buf)
	case ShellFish:
		err = cmd.GenFishCompletion(&buf, true)
	default:
		return "", fmt.Errorf("unknown completion shell %q", shell)
	}
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
