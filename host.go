package argsh

import (
	"fmt"
	"io"
	"os"

	"github.com/arg-sh/argsh/internal/argparse"
	"github.com/arg-sh/argsh/internal/env"
	"github.com/arg-sh/argsh/internal/errs"
	"github.com/arg-sh/argsh/internal/render"
	"github.com/arg-sh/argsh/internal/router"
)

// Host bundles everything the two engines need beyond the field/usage
// declarations themselves: the Scope to read and write, the coercer
// Registry, where help/errors go, and the command-name stack of
// spec.md §3 — re-architected per spec.md §9 into an explicit value
// threaded through calls instead of process-global state.
type Host struct {
	Scope        Scope
	Registry     *Registry
	Stdout       io.Writer
	Stderr       io.Writer
	Path         []string // command-name stack, program name first
	CallerPrefix string   // passed explicitly instead of walking a call stack
}

// NewHost returns a Host wired to os.Stdout/os.Stderr and a fresh
// builtin Registry, rooted at scriptName.
func NewHost(sc Scope, scriptName string) *Host {
	return &Host{
		Scope:    sc,
		Registry: NewRegistry(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Path:     []string{scriptName},
	}
}

// Dispatch is what Usage hands back once a subcommand has resolved: the
// handler function name and the untouched tail (spec.md §4.5 step 7's
// "host can dispatch by the handler name plus the untouched tail").
type Dispatch struct {
	Command string
	Handler string
	Tail    []string
}

// Args implements the `args` operation of spec.md §6.
func (h *Host) Args(title string, tail, specs []string) (int, error) {
	fields, err := argparse.ParseFields(specs, h.Scope)
	if err != nil {
		return h.fail(err)
	}

	if isHelpToken(tail) {
		fmt.Fprintln(h.Stdout, render.Help(&render.Model{Path: h.Path, Title: title, Fields: fields}))
		return 0, nil
	}

	if err := argparse.Run(fields, tail, h.Scope, h.Registry); err != nil {
		return h.fail(err)
	}
	return 0, nil
}

// Usage implements the `usage` operation of spec.md §6. globalSpecs may
// be nil when the caller declares no global flags. Follows spec.md
// §4.5's literal step order: decode the usage entries, check for help
// (step 2), then walk global flags (step 3) — the help branch still
// needs globalFields to render the flag section, so it decodes them
// locally instead of consuming the shared walk.
func (h *Host) Usage(title string, tail, usageSpecs, globalSpecs []string) (int, *Dispatch, error) {
	entries, err := router.ParseEntries(usageSpecs)
	if err != nil {
		code, ferr := h.fail(err)
		return code, nil, ferr
	}

	if isHelpToken(tail) {
		globalFields, err := argparse.ParseFields(globalSpecs, h.Scope)
		if err != nil {
			code, ferr := h.fail(err)
			return code, nil, ferr
		}
		fmt.Fprintln(h.Stdout, render.Help(&render.Model{Path: h.Path, Title: title, Commands: entries, Fields: globalFields}))
		return 0, nil, nil
	}

	globalFields, err := argparse.ParseFields(globalSpecs, h.Scope)
	if err != nil {
		code, ferr := h.fail(err)
		return code, nil, ferr
	}

	if len(h.Path) == 1 && len(tail) > 0 && tail[0] == "--argsh" {
		fmt.Fprintf(h.Stdout, "%s version %s (%s)\n", h.Path[0], versionOrDev(), commitOrUnknown())
		return 0, nil, nil
	}

	result, help, err := router.Route(entries, globalFields, tail, h.Scope, h.Registry, h.CallerPrefix)
	if err != nil {
		code, ferr := h.fail(err)
		return code, nil, ferr
	}
	if help {
		fmt.Fprintln(h.Stdout, render.Help(&render.Model{Path: h.Path, Title: title, Commands: entries, Fields: globalFields}))
		return 0, nil, nil
	}

	h.Path = append(h.Path, result.Entry.Name)
	return 0, &Dispatch{Command: result.Entry.Name, Handler: result.Handler, Tail: result.Rest}, nil
}

// Completion implements the `completion <shell>` CLI surface (spec.md §6).
func (h *Host) Completion(shell, title string, specs, usageSpecs []string) (int, error) {
	fields, err := argparse.ParseFields(specs, h.Scope)
	if err != nil {
		return h.fail(err)
	}
	entries, err := router.ParseEntries(usageSpecs)
	if err != nil {
		return h.fail(err)
	}

	out, err := render.Completion(&render.Model{Path: h.Path, Title: title, Fields: fields, Commands: entries}, shell)
	if err != nil {
		return h.fail(errs.User(err, "%s", err.Error()))
	}
	fmt.Fprint(h.Stdout, out)
	return 0, nil
}

// Docgen implements the `docgen <format>` CLI surface (spec.md §6).
func (h *Host) Docgen(format, flavor, title string, specs, usageSpecs []string) (int, error) {
	fields, err := argparse.ParseFields(specs, h.Scope)
	if err != nil {
		return h.fail(err)
	}
	entries, err := router.ParseEntries(usageSpecs)
	if err != nil {
		return h.fail(err)
	}

	out, err := render.Doc(&render.Model{Path: h.Path, Title: title, Fields: fields, Commands: entries}, format, flavor)
	if err != nil {
		return h.fail(errs.User(err, "%s", err.Error()))
	}
	fmt.Fprint(h.Stdout, out)
	return 0, nil
}

func (h *Host) fail(err error) (int, error) {
	fmt.Fprintln(h.Stderr, err.Error())
	return errs.ExitCode(err), err
}

func isHelpToken(tail []string) bool {
	return len(tail) > 0 && (tail[0] == "-h" || tail[0] == "--help")
}

func versionOrDev() string {
	if v := env.Version(); v != "" {
		return v
	}
	return "dev"
}

func commitOrUnknown() string {
	if v := env.CommitSHA(); v != "" {
		return v
	}
	return "unknown"
}
