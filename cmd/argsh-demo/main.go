// Command argsh-demo wires argsh.Host end to end: a "greet" leaf that
// parses its own flags via Args, and a root dispatcher that parses
// global flags and routes to a subcommand via Usage. It exists as a
// runnable demonstration of the two engines described in spec.md §4,
// not as a library consumer surface of its own.
package main

import (
	"fmt"
	"os"

	"github.com/arg-sh/argsh"
)

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	sc := argsh.NewMapScope("argsh-demo")
	host := argsh.NewHost(sc, "argsh-demo")

	sc.RegisterFunction("greet", func(tail []string) error {
		code, err := host.Args("argsh-demo greet", tail, []string{
			"name|n:!", "Who to greet",
			"loud|l:+", "Shout the greeting",
			"count|c:~int", "How many times to repeat",
		})
		if err != nil {
			return err
		}
		if code != 0 {
			return nil
		}
		return doGreet(sc)
	})

	sc.RegisterFunction("version", func(tail []string) error {
		fmt.Fprintln(host.Stdout, "argsh-demo (development build)")
		return nil
	})

	tail := argv[1:]
	code, dispatch, err := host.Usage("argsh-demo", tail, []string{
		"greet|g", "Print a greeting",
		"version", "Show version information",
	}, []string{
		"verbose|v:+", "Enable verbose logging",
	})
	if err != nil {
		return code
	}
	if dispatch == nil {
		return code
	}

	fn, ok := sc.Function(dispatch.Handler)
	if !ok {
		fmt.Fprintf(host.Stderr, "argsh-demo: no handler registered for %q\n", dispatch.Handler)
		return 2
	}
	if err := fn(dispatch.Tail); err != nil {
		fmt.Fprintln(host.Stderr, err.Error())
		return 1
	}
	return 0
}

func doGreet(sc *argsh.MapScope) error {
	name, _ := sc.GetScalar("name")
	loud, _ := sc.GetScalar("loud")
	countRaw, bound := sc.GetScalar("count")
	count := 1
	if bound {
		fmt.Sscanf(countRaw, "%d", &count)
	}

	greeting := fmt.Sprintf("Hello, %s!", name)
	if loud == "1" {
		greeting = fmt.Sprintf("HELLO, %s!!!", name)
	}
	for i := 0; i < count; i++ {
		fmt.Println(greeting)
	}
	return nil
}
