// Package repl implements an interactive loop over the built-in
// scenario catalog (internal/zydeco.Catalog): since lexing/parsing a
// program from source text is out of scope (spec.md §1), a REPL "line"
// here selects and runs/checks one of the named programs rather than
// parsing free-form Zydeco source — the nearest honest equivalent this
// port can offer to original_source/cli/src/repl.rs's line-at-a-time
// loop.
//
// Grounded on the teacher's internal/repl/repl.go for the liner/color
// plumbing and persistent-history discipline, and on
// original_source/cli/src/repl.rs for the command set (#env, bare
// expression vs OS-typed program) and the snapshot-before-run /
// restore-after-run discipline around evaluating an OS-typed program.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/zydeco-lang/zydeco/internal/builtins"
	"github.com/zydeco-lang/zydeco/internal/machine"
	"github.com/zydeco-lang/zydeco/internal/zydeco"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Config holds the REPL's session defaults.
type Config struct {
	Prompt     string
	StepBudget int
	Color      bool
	// Externs maps an extern declaration's name to the primitive that
	// should back it (internal/config's extern→primitive wiring table).
	Externs map[string]string
}

// REPL is the interactive loop: it holds the currently loaded program
// (if any) and the primitive registry it runs against.
type REPL struct {
	config  Config
	reg     *builtins.Registry
	history []string
	current string
	loaded  zydeco.Runnable
}

// New builds a REPL with a fresh primitive registry wired to stdin,
// stdout, and argv.
func New(cfg Config) *REPL {
	color.NoColor = !cfg.Color
	return &REPL{config: cfg, reg: newRegistry(cfg, os.Stderr)}
}

// newRegistry builds a registry and applies cfg's extern→primitive
// wiring table, reporting (but not failing on) a bad entry the way
// config.LoadEnv ignores a missing .env file.
func newRegistry(cfg Config, warnings io.Writer) *builtins.Registry {
	reg := builtins.NewRegistry()
	if err := reg.ApplyExternTable(cfg.Externs); err != nil {
		fmt.Fprintf(warnings, "%s: %v\n", yellow("Warning"), err)
	}
	return reg
}

// Start begins the REPL session, reading commands from in and writing
// output to out until EOF (Ctrl-D) or a #quit command.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".zydeco_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s\n", bold("Zydeco"))
	fmt.Fprintln(out, dim("Type #help for commands, #quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(input string) (c []string) {
		if !strings.HasPrefix(input, "#") {
			return nil
		}
		for _, cmd := range []string{"#help", "#list", "#load", "#env", "#run", "#check", "#history", "#quit"} {
			if strings.HasPrefix(cmd, input) {
				c = append(c, cmd)
			}
		}
		return
	})

	for {
		input, err := line.Prompt(r.config.Prompt)
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if input == "#quit" || input == "#q" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		r.handle(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) handle(input string, out io.Writer) {
	if !strings.HasPrefix(input, "#") {
		fmt.Fprintf(out, "%s: commands start with '#' — try #help\n", yellow("Unknown input"))
		return
	}
	fields := strings.Fields(input)
	switch fields[0] {
	case "#help":
		r.printHelp(out)
	case "#list":
		r.printCatalog(out)
	case "#load":
		if len(fields) < 2 {
			fmt.Fprintln(out, "Usage: #load <name>")
			return
		}
		r.load(fields[1], out)
	case "#env":
		r.printEnv(out)
	case "#check":
		r.check(out)
	case "#run":
		r.run(out)
	case "#history":
		for i, h := range r.history {
			fmt.Fprintf(out, "%3d  %s\n", i+1, h)
		}
	default:
		fmt.Fprintf(out, "%s: %s — try #help\n", yellow("Unknown command"), fields[0])
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, "#list            list the built-in program catalog")
	fmt.Fprintln(out, "#load <name>     load a program from the catalog")
	fmt.Fprintln(out, "#env             show the currently loaded program's name")
	fmt.Fprintln(out, "#check           type-check the loaded program")
	fmt.Fprintln(out, "#run             type-check and run the loaded program")
	fmt.Fprintln(out, "#history         show this session's command history")
	fmt.Fprintln(out, "#quit            exit the REPL")
}

func (r *REPL) printCatalog(out io.Writer) {
	for _, name := range zydeco.CatalogNames() {
		marker := "  "
		if name == r.current {
			marker = "* "
		}
		fmt.Fprintf(out, "%s%s\n", marker, name)
	}
}

func (r *REPL) load(name string, out io.Writer) {
	build, ok := zydeco.Catalog()[name]
	if !ok {
		fmt.Fprintf(out, "%s: no such program %q — see #list\n", red("Error"), name)
		return
	}
	r.current = name
	r.loaded = build()
	fmt.Fprintf(out, "%s %s\n", green("loaded"), name)
}

func (r *REPL) printEnv(out io.Writer) {
	if r.loaded == nil {
		fmt.Fprintln(out, dim("no program loaded — use #load <name>"))
		return
	}
	fmt.Fprintf(out, "current = %s\n", r.current)
}

func (r *REPL) check(out io.Writer) {
	if r.loaded == nil {
		fmt.Fprintln(out, dim("no program loaded — use #load <name>"))
		return
	}
	if err := r.loaded.Check(); err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Type Error"), err)
		return
	}
	fmt.Fprintln(out, green("ok"))
}

// run evaluates the loaded program. A fresh registry is built first,
// carrying over only the prior one's I/O handles, so a previous run's
// primitive state never leaks into this one — the Go-idiomatic
// equivalent of original_source/cli/src/repl.rs's snapshot-before-run,
// restore-after-run discipline (there needed because its evaluator
// mutates one persistent environment in place; here every run already
// starts from an immutable module, so the only state worth resetting is
// the registry itself).
func (r *REPL) run(out io.Writer) {
	if r.loaded == nil {
		fmt.Fprintln(out, dim("no program loaded — use #load <name>"))
		return
	}
	if err := r.loaded.Check(); err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Type Error"), err)
		return
	}
	fresh := newRegistry(r.config, out)
	fresh.Stdin = r.reg.Stdin
	fresh.Stdout = r.reg.Stdout
	fresh.Argv = r.reg.Argv
	r.reg = fresh
	v, err := r.loaded.Run(r.reg, r.config.StepBudget)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Runtime Error"), err)
		return
	}
	switch result := v.(type) {
	case machine.ExitCodeV:
		fmt.Fprintf(out, "exited with code %d\n", int(result))
	default:
		fmt.Fprintf(out, "%s\n", result)
	}
}
