// Command zydeco is the CLI front end: `run` executes one of the
// built-in catalog programs as an OS-typed program, `check` type-checks
// one or more (optionally glob-matched) catalog programs without
// running them, and `repl` starts the interactive loop.
//
// Grounded on termfx-morfx's demo/cmd/main.go for the cobra root/subcommand
// tree and fatih/color palette, and on termfx-morfx's main()'s
// godotenv.Load()-and-ignore-errors convention.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/zydeco-lang/zydeco/internal/builtins"
	"github.com/zydeco-lang/zydeco/internal/config"
	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/repl"
	"github.com/zydeco-lang/zydeco/internal/zydeco"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	config.LoadEnv(".env")
	cfg, err := config.Load("zydeco.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:   "zydeco",
		Short: "Zydeco: a call-by-push-value language toolchain",
	}

	var glob, reportFormat string
	checkCmd := &cobra.Command{
		Use:   "check [name]",
		Short: "Type-check one or all catalog programs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := selectNames(args, glob)
			if err != nil {
				return err
			}
			return runChecks(names, os.Stdout, reportFormat)
		},
	}
	checkCmd.Flags().StringVar(&glob, "glob", "", "glob pattern over catalog program names, e.g. 'even-odd-*'")
	checkCmd.Flags().StringVar(&reportFormat, "report", "", "structured failure report format: json or yaml")

	runCmd := &cobra.Command{
		Use:   "run <name> [-- args...]",
		Short: "Run one catalog program as an OS-typed file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(args[0], normalizeArgv(args[1:]), cfg)
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive REPL",
		Run: func(cmd *cobra.Command, args []string) {
			sessionID := uuid.New().String()
			fmt.Fprintf(os.Stdout, "%s %s\n", bold("session"), sessionID)
			r := repl.New(repl.Config{Prompt: cfg.Prompt, StepBudget: cfg.StepBudget, Color: cfg.Color, Externs: cfg.Externs})
			r.Start(os.Stdin, os.Stdout)
		},
	}

	root.AddCommand(checkCmd, runCmd, replCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
}

// selectNames resolves the program(s) a check invocation applies to: a
// single positional name, a --glob pattern over the catalog, or (with
// neither) the entire catalog.
func selectNames(args []string, glob string) ([]string, error) {
	if len(args) == 1 {
		return args, nil
	}
	all := zydeco.CatalogNames()
	if glob == "" {
		return all, nil
	}
	var matched []string
	for _, name := range all {
		ok, err := doublestar.Match(glob, name)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", glob, err)
		}
		if ok {
			matched = append(matched, name)
		}
	}
	sort.Strings(matched)
	return matched, nil
}

func runChecks(names []string, out io.Writer, reportFormat string) error {
	catalog := zydeco.Catalog()
	failed := false
	for _, name := range names {
		build, ok := catalog[name]
		if !ok {
			fmt.Fprintf(out, "%s: no such program %q\n", red("Error"), name)
			failed = true
			continue
		}
		if err := build().Check(); err != nil {
			failed = true
			if rendered, ok := renderCheckFailure(name, err, reportFormat); ok {
				fmt.Fprintln(out, rendered)
				continue
			}
			fmt.Fprintf(out, "%s %s: %v\n", red("FAIL"), name, err)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", green("ok"), name)
	}
	if failed {
		return fmt.Errorf("one or more programs failed to check")
	}
	return nil
}

// renderCheckFailure renders a failed check's *errors.Report in the
// requested structured format. ok is false when reportFormat is empty
// or the error carries no Report (falling back to plain-text display).
func renderCheckFailure(name string, err error, reportFormat string) (string, bool) {
	rep, ok := zerrors.AsReport(err)
	if !ok || reportFormat == "" {
		return "", false
	}
	switch reportFormat {
	case "yaml":
		if out, yerr := rep.ToYAML(); yerr == nil {
			return fmt.Sprintf("# %s\n%s", name, out), true
		}
	case "json":
		if out, jerr := rep.ToJSON(false); jerr == nil {
			return out, true
		}
	}
	return "", false
}

func runProgram(name string, argv []string, cfg *config.Config) error {
	build, ok := zydeco.Catalog()[name]
	if !ok {
		return fmt.Errorf("no such program %q", name)
	}
	program := build()
	if err := program.Check(); err != nil {
		return fmt.Errorf("type error: %w", err)
	}
	reg := builtins.NewRegistry()
	if err := reg.ApplyExternTable(cfg.Externs); err != nil {
		return fmt.Errorf("applying extern wiring table: %w", err)
	}
	reg.Argv = argv
	v, err := program.Run(reg, cfg.StepBudget)
	if err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	fmt.Fprintln(os.Stdout, v)
	return nil
}

// normalizeArgv applies Unicode NFC normalization to argv, the one
// external-text boundary this toolchain has in the absence of a source
// lexer (which would otherwise be where this normalization happens, as
// in the teacher's internal/lexer.Normalize).
func normalizeArgv(argv []string) []string {
	out := make([]string, len(argv))
	for i, a := range argv {
		if norm.NFC.IsNormalString(a) {
			out[i] = a
			continue
		}
		out[i] = norm.NFC.String(a)
	}
	return out
}
