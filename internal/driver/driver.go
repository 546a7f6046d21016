package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"saltino/internal/config"
	"saltino/internal/prompt"
	"saltino/pkg/ast"
	"saltino/pkg/astcodec"
	"saltino/pkg/color"
	"saltino/pkg/interpreter"
	"saltino/pkg/parser"
	"saltino/pkg/resolver"
	"saltino/pkg/rewrite"

	"github.com/charmbracelet/log"
)

var (
	ErrSyntax  = errors.New("parsing failed")
	ErrStatic  = errors.New("static analysis failed")
	ErrRuntime = errors.New("interpretation failed")
)

type Options struct {
	Help            bool   // Show help message
	Verbose         bool   // Enable verbose output
	ShouldInterpret bool   // Whether to run main
	NoColor         bool   // Disable colored output
	Rewrite         bool   // Apply the accumulator rewrite before running
	Stats           bool   // Print engine statistics after the run
	DumpAST         bool   // Print the program after parsing and rewriting
	MaxSteps        int    // Engine step budget (0 = unlimited)
	Args            string // Comma-separated arguments for main; prompted for when empty
	ConfigFile      string // Explicit saltino.toml path
	EmitFile        string // Write the parsed program to this .saltc file
	SourceFile      string // Path to the source (.salt) or encoded (.saltc) program

	Stdout io.Writer // defaults to os.Stdout
}

// ApplyConfig fills options from a configuration file. Options named in
// explicit were set on the command line and keep their value.
func (opts *Options) ApplyConfig(c *config.Config, explicit map[string]bool) {
	if c == nil {
		return
	}

	if !explicit["max-steps"] && c.Run.MaxSteps > 0 {
		opts.MaxSteps = c.Run.MaxSteps
	}
	if !explicit["rewrite"] && c.Run.Rewrite {
		opts.Rewrite = true
	}
	if !explicit["stats"] && c.Run.Stats {
		opts.Stats = true
	}
	if !explicit["v"] && c.Output.Verbose {
		opts.Verbose = true
	}
	if !explicit["n"] && c.Output.Color != nil && !*c.Output.Color {
		opts.NoColor = true
	}
}

// LoadConfig reads the explicit configuration file, or searches upward
// from the source file's directory.
func (opts *Options) LoadConfig() (*config.Config, error) {
	if opts.ConfigFile != "" {
		return config.Load(opts.ConfigFile)
	}
	return config.FindAndLoad(filepath.Dir(opts.SourceFile))
}

func (opts *Options) out() io.Writer {
	if opts.Stdout == nil {
		return os.Stdout
	}
	return opts.Stdout
}

// Compile loads the program, checks it, and runs main when asked to.
func (opts *Options) Compile(ctx context.Context) error {
	log.Info("Processing file", "file", opts.SourceFile)
	w := opts.out()

	prog, source, err := opts.load()
	if err != nil {
		return err
	}

	if opts.Rewrite {
		var report *rewrite.Report
		prog, report = rewrite.Accumulate(prog)
		if opts.Verbose {
			for _, rw := range report.Rewrites {
				fmt.Fprintf(w, "%s %s -> %s\n", color.GreenText("Rewrote"), rw.Function, rw.Helper)
			}
		}
	}

	if opts.DumpAST {
		fmt.Fprintln(w, color.GreenText("=== Program ==="))
		fmt.Fprint(w, ast.Format(prog))
	}

	if opts.EmitFile != "" {
		if err := astcodec.WriteFile(opts.EmitFile, prog, opts.SourceFile); err != nil {
			return fmt.Errorf("cannot write %s: %w", opts.EmitFile, err)
		}
		log.Info("Wrote program", "file", opts.EmitFile)
	}

	if _, err := resolver.Resolve(prog, resolver.WithLogger(log.Default())); err != nil {
		fmt.Fprintln(w, color.BrightRedText("=== Static Analysis Error ==="))
		fmt.Fprintln(w, Describe(err, source))
		return fmt.Errorf("%w: %w", ErrStatic, err)
	}

	if !opts.ShouldInterpret {
		return nil
	}

	args, err := opts.mainArgs(prog)
	if err != nil {
		return err
	}

	it := interpreter.NewInterpreter(prog,
		interpreter.WithMaxSteps(opts.MaxSteps),
		interpreter.WithLogger(log.Default()),
	)

	result, err := it.Run(ctx, args)
	if err != nil {
		fmt.Fprintln(w, color.BrightRedText("=== Runtime Error ==="))
		fmt.Fprintln(w, Describe(err, source))
		return fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	fmt.Fprintln(w, color.GreenText("=== Result ==="))
	fmt.Fprintln(w, result)

	if opts.Stats {
		s := it.Stats()
		fmt.Fprintln(w, color.GreenText("=== Statistics ==="))
		fmt.Fprintf(w, "steps: %d\nmax depth: %d\ncalls: %d\ntail calls: %d\n", s.Steps, s.MaxDepth, s.Calls, s.TailCalls)
	}

	return nil
}

// load parses the source file or decodes an encoded program. The returned
// source text is empty for encoded programs whose source is gone.
func (opts *Options) load() (*ast.Program, string, error) {
	if strings.HasSuffix(opts.SourceFile, astcodec.Extension) {
		dec, err := astcodec.ReadFile(opts.SourceFile)
		if err != nil {
			return nil, "", fmt.Errorf("cannot load %s: %w", opts.SourceFile, err)
		}

		// best effort: positions in diagnostics still point into the source
		source, _ := os.ReadFile(dec.Source)
		return dec.Program, string(source), nil
	}

	input, err := os.ReadFile(opts.SourceFile)
	if err != nil {
		return nil, "", fmt.Errorf("cannot read %s: %w", opts.SourceFile, err)
	}

	prog, err := parser.ParseString(string(input))
	if err != nil {
		fmt.Fprintln(opts.out(), color.BrightRedText("=== Syntax Errors ==="))
		fmt.Fprintln(opts.out(), err)
		return nil, "", fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	return prog, string(input), nil
}

func (opts *Options) mainArgs(prog *ast.Program) ([]interpreter.Value, error) {
	if opts.Args != "" {
		args, err := prompt.ParseArgs(opts.Args)
		if err != nil {
			return nil, fmt.Errorf("invalid -a arguments: %w", err)
		}
		return args, nil
	}

	main := prog.Lookup("main")
	if main == nil || len(main.Params) == 0 {
		return nil, nil
	}

	p := prompt.New()
	defer p.Close()
	return p.Args(main)
}
