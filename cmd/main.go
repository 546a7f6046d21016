package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"saltino/internal/driver"
	"saltino/internal/logger"
	"saltino/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the Saltino interpreter.
func main() {
	options := driver.Options{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.ShouldInterpret, "r", false, "Run main after checking the program")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.BoolVar(&options.Rewrite, "rewrite", false, "Rewrite linear recursion into accumulator form")
	flag.BoolVar(&options.Stats, "stats", false, "Print engine statistics")
	flag.BoolVar(&options.DumpAST, "dump-ast", false, "Print the parsed program")
	flag.IntVar(&options.MaxSteps, "max-steps", 0, "Stop after this many engine steps (0 = unlimited)")
	flag.StringVar(&options.Args, "a", "", "Arguments for main, e.g. \"1, [2, 3], true\"")
	flag.StringVar(&options.ConfigFile, "config", "", "Path to saltino.toml")
	flag.StringVar(&options.EmitFile, "emit", "", "Write the parsed program to a .saltc file")

	flag.Parse()
	args := flag.Args()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if options.Help {
		fmt.Printf("Usage: %s [options] <file.salt | file.saltc>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if len(args) == 0 {
		logger.Init(options.Verbose, options.NoColor)
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourceFile = args[0]

	cfg, err := options.LoadConfig()
	if err != nil {
		logger.Init(options.Verbose, options.NoColor)
		log.Fatal("Invalid configuration", "error", err)
	}
	options.ApplyConfig(cfg, explicit)

	logger.Init(options.Verbose, options.NoColor)
	if cfg != nil {
		log.Debug("Loaded configuration", "file", cfg.Path)
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := options.Compile(ctx); err != nil {
		stop()
		log.Fatal("Run failed", "error", err)
	}
}
