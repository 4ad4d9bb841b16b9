package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mgomes/vecscript/vecs"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	function := fs.String("function", "", "function to invoke after the top level runs")
	checkOnly := fs.Bool("check", false, "only compile the script without executing")
	configPath := fs.String("config", "", "YAML engine configuration")
	seed := fs.Uint64("seed", 0, "seed for the random number generator")
	logLevel := fs.String("log-level", "error", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("vecs run: script path required")
	}

	cfg, err := loadEngineConfig(*configPath, *logLevel)
	if err != nil {
		return err
	}
	if flagPassed(fs, "seed") {
		cfg.Seed = seed
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	engine, err := vecs.NewEngine(cfg)
	if err != nil {
		return err
	}
	script, err := engine.Compile(string(input))
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	if *checkOnly {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *function == "" {
		result, err := script.Run(ctx, vecs.RunOptions{AutoPrint: true, OnWarning: printWarning})
		reportDropped(result)
		if err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		return nil
	}

	argValues := make([]vecs.Value, len(remaining)-1)
	for i, raw := range remaining[1:] {
		argValues[i] = vecs.NewCharacter(raw)
	}
	result, err := script.Call(ctx, *function, argValues, vecs.CallOptions{OnWarning: printWarning})
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	if !result.IsNull() {
		fmt.Println(result.Format())
	}
	return nil
}

// loadEngineConfig reads the optional config file and installs a stderr
// logger at the requested level.
func loadEngineConfig(path, level string) (vecs.Config, error) {
	var cfg vecs.Config
	if path != "" {
		loaded, err := vecs.LoadConfig(path)
		if err != nil {
			return vecs.Config{}, err
		}
		cfg = loaded
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return vecs.Config{}, fmt.Errorf("invalid log level %q", level)
	}
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	cfg.Stdout = os.Stdout
	cfg.Stderr = os.Stderr
	return cfg, nil
}

func flagPassed(fs *flag.FlagSet, name string) bool {
	passed := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}

func printWarning(w vecs.Warning) {
	fmt.Fprintf(os.Stderr, "Warning message:\n%s\n", w)
}

func reportDropped(result *vecs.Result) {
	if result != nil && result.Dropped > 0 {
		fmt.Fprintf(os.Stderr, "There were %d more warnings\n", result.Dropped)
	}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [flags] <script> [args...]")
	fmt.Fprintln(os.Stderr, "  analyze <script>")
	fmt.Fprintln(os.Stderr, "  repl [-config file]")
	fmt.Fprintln(os.Stderr, "Run flags:")
	fmt.Fprintln(os.Stderr, "  -function string")
	fmt.Fprintln(os.Stderr, "    function to invoke after the top level runs; arguments are passed as strings")
	fmt.Fprintln(os.Stderr, "  -check")
	fmt.Fprintln(os.Stderr, "    only compile the script without executing")
	fmt.Fprintln(os.Stderr, "  -config <file>")
	fmt.Fprintln(os.Stderr, "    YAML engine configuration")
	fmt.Fprintln(os.Stderr, "  -seed <n>")
	fmt.Fprintln(os.Stderr, "    seed for runif, rnorm and friends")
	fmt.Fprintln(os.Stderr, "  -log-level <level>")
	fmt.Fprintln(os.Stderr, "    debug, info, warn or error (default error)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
