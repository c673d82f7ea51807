// Command mipsasm assembles, disassembles, runs and checks programs for the
// MIPS subset.
//
//	mipsasm [flags] assemble    <input.asm> [output.bin]
//	mipsasm [flags] disassemble <input.bin> [output.asm]
//	mipsasm [flags] run         <input.asm>
//	mipsasm [flags] verify      <input.asm>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/k0kubun/pp/v3"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/sarchlab/mipsasm/api"
	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/config"
	"github.com/sarchlab/mipsasm/verify"
)

var (
	configFile  = flag.String("config", "", "YAML settings file")
	legacy      = flag.Bool("legacy", false, "resolve undefined labels to 0 and mask out-of-range values")
	logFile     = flag.String("log", "", "write JSON logs to this file")
	dumpSymbols = flag.Bool("dump-symbols", false, "print the symbol table after assembling")
	maxInsts    = flag.Uint64("max-insts", 0, "instruction limit for run, overrides the config")
)

var errVerifyFailed = errors.New("verification failed")

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  mipsasm [flags] assemble <input.asm> [output.bin]")
	fmt.Fprintln(out, "  mipsasm [flags] disassemble <input.bin> [output.asm]")
	fmt.Fprintln(out, "  mipsasm [flags] run <input.asm>")
	fmt.Fprintln(out, "  mipsasm [flags] verify <input.asm>")
	fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		atexit.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	if err := setupLogging(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	input, output := args[1], ""
	if len(args) > 2 {
		output = args[2]
	}

	switch strings.ToLower(args[0]) {
	case "assemble":
		err = assemble(cfg, input, output)
	case "disassemble":
		err = disassemble(cfg, input, output)
	case "run":
		err = run(cfg, input)
	case "verify":
		err = verifyFile(cfg, input)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		flag.Usage()
		atexit.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()

	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return cfg, err
		}
	}

	if *legacy {
		cfg.Strict = false
	}

	if *maxInsts > 0 {
		cfg.Emulator.MaxInstructions = *maxInsts
	}

	return cfg, nil
}

// setupLogging sends JSON records to the log file. Without one, records are
// dropped and failures reach stderr as the plain-text error from main.
func setupLogging(cfg config.Config) error {
	if *logFile == "" {
		slog.SetDefault(newLogger(io.Discard, slog.LevelError+1))
		return nil
	}

	f, err := os.Create(*logFile)
	if err != nil {
		return err
	}

	atexit.Register(func() { f.Close() })

	slog.SetDefault(newLogger(f, cfg.LogLevel()))

	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}

func tableStyle() table.Style {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return table.StyleColoredBright
	}

	return table.StyleLight
}

func newDriver(cfg config.Config) api.Driver {
	return api.DriverBuilder{}.
		WithAssembler(cfg.AssemblerBuilder().Build()).
		WithReporter(api.ConsoleReporter{Out: os.Stdout}).
		Build()
}

func assemble(cfg config.Config, input, output string) error {
	result, err := newDriver(cfg).AssembleFile(input, output)
	if err != nil {
		return err
	}

	if *dumpSymbols {
		printSymbols(os.Stderr, result.Symbols, term.IsTerminal(int(os.Stderr.Fd())))
	}

	if !cfg.Report.RoundTrip {
		return nil
	}

	lines, err := api.ReadSource(input)
	if err != nil {
		return err
	}

	if _, err := verify.RoundTrip(cfg.AssemblerBuilder().Build(), lines); err != nil {
		return err
	}

	fmt.Println("Round trip OK")

	return nil
}

func printSymbols(w io.Writer, symbols []asm.Symbol, color bool) {
	pp.Default.SetColoringEnabled(color)
	pp.Fprintln(w, symbols)
}

func disassemble(cfg config.Config, input, output string) error {
	_, err := newDriver(cfg).DisassembleFile(input, output)
	return err
}

func run(cfg config.Config, input string) error {
	lines, err := api.ReadSource(input)
	if err != nil {
		return err
	}

	words, err := cfg.AssemblerBuilder().Build().Assemble(lines)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	engine := sim.NewSerialEngine()
	core := cfg.EmulatorBuilder(engine).Build("MIPS.Core")

	if err := core.LoadProgram(words); err != nil {
		return err
	}

	runErr := core.Run()

	core.DumpRegisters(os.Stdout, tableStyle())
	fmt.Printf("Executed %d instructions in %.0f ns\n",
		core.Retired(), float64(engine.CurrentTime()*1e9))

	return runErr
}

func verifyFile(cfg config.Config, input string) error {
	lines, err := api.ReadSource(input)
	if err != nil {
		return err
	}

	report := verify.GenerateReport(cfg.AssemblerBuilder().Build(), lines)
	report.Write(os.Stdout, tableStyle())

	if !report.Passed() {
		return fmt.Errorf("%w: %d lint errors, round trip: %v",
			errVerifyFailed, report.Errors, report.RoundTripErr)
	}

	return nil
}
