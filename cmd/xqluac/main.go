// xqluac converts obfuscated dialect Lua chunks into stock Lua 5.1
// chunks that a reference interpreter or decompiler can load.
//
// Usage:
//
//	xqluac [flags] <input.luac> <output.luac>
//
// Diagnostics and the final status line go to standard output. The exit
// status is 0 on success, 1 when the conversion fails and 2 on a usage
// error. A failed conversion leaves an incomplete output file behind.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/tewilove/xqluac/errors"
	"github.com/tewilove/xqluac/transcoder"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	color := term.IsTerminal(int(os.Stdout.Fd()))
	os.Exit(run(os.Args[1:], os.Stdout, color))
}

type styles struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	failure lipgloss.Style
	path    lipgloss.Style
	help    lipgloss.Style
}

// newStyles renders for w; a writer that is not a terminal gets plain text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		ok:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#98FB98")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		path:    r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		help:    r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func run(args []string, stdout io.Writer, color bool) int {
	var (
		verbose     bool
		trace       bool
		showVersion bool
		help        bool
	)
	flags := pflag.NewFlagSet("xqluac", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every converted function")
	flags.BoolVar(&trace, "trace", false, "log every instruction as it is remapped (implies --verbose)")
	flags.BoolVar(&showVersion, "version", false, "print the version and exit")
	flags.BoolVarP(&help, "help", "h", false, "show help")

	st := newStyles(stdout)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(stdout, st, flags)
			return exitOK
		}
		printUsageError(stdout, st, flags, errors.Usage(err.Error()))
		return exitUsage
	}
	if help {
		printUsage(stdout, st, flags)
		return exitOK
	}
	if showVersion {
		fmt.Fprintf(stdout, "xqluac %s\n", version)
		return exitOK
	}

	positional := flags.Args()
	if len(positional) != 2 {
		printUsageError(stdout, st, flags,
			errors.Usage(fmt.Sprintf("expected an input and an output path, got %d argument(s)", len(positional))))
		return exitUsage
	}
	input, output := positional[0], positional[1]

	level := zapcore.InfoLevel
	if verbose || trace {
		level = zapcore.DebugLevel
	}
	log := newLogger(stdout, level, color)
	defer func() { _ = log.Sync() }()
	transcoder.SetLogger(log)

	stats, err := transcoder.ConvertFile(input, output, transcoder.WithTrace(trace))
	if err != nil {
		log.Error("conversion failed",
			zap.String("input", input),
			zap.String("output", output),
			zap.Error(err))
		fmt.Fprintf(stdout, "%s %s: %s is incomplete and must be discarded\n",
			st.failure.Render("failed"), st.path.Render(input), st.path.Render(output))
		return exitFailure
	}

	fmt.Fprintf(stdout, "%s %s -> %s %s\n",
		st.ok.Render("converted"),
		st.path.Render(input),
		st.path.Render(output),
		st.help.Render(fmt.Sprintf("(%d functions, %d instructions)", stats.Functions, stats.Instructions)))
	return exitOK
}

// newLogger builds a console logger on w. Levels are colored only when w
// is a terminal.
func newLogger(w io.Writer, level zapcore.Level, color bool) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

func printUsage(w io.Writer, st styles, flags *pflag.FlagSet) {
	fmt.Fprintln(w, st.title.Render("xqluac"))
	fmt.Fprintln(w, "Convert a dialect Lua chunk into a stock Lua 5.1 chunk.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  xqluac [flags] <input.luac> <output.luac>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flags.FlagUsages())
}

func printUsageError(w io.Writer, st styles, flags *pflag.FlagSet, err error) {
	fmt.Fprintf(w, "%s %v\n\n", st.failure.Render("error:"), err)
	printUsage(w, st, flags)
}
