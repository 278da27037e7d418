package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/xiaobogaga/sol25/compiler/internal"
)

// A program reading SOL25 source code and printing its abstract syntax tree as xml. Errors go to
// stderr and are reported by the exit status.

const usage = `Usage: parse [OPTION]

Reads SOL25 source code from the standard input (or -source) and prints its
abstract syntax tree in xml format to the standard output.

Options:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	flags := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		source     = flags.String("source", "", "the path of the source file, standard input if empty")
		configPath = flags.String("config", "", "the path of the sol25.yaml config, searched from the working directory if empty")
		verbose    = flags.Bool("v", false, "whether print compiler phases")
	)
	flags.Usage = func() {
		fmt.Fprint(flags.Output(), usage)
		flags.PrintDefaults()
	}
	err := flags.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return report(stderr, false, &internal.Error{Kind: internal.ArgumentError, Msg: err.Error()})
	}
	if flags.NArg() > 0 {
		return report(stderr, false, &internal.Error{Kind: internal.ArgumentError,
			Msg: fmt.Sprintf("unexpected argument %q", flags.Arg(0))})
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return report(stderr, false, err)
	}
	color := useColor(cfg.Color, stderr)

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rd := stdin
	if *source != "" {
		f, err := os.Open(*source)
		if err != nil {
			return report(stderr, color, &internal.Error{Kind: internal.InputError, Msg: err.Error()})
		}
		defer f.Close()
		rd = f
	}

	compiler := internal.NewCompiler(cfg, logger)
	err = compiler.CompileTo(context.Background(), rd, stdout)
	if err != nil {
		return report(stderr, color, err)
	}
	return 0
}

func loadConfig(path string) (*internal.Config, error) {
	if path != "" {
		return internal.LoadConfig(path)
	}
	found, err := internal.FindConfig(".")
	if err != nil || found == "" {
		return internal.DefaultConfig(), nil
	}
	return internal.LoadConfig(found)
}

func report(stderr io.Writer, color bool, err error) int {
	msg := err.Error()
	if color {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(stderr, msg)
	return internal.ExitCode(err)
}

// useColor tells whether diagnostics written to w get colored.
func useColor(setting string, w io.Writer) bool {
	switch setting {
	case internal.ColorAlways:
		return true
	case internal.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
