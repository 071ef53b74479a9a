// Package main is the entry point for hl7lint, a small command that
// parses an HL7 message and reports whether it is structurally valid.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/hl7tree/hl7tree"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// Options holds hl7lint's command-line configuration.
type Options struct {
	Path     string
	LogLevel string
	Segment  string
	Quiet    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	logger := newLogger(opts.LogLevel)

	data, err := readInput(opts.Path)
	if err != nil {
		logger.Error().Err(err).Str("path", opts.Path).Msg("failed to read input")
		fmt.Fprintf(os.Stderr, "Error: failed to read input: %v\n", err)
		return 1
	}

	msg, err := hl7.Parse(string(data))
	if err != nil {
		var hErr *hl7.Error
		if errors.As(err, &hErr) {
			logger.Error().Str("code", hErr.Code.String()).Msg(hErr.Message)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !msg.Validate() {
		fmt.Fprintln(os.Stderr, "invalid: message failed structural validation")
		return 1
	}

	if opts.Segment != "" {
		segs := msg.SegmentsOfType(opts.Segment)
		if len(segs) == 0 {
			fmt.Fprintf(os.Stderr, "no %s segments found\n", opts.Segment)
			return 1
		}
		for _, seg := range segs {
			fmt.Println(seg.Value())
		}
		return 0
	}

	if !opts.Quiet {
		fmt.Printf("valid: %d segments, encoding %q\n", msg.ValueCount(), msg.Encoding().EncodingCharacters())
	}
	return 0
}

func parseFlags() Options {
	var opts Options
	var showVersion bool

	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.Segment, "segment", "", "Print every segment of this type instead of a summary")
	flag.BoolVar(&opts.Quiet, "quiet", false, "Suppress the summary line on success")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("hl7lint %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		opts.Path = flag.Arg(0)
	}
	return opts
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(bufio.NewReader(os.Stdin))
	}
	return os.ReadFile(path)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
