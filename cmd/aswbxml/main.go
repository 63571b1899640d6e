// Command aswbxml decodes, encodes and inspects ActiveSync WBXML documents.
//
// Usage:
//
//	aswbxml <command> [flags] [args]
//
// Commands:
//
//	decode     Decode WBXML to XML, JSON or CBOR
//	encode     Encode XML (or an exported tree) to WBXML
//	roundtrip  Decode, re-encode and compare
//	pages      List code pages or the tags of one page
//	shell      Interactive inspection shell
//
// Examples:
//
//	# Decode a captured request
//	aswbxml decode sync.wbxml
//
//	# Decode a hex dump from stdin with page prefixes
//	echo "03 01 6A 00 45 13 01" | aswbxml decode --hex --prefixes -
//
//	# Encode XML and print the hex dump
//	aswbxml encode --hex ping.xml
//
//	# Decode and record codec events
//	aswbxml decode --log codec.wlog sync.wbxml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/easwire/aswbxml-go/cmd/aswbxml/commands"
	"github.com/easwire/aswbxml-go/cmd/aswbxml/interactive"
	"github.com/easwire/aswbxml-go/pkg/wbxml"
)

const usage = `aswbxml - ActiveSync WBXML codec

Usage:
  aswbxml <command> [flags] [args]

Commands:
  decode     Decode WBXML to XML, JSON or CBOR
  encode     Encode XML (or an exported tree) to WBXML
  roundtrip  Decode, re-encode and compare
  pages      List code pages or the tags of one page
  shell      Interactive inspection shell

Use "aswbxml <command> --help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "decode":
		err = runDecode(args)
	case "encode":
		err = runEncode(args)
	case "roundtrip":
		err = runRoundtrip(args)
	case "pages":
		err = runPages(args)
	case "shell":
		err = runShell(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		if kind := wbxml.ErrorKind(err); kind != "Unknown" {
			fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", kind, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newFlagSet creates a flag set with the usage text shown on --help.
func newFlagSet(name, text string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, text)
		fmt.Fprintln(os.Stderr, "\nFlags:")
		fs.PrintDefaults()
	}
	return fs
}

// logFlags are shared by the codec commands.
type logFlags struct {
	path    string
	verbose bool
}

func (l *logFlags) add(fs *pflag.FlagSet) {
	fs.StringVar(&l.path, "log", "", "append codec events to this .wlog file")
	fs.BoolVarP(&l.verbose, "verbose", "v", false, "log every codec event to stderr")
}

func (l *logFlags) open() (*commands.EventLogger, error) {
	events, err := commands.OpenEventLogger(l.path, commands.NewCommandLogger(os.Stderr, l.verbose))
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	return events, nil
}

// openOutput returns stdout, or the created file when path is set.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func singleInput(fs *pflag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return "", errors.New("exactly one input file required (use - for stdin)")
	}
	return fs.Arg(0), nil
}

func runDecode(args []string) error {
	fs := newFlagSet("decode", `aswbxml decode - Decode WBXML to XML, JSON or CBOR

Usage:
  aswbxml decode [flags] <file|->
`)
	var opts commands.DecodeOptions
	var lf logFlags
	var hex bool
	var color, output string
	fs.BoolVar(&hex, "hex", false, "input is a hex dump")
	fs.BoolVar(&opts.Prefixes, "prefixes", false, "qualify elements with their page prefix")
	fs.BoolVar(&opts.References, "refs", false, "annotate elements with their documentation link")
	fs.BoolVar(&opts.StrictEnd, "strict-end", false, "reject a surplus END at the end of input")
	fs.BoolVar(&opts.Declaration, "declaration", false, "write an XML declaration")
	fs.IntVar(&opts.InitialPage, "initial-page", 0, "code page active before the first SWITCH_PAGE")
	fs.StringVar(&opts.Indent, "indent", "  ", "indentation per level (empty for one line)")
	fs.StringVarP(&opts.Format, "format", "f", commands.FormatXML, "output format (xml, json, cbor)")
	fs.StringVar(&color, "color", "auto", "colorize output (auto, always, never)")
	fs.StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	lf.add(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := singleInput(fs)
	if err != nil {
		return err
	}

	input, err := commands.ReadInput(path, os.Stdin, hex)
	if err != nil {
		return err
	}
	opts.Source = commands.SourceName(path)
	if output == "" {
		if opts.Color, err = commands.ResolveColor(color, os.Stdout.Fd()); err != nil {
			return err
		}
	}

	events, err := lf.open()
	if err != nil {
		return err
	}
	defer events.Close()

	w, closeOutput, err := openOutput(output)
	if err != nil {
		return err
	}
	if err := commands.RunDecode(input, opts, events, w); err != nil {
		closeOutput()
		return err
	}
	return closeOutput()
}

func runEncode(args []string) error {
	fs := newFlagSet("encode", `aswbxml encode - Encode XML (or an exported tree) to WBXML

Usage:
  aswbxml encode [flags] <file|->
`)
	var opts commands.EncodeOptions
	var lf logFlags
	var output string
	fs.BoolVar(&opts.Hex, "hex", false, "write a hex dump instead of raw bytes")
	fs.StringVarP(&opts.Format, "format", "f", commands.FormatXML, "input format (xml, json, cbor)")
	fs.StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	lf.add(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := singleInput(fs)
	if err != nil {
		return err
	}

	input, err := commands.ReadInput(path, os.Stdin, false)
	if err != nil {
		return err
	}
	opts.Source = commands.SourceName(path)

	events, err := lf.open()
	if err != nil {
		return err
	}
	defer events.Close()

	w, closeOutput, err := openOutput(output)
	if err != nil {
		return err
	}
	if err := commands.RunEncode(input, opts, events, w); err != nil {
		closeOutput()
		return err
	}
	return closeOutput()
}

func runRoundtrip(args []string) error {
	fs := newFlagSet("roundtrip", `aswbxml roundtrip - Decode, re-encode and compare

Usage:
  aswbxml roundtrip [flags] <file|->

Exits non-zero when the re-decoded tree differs from the original.
`)
	var opts commands.RoundtripOptions
	var lf logFlags
	var hex bool
	fs.BoolVar(&hex, "hex", false, "input is a hex dump")
	fs.BoolVar(&opts.StrictEnd, "strict-end", false, "reject a surplus END at the end of input")
	lf.add(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := singleInput(fs)
	if err != nil {
		return err
	}

	input, err := commands.ReadInput(path, os.Stdin, hex)
	if err != nil {
		return err
	}
	opts.Source = commands.SourceName(path)

	events, err := lf.open()
	if err != nil {
		return err
	}
	defer events.Close()

	return commands.RunRoundtrip(input, opts, events, os.Stdout)
}

func runPages(args []string) error {
	fs := newFlagSet("pages", `aswbxml pages - List code pages or the tags of one page

Usage:
  aswbxml pages [index|name|prefix]
`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return errors.New("at most one page selector allowed")
	}
	return commands.RunPages(nil, fs.Arg(0), os.Stdout)
}

func runShell(args []string) error {
	fs := newFlagSet("shell", `aswbxml shell - Interactive inspection shell

Usage:
  aswbxml shell [flags]
`)
	var lf logFlags
	var color string
	fs.StringVar(&color, "color", "auto", "colorize output (auto, always, never)")
	lf.add(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	useColor, err := commands.ResolveColor(color, os.Stdout.Fd())
	if err != nil {
		return err
	}

	events, err := lf.open()
	if err != nil {
		return err
	}
	defer events.Close()

	shell, err := interactive.New(events, useColor)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	shell.Run(ctx)
	return nil
}
