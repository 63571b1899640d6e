// Package interactive provides the aswbxml inspection shell.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/easwire/aswbxml-go/cmd/aswbxml/commands"
	"github.com/easwire/aswbxml-go/pkg/codepage"
	"github.com/easwire/aswbxml-go/pkg/log"
	"github.com/easwire/aswbxml-go/pkg/wbxml"
)

// errQuit ends the command loop.
var errQuit = errors.New("quit")

// Shell handles the interactive mode of aswbxml.
type Shell struct {
	table  *codepage.Table
	logger log.Logger
	rl     *readline.Instance
	out    io.Writer

	// Settings toggled with "set".
	prefixes bool
	indent   string
	color    bool
}

// New creates a shell reading from the terminal. logger may be nil.
func New(logger log.Logger, color bool) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "wbxml> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(rl.Stdout(), logger)
	s.rl = rl
	s.color = color
	return s, nil
}

func newShell(out io.Writer, logger log.Logger) *Shell {
	return &Shell{
		table:  codepage.Default(),
		logger: logger,
		out:    out,
		indent: "  ",
	}
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if err := s.Execute(line); err != nil {
			if errors.Is(err, errQuit) {
				fmt.Fprintln(s.out, "Exiting...")
				return
			}
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// Execute runs one command line.
func (s *Shell) Execute(line string) error {
	input := strings.TrimSpace(line)
	if input == "" {
		return nil
	}

	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch strings.ToLower(cmd) {
	case "help", "?":
		s.printHelp()
		return nil

	case "decode", "d":
		return s.cmdDecode(rest)

	case "encode", "e":
		return s.cmdEncode(rest)

	case "roundtrip", "rt":
		return s.cmdRoundtrip(rest)

	case "pages", "page", "p":
		selector := ""
		if len(args) > 0 {
			selector = args[0]
		}
		return commands.RunPages(s.table, selector, s.out)

	case "tag", "t":
		return s.cmdTag(args)

	case "set":
		return s.cmdSet(args)

	case "quit", "exit", "q":
		return errQuit

	default:
		return fmt.Errorf("unknown command: %s (type 'help' for commands)", cmd)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
WBXML Shell Commands:
  Codec:
    decode <hex>           - Decode a hex dump and print it as XML
    encode <xml>           - Encode an XML document and print the hex dump
    roundtrip <hex>        - Decode, re-encode and compare

  Code pages:
    pages [page]           - List pages, or the tags of one page
    tag <page> <token|name> - Look up a token or a tag name on a page

  Settings:
    set prefixes on|off    - Print page prefixes on decoded elements
    set indent <n>         - Indentation width (0 for one line)
    set color on|off       - Syntax-highlight XML output

  General:
    help                   - Show this help
    quit                   - Exit shell

  Pages can be given by index, name or prefix: 13, Ping or ping.`)
}

func (s *Shell) cmdDecode(hex string) error {
	if hex == "" {
		return errors.New("usage: decode <hex>")
	}
	data, err := wbxml.ParseHex(hex)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	return commands.RunDecode(data, commands.DecodeOptions{
		Prefixes: s.prefixes,
		Indent:   s.indent,
		Color:    s.color,
		Source:   "shell",
	}, s.logger, s.out)
}

func (s *Shell) cmdEncode(xmlText string) error {
	if xmlText == "" {
		return errors.New("usage: encode <xml>")
	}
	return commands.RunEncode([]byte(xmlText), commands.EncodeOptions{
		Hex:    true,
		Source: "shell",
	}, s.logger, s.out)
}

func (s *Shell) cmdRoundtrip(hex string) error {
	if hex == "" {
		return errors.New("usage: roundtrip <hex>")
	}
	data, err := wbxml.ParseHex(hex)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	return commands.RunRoundtrip(data, commands.RoundtripOptions{Source: "shell"}, s.logger, s.out)
}

func (s *Shell) cmdTag(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: tag <page> <token|name>")
	}
	page, err := commands.FindPage(s.table, args[0])
	if err != nil {
		return err
	}

	if tok, err := strconv.ParseUint(args[1], 0, 8); err == nil {
		name, ok := page.Tag(byte(tok))
		if !ok {
			fmt.Fprintf(s.out, "%s 0x%02X: unassigned (decodes as %s)\n", page.Name, tok, wbxml.PlaceholderName(byte(tok)))
			return nil
		}
		fmt.Fprintf(s.out, "%s 0x%02X: %s\n", page.Name, tok, name)
		return nil
	}

	tok, ok := page.Token(args[1])
	if !ok {
		return fmt.Errorf("%s has no tag %q", page.Name, args[1])
	}
	fmt.Fprintf(s.out, "%s %s: 0x%02X\n", page.Name, args[1], tok)
	return nil
}

func (s *Shell) cmdSet(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <prefixes|indent|color> <value>")
	}
	switch strings.ToLower(args[0]) {
	case "prefixes":
		on, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		s.prefixes = on
	case "color":
		on, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		s.color = on
	case "indent":
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 || n > 8 {
			return fmt.Errorf("invalid indent: %s (must be 0-8)", args[1])
		}
		s.indent = strings.Repeat(" ", n)
	default:
		return fmt.Errorf("unknown setting: %s", args[0])
	}
	fmt.Fprintf(s.out, "%s = %s\n", strings.ToLower(args[0]), args[1])
	return nil
}

func parseOnOff(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value: %s (must be on or off)", v)
	}
}
