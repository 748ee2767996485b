package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/raysh454/httpr/internal/utils"
	flag "github.com/spf13/pflag"
)

const programName = "httpr"

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

var (
	ErrMissingSubcommand = errors.New("missing subcommand")
	ErrUnknownSubcommand = errors.New("unknown subcommand")
	ErrMissingFlag       = errors.New("missing required flag")
	ErrUnexpectedArg     = errors.New("unexpected argument")
)

// Command is one parsed request. Its only implementations are GetCommand and
// PostCommand.
type Command interface {
	Method() string
	Target() utils.ValidatedURL
	command()
}

type GetCommand struct {
	URL utils.ValidatedURL
}

func (GetCommand) Method() string               { return "GET" }
func (c GetCommand) Target() utils.ValidatedURL { return c.URL }
func (GetCommand) command()                     {}

type PostCommand struct {
	URL  utils.ValidatedURL
	Body map[string]string
}

func (PostCommand) Method() string               { return "POST" }
func (c PostCommand) Target() utils.ValidatedURL { return c.URL }
func (PostCommand) command()                     {}

// Invocation is the outcome of ParseArgs: either a Command to execute, or
// Info text (help or version) to print before exiting successfully.
type Invocation struct {
	Command Command
	Info    string
}

// UsageError reports bad command-line input. Usage holds the help text for
// the command the user was invoking.
type UsageError struct {
	Usage string
	Err   error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

type subcommand struct {
	name    string
	summary string
}

var subcommands = []subcommand{
	{name: "get", summary: "Send a GET request"},
	{name: "post", summary: "Send a POST request with a JSON body built from key=value pairs"},
}

// ParseArgs parses args (without the program name) into an Invocation. It is
// deterministic, does not read os.Args and never writes to the terminal.
func ParseArgs(args []string) (*Invocation, error) {
	if len(args) == 0 {
		return nil, &UsageError{Usage: Usage(), Err: ErrMissingSubcommand}
	}

	switch args[0] {
	case "-h", "--help", "help":
		return &Invocation{Info: Usage()}, nil
	case "-V", "--version":
		return &Invocation{Info: VersionText()}, nil
	case "get":
		return parseGet(args[1:])
	case "post":
		return parsePost(args[1:])
	}

	return nil, &UsageError{
		Usage: Usage(),
		Err:   fmt.Errorf("%w %q", ErrUnknownSubcommand, args[0]),
	}
}

func parseGet(args []string) (*Invocation, error) {
	sf := newSubcommandFlags(subcommands[0])
	sf.addInfoFlags()

	if inv, err := sf.parse(args); inv != nil || err != nil {
		return inv, err
	}

	return &Invocation{Command: GetCommand{URL: sf.validated}}, nil
}

func parsePost(args []string) (*Invocation, error) {
	sf := newSubcommandFlags(subcommands[1])
	var body KeyValueFlag
	sf.fs.VarP(&body, "body", "b", "request body as comma-separated key=value pairs (required)")
	sf.addInfoFlags()

	if inv, err := sf.parse(args); inv != nil || err != nil {
		return inv, err
	}
	if !sf.fs.Changed("body") {
		return nil, sf.usageError(fmt.Errorf("%w --body", ErrMissingFlag))
	}

	return &Invocation{Command: PostCommand{URL: sf.validated, Body: body.Values()}}, nil
}

type subcommandFlags struct {
	subcommand
	fs *flag.FlagSet

	url     string
	help    bool
	version bool

	validated utils.ValidatedURL
}

func newSubcommandFlags(sc subcommand) *subcommandFlags {
	sf := &subcommandFlags{
		subcommand: sc,
		fs:         flag.NewFlagSet(programName+" "+sc.name, flag.ContinueOnError),
	}
	// Errors are returned to the caller, not printed.
	sf.fs.SetOutput(io.Discard)
	sf.fs.SortFlags = false
	sf.fs.StringVarP(&sf.url, "url", "u", "", "absolute URL to request (required)")
	return sf
}

func (sf *subcommandFlags) addInfoFlags() {
	sf.fs.BoolVarP(&sf.help, "help", "h", false, "print help and exit")
	sf.fs.BoolVarP(&sf.version, "version", "V", false, "print version and exit")
}

// parse returns a non-nil Invocation only when help or version was requested.
func (sf *subcommandFlags) parse(args []string) (*Invocation, error) {
	if err := sf.fs.Parse(args); err != nil {
		return nil, sf.usageError(err)
	}

	switch {
	case sf.help:
		return &Invocation{Info: sf.usage()}, nil
	case sf.version:
		return &Invocation{Info: VersionText()}, nil
	}

	if sf.fs.NArg() > 0 {
		return nil, sf.usageError(fmt.Errorf("%w %q", ErrUnexpectedArg, sf.fs.Arg(0)))
	}
	if !sf.fs.Changed("url") {
		return nil, sf.usageError(fmt.Errorf("%w --url", ErrMissingFlag))
	}

	u, err := utils.ValidateURL(sf.url)
	if err != nil {
		return nil, sf.usageError(fmt.Errorf("--url: %w", err))
	}
	sf.validated = u

	return nil, nil
}

func (sf *subcommandFlags) usageError(err error) error {
	return &UsageError{Usage: sf.usage(), Err: err}
}

func (sf *subcommandFlags) usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", sf.summary)
	fmt.Fprintf(&b, "Usage:\n  %s %s [flags]\n\n", programName, sf.name)
	fmt.Fprintf(&b, "Flags:\n%s", sf.fs.FlagUsages())
	return b.String()
}

// Usage returns the top-level help text.
func Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - a minimal command-line HTTP client\n\n", programName)
	fmt.Fprintf(&b, "Usage:\n  %s <command> [flags]\n\n", programName)
	b.WriteString("Commands:\n")
	for _, sc := range subcommands {
		fmt.Fprintf(&b, "  %-6s %s\n", sc.name, sc.summary)
	}
	b.WriteString("\nFlags:\n")
	b.WriteString("  -h, --help      print help and exit\n")
	b.WriteString("  -V, --version   print version and exit\n")
	fmt.Fprintf(&b, "\nRun '%s <command> --help' for command flags.\n", programName)
	return b.String()
}

func VersionText() string {
	return fmt.Sprintf("%s %s\n", programName, Version)
}
