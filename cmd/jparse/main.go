// Program jparse parses and validates JSON text, and prints the resulting
// value.
//
// Usage:
//
//	jparse [flags] [FILE]
//
// If FILE is omitted or "-", input is read from stdin. The exit status reports
// the outcome: 0 for success, 1 for a lexical error, 2 for a syntax error,
// 3 for an I/O error, 4 for invalid flags, configuration, or path syntax, and
// 5 if a selection path does not match the input.
//
// Each --path (-p) argument is either a single member key or array index
// applied to the current selection, or a JSONPath expression such as
// '$.items[-1].name' or "$['a b'][0]" that selects from the root.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jparse/ast"
	"github.com/creachadair/jparse/ast/cursor"
	"github.com/creachadair/jparse/internal/config"
	"github.com/creachadair/jparse/internal/diag"
	"github.com/creachadair/jparse/jpath"
	"github.com/creachadair/jparse/jwcc"
	"github.com/mattn/go-isatty"
	"go4.org/mem"
)

const version = "0.1.0"

// exitPath is the exit status when a selection path does not match.
const exitPath = 5

// cli defines the command-line interface.
type cli struct {
	Input    string           `arg:"" optional:"" help:"Input JSON file. If omitted or \"-\", reads from stdin."`
	Config   string           `short:"c" type:"path" help:"Path to a YAML configuration file."`
	MaxDepth int              `name:"max-depth" help:"Maximum nesting depth of arrays and objects (0 uses the configured value)."`
	JWCC     bool             `name:"jwcc" help:"Accept comments and trailing commas in the input."`
	Compact  bool             `help:"Print the value without insignificant whitespace."`
	Indent   string           `help:"Indentation for each level of pretty-printed output."`
	Path     []string         `short:"p" sep:"none" help:"Select a member key, an array index, or a JSONPath expression (repeatable)."`
	Color    string           `help:"Colorize diagnostics: auto, always, or never."`
	Debug    bool             `short:"d" help:"Print debug information."`
	Version  kong.VersionFlag `short:"v" help:"Show version information."`
}

// apply overrides the settings of cfg with any flags that were set.
func (c *cli) apply(cfg *config.Config) {
	if c.MaxDepth != 0 {
		cfg.MaxDepth = c.MaxDepth
	}
	if c.JWCC {
		cfg.JWCC = true
	}
	if c.Compact {
		cfg.Output.Compact = true
	}
	if c.Indent != "" {
		cfg.Output.Indent = c.Indent
	}
	if c.Color != "" {
		cfg.Color = c.Color
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the tool with the given arguments and streams, and returns the
// process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var flags cli
	exited, status := false, 0
	parser, err := kong.New(&flags,
		kong.Name("jparse"),
		kong.Description("Parse and validate JSON, and print the resulting value."),
		kong.Vars{"version": version},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exited, status = true, code }),
	)
	if err != nil {
		panic(err) // the flag definitions are static
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "jparse: %v\n", err)
		return diag.ExitConfig
	} else if exited {
		return status // --help or --version
	}

	cfg, err := config.Load(flags.Config)
	if err != nil {
		fmt.Fprintf(stderr, "jparse: %v\n", err)
		return diag.ExitConfig
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "jparse: %v\n", err)
		return diag.ExitConfig
	}
	sels, err := parseSelectors(flags.Path)
	if err != nil {
		fmt.Fprintf(stderr, "jparse: %v\n", err)
		return diag.ExitConfig
	}
	pr := diag.NewPrinter(stderr, useColor(cfg.Color, stderr))

	name, src, err := readInput(flags.Input, stdin)
	if err != nil {
		pr.Error(name, nil, err)
		return diag.ExitIO
	}

	start := time.Now()
	v, err := parse(src, cfg)
	if err != nil {
		pr.Error(name, src, err)
		return diag.ExitCode(err)
	}
	if flags.Debug {
		pr.Debugf("parsed %d bytes from %s in %v (max depth %d, jwcc %v)",
			len(src), name, time.Since(start), cfg.MaxDepth, cfg.JWCC)
	}

	if len(sels) != 0 {
		v, err = selectPath(v, sels)
		if err != nil {
			pr.Error(name, nil, err)
			return exitPath
		}
	}

	f := ast.Formatter{Indent: cfg.Output.Indent, Compact: cfg.Output.Compact}
	if err := f.Format(stdout, v); err != nil {
		pr.Error("<stdout>", nil, fmt.Errorf("write output: %w", err))
		return diag.ExitIO
	}
	return diag.ExitOK
}

// readInput reads the input named by path, or stdin if path is "" or "-".
func readInput(path string, stdin io.Reader) (string, []byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "<stdin>", nil, fmt.Errorf("read input: %w", err)
		}
		return "<stdin>", data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return path, nil, fmt.Errorf("read input: %w", err)
	}
	return path, data, nil
}

func parse(src []byte, cfg *config.Config) (ast.Value, error) {
	if cfg.JWCC {
		return jwcc.ParseDepth(src, cfg.MaxDepth)
	}
	p := ast.NewParser(mem.B(src))
	p.SetMaxDepth(cfg.MaxDepth)
	return p.Parse()
}

// A selector is one --path argument. An argument beginning with "$" is a
// JSONPath expression that selects from the root; any other argument is a
// single member key or array index applied to the current selection.
type selector struct {
	text string
	expr jpath.Expr // nil for a single element
}

func parseSelectors(path []string) ([]selector, error) {
	var out []selector
	for _, elt := range path {
		sel := selector{text: elt}
		if strings.HasPrefix(elt, "$") {
			expr, err := jpath.Parse(elt)
			if err != nil {
				return nil, fmt.Errorf("path %q: %w", elt, err)
			}
			sel.expr = expr
		}
		out = append(out, sel)
	}
	return out, nil
}

// selectPath applies sels to v in order and returns the selected value.
// Elements applied to arrays must be integer indices; elements applied to
// objects are member keys.
func selectPath(v ast.Value, sels []selector) (ast.Value, error) {
	c := cursor.New(v)
	var label string
	for _, sel := range sels {
		if sel.expr != nil {
			label = sel.expr.String()
			c.Reset()
			if err := c.Down(sel.expr.Path()...).Err(); err != nil {
				return nil, fmt.Errorf("select %s: %w", label, err)
			}
			continue
		}
		if label == "" {
			label = sel.text
		} else {
			label += "." + sel.text
		}
		var step any = sel.text
		if _, ok := c.Value().(ast.Array); ok {
			n, err := strconv.Atoi(sel.text)
			if err != nil {
				return nil, fmt.Errorf("select %s: at %s: invalid array index %q", label, c.Location(), sel.text)
			}
			step = n
		}
		if err := c.Down(step).Err(); err != nil {
			return nil, fmt.Errorf("select %s: %w", label, err)
		}
	}
	return c.Value(), nil
}

// useColor reports whether diagnostics written to w should be colorized.
func useColor(setting string, w io.Writer) bool {
	switch setting {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
