// emlinh-share validates documents against the shared emlinh-ai data
// contracts and exports their JSON Schema.
//
// Usage:
//
//	emlinh-share validate --schema create-message message.json
//	emlinh-share validate --schema context --format yaml < context.yaml
//	emlinh-share jsonschema --schema conversation --output yaml
//	emlinh-share list
//	emlinh-share version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/i18n"
	js "github.com/emlinh-ai/emlinh-ai-share/jsonschema"
	"github.com/emlinh-ai/emlinh-ai-share/source/cborsrc"
	"github.com/emlinh-ai/emlinh-ai-share/source/jsoncsrc"
	"github.com/emlinh-ai/emlinh-ai-share/source/yamlsrc"
	"github.com/emlinh-ai/emlinh-ai-share/types"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

// invalidError reports a document that failed validation. The issues are
// already printed, so main only sets the exit status.
type invalidError struct{ count int }

func (e invalidError) Error() string { return fmt.Sprintf("%d issue(s)", e.count) }
func (invalidError) ExitCode() int   { return 1 }

type options struct {
	schema   string
	format   string
	output   string
	lang     string
	failFast bool
	maxBytes int64
	dupKeys  string
	logLevel string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printHelp(stderr)
		return errors.New("missing command")
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "version", "--version":
		fmt.Fprintf(stdout, "emlinh-share %s\n", share.VERSION)
		return nil
	case "help", "-h", "--help":
		printHelp(stdout)
		return nil
	case "list":
		return runList(stdout)
	case "validate", "jsonschema":
	default:
		printHelp(stderr)
		return fmt.Errorf("unknown command %q", cmd)
	}

	var opts options
	flagSet := pflag.NewFlagSet("emlinh-share "+cmd, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.schema, "schema", "s", "", "schema name (see \"emlinh-share list\")")
	flagSet.StringVarP(&opts.output, "output", "o", "", "output format: text or json for validate, json or yaml for jsonschema")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	if cmd == "validate" {
		flagSet.StringVarP(&opts.format, "format", "f", "", "input format: json, jsonc, yaml or cbor (default: from the file extension)")
		flagSet.StringVar(&opts.lang, "lang", "en", "issue message language: en or vi")
		flagSet.BoolVar(&opts.failFast, "fail-fast", false, "stop at the first issue")
		flagSet.Int64Var(&opts.maxBytes, "max-bytes", 0, "reject inputs larger than this many bytes (0 = no limit)")
		flagSet.StringVar(&opts.dupKeys, "duplicate-keys", "error", "duplicate object keys: error, warn or ignore")
	}
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q", opts.logLevel)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if opts.schema == "" {
		return errors.New("--schema is required")
	}
	e, ok := types.Lookup(opts.schema)
	if !ok {
		return fmt.Errorf("unknown schema %q (see \"emlinh-share list\")", opts.schema)
	}

	if cmd == "jsonschema" {
		return runJSONSchema(e, opts, stdout)
	}
	return runValidate(logger, e, opts, flagSet.Args(), stdin, stdout)
}

func runList(stdout io.Writer) error {
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	for _, e := range types.Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Description)
	}
	return tw.Flush()
}

func runJSONSchema(e types.Entry, opts options, stdout io.Writer) error {
	sch, err := e.Schema.JSONSchema()
	if err != nil {
		return err
	}
	doc := js.Document(sch, e.Name)
	var out []byte
	switch opts.output {
	case "", "json":
		out, err = js.MarshalJSON(doc)
	case "yaml":
		out, err = js.MarshalYAML(doc)
	default:
		return fmt.Errorf("invalid --output %q", opts.output)
	}
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func runValidate(logger *slog.Logger, e types.Entry, opts options, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected argument: %s", args[1])
	}
	if opts.lang != "en" && opts.lang != "vi" {
		return fmt.Errorf("invalid --lang %q", opts.lang)
	}
	if opts.output != "" && opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("invalid --output %q", opts.output)
	}

	severity, ok := map[string]share.Severity{"error": share.Error, "warn": share.Warn, "ignore": share.Ignore}[opts.dupKeys]
	if !ok {
		return fmt.Errorf("invalid --duplicate-keys %q", opts.dupKeys)
	}

	in, name := stdin, "-"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in, name = f, args[0]
	}
	format := opts.format
	if format == "" {
		format = formatFromExt(name)
	}
	src, err := sourceFor(format, in)
	if err != nil {
		return err
	}

	i18n.SetLanguage(opts.lang)
	defer i18n.SetLanguage("en")

	logger.Debug("validating", "schema", e.Name, "input", name, "source", src.Name())
	dm, err := share.ParseFromWithMeta(context.Background(), e.Schema, src, share.ParseOpt{
		Strictness: share.Strictness{OnDuplicateKey: severity},
		MaxBytes:   opts.maxBytes,
		FailFast:   opts.failFast,
	})
	for _, w := range dm.Warnings {
		logger.Warn("duplicate key", "input", name, "path", w.Path)
	}
	if err != nil {
		iss, ok := share.AsIssues(err)
		if !ok {
			return err
		}
		logger.Info("document rejected", "schema", e.Name, "input", name, "issues", len(iss))
		if err := printIssues(stdout, opts.output, iss); err != nil {
			return err
		}
		return invalidError{count: len(iss)}
	}

	out, err := json.MarshalIndent(dm.Value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", out)
	return err
}

func formatFromExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".cbor":
		return "cbor"
	case ".jsonc":
		return "jsonc"
	}
	return "json"
}

func sourceFor(format string, r io.Reader) (share.Source, error) {
	switch format {
	case "json":
		return share.JSONReader(r), nil
	case "jsonc":
		return jsoncsrc.Reader(r), nil
	case "yaml":
		return yamlsrc.Reader(r), nil
	case "cbor":
		return cborsrc.Reader(r), nil
	}
	return nil, fmt.Errorf("invalid --format %q", format)
}

func printIssues(w io.Writer, output string, iss share.Issues) error {
	if output == "json" {
		b, err := json.MarshalIndent(map[string]any{"issues": issueRecords(iss)}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}
	for _, it := range iss {
		line := fmt.Sprintf("%s %s: %s", it.Path, it.Code, it.Message)
		if it.Expected != "" || it.Received != "" {
			line += fmt.Sprintf(" (expected %s, received %s)", orDash(it.Expected), orDash(it.Received))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type issueRecord struct {
	Path     string `json:"path"`
	Dotted   string `json:"dotted"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Received string `json:"received,omitempty"`
	Hint     string `json:"hint,omitempty"`
}

func issueRecords(iss share.Issues) []issueRecord {
	out := make([]issueRecord, len(iss))
	for i, it := range iss {
		out[i] = issueRecord{
			Path:     it.Path,
			Dotted:   it.Dotted(),
			Code:     it.Code,
			Message:  it.Message,
			Expected: it.Expected,
			Received: it.Received,
			Hint:     it.Hint,
		}
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `emlinh-share: validate documents against the emlinh-ai data contracts.

Usage:
  emlinh-share validate --schema NAME [--format json|jsonc|yaml|cbor] [--output text|json]
                        [--lang en|vi] [--fail-fast] [--max-bytes N]
                        [--duplicate-keys error|warn|ignore] [FILE|-]
  emlinh-share jsonschema --schema NAME [--output json|yaml]
  emlinh-share list
  emlinh-share version

validate prints the normalized document (defaults applied, unknown keys
dropped) on success. On failure it prints one line per issue and exits 1.
`)
}
