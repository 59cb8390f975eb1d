package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/heathj/htmltok/parser"
	"github.com/heathj/htmltok/parser/diag"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type tokenizeFlags struct {
	contentModel string
	lastStartTag string
	charset      string
	scripting    bool
	coalesce     bool
	json         bool
	errorsOnly   bool
	context      bool
	expect       string
}

var (
	logLevel  string
	logFormat string
	flags     tokenizeFlags
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "htmltok",
		Short:        "Tokenize HTML and report parse errors",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel, logFormat)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")

	tokenize := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Print the tokens of an HTML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd.OutOrStdout(), args, flags)
		},
	}
	addTokenizeFlags(tokenize, &flags)
	tokenize.Flags().BoolVar(&flags.errorsOnly, "errors-only", false, "only print parse errors")
	tokenize.Flags().StringVar(&flags.expect, "expect", "", "file with the expected token dump; print a diff on mismatch")

	errs := &cobra.Command{
		Use:   "errors [file]",
		Short: "Print the parse errors of an HTML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := flags
			f.errorsOnly = true
			return runTokenize(cmd.OutOrStdout(), args, f)
		},
	}
	addTokenizeFlags(errs, &flags)

	codes := &cobra.Command{
		Use:   "codes",
		Short: "List the parse error codes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range diag.Codes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-50s %s\n", c, c.Template())
			}
		},
	}

	root.AddCommand(tokenize, errs, codes)
	return root
}

func addTokenizeFlags(cmd *cobra.Command, f *tokenizeFlags) {
	cmd.Flags().StringVar(&f.contentModel, "content-model", "normal", "initial content model (normal, escapable-raw, raw, script, plaintext)")
	cmd.Flags().StringVar(&f.lastStartTag, "last-start-tag", "", "name of the element the initial content belongs to")
	cmd.Flags().StringVar(&f.charset, "charset", "", "character encoding of the input")
	cmd.Flags().BoolVar(&f.scripting, "scripting", false, "treat noscript as raw text")
	cmd.Flags().BoolVar(&f.coalesce, "coalesce", true, "merge adjacent character tokens")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON instead of text")
	cmd.Flags().BoolVar(&f.context, "context", true, "show the source line of each parse error")
}

func setupLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "invalid --log-level")
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)

	switch format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("invalid --log-format %q", format)
	}
	return nil
}

func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return ioutil.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	return f, nil
}

type jsonToken struct {
	Type  string
	Token parser.Token
}

type jsonOutput struct {
	Tokens []jsonToken         `json:",omitempty"`
	Errors []*diag.ParseError `json:",omitempty"`
}

func runTokenize(w io.Writer, args []string, f tokenizeFlags) error {
	model, err := parser.ParseContentModel(f.contentModel)
	if err != nil {
		return err
	}

	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	p, err := parser.NewParser(in, parser.Options{
		ContentModel: model,
		LastStartTag: f.lastStartTag,
		Charset:      f.charset,
		Scripting:    f.scripting,
		Coalesce:     f.coalesce,
		ErrorContext: f.context,
	})
	if err != nil {
		return err
	}
	res, err := p.Parse()
	if err != nil {
		return err
	}

	if f.expect != "" {
		return expectTokens(w, f.expect, res.Tokens)
	}

	if f.json {
		out := jsonOutput{Errors: res.Errors}
		if !f.errorsOnly {
			for _, t := range res.Tokens {
				out.Tokens = append(out.Tokens, jsonToken{Type: t.Type().String(), Token: t})
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encoding output")
	}

	if !f.errorsOnly {
		fmt.Fprint(w, parser.Dump(res.Tokens))
	}
	for _, e := range res.Errors {
		fmt.Fprintln(w, e.Error())
		if e.Context != "" {
			fmt.Fprintln(w, e.Context)
		}
	}
	return nil
}

func expectTokens(w io.Writer, path string, tokens []parser.Token) error {
	want, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading expected tokens")
	}
	diff := parser.DiffDumps(string(want), parser.Dump(tokens))
	if diff == "" {
		return nil
	}
	logrus.WithField("expect", path).Debug("token streams differ")
	fmt.Fprint(w, diff)
	return errors.Errorf("tokens differ from %s", path)
}
