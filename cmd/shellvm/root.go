// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shellvm/shellvm"
	"github.com/shellvm/shellvm/ast"
	"github.com/shellvm/shellvm/internal/slogger"
	"github.com/shellvm/shellvm/value"
)

type rootFlags struct {
	varsFile string
	verbose  bool
	diff     bool
	output   *enumFlag
}

// newRootCmd builds the batch-mode root command: a script comes from the
// single positional argument or, when omitted, stdin; the deobfuscated
// rendering goes to stdout; the process exits 0 on parse success and 1
// on a grammar rejection.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{output: newEnumFlag("text", []string{"text", "json"})}

	cmd := &cobra.Command{
		Use:           "shellvm [script-file]",
		Short:         "Deobfuscate and evaluate shell-language scripts",
		Long:          "shellvm parses and safely evaluates the shell-language obfuscation corpus's scripts, printing a deobfuscated rendering without ever touching the filesystem, network, or process table.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.varsFile, "vars-file", "", "YAML file of initial global variables to seed before evaluating")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log parse/eval tracing at debug level")
	cmd.PersistentFlags().BoolVar(&flags.diff, "diff", false, "print a unified diff between the source and its deobfuscated rendering")
	addOutputFormatFlag(cmd.PersistentFlags(), flags.output)

	cmd.AddCommand(newReplCmd())
	return cmd
}

func runBatch(cmd *cobra.Command, args []string, flags *rootFlags) error {
	logLevel := "warn"
	if flags.verbose {
		logLevel = "debug"
	}
	logger := slogger.New(cmd.ErrOrStderr(), logLevel)

	source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	opts := []shellvm.Option{shellvm.WithLogger(logger)}
	if flags.varsFile != "" {
		vars, err := loadVarsFile(flags.varsFile)
		if err != nil {
			return fmt.Errorf("--vars-file: %w", err)
		}
		opts = append(opts, shellvm.WithVariables(vars))
	}

	session := shellvm.New(opts...)
	res := session.ParseInput(source)

	out := cmd.OutOrStdout()
	if flags.output.String() == "json" {
		if err := printJSON(out, res); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, res.Deobfuscated())
	}
	for _, e := range res.Errors() {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", e)
	}
	if flags.diff {
		printDiff(cmd.ErrOrStderr(), source, res.Deobfuscated())
	}

	for _, e := range res.Errors() {
		if _, ok := e.(*ast.ParseError); ok {
			os.Exit(1)
		}
	}
	return nil
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// loadVarsFile decodes a flat YAML mapping of string/bool/int/float
// values into the value.Val globals Session.WithVariables seeds.
func loadVarsFile(path string) (map[string]value.Val, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]value.Val, len(raw))
	for k, v := range raw {
		out[k] = yamlToVal(v)
	}
	return out, nil
}

func yamlToVal(v any) value.Val {
	switch t := v.(type) {
	case nil:
		return value.Null{}
	case bool:
		return value.Bool(t)
	case int:
		return value.Int(int64(t))
	case int64:
		return value.Int(t)
	case float64:
		return value.Float(t)
	case string:
		return value.String(t)
	case []any:
		elems := make([]value.Val, len(t))
		for i, e := range t {
			elems[i] = yamlToVal(e)
		}
		return &value.Array{Elems: elems}
	default:
		return value.String(fmt.Sprint(t))
	}
}

// batchJSON is the --output json rendering of a ScriptResult: its field
// names mirror ScriptResult's own accessor names rather than the original
// script's shape, since the point of this rendering is tooling
// consumption, not matching shellvm source syntax.
type batchJSON struct {
	Result       string   `json:"result"`
	Output       string   `json:"output"`
	Deobfuscated string   `json:"deobfuscated"`
	Errors       []string `json:"errors,omitempty"`
}

func printJSON(w io.Writer, res *shellvm.ScriptResult) error {
	errs := make([]string, len(res.Errors()))
	for i, e := range res.Errors() {
		errs[i] = e.Error()
	}
	doc := batchJSON{
		Result:       value.CastToString(res.Result()),
		Output:       res.Output(),
		Deobfuscated: res.Deobfuscated(),
		Errors:       errs,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func printDiff(w io.Writer, a, b string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	fmt.Fprintln(w, dmp.DiffPrettyText(diffs))
}
