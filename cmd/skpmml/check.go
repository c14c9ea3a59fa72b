package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"skpmml/internal/diagnostic"
)

var checkFlags struct {
	strict bool
	format string
}

var checkCmd = &cobra.Command{
	Use:   "check <model.yaml>...",
	Short: "Validate model descriptions",
	Long: `Compile model descriptions without writing documents and report
errors, warnings and notes.

Examples:
  # Check every example
  skpmml check examples/*/model.yaml

  # Fail on warnings too
  skpmml check model.yaml --strict

  # Machine readable report
  skpmml check model.yaml --format yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkFlags.strict, "strict", false, "treat warnings as errors")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, yaml")
}

type checkReport struct {
	File        string            `yaml:"file"`
	Valid       bool              `yaml:"valid"`
	Diagnostics []diagnosticEntry `yaml:"diagnostics,omitempty"`

	all []diagnostic.Diagnostic
}

type diagnosticEntry struct {
	Severity    string   `yaml:"severity"`
	Code        string   `yaml:"code"`
	Message     string   `yaml:"message"`
	Component   string   `yaml:"component,omitempty"`
	Field       string   `yaml:"field,omitempty"`
	Suggestions []string `yaml:"suggestions,omitempty,flow"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkFlags.format != "text" && checkFlags.format != "yaml" {
		return fmt.Errorf("unknown format %q", checkFlags.format)
	}

	compiler := newCompiler("")
	reports := make([]checkReport, 0, len(args))
	failed := 0

	for _, path := range args {
		report := checkReport{File: path}

		res, err := compiler.CompileFile(path)
		if res == nil {
			report.all = []diagnostic.Diagnostic{{
				Severity: diagnostic.SeverityError,
				Code:     "load_failed",
				Message:  err.Error(),
			}}
		} else {
			report.all = res.Diagnostics.All()
		}

		for _, d := range report.all {
			report.Diagnostics = append(report.Diagnostics, entryOf(d))
		}

		report.Valid = err == nil && (!checkFlags.strict || len(res.Diagnostics.Warnings) == 0)
		if !report.Valid {
			failed++
		}

		reports = append(reports, report)
	}

	out := cmd.OutOrStdout()

	if checkFlags.format == "yaml" {
		if err := writeYAML(out, reports); err != nil {
			return err
		}
	} else {
		writeReports(out, reports)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d description(s) failed", failed, len(args))
	}

	return nil
}

func entryOf(d diagnostic.Diagnostic) diagnosticEntry {
	return diagnosticEntry{
		Severity:    d.Severity.String(),
		Code:        d.Code,
		Message:     d.Message,
		Component:   d.Component,
		Field:       d.Field,
		Suggestions: d.Suggestions,
	}
}

func writeReports(out io.Writer, reports []checkReport) {
	for _, r := range reports {
		status := "ok"
		if !r.Valid {
			status = "FAILED"
		}

		fmt.Fprintf(out, "%s: %s\n", r.File, status)

		for _, d := range r.all {
			fmt.Fprintf(out, "  %s: %s\n", d.Severity, d)
		}
	}
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return enc.Close()
}
