package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"skpmml/internal/pipeline"
	"skpmml/internal/pmml"
	"skpmml/internal/watch"
)

var convertFlags struct {
	output      string
	watch       bool
	description string
}

var convertCmd = &cobra.Command{
	Use:   "convert <model.yaml>",
	Short: "Compile a model description into a PMML document",
	Long: `Compile a model description into a PMML document.

Without --output the document is written to standard output.

Examples:
  # Print the document
  skpmml convert model.yaml

  # Write it to a file and recompile on every change
  skpmml convert model.yaml -o model.pmml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "output file (default: standard output)")
	convertCmd.Flags().BoolVarP(&convertFlags.watch, "watch", "w", false, "recompile when the description changes")
	convertCmd.Flags().StringVar(&convertFlags.description, "description", "", "header description of the document")
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := args[0]

	if convertFlags.watch && convertFlags.output == "" {
		return errors.New("--watch requires --output")
	}

	compiler := newCompiler(convertFlags.description)
	out := cmd.OutOrStdout()

	err := convert(out, compiler, path, convertFlags.output)
	if !convertFlags.watch {
		return err
	}

	if err != nil {
		slog.Error("compilation failed", "path", path, "error", err)
	}

	w, err := watch.New(watch.Config{Path: path}, slog.Default())
	if err != nil {
		return err
	}

	return w.Watch(commandContext(cmd), func() error {
		return convert(out, compiler, path, convertFlags.output)
	})
}

func convert(out io.Writer, compiler *pipeline.Compiler, path, output string) error {
	res, err := compiler.CompileFile(path)
	if err != nil {
		return err
	}

	if output == "" {
		data, err := pmml.Marshal(res.Document)
		if err != nil {
			return err
		}

		_, err = out.Write(data)

		return err
	}

	if err := pmml.WriteFile(res.Document, output); err != nil {
		return err
	}

	slog.Info("document written", "compile_id", res.CompileID, "path", output)
	fmt.Fprintf(out, "%s -> %s (%d predictors)\n", path, output, len(res.Schema.Features))

	return nil
}
