package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrNoMatch is returned by apply when its globs match no file.
var ErrNoMatch = errors.New("no file matches the patterns")

// NewApplyCmd creates the apply command.
func NewApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <pipeline> [glob...]",
		Short: "Run a pipeline over stdin or over the files matching the globs",
		Long: `Run a pipeline over stdin, or over every file matching the globs.
Globs are relative to the current directory and support ** (for example docs/**/*.txt).
Without --out-dir the results are written to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runApply,
	}

	cmd.Flags().StringP("out-dir", "o", "", "write each result to this directory, keeping the input paths")
	cmd.Flags().StringArrayP("arg", "a", nil, "argument passed to every step after its own arguments, can be repeated")

	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	name, patterns := args[0], args[1:]

	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}

	rawArgs, err := cmd.Flags().GetStringArray("arg")
	if err != nil {
		return err
	}

	invokeArgs := make([]any, len(rawArgs))
	for i, arg := range rawArgs {
		invokeArgs[i] = arg
	}

	reg, _, err := newRegistry(cmd)
	if err != nil {
		return err
	}

	if len(patterns) == 0 {
		input, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, "unable to read stdin")
		}

		out, err := reg.Apply(cmd.Context(), name, string(input), invokeArgs...)
		if err != nil {
			return err
		}

		_, err = io.WriteString(cmd.OutOrStdout(), out)

		return err
	}

	files, err := globFiles(os.DirFS("."), patterns)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return errors.Wrapf(ErrNoMatch, "%s", strings.Join(patterns, " "))
	}

	inputs := make([]string, len(files))

	for i, file := range files {
		data, err := os.ReadFile(file) //nolint:gosec // files come from the user globs
		if err != nil {
			return errors.Wrapf(err, "unable to read %s", file)
		}

		inputs[i] = string(data)
	}

	outputs, err := reg.ApplyBatch(cmd.Context(), name, inputs, invokeArgs...)
	if err != nil {
		return err
	}

	for i, file := range files {
		err = writeOutput(cmd.OutOrStdout(), outDir, file, outputs[i])
		if err != nil {
			return err
		}
	}

	return nil
}

func globFiles(fsys fs.FS, patterns []string) ([]string, error) {
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, "glob %q", pattern)
		}

		files = append(files, matches...)
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

func writeOutput(stdout io.Writer, outDir, file, output string) error {
	if outDir == "" {
		_, err := fmt.Fprintf(stdout, "==> %s <==\n%s\n", file, output)

		return err
	}

	target := filepath.Join(outDir, file)

	err := os.MkdirAll(filepath.Dir(target), 0o750)
	if err != nil {
		return errors.Wrapf(err, "unable to create directory for %s", target)
	}

	err = os.WriteFile(target, []byte(output), 0o600)
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", target)
	}

	return nil
}
