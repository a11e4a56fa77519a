package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-textpipeline/pkg/pipeline/drawer"
)

// NewDrawCmd creates the draw command.
func NewDrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draw [file]",
		Short: "Write the pipelines as a DOT graph",
		Long: `Write the pipelines as a DOT graph, to stdout or to file.
With --sample, every pipeline first runs over the sample file and the graph shows
how long each step took.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDraw,
	}

	cmd.Flags().StringP("sample", "s", "", "text file every pipeline runs over before drawing")
	cmd.Flags().String("rank-dir", "LR", "graph direction: LR, TB, RL or BT, empty for the Graphviz default")

	return cmd
}

func runDraw(cmd *cobra.Command, args []string) (err error) {
	sample, err := cmd.Flags().GetString("sample")
	if err != nil {
		return err
	}

	rankDir, err := cmd.Flags().GetString("rank-dir")
	if err != nil {
		return err
	}

	reg, msr, err := newRegistry(cmd)
	if err != nil {
		return err
	}

	if sample != "" {
		data, err := os.ReadFile(sample) //nolint:gosec // the path is chosen by the user
		if err != nil {
			return errors.Wrapf(err, "unable to read %s", sample)
		}

		for _, name := range reg.Names() {
			// failures are part of what the graph shows
			_, _ = reg.Apply(cmd.Context(), name, string(data))
		}
	}

	var out io.Writer = cmd.OutOrStdout()

	if len(args) == 1 {
		file, err := os.Create(args[0])
		if err != nil {
			return errors.Wrapf(err, "unable to create file %s", args[0])
		}

		defer func() {
			closeErr := file.Close()
			if err == nil && closeErr != nil {
				err = errors.Wrapf(closeErr, "unable to close file %s", args[0])
			}
		}()

		out = file
	}

	opts := []drawer.DOTOption{}
	if rankDir != "" {
		opts = append(opts, drawer.GraphAttribute("rankdir", rankDir))
	}

	return drawer.DrawRegistry(drawer.NewDOTDrawer(out, opts...), reg, msr)
}
