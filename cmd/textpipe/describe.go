package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-textpipeline/pkg/pipeline"
)

// NewDescribeCmd creates the describe command.
func NewDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [pipeline...]",
		Short: "Show the steps of the pipelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			asMarkdown, err := cmd.Flags().GetBool("markdown")
			if err != nil {
				return err
			}

			reg, _, err := newRegistry(cmd)
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = reg.Names()
			}

			if asMarkdown {
				return describeMarkdown(cmd.OutOrStdout(), reg, names)
			}

			return describeText(cmd.OutOrStdout(), reg, names)
		},
	}

	cmd.Flags().BoolP("markdown", "m", false, "write a markdown document")

	return cmd
}

type stepRow struct {
	index   string
	name    string
	enabled string
	args    string
}

func describeRows(reg *pipeline.Registry, name string) ([]stepRow, error) {
	steps, ok := reg.Get(name)
	if !ok {
		return nil, errors.Wrapf(pipeline.ErrPipelineNotFound, "%q", name)
	}

	rows := make([]stepRow, len(steps))

	for i, step := range steps {
		args := make([]string, len(step.Args))
		for j, arg := range step.Args {
			args[j] = fmt.Sprintf("%q", fmt.Sprint(arg))
		}

		rows[i] = stepRow{
			index:   strconv.Itoa(i),
			name:    step.Name,
			enabled: strconv.FormatBool(step.Enabled),
			args:    strings.Join(args, ", "),
		}
	}

	return rows, nil
}

func describeText(w io.Writer, reg *pipeline.Registry, names []string) error {
	for _, name := range names {
		rows, err := describeRows(reg, name)
		if err != nil {
			return err
		}

		opts, _ := reg.Options(name)

		_, err = fmt.Fprintf(w, "%s (stopOnError=%t)\n", name, opts.StopOnError)
		if err != nil {
			return err
		}

		for _, row := range rows {
			state := ""
			if row.enabled == "false" {
				state = " [disabled]"
			}

			_, err = fmt.Fprintf(w, "  %s. %s(%s)%s\n", row.index, row.name, row.args, state)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func describeMarkdown(w io.Writer, reg *pipeline.Registry, names []string) error {
	md := markdown.NewMarkdown(w)
	md.H1("Pipelines")
	md.PlainText("")

	for _, name := range names {
		rows, err := describeRows(reg, name)
		if err != nil {
			return err
		}

		opts, _ := reg.Options(name)

		md.H2(name)
		md.PlainText("")
		md.PlainText("Stop on error: " + strconv.FormatBool(opts.StopOnError))
		md.PlainText("")

		table := markdown.TableSet{
			Header: []string{"#", "Step", "Enabled", "Arguments"},
			Rows:   make([][]string, len(rows)),
		}
		for i, row := range rows {
			table.Rows[i] = []string{row.index, row.name, row.enabled, row.args}
		}

		md.Table(table)
		md.PlainText("")
	}

	return md.Build()
}
