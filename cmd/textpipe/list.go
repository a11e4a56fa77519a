package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, _, err := newRegistry(cmd)
			if err != nil {
				return err
			}

			for _, name := range reg.Names() {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}
