package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at link time.
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "uvtool %s\n", version)
		},
	}
}
