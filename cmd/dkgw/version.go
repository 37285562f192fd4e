package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkgw-corpus/dkgw/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.stdout, version.String())
		},
	}
}
