package main

import (
	"embed"
	"fmt"

	"github.com/CageChen/filehub/fileutil"
	"github.com/spf13/cobra"
)

//go:embed version.txt
var versionFS embed.FS

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the filehub version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := fileutil.ReadResource(versionFS, "version.txt")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "filehub", version)
			return nil
		},
	}
}
