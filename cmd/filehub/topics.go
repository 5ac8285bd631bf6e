package main

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/CageChen/filehub/fileutil"
	"github.com/spf13/cobra"
)

//go:embed topics/*.txt
var topicsFS embed.FS

func topicFiles() (fs.FS, error) {
	return fs.Sub(topicsFS, "topics")
}

func newTopicsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "topics [name]",
		Short: "List help topics, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, err := topicFiles()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				names, err := fs.Glob(topics, "*.txt")
				if err != nil {
					return err
				}
				for _, name := range names {
					// the first line of a topic is its title
					title, err := fileutil.ParseResource(topics, name)
					if err != nil {
						return err
					}
					summary := ""
					if len(title) > 0 {
						summary = title[0]
					}
					fmt.Fprintf(out, "%-10s %s\n", strings.TrimSuffix(name, path.Ext(name)), summary)
				}
				return nil
			}

			lines, err := fileutil.ParseResource(topics, args[0]+".txt")
			if err != nil {
				return fmt.Errorf("unknown topic %q", args[0])
			}
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
