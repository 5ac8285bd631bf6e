package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/CageChen/filehub/fileutil"
	mfs "github.com/CageChen/filehub/internal/fs"
	"github.com/CageChen/filehub/internal/log"
	"github.com/spf13/cobra"
)

func fileCommands() []*cobra.Command {
	return []*cobra.Command{
		existsCommand(),
		catCommand(),
		linesCommand(),
		touchCommand(),
		writeCommand(),
		appendCommand(),
		renameCommand(),
		moveCommand(),
		copyCommand(),
		truncateCommand(),
		removeCommand(),
		listCommand(),
	}
}

// optionalArg returns args[i], or the empty string when it was not given.
func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func existsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <path>",
		Short: "Report whether a path exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), fileutil.Exists(args[0]))
			return nil
		},
	}
}

type readOptions struct {
	ref string
}

// gitLoader returns the ref of the current repository as a resource loader, or
// nil when no ref was requested.
func (o *readOptions) gitLoader() *mfs.GitFS {
	if o.ref == "" {
		return nil
	}
	return mfs.NewGitFS(".", o.ref)
}

func catCommand() *cobra.Command {
	opts := &readOptions{}

	cmd := &cobra.Command{
		Use:   "cat <path>",
		Short: "Print the content of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if g := opts.gitLoader(); g != nil {
				content, err := g.ReadFile(optionalArg(args, 0))
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			content, err := fileutil.ReadFile(optionalArg(args, 0))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ref, "ref", "", "Read the file as of this git ref of the current repository")
	return cmd
}

func linesCommand() *cobra.Command {
	opts := &readOptions{}
	var number bool

	cmd := &cobra.Command{
		Use:   "lines <path>",
		Short: "Print a file line by line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				lines []string
				err   error
			)
			if g := opts.gitLoader(); g != nil {
				lines, err = g.ReadLines(optionalArg(args, 0))
			} else {
				lines, err = fileutil.ParseFile(optionalArg(args, 0))
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, line := range lines {
				if number {
					fmt.Fprintf(out, "%6d\t%s\n", i+1, line)
				} else {
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ref, "ref", "", "Read the file as of this git ref of the current repository")
	cmd.Flags().BoolVarP(&number, "number", "n", false, "Number the output lines")
	return cmd
}

func touchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "touch <path> [content]",
		Short: "Create a file, replacing any existing content",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fileutil.CreateFile(optionalArg(args, 0), optionalArg(args, 1))
			if err != nil {
				return err
			}
			log.Debug("file created", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func writeCommand() *cobra.Command {
	var lines []string

	cmd := &cobra.Command{
		Use:   "write <path> [content]",
		Short: "Replace the content of an existing file",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				path string
				err  error
			)
			if cmd.Flags().Changed("line") {
				path, err = fileutil.WriteLines(optionalArg(args, 0), lines)
			} else {
				path, err = fileutil.WriteToFile(optionalArg(args, 0), optionalArg(args, 1))
			}
			if err != nil {
				return err
			}
			log.Debug("file written", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&lines, "line", "l", nil, "Write this line (repeatable); replaces content")
	return cmd
}

func appendCommand() *cobra.Command {
	var (
		lines   []string
		newline bool
	)

	cmd := &cobra.Command{
		Use:   "append <path> [content]",
		Short: "Append to an existing file",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				path string
				err  error
			)
			if cmd.Flags().Changed("line") {
				path, err = fileutil.AppendLines(optionalArg(args, 0), lines, newline)
			} else {
				path, err = fileutil.AppendToFile(optionalArg(args, 0), optionalArg(args, 1), newline)
			}
			if err != nil {
				return err
			}
			log.Debug("file appended", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&lines, "line", "l", nil, "Append this line (repeatable); replaces content")
	cmd.Flags().BoolVar(&newline, "newline", false, "Start the appended text on a new line")
	return cmd
}

func renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a file within its directory",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fileutil.RenameFile(optionalArg(args, 0), optionalArg(args, 1))
			if err != nil {
				return err
			}
			log.Debug("file renamed", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func transferCommand(use, short string, op func(source, target string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <source> <target>",
		Short: short,
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := op(optionalArg(args, 0), optionalArg(args, 1))
			if err != nil {
				return err
			}
			log.Debug(use+" done", "source", args[0], "target", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func moveCommand() *cobra.Command {
	return transferCommand("mv", "Move a file, replacing an existing target", fileutil.MoveFile)
}

func copyCommand() *cobra.Command {
	return transferCommand("cp", "Copy a file, replacing an existing target", fileutil.CopyFile)
}

func truncateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "truncate <path>",
		Short: "Empty a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fileutil.TruncateFile(optionalArg(args, 0))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <path>",
		Short:   "Delete a file or an empty directory",
		Aliases: []string{"delete"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fileutil.DeleteFile(optionalArg(args, 0)); err != nil {
				return err
			}
			log.Debug("file deleted", "path", args[0])
			return nil
		},
	}
}

type listOptions struct {
	dirs   bool
	prefix string
	suffix string
	order  string
	long   bool
}

func listCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List the files (or directories) of a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.order != "" && opts.order != "asc" && opts.order != "desc" {
				return fmt.Errorf("invalid order %q: must be asc or desc", opts.order)
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			lister := fileutil.ListFiles
			if opts.dirs {
				lister = fileutil.ListDirectories
			}
			entries, err := lister(dir)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("prefix") {
				entries = fileutil.FilterByPrefix(entries, opts.prefix)
			}
			if cmd.Flags().Changed("suffix") {
				entries = fileutil.FilterBySuffix(entries, opts.suffix)
			}
			if opts.order != "" {
				fileutil.OrderByLastModified(entries, opts.order == "desc")
			}

			if !opts.long {
				for _, e := range entries {
					fmt.Fprintln(cmd.OutOrStdout(), e.Name)
				}
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", e.Size, e.ModTime.Format(time.DateTime), e.Name)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&opts.dirs, "dirs", "d", false, "List directories and other non-regular entries instead of files")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Keep names starting with this prefix")
	cmd.Flags().StringVar(&opts.suffix, "suffix", "", "Keep names ending with this suffix")
	cmd.Flags().StringVar(&opts.order, "order", "", "Sort by modification time: asc or desc")
	cmd.Flags().BoolVarP(&opts.long, "long", "L", false, "Show size and modification time")
	return cmd
}
