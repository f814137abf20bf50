package main

import (
	"fmt"

	"dskit/pkg/inspect"

	"github.com/spf13/cobra"
)

func infoCmd(a *app) *cobra.Command {
	var (
		rf       readFlags
		head     int
		describe bool
	)
	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Show shape, column kinds, missing counts and the first rows",
		Long:  "Show shape, column kinds, missing counts and the first rows of a table. Without a file the configured raw data path is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Data.RawPath
			if len(args) == 1 {
				path = args[0]
			}
			t, err := a.loadTable(path, &rf)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, inspect.Info(t))
			if head != 0 {
				fmt.Fprintln(out, inspect.Preview(t, head))
			}
			if describe {
				fmt.Fprintln(out, inspect.Describe(t))
			}
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().IntVarP(&head, "head", "n", 5, "rows to preview (0 to skip, negative for all)")
	cmd.Flags().BoolVar(&describe, "describe", false, "print summary statistics of numeric columns")
	return cmd
}
