package main

import (
	"github.com/spf13/cobra"
)

func convertCmd(a *app) *cobra.Command {
	var rf readFlags
	cmd := &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Convert a table between csv, xlsx, json, parquet and gob",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := a.loadTable(args[0], &rf)
			if err != nil {
				return err
			}
			return a.saveTable(t, args[1])
		},
	}
	rf.register(cmd)
	return cmd
}
