package main

import (
	"fmt"
	"path/filepath"

	"dskit/pkg/plotting"
	"dskit/pkg/table"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
)

func plotCmd(a *app) *cobra.Command {
	var (
		rf    readFlags
		kind  string
		x, y  string
		bins  int
		title string
		out   string
	)
	cmd := &cobra.Command{
		Use:   "plot <file>",
		Short: "Draw a histogram, density, scatter, box or bar chart of a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if x == "" {
				return fmt.Errorf("--x is required")
			}
			t, err := a.loadTable(args[0], &rf)
			if err != nil {
				return err
			}
			style := a.cfg.Plot.Style()
			p, err := chart(style, t, kind, x, y, bins, title)
			if err != nil {
				return err
			}
			if out == "" {
				name := kind + "_" + x
				if y != "" {
					name += "_" + y
				}
				out = filepath.Join(a.cfg.Data.OutputDir, "figures", name+"."+a.cfg.Plot.Format)
			}
			if err := plotting.Save(a.fs, style, p, out); err != nil {
				return err
			}
			a.log.Info("wrote chart", "path", out, "kind", kind)
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", "hist", "chart kind: hist, kde, scatter, box or bar")
	cmd.Flags().StringVar(&x, "x", "", "column to plot (x axis for scatter)")
	cmd.Flags().StringVar(&y, "y", "", "y column for scatter")
	cmd.Flags().IntVar(&bins, "bins", plotting.DefaultBins, "histogram bins")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image; the extension picks the format")
	return cmd
}

func chart(s *plotting.Style, t *table.Table, kind, x, y string, bins int, title string) (*plot.Plot, error) {
	switch kind {
	case "hist":
		return plotting.Histogram(s, t, x, bins, title)
	case "kde":
		return plotting.HistogramKDE(s, t, x, bins, title)
	case "scatter":
		if y == "" {
			return nil, fmt.Errorf("scatter needs --y")
		}
		return plotting.Scatter(s, t, x, y, title)
	case "box":
		return plotting.Box(s, t, x, title)
	case "bar":
		return plotting.Bar(s, t, x, title)
	}
	return nil, fmt.Errorf("unknown chart kind %q", kind)
}
