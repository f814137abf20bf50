package main

import (
	"fmt"
	"strings"

	"dskit/pkg/dataprep"
	"dskit/pkg/pipeline"
	"dskit/pkg/table"

	"github.com/spf13/cobra"
)

type prepFlags struct {
	strip, lowercase, dedupe bool
	imputeMedian             []string
	clip                     []string
	datetime                 []string
	ratio, product           []string
	onehot, scale            []string
	out, scalerOut           string
	testSize                 float64
	testOut                  string
	seed                     uint64
}

func prepCmd(a *app) *cobra.Command {
	var (
		rf readFlags
		pf prepFlags
	)
	cmd := &cobra.Command{
		Use:   "prep <file>",
		Short: "Clean a table and derive model features",
		Long: `Clean a table and derive model features. Steps run in a fixed order:
whitespace, column names, duplicates, imputation, outlier clipping, datetime
parts, ratios, products, one-hot encoding and scaling.

With --test-size the rows are split first: the steps are fitted on the
training rows and replayed on the test rows, which go to --test-out.`,
		Example: "  dskit prep raw.csv --datetime signup --ratio price:qty --onehot city --scale price -o prepared.parquet",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if pf.out == "" {
				return fmt.Errorf("--out is required")
			}
			if pf.testSize > 0 && pf.testOut == "" {
				return fmt.Errorf("--test-out is required with --test-size")
			}
			steps, err := pf.steps()
			if err != nil {
				return err
			}
			t, err := a.loadTable(args[0], &rf)
			if err != nil {
				return err
			}
			var test *table.Table
			if pf.testSize > 0 {
				if t, test, err = dataprep.TrainTestSplit(t, pf.testSize, pf.seed); err != nil {
					return err
				}
			}
			p := pipeline.NewPipeline(steps...).WithLogger(a.log)
			out, err := p.Fit(t)
			if err != nil {
				return err
			}
			if err := a.saveTable(out, pf.out); err != nil {
				return err
			}
			if test != nil {
				if test, err = p.Transform(test); err != nil {
					return err
				}
				if err := a.saveTable(test, pf.testOut); err != nil {
					return err
				}
			}
			if pf.scalerOut == "" {
				return nil
			}
			for _, step := range p.Steps() {
				if s, ok := step.(*pipeline.ScaleStep); ok {
					if err := a.store.SaveBinary(s.Scaler, pf.scalerOut); err != nil {
						return err
					}
					a.log.Info("wrote scaler", "path", pf.scalerOut, "columns", strings.Join(s.Columns, ","))
				}
			}
			return nil
		},
	}
	rf.register(cmd)
	f := cmd.Flags()
	f.BoolVar(&pf.strip, "strip", false, "trim whitespace in text columns")
	f.BoolVar(&pf.lowercase, "lowercase", false, "lowercase column names")
	f.BoolVar(&pf.dedupe, "drop-duplicates", false, "drop repeated rows")
	f.StringSliceVar(&pf.imputeMedian, "impute-median", nil, "fill missing values with the column median")
	f.StringSliceVar(&pf.clip, "clip", nil, "clip columns to their 1st and 99th percentiles")
	f.StringSliceVar(&pf.datetime, "datetime", nil, "add year, month, day and weekday columns")
	f.StringSliceVar(&pf.ratio, "ratio", nil, "add num:den ratio columns")
	f.StringSliceVar(&pf.product, "product", nil, "add a:b product columns")
	f.StringSliceVar(&pf.onehot, "onehot", nil, "one-hot encode columns")
	f.StringSliceVar(&pf.scale, "scale", nil, "standardize columns")
	f.StringVarP(&pf.out, "out", "o", "", "output table; the extension picks the format")
	f.StringVar(&pf.scalerOut, "scaler-out", "", "save the fitted scaler to this binary file")
	f.Float64Var(&pf.testSize, "test-size", 0, "fraction of rows held out as a test set")
	f.StringVar(&pf.testOut, "test-out", "", "output table for the transformed test rows")
	f.Uint64Var(&pf.seed, "seed", 1, "shuffle seed for --test-size")
	return cmd
}

func (pf *prepFlags) steps() ([]pipeline.Transformer, error) {
	var steps []pipeline.Transformer
	if pf.strip {
		steps = append(steps, pipeline.Func{Name: "strip", Fn: dataprep.StripWhitespace})
	}
	if pf.lowercase {
		steps = append(steps, pipeline.Func{Name: "lowercase", Fn: dataprep.LowercaseColumns})
	}
	if pf.dedupe {
		steps = append(steps, pipeline.Func{Name: "drop duplicates", Fn: dataprep.DropDuplicates})
	}
	for _, col := range pf.imputeMedian {
		steps = append(steps, pipeline.Func{
			Name: "impute median " + col,
			Fn:   func(t *table.Table) (*table.Table, error) { return dataprep.ImputeMedian(t, col) },
		})
	}
	if len(pf.clip) > 0 {
		cols := pf.clip
		steps = append(steps, pipeline.Func{
			Name: "clip " + strings.Join(cols, ","),
			Fn:   func(t *table.Table) (*table.Table, error) { return dataprep.ClipOutliers(t, cols, 1, 99) },
		})
	}
	for _, col := range pf.datetime {
		steps = append(steps, pipeline.DatetimeParts(col, ""))
	}
	for _, pair := range pf.ratio {
		a, b, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		steps = append(steps, pipeline.Ratio(a, b, ""))
	}
	for _, pair := range pf.product {
		a, b, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		steps = append(steps, pipeline.Product(a, b, ""))
	}
	if len(pf.onehot) > 0 {
		steps = append(steps, pipeline.OneHot(pf.onehot...))
	}
	if len(pf.scale) > 0 {
		steps = append(steps, pipeline.Scale(pf.scale...))
	}
	return steps, nil
}

func splitPair(s string) (string, string, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok || a == "" || b == "" {
		return "", "", fmt.Errorf("expected column pair as a:b, got %q", s)
	}
	return a, b, nil
}
