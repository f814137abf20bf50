package main

import (
	"fmt"

	"dskit/pkg/config"
	"dskit/pkg/inspect"
	"dskit/pkg/logger"
	"dskit/pkg/storage"
	"dskit/pkg/table"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app is the state shared by subcommands once flags are parsed.
type app struct {
	fs    afero.Fs
	cfg   *config.Config
	log   logger.Logger
	store *storage.Storage
}

func RootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}
	var cfgFile, level string
	root := &cobra.Command{
		Use:          "dskit",
		Short:        "Load, inspect, plot and prepare tabular data",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.fs, cfgFile)
			if err != nil {
				return err
			}
			if level != "" {
				cfg.Log.Level = logger.LogLevel(level)
				if err := config.Validate(cfg); err != nil {
					return err
				}
			}
			lc := cfg.Log.Logger()
			lc.Output = cmd.ErrOrStderr()
			a.cfg = cfg
			a.log = logger.NewLogger(lc)
			a.store = storage.New(a.fs, storage.WithLogger(a.log))
			cmd.SetContext(logger.ContextWithLogger(cmd.Context(), a.log))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "dskit.yaml", "YAML config file, skipped when missing")
	root.PersistentFlags().StringVar(&level, "log-level", "", "override the configured log level")

	root.AddCommand(
		infoCmd(a),
		convertCmd(a),
		plotCmd(a),
		prepCmd(a),
	)
	return root
}

// readFlags are the load options shared by commands that read a table.
type readFlags struct {
	sheet     string
	delimiter string
}

func (f *readFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Excel sheet name (default: first sheet)")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", ",", "CSV field delimiter")
}

func (f *readFlags) options() (storage.Options, error) {
	r := []rune(f.delimiter)
	if len(r) != 1 {
		return storage.Options{}, fmt.Errorf("delimiter must be one character, got %q", f.delimiter)
	}
	return storage.Options{Sheet: storage.SheetName(f.sheet), Delimiter: r[0]}, nil
}

// loadTable reads any format that can hold a table and logs how long it took.
func (a *app) loadTable(path string, f *readFlags) (*table.Table, error) {
	opts, err := f.options()
	if err != nil {
		return nil, err
	}
	format, err := storage.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	t, elapsed, err := inspect.TimeValue(func() (*table.Table, error) {
		switch format {
		case storage.JSON:
			var t table.Table
			if err := a.store.LoadJSON(path, &t); err != nil {
				return nil, err
			}
			return &t, nil
		case storage.Binary:
			return storage.LoadBinaryAs[*table.Table](a.store, path)
		case storage.Text:
			return nil, fmt.Errorf("%w: %s holds text, not a table", storage.ErrFormat, path)
		}
		v, err := a.store.Load(path, format, opts)
		if err != nil {
			return nil, err
		}
		return v.(*table.Table), nil
	})
	if err != nil {
		return nil, err
	}
	a.log.Info(inspect.FormatElapsed("load "+path, elapsed), "rows", t.NumRows(), "columns", t.NumCols())
	return t, nil
}

// saveTable writes t in the format implied by path.
func (a *app) saveTable(t *table.Table, path string) error {
	format, err := storage.FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := a.store.Save(t, path, format, storage.Options{}); err != nil {
		return err
	}
	a.log.Info("wrote table", "path", path, "format", format)
	return nil
}
