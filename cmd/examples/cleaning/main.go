package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"dskit/pkg/config"
	"dskit/pkg/dataprep"
	"dskit/pkg/inspect"
	"dskit/pkg/logger"
	"dskit/pkg/storage"
	"dskit/pkg/table"

	"github.com/spf13/afero"
)

//
// ---------------------- CLI FLAGS ----------------------
//
// --config  : YAML config file (optional). DSKIT_* variables override it.
// --input   : Raw CSV to clean. Default = data.raw_path from the config
// --output  : Where to save the cleaned table. Default = <data.output_dir>/cleaned.parquet
// --preview : Number of rows to preview in the console
//
// Example:
//   go run ./cmd/examples/cleaning --input complaints.csv --preview 10
//
// -------------------------------------------------------
//

func main() {
	cfgFile := flag.String("config", "dskit.yaml", "YAML config file")
	inputPath := flag.String("input", "", "Raw CSV to clean")
	outputPath := flag.String("output", "", "Path to save the cleaned table")
	previewRows := flag.Int("preview", 5, "Number of rows to preview in console")
	flag.Parse()

	fs := afero.NewOsFs()
	cfg, err := config.Load(fs, *cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.NewLogger(cfg.Log.Logger())
	store := storage.New(fs, storage.WithLogger(log))

	if *inputPath == "" {
		*inputPath = cfg.Data.RawPath
	}
	if *outputPath == "" {
		*outputPath = filepath.Join(cfg.Data.OutputDir, "cleaned.parquet")
	}

	// ---- Load raw CSV ----
	df, elapsed, err := inspect.TimeValue(func() (*table.Table, error) {
		return store.LoadCSV(*inputPath)
	})
	if err != nil {
		log.Error("failed to load raw data", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	fmt.Println(inspect.FormatElapsed("Loaded raw data", elapsed))
	fmt.Println(inspect.Info(df))

	// ---- Clean ----
	for _, step := range []func(*table.Table) (*table.Table, error){
		dataprep.StripWhitespace,
		dataprep.LowercaseColumns,
		dataprep.DropDuplicates,
	} {
		if df, err = step(df); err != nil {
			log.Error("failed to clean data", "error", err)
			os.Exit(1)
		}
	}
	fmt.Printf("After cleaning: %d rows, %d columns\n", df.NumRows(), df.NumCols())
	fmt.Println(inspect.Preview(df, *previewRows))

	// ---- Output ----
	if err := store.SaveParquet(df, *outputPath); err != nil {
		log.Error("failed to save cleaned data", "path", *outputPath, "error", err)
		os.Exit(1)
	}
	fmt.Println("Cleaned data saved to:", *outputPath)
}
