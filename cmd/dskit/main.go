// Command dskit loads, inspects, plots and prepares tabular data files.
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := RootCmd(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
