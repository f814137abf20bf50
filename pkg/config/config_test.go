package config

import (
	"testing"

	"dskit/pkg/logger"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func TestLoad(t *testing.T) {
	t.Run("Should load defaults when no file is given", func(t *testing.T) {
		cfg, err := Load(afero.NewMemMapFs(), "")

		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("Should skip a missing file", func(t *testing.T) {
		cfg, err := Load(afero.NewMemMapFs(), "dskit.yaml")

		require.NoError(t, err)
		assert.Equal(t, "png", cfg.Plot.Format)
	})

	t.Run("Should merge only the keys present in the file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		yaml := "plot:\n  width: 8\n  grid: false\ndata:\n  raw_path: in/raw.csv\n"
		require.NoError(t, afero.WriteFile(fs, "dskit.yaml", []byte(yaml), 0o644))

		cfg, err := Load(fs, "dskit.yaml")

		require.NoError(t, err)
		assert.Equal(t, 8.0, cfg.Plot.Width)
		assert.Equal(t, 6.0, cfg.Plot.Height)
		assert.False(t, cfg.Plot.Grid)
		assert.Equal(t, "in/raw.csv", cfg.Data.RawPath)
		assert.Equal(t, "data/processed", cfg.Data.OutputDir)
	})

	t.Run("Should let environment variables win over the file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "dskit.yaml", []byte("plot:\n  width: 8\n"), 0o644))
		t.Setenv("DSKIT_PLOT_WIDTH", "12.5")
		t.Setenv("DSKIT_PLOT_TITLE_SIZE", "18")
		t.Setenv("DSKIT_LOG_LEVEL", "debug")
		t.Setenv("DSKIT_LOG_JSON", "true")
		t.Setenv("DSKIT_DATA_OUTPUT_DIR", "out")

		cfg, err := Load(fs, "dskit.yaml")

		require.NoError(t, err)
		assert.Equal(t, 12.5, cfg.Plot.Width)
		assert.Equal(t, 18.0, cfg.Plot.TitleSize)
		assert.Equal(t, logger.DebugLevel, cfg.Log.Level)
		assert.True(t, cfg.Log.JSON)
		assert.Equal(t, "out", cfg.Data.OutputDir)
	})

	t.Run("Should reject invalid values", func(t *testing.T) {
		t.Setenv("DSKIT_LOG_LEVEL", "loud")

		_, err := Load(afero.NewMemMapFs(), "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})

	t.Run("Should reject a malformed file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("plot: [unclosed"), 0o644))

		_, err := Load(fs, "bad.yaml")

		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("Should require positive plot sizes", func(t *testing.T) {
		cfg := Default()
		cfg.Plot.Height = 0

		assert.Error(t, Validate(cfg))
		assert.Error(t, Validate(nil))
		assert.NoError(t, Validate(Default()))
	})
}

func TestConversions(t *testing.T) {
	t.Run("Should build a plot style in inches and points", func(t *testing.T) {
		cfg := Default().Plot
		cfg.Grid = false

		s := cfg.Style()

		assert.Equal(t, 10*vg.Inch, s.Width)
		assert.Equal(t, 6*vg.Inch, s.Height)
		assert.Equal(t, vg.Points(14), s.TitleSize)
		assert.False(t, s.Grid)
	})

	t.Run("Should build a logger config", func(t *testing.T) {
		lc := LogConfig{Level: logger.WarnLevel, JSON: true}.Logger()

		assert.Equal(t, logger.WarnLevel, lc.Level)
		assert.True(t, lc.JSON)
	})
}

func TestTransformEnvKey(t *testing.T) {
	t.Run("Should split the section from the field name", func(t *testing.T) {
		assert.Equal(t, "plot.title_size", transformEnvKey("PLOT_TITLE_SIZE"))
		assert.Equal(t, "data.raw_path", transformEnvKey("DATA_RAW_PATH"))
		assert.Equal(t, "log", transformEnvKey("LOG"))
		assert.Equal(t, "", transformEnvKey("__"))
	})
}
