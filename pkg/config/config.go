// Package config loads dskit settings from defaults, an optional YAML file
// and DSKIT_* environment variables, in increasing precedence.
package config

import (
	"dskit/pkg/logger"
	"dskit/pkg/plotting"

	"gonum.org/v1/plot/vg"
)

// EnvPrefix marks the environment variables read by Load.
const EnvPrefix = "DSKIT_"

type Config struct {
	Log  LogConfig  `koanf:"log"`
	Plot PlotConfig `koanf:"plot"`
	Data DataConfig `koanf:"data"`
}

type LogConfig struct {
	Level     logger.LogLevel `koanf:"level"      validate:"oneof=debug info warn error disabled"`
	JSON      bool            `koanf:"json"`
	AddSource bool            `koanf:"add_source"`
}

// PlotConfig sizes are in inches and points.
type PlotConfig struct {
	Width     float64 `koanf:"width"      validate:"gt=0"`
	Height    float64 `koanf:"height"     validate:"gt=0"`
	TitleSize float64 `koanf:"title_size" validate:"gt=0"`
	LabelSize float64 `koanf:"label_size" validate:"gt=0"`
	Grid      bool    `koanf:"grid"`
	Format    string  `koanf:"format"     validate:"oneof=png svg pdf jpg jpeg eps tif tiff"`
}

type DataConfig struct {
	RawPath   string `koanf:"raw_path"   validate:"required"`
	OutputDir string `koanf:"output_dir" validate:"required"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: logger.InfoLevel,
		},
		Plot: PlotConfig{
			Width:     10,
			Height:    6,
			TitleSize: 14,
			LabelSize: 12,
			Grid:      true,
			Format:    "png",
		},
		Data: DataConfig{
			RawPath:   "data/raw/Insurance_complaints__All_data_20251211.csv",
			OutputDir: "data/processed",
		},
	}
}

// Logger builds the logger configuration for this config.
func (c LogConfig) Logger() *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = c.Level
	cfg.JSON = c.JSON
	cfg.AddSource = c.AddSource
	return cfg
}

// Style builds a plot style from the configured sizes.
func (c PlotConfig) Style() *plotting.Style {
	s := plotting.DefaultStyle()
	s.Width = vg.Length(c.Width) * vg.Inch
	s.Height = vg.Length(c.Height) * vg.Inch
	s.TitleSize = vg.Points(c.TitleSize)
	s.LabelSize = vg.Points(c.LabelSize)
	s.Grid = c.Grid
	return s
}
