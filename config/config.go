// Package config loads the pipeline configuration from an optional YAML file
// layered over built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/keyscribe/keyscribe/model"
)

// OutDirEnv overrides the configured output base directory when set.
const OutDirEnv = "KEYSCRIBE_OUT"

type VideoConfig struct {
	FrameWidth  int `yaml:"frame_width"`
	FrameHeight int `yaml:"frame_height"`
	FPS         int `yaml:"fps"`
}

type DetectConfig struct {
	// Threshold is the brightness percentage above which a key counts as
	// pressed (strictly greater than).
	Threshold float64 `yaml:"threshold"`
	// SampleRow is the frame row the analyzer reads, counted from the top.
	SampleRow int `yaml:"sample_row"`
	// SliceWidths optionally overrides the per-key slice widths. When set it
	// must hold 88 positive widths summing to frame_width.
	SliceWidths []int `yaml:"slice_widths"`
}

type OutputConfig struct {
	BaseDir         string `yaml:"base_dir"`
	WriteBrightness bool   `yaml:"write_brightness"`
}

type Config struct {
	Video  VideoConfig  `yaml:"video"`
	Detect DetectConfig `yaml:"detect"`
	Output OutputConfig `yaml:"output"`
}

// Default matches the normalized form the upstream transcode hands us:
// 1920x1080 at 24fps, highlight sampled from the top row.
func Default() Config {
	return Config{
		Video:  VideoConfig{FrameWidth: 1920, FrameHeight: 1080, FPS: 24},
		Detect: DetectConfig{Threshold: 70.0, SampleRow: 0},
		Output: OutputConfig{BaseDir: "runs"},
	}
}

// Load reads a YAML config over the defaults. An empty path keeps the
// defaults. The KEYSCRIBE_OUT env var wins over the configured base dir.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if dir := os.Getenv(OutDirEnv); dir != "" {
		cfg.Output.BaseDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Video.FrameWidth <= 0 || c.Video.FrameHeight <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.Video.FrameWidth, c.Video.FrameHeight)
	}
	if c.Video.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Video.FPS)
	}
	if c.Detect.Threshold < 0 || c.Detect.Threshold > 100 {
		return fmt.Errorf("threshold must be within [0,100], got %v", c.Detect.Threshold)
	}
	if c.Detect.SampleRow < 0 || c.Detect.SampleRow >= c.Video.FrameHeight {
		return fmt.Errorf("sample_row %d outside frame height %d", c.Detect.SampleRow, c.Video.FrameHeight)
	}
	if n := len(c.Detect.SliceWidths); n != 0 && n != model.NumKeys {
		return fmt.Errorf("slice_widths needs %d entries, got %d", model.NumKeys, n)
	}
	if c.Output.BaseDir == "" {
		return fmt.Errorf("output base_dir must not be empty")
	}
	return nil
}
