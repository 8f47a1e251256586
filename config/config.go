// Package config loads the YAML configuration shared by the train and
// predict commands. Values resolve as flag > file > default.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/YuminosukeSato/linreg/linear"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
	"gopkg.in/yaml.v2"
)

// DefaultModelPath is where the model is stored when nothing else is given.
const DefaultModelPath = ".model"

// Config is the root of the configuration file.
type Config struct {
	Training Training `yaml:"training"`
	Model    Model    `yaml:"model"`
	Output   Output   `yaml:"output"`
	Log      Log      `yaml:"log"`
}

// Training holds the gradient descent hyperparameters.
type Training struct {
	LearningRate  float64 `yaml:"learning_rate"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	WarmStart     string  `yaml:"warm_start"`
}

// Model locates the model file.
type Model struct {
	Path string `yaml:"path"`
}

// Output enables the optional observers. Empty paths disable them.
type Output struct {
	Plot    string `yaml:"plot"`
	History string `yaml:"history"`
}

// Log configures pkg/log.SetupLogger.
type Log struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Training: Training{
			LearningRate:  linear.DefaultLearningRate,
			Tolerance:     linear.DefaultTolerance,
			MaxIterations: linear.DefaultMaxIter,
			WarmStart:     linear.WarmStartNone.String(),
		},
		Model: Model{Path: DefaultModelPath},
		Log: Log{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads path over the defaults. An empty path returns Default().
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Mark(errors.Wrapf(err, "config %s", path), errors.ErrMissingFile)
		}
		return nil, errors.Wrapf(err, "config %s", path)
	}
	defer file.Close()

	if err := Decode(file, cfg); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays the YAML document in r on cfg. An empty document leaves
// cfg unchanged.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return errors.Wrap(err, "decode yaml")
	}
	return nil
}

// Validate rejects values the trainer or logger would refuse.
func (c *Config) Validate() error {
	t := c.Training
	if !errors.IsFinite(t.LearningRate) || t.LearningRate <= 0 {
		return errors.NewValidationError("training.learning_rate", "must be a finite value greater than 0", t.LearningRate)
	}
	if !errors.IsFinite(t.Tolerance) || t.Tolerance <= 0 {
		return errors.NewValidationError("training.tolerance", "must be a finite value greater than 0", t.Tolerance)
	}
	if t.MaxIterations < 0 {
		return errors.NewValidationError("training.max_iterations", "must be 0 (no cap) or positive", t.MaxIterations)
	}
	if _, err := linear.ParseWarmStart(t.WarmStart); err != nil {
		return err
	}
	if strings.TrimSpace(c.Model.Path) == "" {
		return errors.NewValidationError("model.path", "must not be empty", c.Model.Path)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return errors.NewValidationError("log.format", "must be console or json", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return errors.NewValidationError("log", "rotation limits must not be negative",
			[]int{c.Log.MaxSizeMB, c.Log.MaxBackups, c.Log.MaxAgeDays})
	}
	return nil
}

// TrainerOptions converts the training section into linear options.
func (c *Config) TrainerOptions() ([]linear.Option, error) {
	mode, err := linear.ParseWarmStart(c.Training.WarmStart)
	if err != nil {
		return nil, err
	}
	return []linear.Option{
		linear.WithLearningRate(c.Training.LearningRate),
		linear.WithTol(c.Training.Tolerance),
		linear.WithMaxIter(c.Training.MaxIterations),
		linear.WithWarmStart(mode),
	}, nil
}

// LogOptions converts the log section for log.SetupLogger.
func (c *Config) LogOptions(out io.Writer) log.Options {
	return log.Options{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		Output:     out,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}
