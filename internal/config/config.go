// Package config loads the dbscan tool configuration.
//
// Values come from, in increasing precedence: built-in defaults, a TOML
// file, and DBSCAN_* environment variables (DBSCAN_CLUSTER_EPS, ...).
// Command line flags are applied on top by the commands themselves.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/errors"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "DBSCAN"

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = "dbscan.toml"

// Config represents the dbscan tool configuration
type Config struct {
	Cluster ClusterConfig `mapstructure:"cluster" toml:"cluster"`
	Image   ImageConfig   `mapstructure:"image" toml:"image"`
	Render  RenderConfig  `mapstructure:"render" toml:"render"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// ClusterConfig holds the clustering parameters.
type ClusterConfig struct {
	Eps    float64 `mapstructure:"eps" toml:"eps"`         // neighborhood radius
	MinPts int     `mapstructure:"min_pts" toml:"min_pts"` // core threshold, counting the point itself
	Metric string  `mapstructure:"metric" toml:"metric"`   // euclidean, manhattan, chebyshev, minkowski:<p>
}

// ImageConfig controls how points are extracted from images.
type ImageConfig struct {
	Threshold int     `mapstructure:"threshold" toml:"threshold"` // gray intensity must exceed this (0-255)
	Speckle   float64 `mapstructure:"speckle" toml:"speckle"`     // fraction of pixels set to white before extraction
	Seed      int64   `mapstructure:"seed" toml:"seed"`           // speckle RNG seed
}

// RenderConfig controls the rendered cluster image.
type RenderConfig struct {
	NoiseGray int `mapstructure:"noise_gray" toml:"noise_gray"` // gray level of noise pixels (0-255)
}

// LogConfig controls logging output.
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	def := dbscan.DefaultConfig()
	v.SetDefault("cluster.eps", def.Eps)
	v.SetDefault("cluster.min_pts", def.MinPts)
	v.SetDefault("cluster.metric", "euclidean")

	v.SetDefault("image.threshold", 128)
	v.SetDefault("image.speckle", 0.0)
	v.SetDefault("image.seed", 1)

	v.SetDefault("render.noise_gray", 50)

	v.SetDefault("log.json", false)
}

// New returns a Viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads configuration from path. An empty path falls back to
// DefaultFileName in the working directory when it exists, and to defaults
// plus environment otherwise.
func Load(path string) (*Config, error) {
	v := New()
	if path == "" {
		if _, err := os.Stat(DefaultFileName); err == nil {
			path = DefaultFileName
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if !(c.Cluster.Eps >= 0) {
		return errors.WithHint(
			errors.Mark(errors.Newf("cluster.eps must be >= 0, got %v", c.Cluster.Eps), dbscan.ErrInvalidRadius),
			"eps is the neighborhood radius in point units")
	}
	if c.Cluster.MinPts < 1 {
		return errors.WithHint(
			errors.Mark(errors.Newf("cluster.min_pts must be >= 1, got %d", c.Cluster.MinPts), dbscan.ErrInvalidThreshold),
			"min_pts counts the point itself, so 1 is the smallest meaningful value")
	}
	if _, err := dbscan.MetricByName(c.Cluster.Metric); err != nil {
		return errors.WithHint(err, "use euclidean, manhattan, chebyshev or minkowski:<p>")
	}
	if c.Image.Threshold < 0 || c.Image.Threshold > 255 {
		return errors.Newf("image.threshold must be in [0, 255], got %d", c.Image.Threshold)
	}
	if !(c.Image.Speckle >= 0 && c.Image.Speckle <= 1) {
		return errors.Newf("image.speckle must be in [0, 1], got %v", c.Image.Speckle)
	}
	if c.Render.NoiseGray < 0 || c.Render.NoiseGray > 255 {
		return errors.Newf("render.noise_gray must be in [0, 255], got %d", c.Render.NoiseGray)
	}
	return nil
}

// EngineConfig converts the cluster section into a library Config.
func (c *Config) EngineConfig() (dbscan.Config, error) {
	metric, err := dbscan.MetricByName(c.Cluster.Metric)
	if err != nil {
		return dbscan.Config{}, err
	}
	cfg := dbscan.DefaultConfig()
	cfg.Eps = c.Cluster.Eps
	cfg.MinPts = c.Cluster.MinPts
	cfg.Metric = metric
	return cfg, nil
}

// Save writes c as TOML to path, creating parent directories. An existing
// file is only replaced when overwrite is set.
func (c *Config) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
		}
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
