package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/bgreenwell/ranger/forest"
	"github.com/bgreenwell/ranger/pkg/errors"
)

// Config is the YAML run configuration. Zero values select the library
// defaults, matching the option semantics.
type Config struct {
	Data             string `yaml:"data"`
	DependentVar     int    `yaml:"dependent_var"`
	NumTrees         int    `yaml:"num_trees"`
	Mtry             int    `yaml:"mtry"`
	MinNodeSize      int    `yaml:"min_node_size"`
	NumThreads       int    `yaml:"num_threads"`
	Seed             uint64 `yaml:"seed"`
	Importance       string `yaml:"importance"`
	NoSplitVariables []int  `yaml:"no_split_variables"`
	OutputPrefix     string `yaml:"output_prefix"`
	Verbose          bool   `yaml:"verbose"`
}

func loadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func (cfg *Config) importanceMode() (forest.ImportanceMode, error) {
	switch cfg.Importance {
	case "", "none":
		return forest.ImportanceNone, nil
	case "gini":
		return forest.ImportanceGini, nil
	default:
		return forest.ImportanceNone, errors.NewValidationError("importance",
			"must be one of none, gini", cfg.Importance)
	}
}

func (cfg *Config) options() ([]forest.Option, error) {
	mode, err := cfg.importanceMode()
	if err != nil {
		return nil, err
	}

	opts := []forest.Option{
		forest.WithSeed(cfg.Seed),
		forest.WithImportance(mode),
	}
	if cfg.NumTrees > 0 {
		opts = append(opts, forest.WithNumTrees(cfg.NumTrees))
	}
	if cfg.Mtry > 0 {
		opts = append(opts, forest.WithMtry(cfg.Mtry))
	}
	if cfg.MinNodeSize > 0 {
		opts = append(opts, forest.WithMinNodeSize(cfg.MinNodeSize))
	}
	if cfg.NumThreads > 0 {
		opts = append(opts, forest.WithNumThreads(cfg.NumThreads))
	}
	if len(cfg.NoSplitVariables) > 0 {
		opts = append(opts, forest.WithNoSplitVariables(cfg.NoSplitVariables))
	}
	return opts, nil
}
