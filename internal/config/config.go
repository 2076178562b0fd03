package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forPelevin/viralcut/internal/domain/highlights"
)

const (
	EnvConfigPath   = "VIRALCUT_CONFIG"
	defaultFileName = "viralcut.yaml"
)

type Config struct {
	OutDir   string         `yaml:"out_dir"`
	Curation CurationConfig `yaml:"curation"`
	Server   ServerConfig   `yaml:"server"`
}

type CurationConfig struct {
	Threshold       float64  `yaml:"threshold"`
	MaxMoments      int      `yaml:"max_moments"`
	SuppressOverlap bool     `yaml:"suppress_overlap"`
	MinGapSec       float64  `yaml:"min_gap_sec"`
	Workers         int      `yaml:"workers"`
	Keywords        []string `yaml:"keywords"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// MaxBodyBytes caps POST /api/curate payloads.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

func Default() Config {
	return Config{
		OutDir: "out",
		Curation: CurationConfig{
			Threshold:  highlights.DefaultThreshold,
			MaxMoments: highlights.DefaultMaxMoments,
			Workers:    1,
			Keywords:   append([]string(nil), highlights.DefaultVocabulary...),
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 8 << 20,
		},
	}
}

// Load reads path over the defaults. With an empty path it falls back to
// $VIRALCUT_CONFIG, then ./viralcut.yaml; if neither exists the defaults are
// returned. An explicitly named file that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}
	if path == "" {
		if _, err := os.Stat(defaultFileName); err != nil {
			return cfg, nil
		}
		path = defaultFileName
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.Curation.Keywords) == 0 {
		cfg.Curation.Keywords = append([]string(nil), highlights.DefaultVocabulary...)
	}
	return cfg, nil
}

func (c CurationConfig) Validate() error {
	if math.IsNaN(c.Threshold) || c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold must be within [0,100], got %v", c.Threshold)
	}
	if c.MaxMoments <= 0 {
		return errors.New("max moments must be > 0")
	}
	if math.IsNaN(c.MinGapSec) || math.IsInf(c.MinGapSec, 0) || c.MinGapSec < 0 {
		return fmt.Errorf("min gap must be a finite number >= 0, got %v", c.MinGapSec)
	}
	if c.Workers < 0 {
		return errors.New("workers must be >= 0")
	}
	if len(highlights.NewKeywordScorer(c.Keywords).Vocabulary()) == 0 {
		return errors.New("keyword vocabulary is empty")
	}
	return nil
}

// Options converts the curation section into curator options.
func (c CurationConfig) Options() highlights.Options {
	return highlights.Options{
		Threshold:       c.Threshold,
		MaxMoments:      c.MaxMoments,
		SuppressOverlap: c.SuppressOverlap,
		MinGap:          c.MinGapSec,
		Workers:         c.Workers,
	}
}

func (c CurationConfig) NewCurator() *highlights.Curator {
	scorer := highlights.NewScorer(highlights.NewKeywordScorer(c.Keywords))
	return highlights.NewCurator(scorer, c.Options())
}
