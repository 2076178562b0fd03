package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forPelevin/viralcut/internal/domain/highlights"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Curation.Threshold != highlights.DefaultThreshold || cfg.Curation.MaxMoments != highlights.DefaultMaxMoments {
		t.Fatalf("unexpected defaults: %+v", cfg.Curation)
	}
	if len(cfg.Curation.Keywords) != len(highlights.DefaultVocabulary) {
		t.Fatalf("expected default vocabulary")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := `
out_dir: clips
cache_dir: /tmp/ignored
curation:
  threshold: 55
  max_moments: 3
  suppress_overlap: true
  keywords: [segredo, verdade]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c := cfg.Curation
	if cfg.OutDir != "clips" || c.Threshold != 55 || c.MaxMoments != 3 || !c.SuppressOverlap {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if c.Workers != 1 {
		t.Fatalf("expected unset workers to keep default, got %d", c.Workers)
	}
	if strings.Join(c.Keywords, ",") != "segredo,verdade" {
		t.Fatalf("unexpected keywords: %v", c.Keywords)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected default server addr, got %q", cfg.Server.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for explicit missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("curation: [oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoad_NonFiniteValuesFailValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"nan threshold", "curation:\n  threshold: .nan\n", "threshold"},
		{"nan min gap", "curation:\n  min_gap_sec: .nan\n", "min gap"},
		{"inf min gap", "curation:\n  min_gap_sec: .inf\n", "min gap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			err = cfg.Curation.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCurationValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CurationConfig)
		wantErr string
	}{
		{"defaults", func(*CurationConfig) {}, ""},
		{"threshold high", func(c *CurationConfig) { c.Threshold = 101 }, "threshold"},
		{"threshold negative", func(c *CurationConfig) { c.Threshold = -1 }, "threshold"},
		{"threshold nan", func(c *CurationConfig) { c.Threshold = math.NaN() }, "threshold"},
		{"threshold inf", func(c *CurationConfig) { c.Threshold = math.Inf(1) }, "threshold"},
		{"max zero", func(c *CurationConfig) { c.MaxMoments = 0 }, "max moments"},
		{"negative gap", func(c *CurationConfig) { c.MinGapSec = -1 }, "min gap"},
		{"nan gap", func(c *CurationConfig) { c.MinGapSec = math.NaN() }, "min gap"},
		{"inf gap", func(c *CurationConfig) { c.MinGapSec = math.Inf(1) }, "min gap"},
		{"negative workers", func(c *CurationConfig) { c.Workers = -2 }, "workers"},
		{"blank vocabulary", func(c *CurationConfig) { c.Keywords = []string{" ", ""} }, "vocabulary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default().Curation
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
