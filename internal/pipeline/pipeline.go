package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/forPelevin/viralcut/internal/config"
	"github.com/forPelevin/viralcut/internal/ports"
	"github.com/forPelevin/viralcut/internal/ports/adapters/jsonfile"
	"github.com/forPelevin/viralcut/internal/usecase"
)

type Config struct {
	Transcript string
	// Signals is an optional JSON file with face and audio samples.
	Signals string
	OutDir  string

	Curation config.CurationConfig
	Log      zerolog.Logger
}

func (c Config) Validate() error {
	if c.Transcript == "" {
		return errors.New("transcript is empty")
	}
	if _, err := os.Stat(c.Transcript); err != nil {
		return fmt.Errorf("stat transcript: %w", err)
	}
	if c.Signals != "" {
		if _, err := os.Stat(c.Signals); err != nil {
			return fmt.Errorf("stat signals: %w", err)
		}
	}
	return c.Curation.Validate()
}

type Output struct {
	RunDir       string
	ManifestPath string
	Moments      int
}

func Run(ctx context.Context, cfg Config) (Output, error) {
	log := cfg.Log

	src := jsonfile.New()
	uc := usecase.New(usecase.Deps{
		Transcripts: src,
		Signals:     src,
		Curator:     cfg.Curation.NewCurator(),
	})

	runID := xid.New().String()
	log = log.With().Str("run", runID).Logger()

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, cfg.Transcript, time.Now().UTC())

	res, err := uc.Run(ctx, usecase.Input{
		RunID:      runID,
		Transcript: cfg.Transcript,
		Signals:    cfg.Signals,
		Log:        log,
	})
	if err != nil {
		return Output{}, err
	}

	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return Output{}, err
	}
	log.Debug().Str("dir", runOutDir).Msg("output run dir")

	b, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return Output{}, fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return Output{}, err
	}
	log.Info().
		Int("moments", len(res.Manifest.Moments)).
		Str("path", manifestPath).
		Msg("manifest written")
	return Output{RunDir: runOutDir, ManifestPath: manifestPath, Moments: len(res.Manifest.Moments)}, nil
}

func buildRunOutDir(outRoot, transcript string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(transcript), filepath.Ext(transcript))
	name = normalizePathSegment(name)
	if name == "" {
		name = "transcript"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", transcript, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.TranscriptSource = (*jsonfile.Adapter)(nil)
var _ ports.SignalSource = (*jsonfile.Adapter)(nil)
