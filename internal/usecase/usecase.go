package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/forPelevin/viralcut/internal/domain/highlights"
	"github.com/forPelevin/viralcut/internal/domain/signals"
	"github.com/forPelevin/viralcut/internal/ports"
	"github.com/forPelevin/viralcut/internal/types"
)

type Deps struct {
	Transcripts ports.TranscriptSource
	Signals     ports.SignalSource
	Curator     *highlights.Curator
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	RunID      string
	Transcript string
	// Signals is optional; empty means no face or audio data.
	Signals string
	Log     zerolog.Logger
}

type Result struct {
	Manifest types.Manifest
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	log := in.Log

	segs, err := u.d.Transcripts.LoadSegments(ctx, in.Transcript)
	if err != nil {
		return Result{}, err
	}
	log.Info().Int("segments", len(segs)).Msg("transcript loaded")

	samples, err := u.d.Signals.LoadSignals(ctx, in.Signals)
	if err != nil {
		return Result{}, err
	}
	if len(samples.Faces) == 0 && len(samples.Audio) == 0 {
		log.Debug().Msg("no face or audio signal; scoring text only")
	}

	m, err := Curate(u.d.Curator, segs, samples, log)
	if err != nil {
		return Result{}, err
	}
	m.RunID = in.RunID
	m.Transcript = in.Transcript
	return Result{Manifest: m}, nil
}

// Curate runs the curator over already loaded inputs and logs the outcome.
// It is shared by the CLI pipeline and the HTTP API.
func Curate(c *highlights.Curator, segs []types.Segment, samples ports.Samples, log zerolog.Logger) (types.Manifest, error) {
	sig := highlights.Signals{
		Faces: signals.NewFaceTrack(samples.Faces),
		Audio: signals.NewEnergyTrack(samples.Audio),
	}
	res, err := c.Curate(segs, sig)
	if err != nil {
		return types.Manifest{}, fmt.Errorf("curate: %w", err)
	}

	opts := c.Options()
	m := types.Manifest{
		Threshold:  opts.Threshold,
		MaxMoments: opts.MaxMoments,
		Moments:    res.Moments,
	}
	for _, s := range res.Skipped {
		log.Warn().Int("index", s.Index).Str("field", s.Field).Msg(s.Reason)
		m.Skipped = append(m.Skipped, types.SkippedEntry{Index: s.Index, Field: s.Field, Reason: s.Reason})
	}

	if len(res.Moments) == 0 {
		log.Warn().
			Float64("threshold", opts.Threshold).
			Msg("no viral moments found; consider lowering --threshold")
		return m, nil
	}

	log.Info().
		Int("qualified", res.Qualified).
		Int("selected", len(res.Moments)).
		Msg("moments selected")
	for i, mo := range res.Moments {
		log.Info().
			Int("rank", i+1).
			Float64("score", mo.ViralScore).
			Str("range", formatClock(mo.Start)+" -> "+formatClock(mo.End)).
			Str("keywords", strings.Join(mo.DetectedKeywords, ", ")).
			Msg(mo.Hook)
	}
	return m, nil
}

// formatClock renders seconds as M:SS.
func formatClock(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
