package ports

import (
	"context"

	"github.com/forPelevin/viralcut/internal/types"
)

// TranscriptSource yields the time-ordered segments of one video. Envelopes
// produced by transcribers are unwrapped before segments are returned.
type TranscriptSource interface {
	LoadSegments(ctx context.Context, ref string) ([]types.Segment, error)
}

// SignalSource yields sparse auxiliary samples keyed by timestamp in seconds.
// A missing signal is reported as an empty (or nil) map, not an error.
type SignalSource interface {
	LoadSignals(ctx context.Context, ref string) (Samples, error)
}

type Samples struct {
	Faces map[float64]int
	Audio map[float64]float64
}
