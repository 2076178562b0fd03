package highlights

import (
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/forPelevin/viralcut/internal/domain/signals"
	"github.com/forPelevin/viralcut/internal/types"
)

const (
	DefaultThreshold  = 70.0
	DefaultMaxMoments = 5
)

type Options struct {
	Threshold  float64
	MaxMoments int

	// SuppressOverlap drops a moment whose window, widened by MinGap seconds
	// on both sides, intersects a higher-ranked moment. Off by default, in
	// which case overlapping moments may both be returned.
	SuppressOverlap bool
	MinGap          float64

	// Workers > 1 scores segments on a bounded goroutine pool.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Threshold:  DefaultThreshold,
		MaxMoments: DefaultMaxMoments,
		Workers:    1,
	}
}

// Signals bundles the optional auxiliary tracks for one video. The zero value
// means no face or audio data.
type Signals struct {
	Faces signals.FaceTrack
	Audio signals.EnergyTrack
}

type Result struct {
	// Moments is sorted by ViralScore descending; ties keep input order.
	Moments []types.Moment
	// Qualified counts valid segments that cleared the threshold, before
	// overlap suppression and truncation.
	Qualified int
	Skipped   []*InvalidSegmentError
}

type Curator struct {
	scorer Scorer
	opts   Options
}

func NewCurator(scorer Scorer, opts Options) *Curator {
	return &Curator{scorer: scorer, opts: opts}
}

func (c *Curator) Options() Options { return c.opts }

// Curate scores every valid segment and returns the top moments. An empty
// Moments slice is a normal outcome. The only error is a worker pool failure.
func (c *Curator) Curate(segs []types.Segment, sig Signals) (Result, error) {
	valid, skipped := ValidateSegments(segs)
	res := Result{Moments: []types.Moment{}, Skipped: skipped}
	if len(valid) == 0 || c.opts.MaxMoments <= 0 {
		return res, nil
	}

	scored, err := c.scoreAll(segs, valid, sig.Faces)
	if err != nil {
		return res, err
	}

	kept := make([]types.Moment, 0, len(scored))
	for k, idx := range valid {
		b := scored[k]
		score := clamp(b.Total(), 0, maxScore)
		if !(score >= c.opts.Threshold) {
			continue
		}
		kept = append(kept, c.buildMoment(idx, segs[idx], score, b, sig))
	}
	res.Qualified = len(kept)

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].ViralScore > kept[j].ViralScore
	})

	if c.opts.SuppressOverlap {
		kept = suppressOverlaps(kept, c.opts.MinGap, c.opts.MaxMoments)
	}
	if len(kept) > c.opts.MaxMoments {
		kept = kept[:c.opts.MaxMoments]
	}
	res.Moments = kept
	return res, nil
}

func (c *Curator) buildMoment(idx int, seg types.Segment, score float64, b types.Breakdown, sig Signals) types.Moment {
	faces := sig.Faces.Nearest(seg.Start)
	return types.Moment{
		Start:            seg.Start,
		End:              seg.End,
		ViralScore:       score,
		Hook:             BuildHook(seg.Text),
		Context:          seg.Text,
		DetectedKeywords: c.scorer.keywords.Match(seg.Text),
		HasFaces:         faces > 0,
		FaceCount:        faces,
		AudioEnergy:      sig.Audio.Nearest(seg.Start),
		Breakdown:        b,
		SegmentIndex:     idx,
	}
}

// scoreAll returns one breakdown per entry of valid, in the same order.
func (c *Curator) scoreAll(segs []types.Segment, valid []int, faces signals.FaceTrack) ([]types.Breakdown, error) {
	out := make([]types.Breakdown, len(valid))
	if c.opts.Workers <= 1 || len(valid) < 2 {
		for k, idx := range valid {
			out[k] = c.scorer.Breakdown(segs[idx], faces)
		}
		return out, nil
	}

	pool, err := ants.NewPool(c.opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("scoring pool: %w", err)
	}
	defer pool.Release()

	var (
		wg        sync.WaitGroup
		submitErr error
	)
	for k, idx := range valid {
		k, idx := k, idx
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			out[k] = c.scorer.Breakdown(segs[idx], faces)
		}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit segment %d: %w", idx, err)
			break
		}
	}
	wg.Wait()
	if submitErr != nil {
		return nil, submitErr
	}
	return out, nil
}

// suppressOverlaps walks moments in rank order and keeps those that do not
// come within minGap seconds of an already kept moment.
func suppressOverlaps(ranked []types.Moment, minGap float64, limit int) []types.Moment {
	out := make([]types.Moment, 0, min(len(ranked), limit))
	for _, m := range ranked {
		if len(out) >= limit {
			break
		}
		if !isDistinct(out, m.Start, m.End, minGap) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func isDistinct(existing []types.Moment, st, en, minGap float64) bool {
	for _, e := range existing {
		// A NaN gap matches neither branch and counts as overlapping.
		if !(st >= e.End+minGap || en <= e.Start-minGap) {
			return false
		}
	}
	return true
}
