// Package signals looks up auxiliary per-timestamp measurements (face counts,
// audio energy) that were sampled sparsely and irregularly.
package signals

import (
	"math"
	"sort"
)

// Track is an immutable, timestamp-sorted view of a sparse sample map.
// The zero value is an empty track that always answers with the zero V.
type Track[V any] struct {
	times  []float64
	values []V
	def    V
}

// NewTrack copies samples into sorted order. NaN and infinite timestamps are
// dropped. def is returned by Nearest when the track is empty.
func NewTrack[V any](samples map[float64]V, def V) Track[V] {
	times := make([]float64, 0, len(samples))
	for ts := range samples {
		if math.IsNaN(ts) || math.IsInf(ts, 0) {
			continue
		}
		times = append(times, ts)
	}
	sort.Float64s(times)

	values := make([]V, len(times))
	for i, ts := range times {
		values[i] = samples[ts]
	}
	return Track[V]{times: times, values: values, def: def}
}

func (t Track[V]) Len() int { return len(t.times) }

// Nearest returns the sample whose timestamp is closest to ts.
// On equal distance the earlier timestamp wins.
func (t Track[V]) Nearest(ts float64) V {
	n := len(t.times)
	if n == 0 {
		return t.def
	}
	i := sort.SearchFloat64s(t.times, ts)
	switch {
	case i == 0:
		return t.values[0]
	case i == n:
		return t.values[n-1]
	}
	if ts-t.times[i-1] <= t.times[i]-ts {
		return t.values[i-1]
	}
	return t.values[i]
}

// FaceTrack holds face counts. An absent track means "no faces".
type FaceTrack = Track[int]

// EnergyTrack holds audio energy levels. An absent track means zero energy.
type EnergyTrack = Track[float64]

func NewFaceTrack(samples map[float64]int) FaceTrack { return NewTrack(samples, 0) }

func NewEnergyTrack(samples map[float64]float64) EnergyTrack { return NewTrack(samples, 0.0) }
