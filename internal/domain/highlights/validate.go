package highlights

import (
	"errors"
	"fmt"
	"math"

	"github.com/forPelevin/viralcut/internal/types"
)

var ErrInvalidSegment = errors.New("invalid segment")

// InvalidSegmentError names the offending segment and field so the upstream
// transcriber output can be fixed. Values are never clamped into range.
type InvalidSegmentError struct {
	Index  int
	Field  string
	Reason string
}

func (e *InvalidSegmentError) Error() string {
	return fmt.Sprintf("segment %d: %s: %s", e.Index, e.Field, e.Reason)
}

func (e *InvalidSegmentError) Unwrap() error { return ErrInvalidSegment }

// ValidateSegment reports why seg (at position idx) cannot be scored, or nil.
func ValidateSegment(idx int, seg types.Segment) error {
	switch {
	case !finite(seg.Start):
		return &InvalidSegmentError{Index: idx, Field: "start", Reason: fmt.Sprintf("not a finite number (%v)", seg.Start)}
	case !finite(seg.End):
		return &InvalidSegmentError{Index: idx, Field: "end", Reason: fmt.Sprintf("not a finite number (%v)", seg.End)}
	case seg.End <= seg.Start:
		return &InvalidSegmentError{Index: idx, Field: "end", Reason: fmt.Sprintf("end %.3f <= start %.3f", seg.End, seg.Start)}
	case math.IsNaN(seg.Confidence) || seg.Confidence < 0 || seg.Confidence > 1:
		return &InvalidSegmentError{Index: idx, Field: "confidence", Reason: fmt.Sprintf("%v outside [0,1]", seg.Confidence)}
	}
	return nil
}

// ValidateSegments returns the indices of scoreable segments and one error per
// rejected segment. A bad segment never hides the rest of the batch.
func ValidateSegments(segs []types.Segment) (valid []int, skipped []*InvalidSegmentError) {
	valid = make([]int, 0, len(segs))
	for i, s := range segs {
		err := ValidateSegment(i, s)
		if err == nil {
			valid = append(valid, i)
			continue
		}
		var ise *InvalidSegmentError
		if errors.As(err, &ise) {
			skipped = append(skipped, ise)
		}
	}
	return valid, skipped
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
