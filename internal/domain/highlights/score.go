package highlights

import (
	"strings"

	"github.com/forPelevin/viralcut/internal/domain/signals"
	"github.com/forPelevin/viralcut/internal/types"
)

const (
	facePoints = 5.0
	faceCap    = 25.0

	shortClipMin   = 3.0
	shortClipMax   = 7.0
	mediumClipMax  = 15.0
	shortClipBonus = 15.0
	mediumBonus    = 10.0

	confidenceWeight = 10.0

	minWords    = 5
	maxWords    = 20
	lengthBonus = 10.0

	emphasisBonus = 10.0

	maxScore = 100.0
)

// Scorer rates a single segment on a 0..100 scale. The sub-score caps sum to
// exactly 100 (30+25+15+10+10+10), so the final clamp only guards rounding.
type Scorer struct {
	keywords KeywordScorer
}

func NewScorer(k KeywordScorer) Scorer { return Scorer{keywords: k} }

// Score returns the viral score of seg. The face count is looked up at the
// segment start. seg must have a positive duration (see ValidateSegment).
func (s Scorer) Score(seg types.Segment, faces signals.FaceTrack) float64 {
	return clamp(s.Breakdown(seg, faces).Total(), 0, maxScore)
}

func (s Scorer) Breakdown(seg types.Segment, faces signals.FaceTrack) types.Breakdown {
	return breakdown(seg, len(s.keywords.Match(seg.Text)), faces.Nearest(seg.Start))
}

func breakdown(seg types.Segment, keywordHits, faceCount int) types.Breakdown {
	return types.Breakdown{
		Keywords:    keywordScore(keywordHits),
		Faces:       clamp(float64(faceCount)*facePoints, 0, faceCap),
		Duration:    durationFit(seg.Duration()),
		Confidence:  clamp(seg.Confidence*confidenceWeight, 0, confidenceWeight),
		Length:      lengthFit(len(strings.Fields(seg.Text))),
		Punctuation: emphasis(seg.Text),
	}
}

func durationFit(d float64) float64 {
	switch {
	case d >= shortClipMin && d <= shortClipMax:
		return shortClipBonus
	case d > shortClipMax && d <= mediumClipMax:
		return mediumBonus
	default:
		return 0
	}
}

func lengthFit(words int) float64 {
	if words >= minWords && words <= maxWords {
		return lengthBonus
	}
	return 0
}

func emphasis(text string) float64 {
	if strings.ContainsAny(text, "!?") {
		return emphasisBonus
	}
	return 0
}

func clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
