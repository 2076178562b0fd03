package highlights

import (
	"math"
	"testing"

	"github.com/forPelevin/viralcut/internal/domain/signals"
	"github.com/forPelevin/viralcut/internal/types"
)

func defaultScorer() Scorer { return NewScorer(NewKeywordScorer(DefaultVocabulary)) }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScore_SecretIncredible(t *testing.T) {
	seg := types.Segment{Start: 0, End: 5, Text: "Isso é um SEGREDO incrível!", Confidence: 0.9}
	s := defaultScorer()

	b := s.Breakdown(seg, signals.FaceTrack{})
	want := types.Breakdown{Keywords: 12, Faces: 0, Duration: 15, Confidence: 9, Length: 10, Punctuation: 10}
	if !approx(b.Keywords, want.Keywords) || b.Faces != 0 || b.Duration != want.Duration ||
		!approx(b.Confidence, want.Confidence) || b.Length != want.Length || b.Punctuation != want.Punctuation {
		t.Fatalf("breakdown = %+v, want %+v", b, want)
	}
	if got := s.Score(seg, signals.FaceTrack{}); !approx(got, 56) {
		t.Fatalf("score = %v, want 56", got)
	}
}

func TestScore_FourKeywordsStillBelowThreshold(t *testing.T) {
	seg := types.Segment{Start: 0, End: 5, Text: "Nunca vi um SEGREDO tão incrível e chocante!", Confidence: 0.9}
	got := defaultScorer().Score(seg, signals.FaceTrack{})
	if !approx(got, 68) {
		t.Fatalf("score = %v, want 68", got)
	}
	if got >= DefaultThreshold {
		t.Fatalf("expected score below default threshold")
	}
}

func TestScore_Table(t *testing.T) {
	faces := signals.NewFaceTrack(map[float64]int{0: 2, 100: 9})
	tests := []struct {
		name  string
		seg   types.Segment
		faces signals.FaceTrack
		want  float64
	}{
		{"empty text", types.Segment{Start: 0, End: 20, Text: "", Confidence: 0}, signals.FaceTrack{}, 0},
		{"medium duration", types.Segment{Start: 0, End: 10, Text: "ok", Confidence: 1}, signals.FaceTrack{}, 20},
		{"too short", types.Segment{Start: 0, End: 2.9, Text: "ok", Confidence: 0}, signals.FaceTrack{}, 0},
		{"bounds inclusive short", types.Segment{Start: 1, End: 4, Text: "ok", Confidence: 0}, signals.FaceTrack{}, 15},
		{"bounds inclusive medium", types.Segment{Start: 0, End: 15, Text: "ok", Confidence: 0}, signals.FaceTrack{}, 10},
		{"two faces", types.Segment{Start: 0, End: 20, Text: "ok", Confidence: 0}, faces, 10},
		{"face cap", types.Segment{Start: 99, End: 120, Text: "ok", Confidence: 0}, faces, 25},
		{"question mark", types.Segment{Start: 0, End: 20, Text: "why?", Confidence: 0}, signals.FaceTrack{}, 10},
		{"twenty one words", types.Segment{Start: 0, End: 20, Text: words(21), Confidence: 0}, signals.FaceTrack{}, 0},
		{"twenty words", types.Segment{Start: 0, End: 20, Text: words(20), Confidence: 0}, signals.FaceTrack{}, 10},
	}
	s := defaultScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Score(tt.seg, tt.faces); !approx(got, tt.want) {
				t.Fatalf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_MaximumIsHundred(t *testing.T) {
	seg := types.Segment{
		Start:      0,
		End:        5,
		Text:       "segredo incrível chocante nunca sempre verdade urgente!",
		Confidence: 1,
	}
	faces := signals.NewFaceTrack(map[float64]int{0: 12})
	b := defaultScorer().Breakdown(seg, faces)
	if b.Total() != 100 {
		t.Fatalf("expected every sub-score at its cap, got %+v (total %v)", b, b.Total())
	}
	if got := defaultScorer().Score(seg, faces); got != 100 {
		t.Fatalf("score = %v, want 100", got)
	}
}

func TestScore_Range(t *testing.T) {
	s := defaultScorer()
	faces := signals.NewFaceTrack(map[float64]int{0: 1, 3: 7, 9: 0})
	texts := []string{"", "!", words(3), words(12) + "?", "segredo " + words(8), "ERRO ERRO erro."}
	for _, text := range texts {
		for _, end := range []float64{0.5, 3, 7, 7.5, 15, 40} {
			for _, conf := range []float64{0, 0.33, 1} {
				got := s.Score(types.Segment{Start: 0, End: end, Text: text, Confidence: conf}, faces)
				if got < 0 || got > 100 {
					t.Fatalf("score out of range: %v (text=%q end=%v conf=%v)", got, text, end, conf)
				}
			}
		}
	}
}

func words(n int) string {
	out := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, 'w')
	}
	return string(out)
}
