package types

// Transcript is the envelope some transcribers emit around the segment list.
// The curation core only ever sees Segments.
type Transcript struct {
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

func (s Segment) Duration() float64 { return s.End - s.Start }

// Moment is a scored clip window nominated for rendering.
type Moment struct {
	Start            float64   `json:"start"`
	End              float64   `json:"end"`
	ViralScore       float64   `json:"viral_score"`
	Hook             string    `json:"hook"`
	Context          string    `json:"context"`
	DetectedKeywords []string  `json:"detected_keywords"`
	HasFaces         bool      `json:"has_faces"`
	FaceCount        int       `json:"face_count"`
	AudioEnergy      float64   `json:"audio_energy"`
	Breakdown        Breakdown `json:"breakdown"`

	// SegmentIndex is the position of the source segment in the input.
	SegmentIndex int `json:"segment_index"`
}

// Breakdown holds the individual sub-scores that sum to ViralScore.
type Breakdown struct {
	Keywords    float64 `json:"keywords"`
	Faces       float64 `json:"faces"`
	Duration    float64 `json:"duration"`
	Confidence  float64 `json:"confidence"`
	Length      float64 `json:"length"`
	Punctuation float64 `json:"punctuation"`
}

func (b Breakdown) Total() float64 {
	return b.Keywords + b.Faces + b.Duration + b.Confidence + b.Length + b.Punctuation
}

type Manifest struct {
	RunID      string         `json:"run_id"`
	Transcript string         `json:"transcript"`
	Threshold  float64        `json:"threshold"`
	MaxMoments int            `json:"max_moments"`
	Moments    []Moment       `json:"moments"`
	Skipped    []SkippedEntry `json:"skipped,omitempty"`
}

type SkippedEntry struct {
	Index  int    `json:"index"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
