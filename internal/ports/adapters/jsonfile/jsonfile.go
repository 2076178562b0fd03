// Package jsonfile reads transcripts and signal samples produced by the
// upstream transcription and analysis stages from local JSON files.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/forPelevin/viralcut/internal/ports"
	"github.com/forPelevin/viralcut/internal/types"
)

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

// LoadSegments accepts either a bare JSON array of segments or an object with
// a "segments" array. Segment text is trimmed; values are otherwise untouched
// so that validation can flag corrupt records.
func (a *Adapter) LoadSegments(ctx context.Context, path string) ([]types.Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	segs, err := DecodeSegments(b)
	if err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", path, err)
	}
	return segs, nil
}

func DecodeSegments(b []byte) ([]types.Segment, error) {
	t := bytes.TrimSpace(b)
	if len(t) == 0 {
		return nil, errors.New("empty document")
	}

	var segs []types.Segment
	switch t[0] {
	case '[':
		if err := json.Unmarshal(t, &segs); err != nil {
			return nil, describeJSONError(err)
		}
	case '{':
		var tr struct {
			Segments *[]types.Segment `json:"segments"`
		}
		if err := json.Unmarshal(t, &tr); err != nil {
			return nil, describeJSONError(err)
		}
		if tr.Segments == nil {
			return nil, errors.New(`object has no "segments" array`)
		}
		segs = *tr.Segments
	default:
		return nil, fmt.Errorf("expected JSON array or object, got %q", truncate(string(t), 20))
	}

	for i := range segs {
		segs[i].Text = strings.TrimSpace(segs[i].Text)
	}
	return segs, nil
}

// LoadSignals reads {"faces": {"<sec>": n}, "audio": {"<sec>": x}}. An empty
// path means no signals were produced for the video.
func (a *Adapter) LoadSignals(ctx context.Context, path string) (ports.Samples, error) {
	if err := ctx.Err(); err != nil {
		return ports.Samples{}, err
	}
	if path == "" {
		return ports.Samples{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ports.Samples{}, fmt.Errorf("read signals: %w", err)
	}
	s, err := DecodeSignals(b)
	if err != nil {
		return ports.Samples{}, fmt.Errorf("decode signals %s: %w", path, err)
	}
	return s, nil
}

func DecodeSignals(b []byte) (ports.Samples, error) {
	var raw struct {
		Faces map[string]int     `json:"faces"`
		Audio map[string]float64 `json:"audio"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return ports.Samples{}, describeJSONError(err)
	}
	return ParseSamples(raw.Faces, raw.Audio)
}

// ParseSamples converts string-keyed sample maps, as they appear in JSON
// objects, into timestamp-keyed samples.
func ParseSamples(faces map[string]int, audio map[string]float64) (ports.Samples, error) {
	out := ports.Samples{
		Faces: make(map[float64]int, len(faces)),
		Audio: make(map[float64]float64, len(audio)),
	}
	for k, v := range faces {
		ts, err := parseTimestamp("faces", k)
		if err != nil {
			return ports.Samples{}, err
		}
		if v < 0 {
			return ports.Samples{}, fmt.Errorf("faces[%q]: negative face count %d", k, v)
		}
		out.Faces[ts] = v
	}
	for k, v := range audio {
		ts, err := parseTimestamp("audio", k)
		if err != nil {
			return ports.Samples{}, err
		}
		out.Audio[ts] = v
	}
	return out, nil
}

func parseTimestamp(field, key string) (float64, error) {
	ts, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
	if err != nil || math.IsNaN(ts) || math.IsInf(ts, 0) {
		return 0, fmt.Errorf("%s[%q]: timestamp must be a finite number of seconds", field, key)
	}
	return ts, nil
}

func describeJSONError(err error) error {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return fmt.Errorf("field %q at offset %d: expected %s, got %s", te.Field, te.Offset, te.Type, te.Value)
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return fmt.Errorf("syntax error at offset %d: %w", se.Offset, err)
	}
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
