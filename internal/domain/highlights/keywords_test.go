package highlights

import (
	"reflect"
	"testing"
)

func TestKeywordScorer_Match(t *testing.T) {
	k := NewKeywordScorer([]string{"Segredo", " erro ", "", "segredo", "nunca"})
	if got, want := k.Vocabulary(), []string{"segredo", "erro", "nunca"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("vocabulary = %v, want %v", got, want)
	}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"vocabulary order", "nunca cometa esse ERRO, é segredo", []string{"segredo", "erro", "nunca"}},
		{"distinct only", "erro erro erro", []string{"erro"}},
		{"substring match", "os erros do aterro", []string{"erro"}},
		{"no match", "bom dia", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.Match(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Match(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestKeywordScorer_ScoreCap(t *testing.T) {
	k := NewKeywordScorer([]string{"a", "b", "c", "d", "e", "f", "g"})
	tests := map[string]float64{
		"":        0,
		"a":       6,
		"ab":      12,
		"abcde":   30,
		"abcdefg": 30,
	}
	for text, want := range tests {
		if got := k.Score(text); got != want {
			t.Fatalf("Score(%q) = %v, want %v", text, got, want)
		}
	}
}
