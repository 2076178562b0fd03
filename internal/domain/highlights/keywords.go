package highlights

import "strings"

// DefaultVocabulary is the Portuguese trigger-word list used when no
// vocabulary is configured. Order matters: detected keywords are reported in
// this order.
var DefaultVocabulary = []string{
	"segredo",
	"incrível",
	"chocante",
	"nunca",
	"sempre",
	"verdade",
	"urgente",
	"atenção",
	"cuidado",
	"surpreendente",
	"impressionante",
	"inacreditável",
	"dinheiro",
	"sucesso",
	"erro",
	"revelado",
	"descobri",
	"ninguém",
	"absurdo",
	"loucura",
}

const (
	keywordPoints = 6.0
	keywordCap    = 30.0
)

// KeywordScorer matches trigger words as plain substrings of the lowercased
// text. "erro" therefore also hits "erros" and "aterro"; inflected forms are
// caught at the price of occasional embedded false positives.
type KeywordScorer struct {
	vocab []string
}

// NewKeywordScorer lowercases and trims the vocabulary, dropping empty and
// repeated entries while keeping first-seen order.
func NewKeywordScorer(vocab []string) KeywordScorer {
	seen := make(map[string]struct{}, len(vocab))
	out := make([]string, 0, len(vocab))
	for _, w := range vocab {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return KeywordScorer{vocab: out}
}

func (k KeywordScorer) Vocabulary() []string {
	return append([]string(nil), k.vocab...)
}

// Match returns the distinct vocabulary entries found in text, in
// vocabulary order. It never returns nil.
func (k KeywordScorer) Match(text string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0, 4)
	if lower == "" {
		return out
	}
	for _, w := range k.vocab {
		if strings.Contains(lower, w) {
			out = append(out, w)
		}
	}
	return out
}

// Score returns min(matches*6, 30).
func (k KeywordScorer) Score(text string) float64 {
	return keywordScore(len(k.Match(text)))
}

func keywordScore(matches int) float64 {
	return clamp(float64(matches)*keywordPoints, 0, keywordCap)
}
