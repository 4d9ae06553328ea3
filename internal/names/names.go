// Package names normalises and compares holder names across travel
// documents. OCR output and airline booking systems disagree on accents,
// casing and name order, so comparisons run on a normalised form.
package names

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a name into its canonical comparison form: accents
// stripped, uppercased, punctuation removed, whitespace collapsed.
func Normalize(name string) string {
	// Transformer chains carry internal buffers, so build one per call to
	// keep Normalize safe for concurrent use.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToUpper(folded) {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Similarity returns a [0,1] score between two normalised names, where
// 1 is an exact match. Two empty names are not comparable and score 0.
func Similarity(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if a == "" && b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// Matcher compares names with tunable thresholds.
type Matcher struct {
	// SimilarityThreshold is the minimum Similarity score considered a match.
	SimilarityThreshold float64
	// CompletionOverlap is the minimum token-overlap ratio for a partial
	// name to be completed from the reference name.
	CompletionOverlap float64
}

// NewMatcher returns a Matcher with the default thresholds.
func NewMatcher() *Matcher {
	return &Matcher{SimilarityThreshold: 0.8, CompletionOverlap: 0.5}
}

// Match reports whether two names refer to the same holder, along with
// the similarity score that decided it.
func (m *Matcher) Match(a, b string) (bool, float64) {
	score := Similarity(a, b)
	return score >= m.SimilarityThreshold, score
}

// Complete checks whether partial is a truncated form of reference.
// When at least CompletionOverlap of partial's tokens appear in
// reference, the full reference name is returned as the completion.
func (m *Matcher) Complete(partial, reference string) (string, bool) {
	pTokens := strings.Fields(Normalize(partial))
	rTokens := strings.Fields(Normalize(reference))
	if len(pTokens) == 0 || len(rTokens) == 0 {
		return "", false
	}
	matched := 0
	for _, pt := range pTokens {
		for _, rt := range rTokens {
			if tokensMatch(pt, rt) {
				matched++
				break
			}
		}
	}
	if float64(matched)/float64(len(pTokens)) < m.CompletionOverlap {
		return "", false
	}
	return strings.Join(rTokens, " "), true
}

// tokensMatch tolerates truncation: "CHRIS" matches "CHRISTOPHE".
func tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) >= 3 && len(b) >= 3 {
		return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
	}
	return false
}
