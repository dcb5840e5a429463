package matching

import (
	"sort"
	"strings"

	"github.com/bryanwahyu/auditronaut/internal/domain/evidence"
)

// DefaultThreshold is the minimum partial-ratio score for a match.
const DefaultThreshold = 85

// NoEvidence is handed to the answerer when no document matched.
const NoEvidence = "No relevant documents were provided."

// Scorer rates keyword against a document name, 0 to 100.
type Scorer func(keyword, name string) int

// Matcher selects evidence documents for a question by fuzzy-matching its
// keywords against document names. Document content is never inspected.
type Matcher struct {
	Threshold int
	Scorer    Scorer
}

// New returns a matcher using PartialRatio; threshold <= 0 means the default.
func New(threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{Threshold: threshold, Scorer: PartialRatio}
}

// Match returns the names of documents whose lowercased name scores at or
// above the threshold against any lowercased keyword. The result is sorted
// and never nil; an empty result means "no evidence".
func (m *Matcher) Match(keywords []string, documents map[string]string) []string {
	scorer := m.Scorer
	if scorer == nil {
		scorer = PartialRatio
	}
	threshold := m.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}

	matched := []string{}
	for name := range documents {
		ln := strings.ToLower(name)
		for _, k := range lowered {
			if scorer(k, ln) >= threshold {
				matched = append(matched, name)
				break
			}
		}
	}
	sort.Strings(matched)
	return matched
}

// Context concatenates the matched documents' text, each under a labelled
// separator, or returns NoEvidence when names is empty.
func Context(names []string, documents map[string]string) string {
	if len(names) == 0 {
		return NoEvidence
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, evidence.Label(n, documents[n]))
	}
	return strings.Join(parts, "\n\n")
}
