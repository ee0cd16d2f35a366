package usecase

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/salesai/backend/internal/domain"
	"github.com/sirupsen/logrus"
)

// Scoring weights
const (
	coverageWeight   = 0.60 // share of catalog pain points addressed
	similarityWeight = 0.40 // mean best similarity of those pain points
	containmentScore = 1.0  // one pain point text contains the other
	pairThreshold    = 0.35 // minimum similarity for a pair to count as a match
)

// MatchConfig holds configuration for the solution matcher
type MatchConfig struct {
	MinScore     float64
	MaxResults   int
	DebugLogging bool
}

// SolutionMatcher scores catalog solutions against customer pain points
// without calling the model. Text is compared as sets of character bigrams,
// which works for Chinese text that has no word separators.
type SolutionMatcher struct {
	minScore     float64
	maxResults   int
	debugLogging bool
	log          logrus.FieldLogger
}

// NewSolutionMatcher creates a new matcher with the given configuration
func NewSolutionMatcher(config MatchConfig, log logrus.FieldLogger) *SolutionMatcher {
	minScore := config.MinScore
	if minScore <= 0 {
		minScore = 20.0
	}

	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	return &SolutionMatcher{
		minScore:     minScore,
		maxResults:   maxResults,
		debugLogging: config.DebugLogging,
		log:          log,
	}
}

// Rank returns the solutions scoring at least the minimum, best first
func (m *SolutionMatcher) Rank(
	ctx context.Context,
	painPoints []string,
	solutions []domain.SystexSolution,
) ([]domain.SolutionMatch, error) {
	if len(painPoints) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	var matches []domain.SolutionMatch
	for _, solution := range solutions {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		score, matched := m.calculateMatchScore(painPoints, solution.PainPoints)

		if m.debugLogging {
			m.log.WithFields(logrus.Fields{
				"solution": solution.ID,
				"score":    score,
				"matched":  matched,
			}).Debug("scored solution")
		}

		if score >= m.minScore {
			matches = append(matches, domain.SolutionMatch{
				Solution:          solution,
				Score:             score,
				MatchedPainPoints: matched,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > m.maxResults {
		matches = matches[:m.maxResults]
	}

	return matches, nil
}

// calculateMatchScore compares customer pain points with one solution's pain points.
// Returns the score (0-100) and the customer pain points that matched, in input order.
func (m *SolutionMatcher) calculateMatchScore(customer, catalog []string) (float64, []string) {
	if len(customer) == 0 || len(catalog) == 0 {
		return 0, nil
	}

	customerGrams := make([]map[string]bool, len(customer))
	for i, c := range customer {
		customerGrams[i] = bigrams(c)
	}

	matchedCustomer := make([]bool, len(customer))
	covered := 0
	similaritySum := 0.0

	for _, cp := range catalog {
		cpGrams := bigrams(cp)
		best := 0.0
		for i, c := range customer {
			sim := similarity(c, cp, customerGrams[i], cpGrams)
			if sim >= pairThreshold {
				matchedCustomer[i] = true
			}
			if sim > best {
				best = sim
			}
		}
		if best >= pairThreshold {
			covered++
			similaritySum += best
		}
	}

	if covered == 0 {
		return 0, nil
	}

	coverage := float64(covered) / float64(len(catalog))
	meanSimilarity := similaritySum / float64(covered)
	score := (coverage*coverageWeight + meanSimilarity*similarityWeight) * 100
	if score > 100 {
		score = 100
	}

	var matched []string
	for i, ok := range matchedCustomer {
		if ok {
			matched = append(matched, customer[i])
		}
	}

	return score, matched
}

// similarity is 1 when one normalized text contains the other, otherwise the
// Jaccard index of the two bigram sets
func similarity(a, b string, aGrams, bGrams map[string]bool) float64 {
	na, nb := normalizeText(a), normalizeText(b)
	if na == "" || nb == "" {
		return 0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return containmentScore
	}

	inter := findIntersection(aGrams, bGrams)
	union := findUnion(aGrams, bGrams)
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// normalizeText lowercases and keeps only letters and digits
func normalizeText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// bigrams returns the set of adjacent rune pairs of the normalized text.
// A single-rune text yields that rune alone.
func bigrams(s string) map[string]bool {
	runes := []rune(normalizeText(s))
	set := make(map[string]bool)
	if len(runes) == 1 {
		set[string(runes)] = true
		return set
	}
	for i := 0; i+1 < len(runes); i++ {
		set[string(runes[i:i+2])] = true
	}
	return set
}

// findIntersection returns the count of grams present in both sets
func findIntersection(a, b map[string]bool) int {
	n := 0
	for g := range a {
		if b[g] {
			n++
		}
	}
	return n
}

// findUnion returns the count of unique grams across both sets
func findUnion(a, b map[string]bool) int {
	n := len(a)
	for g := range b {
		if !a[g] {
			n++
		}
	}
	return n
}
