package search

import (
	"sort"
	"strings"

	internalErrors "github.com/sketchy-app/sketchy/internal/errors"
	"github.com/sketchy-app/sketchy/model"
)

// MinCoincidence is the fuzzy score at which a sketch is included without a literal match.
const MinCoincidence = 0.7

// ScoredSketch pairs a sketch with its best coincidence across the rule's fields.
type ScoredSketch struct {
	Sketch model.Sketch `json:"sketch"`
	Score  float64      `json:"score"`
}

// RankContext carries the scoring state of a single search request.
// Field values repeat across sketches (an author's login appears once per sketch),
// so scores are memoized per value. A context must not outlive its request.
type RankContext struct {
	query  string
	scores map[string]float64
}

// NewRankContext creates a scoring context for one query.
func NewRankContext(query string) *RankContext {
	return &RankContext{
		query:  query,
		scores: make(map[string]float64),
	}
}

// Query returns the query this context scores against.
func (rc *RankContext) Query() string {
	return rc.query
}

func (rc *RankContext) score(value string) float64 {
	if s, ok := rc.scores[value]; ok {
		return s
	}
	s := Coincidence(value, rc.query)
	rc.scores[value] = s
	return s
}

// Rank scores every sketch of the snapshot against the query and returns the
// matching ones ordered by score, highest first. A sketch matches when its best
// coincidence reaches MinCoincidence or when the query is a case-sensitive
// substring of one of its fields. Each sketch ID appears at most once (first
// occurrence wins) and equal scores keep snapshot order.
//
// The scan is a single pass over the snapshot with no index; the caller owns
// the snapshot and it is never mutated here.
func (rc *RankContext) Rank(sketches []model.Sketch, rule Rule) ([]ScoredSketch, error) {
	accessors, ok := ruleFields[rule]
	if !ok {
		return nil, internalErrors.NewUnknownRuleError(string(rule))
	}

	ranked := make([]ScoredSketch, 0)
	if rc.query == "" {
		return ranked, nil
	}

	seen := make(map[int64]struct{}, len(sketches))
	for i := range sketches {
		sketch := &sketches[i]
		if _, dup := seen[sketch.ID]; dup {
			continue
		}

		maxCoincidence := 0.0
		substringMatch := false
		for _, accessor := range accessors {
			value := accessor(sketch)
			if c := rc.score(value); c > maxCoincidence {
				maxCoincidence = c
			}
			if strings.Contains(value, rc.query) {
				substringMatch = true
			}
		}

		if maxCoincidence >= MinCoincidence || substringMatch {
			seen[sketch.ID] = struct{}{}
			ranked = append(ranked, ScoredSketch{Sketch: *sketch, Score: maxCoincidence})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, nil
}

// Rank is a convenience wrapper running a fresh RankContext.
func Rank(sketches []model.Sketch, rule Rule, query string) ([]ScoredSketch, error) {
	return NewRankContext(query).Rank(sketches, rule)
}
