package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
)

// Lexical match scores; only the best tier applies
const (
	scoreExactMatch     = 100
	scorePrefixMatch    = 60
	scoreSubstringMatch = 25
)

// Heuristic adjustments
const (
	dishTermPenalty    = 30
	maxDishPenalty     = 60
	wholeFoodTermBonus = 10
	outlierPenalty     = 80
)

// dishTerms mark composed or prepared foods
var dishTerms = []string{
	"sandwich", "salad", "fried", "battered", "breaded", "casserole",
	"pizza", "burger", "soup", "stew", "pie", "lasagna", "burrito",
	"nuggets", "wrap", "sauce",
}

// wholeFoodTerms mark plain, unprocessed foods
var wholeFoodTerms = []string{"raw", "fresh", "whole"}

var nonWordRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

type scoredResult struct {
	result domain.FoodResult
	score  int
}

// Rank orders results best first. Outliers always follow non-outliers; then
// higher score, then results with calories, then name, then provider and ID
// so that identical inputs always produce identical output. The input slice
// is not modified.
func Rank(query string, mode domain.Mode, results []domain.FoodResult) []domain.FoodResult {
	scored := make([]scoredResult, len(results))
	for i, r := range results {
		scored[i] = scoredResult{result: r, score: Score(query, mode, r)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.result.IsOutlier != b.result.IsOutlier {
			return !a.result.IsOutlier
		}
		if a.score != b.score {
			return a.score > b.score
		}
		aCal, bCal := a.result.Calories != nil, b.result.Calories != nil
		if aCal != bCal {
			return aCal
		}
		aName, bName := strings.ToLower(a.result.Name), strings.ToLower(b.result.Name)
		if aName != bName {
			return aName < bName
		}
		if a.result.Provider != b.result.Provider {
			return a.result.Provider < b.result.Provider
		}
		return a.result.ID < b.result.ID
	})

	ranked := make([]domain.FoodResult, len(scored))
	for i, s := range scored {
		ranked[i] = s.result
	}
	return ranked
}

// Score rates how well a result answers the query. Outliers must already be
// flagged; they lose outlierPenalty points.
func Score(query string, mode domain.Mode, r domain.FoodResult) int {
	q := strings.ToLower(strings.TrimSpace(query))
	name := strings.ToLower(strings.TrimSpace(r.Name))

	score := 0
	switch {
	case q == "":
	case name == q:
		score += scoreExactMatch
	case strings.HasPrefix(name, q):
		score += scorePrefixMatch
	case strings.Contains(name, q):
		score += scoreSubstringMatch
	}

	words := nameWords(name)

	if IsSimpleQuery(query) {
		penalty := 0
		for _, term := range dishTerms {
			if words[term] {
				penalty += dishTermPenalty
			}
		}
		if penalty > maxDishPenalty {
			penalty = maxDishPenalty
		}
		score -= penalty
	}

	if mode == domain.ModeCommon {
		for _, term := range wholeFoodTerms {
			if words[term] {
				score += wholeFoodTermBonus
			}
		}
	}

	if r.IsOutlier {
		score -= outlierPenalty
	}

	return score
}

// nameWords splits a lowercased name into its set of words
func nameWords(name string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range nonWordRegex.Split(name, -1) {
		if w != "" {
			words[w] = true
		}
	}
	return words
}
