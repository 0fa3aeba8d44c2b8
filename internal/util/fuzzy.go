// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// FUZZY MATCHING
// =============================================================================

// FuzzyMatch performs subsequence matching between a query and a target.
// Returns a score (higher is better) and whether every query rune was found
// in order.
//
// Scoring:
//   - consecutive matches +5
//   - match at the start of the target +10
//   - match at a word boundary (space, slash, dash, paren, camelCase) +7
//   - exact case +2
//   - longer targets lose len/4
//
// "km" matches "Kilometers" and "Square Kilometers", the former scoring higher.
func FuzzyMatch(query, target string) (score int, matched bool) {
	if query == "" {
		return 0, true
	}

	queryRunes := []rune(strings.ToLower(query))
	targetRunes := []rune(strings.ToLower(target))
	if len(queryRunes) > len(targetRunes) {
		return 0, false
	}

	targetOrig := []rune(target)
	queryOrig := []rune(query)

	queryPos := 0
	lastMatch := -1
	for targetPos := 0; targetPos < len(targetRunes) && queryPos < len(queryRunes); targetPos++ {
		if targetRunes[targetPos] != queryRunes[queryPos] {
			continue
		}
		s := 1
		if lastMatch == targetPos-1 {
			s += 5
		}
		if targetPos == 0 {
			s += 10
		}
		if isWordBoundary(targetOrig, targetPos) {
			s += 7
		}
		if targetPos < len(targetOrig) && queryPos < len(queryOrig) && targetOrig[targetPos] == queryOrig[queryPos] {
			s += 2
		}
		score += s
		lastMatch = targetPos
		queryPos++
	}

	matched = queryPos == len(queryRunes)
	if matched {
		score -= len(targetRunes) / 4
	}
	return score, matched
}

func isWordBoundary(runes []rune, pos int) bool {
	if pos == 0 {
		return true
	}
	if pos >= len(runes) {
		return false
	}
	switch runes[pos-1] {
	case ' ', '/', '-', '_', '(':
		return true
	}
	return unicode.IsLower(runes[pos-1]) && unicode.IsUpper(runes[pos])
}

// ScoredMatch is a fuzzy match result.
type ScoredMatch struct {
	Target string
	Score  int
	Index  int // position of Target in the input slice
}

// FuzzyFilter filters targets with FuzzyMatch and returns matches sorted by
// score, highest first. Ties keep input order.
func FuzzyFilter(query string, targets []string) []ScoredMatch {
	var matches []ScoredMatch
	for i, target := range targets {
		if score, ok := FuzzyMatch(query, target); ok {
			matches = append(matches, ScoredMatch{Target: target, Score: score, Index: i})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// HighlightPositions returns the rune positions in target matched by query.
func HighlightPositions(query, target string) []int {
	if query == "" {
		return nil
	}
	queryRunes := []rune(strings.ToLower(query))
	targetRunes := []rune(strings.ToLower(target))

	var positions []int
	queryPos := 0
	for targetPos := 0; targetPos < len(targetRunes) && queryPos < len(queryRunes); targetPos++ {
		if targetRunes[targetPos] == queryRunes[queryPos] {
			positions = append(positions, targetPos)
			queryPos++
		}
	}
	return positions
}

// EditDistance returns the Levenshtein distance between a and b, compared
// case-insensitively rune by rune.
func EditDistance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
