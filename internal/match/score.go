// Package match ranks skills against a typed query and arranges them into
// the list the picker shows.
//
// Score is a tiered, case-insensitive text scorer. Filter applies it to a
// catalog with namespace-aware query rules, and BuildDisplayList groups an
// unfiltered catalog under namespace headers with recently used skills
// first.
package match

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Tier base scores. Every candidate in a tier outscores every candidate in
// the tiers below it.
const (
	ScoreExact       = 10000.0
	scorePrefix      = 5000.0
	scoreSubstring   = 1000.0
	scoreSubsequence = 100.0
)

const (
	prefixRatioBonus    = 1000.0
	substringRatioBonus = 500.0
	wordBoundaryBonus   = 500.0
	runBonus            = 20.0  // Per rune of the longest contiguous run
	coverageBonus       = 100.0 // Scaled by matched runes / text length
	subsequenceCeiling  = scoreSubstring - 1

	// minRunFraction is the share of the query (rounded up) that must match
	// contiguously for a subsequence hit to count.
	minRunFraction = 0.4
)

// Score rates how well query matches text; higher is better and 0 means no
// match. Matching ignores case.
//
// Tiers, highest first: exact match, prefix, substring (with a bonus when
// the match starts a word), and in-order subsequence. Subsequence matches
// are rejected when their longest contiguous run is too short, which stops
// short queries from matching almost everything through scattered letters.
func Score(query, text string) float64 {
	q := strings.ToLower(query)
	t := strings.ToLower(text)
	if q == t {
		return ScoreExact
	}
	if q == "" || t == "" {
		return 0
	}

	qr := []rune(q)
	tr := []rune(t)
	ratio := float64(len(qr)) / float64(len(tr))

	if strings.HasPrefix(t, q) {
		return scorePrefix + prefixRatioBonus*ratio
	}

	if idx := strings.Index(t, q); idx >= 0 {
		score := scoreSubstring + substringRatioBonus*ratio
		if idx == 0 || isSeparator(precedingRune(t, idx)) {
			score += wordBoundaryBonus
		}
		return score
	}

	return subsequenceScore(qr, tr)
}

// subsequenceScore scores q as an in-order, possibly gapped, subsequence of
// t using a greedy leftmost alignment.
func subsequenceScore(q, t []rune) float64 {
	matched, run, longest := 0, 0, 0
	prev := -2
	for i, r := range t {
		if matched == len(q) {
			break
		}
		if r != q[matched] {
			continue
		}
		if i == prev+1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = i
		matched++
	}

	if matched < len(q) {
		return 0
	}
	if len(q) <= 2 && longest < len(q) {
		return 0
	}
	if longest < int(math.Ceil(minRunFraction*float64(len(q)))) {
		return 0
	}

	score := scoreSubsequence +
		runBonus*float64(longest) +
		coverageBonus*float64(matched)/float64(len(t))
	return math.Min(score, subsequenceCeiling)
}

// isSeparator reports whether r separates words in a skill name or
// description.
func isSeparator(r rune) bool {
	return r == ' ' || r == '-'
}

// precedingRune returns the rune ending just before byte offset idx of s.
func precedingRune(s string, idx int) rune {
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return r
}
