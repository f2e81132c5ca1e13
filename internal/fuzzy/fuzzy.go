// Package fuzzy ranks items by ordered-subsequence matching against a query.
package fuzzy

import (
	"slices"
	"unicode"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	matchBonus       = 100
	consecutiveBonus = 5
	prefixBonus      = 10
)

// Match is an item that satisfied the query. Positions index runes of the
// item's searchable text and are strictly increasing.
type Match[T any] struct {
	Item      T
	Score     int
	Positions []int
}

// Search returns the items whose text contains pattern as a case-insensitive
// subsequence, highest score first. Equal scores keep input order. An empty
// pattern returns every item unscored.
func Search[T any](items []T, pattern string, text func(T) string) []Match[T] {
	if pattern == "" {
		out := make([]Match[T], len(items))
		for i, item := range items {
			out[i] = Match[T]{Item: item}
		}
		return out
	}
	needle := foldRunes(pattern)
	out := make([]Match[T], 0, len(items))
	for _, item := range items {
		hay := foldRunes(text(item))
		positions, ok := locate(hay, needle)
		if !ok {
			continue
		}
		out = append(out, Match[T]{
			Item:      item,
			Score:     score(positions, len(hay), len(needle)),
			Positions: positions,
		})
	}
	slices.SortStableFunc(out, func(a, b Match[T]) int {
		return b.Score - a.Score
	})
	return out
}

// Contains reports whether pattern is a case-insensitive subsequence of text.
func Contains(pattern, text string) bool {
	return lfuzzy.MatchFold(pattern, text)
}

// locate takes the earliest occurrence of each pattern rune in turn.
func locate(hay, needle []rune) ([]int, bool) {
	positions := make([]int, 0, len(needle))
	p := 0
	for i, r := range hay {
		if p == len(needle) {
			break
		}
		if r == needle[p] {
			positions = append(positions, i)
			p++
		}
	}
	if p != len(needle) {
		return nil, false
	}
	return positions, true
}

func score(positions []int, textLen, patternLen int) int {
	s := matchBonus * len(positions)
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			s += consecutiveBonus
		}
	}
	if len(positions) > 0 && positions[0] == 0 {
		s += prefixBonus
	}
	return s - (textLen - patternLen)
}

func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}
