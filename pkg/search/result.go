package search

import (
	"strings"

	"github.com/bastiangx/anagram/pkg/letters"
)

// FullMarker precedes complete anagrams when partial results are shown.
const FullMarker = "*"

// Result is one emitted prefix of dictionary words.
// Words is shared with the search; callers must not modify it.
type Result struct {
	Words []string
	Full  bool
}

// Key is the words joined by single spaces.
func (r Result) Key() string {
	return strings.Join(r.Words, " ")
}

// Letters is the number of letters used by the words, apostrophes excluded.
func (r Result) Letters() int {
	return letters.CountAll(r.Words)
}

// String returns the bare anagram key.
func (r Result) String() string {
	return r.Key()
}

// Line renders the result as an output line. With showPartial, full
// anagrams are marked "* " and partial ones indented by two spaces.
func (r Result) Line(showPartial bool) string {
	if !showPartial {
		return r.Key()
	}
	if r.Full {
		return FullMarker + " " + r.Key()
	}
	return "  " + r.Key()
}
