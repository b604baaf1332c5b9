// Package letters models the multiset of letters an anagram still has to place.
package letters

import (
	"fmt"
	"strings"
	"unicode"
)

// AlphabetLen is the number of letters tracked by a Budget.
const AlphabetLen = 26

// Budget holds the remaining count for each letter A-Z.
// It is a value type: every operation that changes counts returns a copy.
type Budget [AlphabetLen]int

// IllegalCharError reports a character in the input phrase that cannot be
// part of an anagram.
type IllegalCharError struct {
	Char rune
}

func (e *IllegalCharError) Error() string {
	return fmt.Sprintf("Illegal character in input: %c", e.Char)
}

// Normalize upper-cases a phrase and drops apostrophes and whitespace.
// Any other character outside A-Z is rejected.
func Normalize(phrase string) (string, error) {
	var b strings.Builder
	b.Grow(len(phrase))
	for _, r := range phrase {
		if r == '\'' || unicode.IsSpace(r) {
			continue
		}
		r = unicode.ToUpper(r)
		if r < 'A' || r > 'Z' {
			return "", &IllegalCharError{Char: r}
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// FromPhrase builds the starting budget for a phrase.
func FromPhrase(phrase string) (Budget, error) {
	var b Budget
	normalized, err := Normalize(phrase)
	if err != nil {
		return b, err
	}
	for i := 0; i < len(normalized); i++ {
		b[normalized[i]-'A']++
	}
	return b, nil
}

// Consume subtracts the letters of word from the budget.
// Apostrophes are skipped. ok is false if any letter is not available,
// in which case the returned budget must be discarded.
func (b Budget) Consume(word string) (Budget, bool) {
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c == '\'' {
			continue
		}
		if c < 'A' || c > 'Z' {
			return b, false
		}
		idx := c - 'A'
		if b[idx] < 0 {
			panic(fmt.Sprintf("letters: negative count for %c", c))
		}
		if b[idx] == 0 {
			return b, false
		}
		b[idx]--
	}
	return b, true
}

// CanConsume reports whether word fits in the budget.
func (b Budget) CanConsume(word string) bool {
	_, ok := b.Consume(word)
	return ok
}

// Total is the number of letters left.
func (b Budget) Total() int {
	total := 0
	for _, n := range b {
		total += n
	}
	return total
}

// Empty reports whether no letters are left.
func (b Budget) Empty() bool {
	return b.Total() == 0
}

// String renders non-zero counts, e.g. "A1 N1 P1".
func (b Budget) String() string {
	var parts []string
	for i, n := range b {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%c%d", 'A'+i, n))
		}
	}
	return strings.Join(parts, " ")
}

// Count returns the number of letters in word, apostrophes excluded.
func Count(word string) int {
	return len(word) - strings.Count(word, "'")
}

// CountAll sums Count over every word.
func CountAll(words []string) int {
	total := 0
	for _, w := range words {
		total += Count(w)
	}
	return total
}
