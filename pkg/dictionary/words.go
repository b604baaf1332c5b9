package dictionary

import (
	"strings"
)

// shortWords are the only words of one or two letters kept when short
// words are restricted. Most other short dictionary entries are
// abbreviations or initials.
var shortWords = map[string]struct{}{
	"A": {}, "I": {},
	"AH": {}, "AM": {}, "AN": {}, "AS": {}, "AT": {}, "BE": {}, "BY": {}, "DC": {},
	"DO": {}, "DR": {}, "EX": {}, "GO": {}, "HA": {}, "HE": {}, "HI": {}, "HO": {},
	"IF": {}, "II": {}, "IN": {}, "IS": {}, "IT": {}, "LA": {}, "LO": {}, "MA": {},
	"ME": {}, "MR": {}, "MS": {}, "MY": {}, "NO": {}, "OF": {}, "OH": {}, "OK": {},
	"ON": {}, "OR": {}, "OW": {}, "OX": {}, "PA": {}, "PI": {}, "SO": {}, "ST": {},
	"TO": {}, "UP": {}, "US": {}, "WE": {},
}

// IsShortWordAllowed reports whether word is in the short word allow-list.
func IsShortWordAllowed(word string) bool {
	_, ok := shortWords[word]
	return ok
}

// ShortWordCount is the size of the allow-list.
func ShortWordCount() int {
	return len(shortWords)
}

// Options controls which dictionary entries are kept.
type Options struct {
	// NoApostrophe drops words containing apostrophes.
	NoApostrophe bool
	// SmallWords restricts words of two letters or fewer to the allow-list.
	SmallWords bool
}

// DefaultOptions keeps apostrophes and restricts short words.
func DefaultOptions() Options {
	return Options{SmallWords: true}
}

// Normalize trims and upper-cases a raw dictionary line.
// ok is false when the entry must be skipped.
func Normalize(raw string, opts Options) (string, bool) {
	word := strings.ToUpper(strings.TrimSpace(raw))
	if word == "" {
		return "", false
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c == '\'' && !opts.NoApostrophe {
			continue
		}
		if c < 'A' || c > 'Z' {
			return "", false
		}
	}
	// An entry made only of apostrophes has no letters to place.
	if strings.Trim(word, "'") == "" {
		return "", false
	}
	if opts.SmallWords && len(word) <= 2 && !IsShortWordAllowed(word) {
		return "", false
	}
	return word, true
}
