/*
Package dictionary loads and filters the word lists anagrams are built from.

Words are normalized to upper case A-Z (apostrophes optionally kept),
deduplicated and stored in a Patricia trie. The search engine needs them as a
lexicographically sorted slice, which is what Words and Candidates return.

Plain text word lists (one word per line, e.g. /usr/share/dict/words) are
read with LoadText. A filtered dictionary can be compiled once into the
binary format with WriteBinary and loaded again with LoadBinary; LoadFile
picks the format from the file.
*/
package dictionary

import (
	"errors"
	"sort"

	"github.com/bastiangx/anagram/pkg/letters"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrEmptyDictionary is returned when no usable word was loaded.
var ErrEmptyDictionary = errors.New("dictionary has no usable words")

// Dictionary is a deduplicated set of normalized words.
type Dictionary struct {
	trie  *patricia.Trie
	count int
	opts  Options
}

// New creates an empty dictionary that filters added words with opts.
func New(opts Options) *Dictionary {
	return &Dictionary{
		trie: patricia.NewTrie(),
		opts: opts,
	}
}

// Options returns the filter options of the dictionary.
func (d *Dictionary) Options() Options {
	return d.opts
}

// Add normalizes raw and stores it. It reports whether a new word was added.
func (d *Dictionary) Add(raw string) bool {
	word, ok := Normalize(raw, d.opts)
	if !ok {
		return false
	}
	if d.trie.Insert(patricia.Prefix(word), struct{}{}) {
		d.count++
		return true
	}
	return false
}

// Contains reports whether the normalized form of raw is in the dictionary.
func (d *Dictionary) Contains(raw string) bool {
	word, ok := Normalize(raw, d.opts)
	if !ok {
		return false
	}
	return d.trie.Get(patricia.Prefix(word)) != nil
}

// Len is the number of distinct words.
func (d *Dictionary) Len() int {
	return d.count
}

// Words returns every word in lexicographic order.
func (d *Dictionary) Words() []string {
	words := make([]string, 0, d.count)
	err := d.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		words = append(words, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting dictionary trie: %v", err)
	}
	sort.Strings(words)
	return words
}

// Candidates returns, in lexicographic order, the words whose letters fit in
// budget. When a word does not fit, no longer word starting with it can fit
// either, so its whole subtree is skipped.
func (d *Dictionary) Candidates(budget letters.Budget) []string {
	var words []string
	skipped := 0
	err := d.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		word := string(p)
		if !budget.CanConsume(word) {
			skipped++
			return patricia.SkipSubtree
		}
		words = append(words, word)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting dictionary trie: %v", err)
	}
	sort.Strings(words)
	log.Debugf("Candidates: %d of %d words fit, %d subtrees skipped", len(words), d.count, skipped)
	return words
}
