package cli

import (
	"context"
	"io"

	"github.com/bastiangx/anagram/pkg/dictionary"
	"github.com/bastiangx/anagram/pkg/letters"
	"github.com/bastiangx/anagram/pkg/search"
	"github.com/charmbracelet/log"
)

// Query describes one anagram search.
type Query struct {
	Phrase      string
	Mode        search.Mode
	ShowPartial bool
	Limit       int
	Color       bool
}

// Summary reports what a run printed.
type Summary struct {
	Lines int
	Full  int
	Stats search.Stats
}

// Run searches the anagrams of q.Phrase in dict and prints them to w.
// An illegal character in the phrase is returned as *letters.IllegalCharError
// before any search starts.
func Run(ctx context.Context, dict *dictionary.Dictionary, q Query, w io.Writer) (Summary, error) {
	budget, err := letters.FromPhrase(q.Phrase)
	if err != nil {
		return Summary{}, err
	}
	log.Debugf("Letter budget: [%s] (%d letters)", budget, budget.Total())

	candidates := dict.Candidates(budget)
	engine := search.New(search.Options{
		Mode:        q.Mode,
		ShowPartial: q.ShowPartial,
		StartTotal:  budget.Total(),
	})

	printer := NewPrinter(w, q.ShowPartial, q.Limit).WithColor(q.Color)
	searchErr := engine.Search(ctx, budget, candidates, printer.Print)
	if err := printer.Flush(); err != nil {
		return Summary{}, err
	}

	return Summary{
		Lines: printer.Count(),
		Full:  printer.FullCount(),
		Stats: engine.Stats(),
	}, searchErr
}
