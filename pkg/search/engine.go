/*
Package search enumerates anagrams of a letter budget using dictionary words.

The engine explores prefixes depth-first. At every frame it scans the
candidate list in order, keeps the words that fit the remaining letters,
emits the new prefixes that pass the deduplication gate and only then
recurses into each of them:

	engine := search.New(search.Options{StartTotal: 3})
	for r := range engine.All(ctx, budget, words) {
		fmt.Println(r.Line(false))
	}

# Modes

Combinations (the default) sorts every prefix and drops prefixes whose
sorted key was already seen, so each multiset of words is reported once.
Permutations keeps the order words were chosen in and reports every
ordering; it needs no key set but revisits the same multisets many times.

Words are never removed from the candidates once used: a word may appear
several times in one anagram when the letters allow it.
*/
package search

import (
	"context"
	"iter"
	"slices"
	"strings"

	"github.com/bastiangx/anagram/pkg/letters"
	"github.com/charmbracelet/log"
)

// Mode selects how word order is treated.
type Mode int

const (
	// Combinations reports each multiset of words once, words sorted.
	Combinations Mode = iota
	// Permutations reports every ordering of words separately.
	Permutations
)

func (m Mode) String() string {
	switch m {
	case Combinations:
		return "combinations"
	case Permutations:
		return "permutations"
	default:
		return "unknown"
	}
}

// Options controls a single search run.
type Options struct {
	Mode        Mode
	ShowPartial bool
	// StartTotal is the letter count of the original phrase. A prefix
	// using exactly this many letters is a full anagram.
	StartTotal int
}

// Stats counts the work done by the last run.
type Stats struct {
	Frames     int
	Pruned     int
	Duplicates int
	Emitted    int
	Full       int
	SeenKeys   int
}

// Engine runs the recursive search. An Engine is not safe for concurrent
// use; each run starts with a fresh seen set.
type Engine struct {
	opts  Options
	seen  *Seen
	stats Stats
}

type branch struct {
	budget letters.Budget
	prefix []string
}

// New creates an engine for the given options.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Options returns the options the engine was created with.
func (e *Engine) Options() Options {
	return e.opts
}

// Stats returns counters for the most recent run.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Search emits every result reachable from budget through yield, in
// depth-first discovery order. It stops early when yield returns false or
// ctx is cancelled, returning ctx.Err() in the latter case.
func (e *Engine) Search(ctx context.Context, budget letters.Budget, candidates []string, yield func(Result) bool) error {
	e.seen = NewSeen()
	e.stats = Stats{}

	e.find(ctx, budget, candidates, nil, yield)

	e.stats.SeenKeys = e.seen.Len()
	log.Debug("search done",
		"mode", e.opts.Mode,
		"frames", e.stats.Frames,
		"pruned", e.stats.Pruned,
		"duplicates", e.stats.Duplicates,
		"emitted", e.stats.Emitted,
		"seen", e.stats.SeenKeys)
	return ctx.Err()
}

// All returns the results of Search as a sequence.
func (e *Engine) All(ctx context.Context, budget letters.Budget, candidates []string) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		_ = e.Search(ctx, budget, candidates, yield)
	}
}

// Collect runs a search and returns all results.
func (e *Engine) Collect(ctx context.Context, budget letters.Budget, candidates []string) ([]Result, error) {
	var results []Result
	err := e.Search(ctx, budget, candidates, func(r Result) bool {
		results = append(results, r)
		return true
	})
	return results, err
}

// find explores one frame. It returns false when the search must stop.
func (e *Engine) find(ctx context.Context, budget letters.Budget, candidates []string, prefix []string, yield func(Result) bool) bool {
	if ctx.Err() != nil {
		return false
	}
	e.stats.Frames++

	if budget.Total() == 0 {
		return true
	}

	var (
		branches []branch
		// fitting keeps every word that fits this budget, in order. Words
		// that do not fit here cannot fit any smaller budget below.
		fitting = make([]string, 0, len(candidates))
	)

	for _, word := range candidates {
		remaining, ok := budget.Consume(word)
		if !ok {
			e.stats.Pruned++
			continue
		}
		fitting = append(fitting, word)

		newPrefix := make([]string, len(prefix)+1)
		copy(newPrefix, prefix)
		newPrefix[len(prefix)] = word
		if e.opts.Mode == Combinations {
			slices.Sort(newPrefix)
		}

		key := strings.Join(newPrefix, " ")
		if e.opts.Mode == Combinations && e.seen.Has(key) {
			e.stats.Duplicates++
			continue
		}

		full := letters.CountAll(newPrefix) == e.opts.StartTotal
		if e.opts.ShowPartial || full {
			e.stats.Emitted++
			if full {
				e.stats.Full++
			}
			if !yield(Result{Words: newPrefix, Full: full}) {
				return false
			}
		}

		branches = append(branches, branch{budget: remaining, prefix: newPrefix})
		if e.opts.Mode == Combinations {
			e.seen.Add(key)
		}
	}

	for _, b := range branches {
		if !e.find(ctx, b.budget, fitting, b.prefix, yield) {
			return false
		}
	}
	return true
}
