// Package cli runs anagram searches from the command line and prints their results.
package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/anagram/pkg/dictionary"
	"github.com/bastiangx/anagram/pkg/letters"
	"github.com/charmbracelet/log"
)

// InputHandler reads phrases line by line and prints the anagrams of each.
// Every line is a separate search with its own seen set.
type InputHandler struct {
	dict         *dictionary.Dictionary
	query        Query
	in           io.Reader
	out          io.Writer
	requestCount int
}

// NewInputHandler creates an interactive handler. query holds the mode and
// output options applied to every phrase; its Phrase is ignored.
func NewInputHandler(dict *dictionary.Dictionary, query Query, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		dict:  dict,
		query: query,
		in:    in,
		out:   out,
	}
}

// Start begins the interface loop.
// It reads a line at a time and hands the trimmed phrase to handleInput.
// The loop ends at EOF or when ctx is cancelled.
func (h *InputHandler) Start(ctx context.Context) error {
	log.Print("Anagram CLI")
	log.Print("type a phrase and press Enter to see its anagrams (Ctrl+D to exit):")
	reader := bufio.NewReader(h.in)

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := reader.ReadString('\n')
		phrase := strings.TrimSpace(line)
		if phrase != "" {
			h.handleInput(ctx, phrase)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// handleInput runs one search and reports its timing.
func (h *InputHandler) handleInput(ctx context.Context, phrase string) {
	h.requestCount++

	q := h.query
	q.Phrase = phrase

	start := time.Now()
	summary, err := Run(ctx, h.dict, q, h.out)
	elapsed := time.Since(start)

	var charErr *letters.IllegalCharError
	switch {
	case errors.As(err, &charErr):
		log.Error(charErr.Error())
		return
	case err != nil:
		log.Warnf("Search for '%s' stopped: %v", phrase, err)
	}

	log.Debugf("Took [ %v ] for '%s'", elapsed, phrase)
	if summary.Lines == 0 {
		log.Warnf("No anagrams found for '%s'", phrase)
		return
	}
	log.Infof("Found %d anagrams (%d lines) for '%s'", summary.Full, summary.Lines, phrase)
}
