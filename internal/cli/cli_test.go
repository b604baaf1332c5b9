package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bastiangx/anagram/pkg/dictionary"
	"github.com/bastiangx/anagram/pkg/letters"
	"github.com/bastiangx/anagram/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func testDictionary(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	dict, _, err := dictionary.LoadText(strings.NewReader("a\nan\nnap\npan\nat\nto\nx\n"), dictionary.DefaultOptions())
	require.NoError(t, err)
	return dict
}

func TestRun(t *testing.T) {
	dict := testDictionary(t)

	testCases := []struct {
		query       Query
		expected    string
		description string
	}{
		{Query{Phrase: "nap"}, "NAP\nPAN\n", "Combinations"},
		{Query{Phrase: "NAP", ShowPartial: true}, "  A\n  AN\n* NAP\n* PAN\n", "Partial output"},
		{Query{Phrase: "at to", Mode: search.Permutations}, "AT TO\nTO AT\n", "Permutations over a multi word phrase"},
		{Query{Phrase: "nap", ShowPartial: true, Limit: 3}, "  A\n  AN\n* NAP\n", "Limit"},
		{Query{Phrase: "xyz"}, "", "No anagram"},
		{Query{Phrase: "n'ap"}, "NAP\nPAN\n", "Apostrophe in phrase"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var out bytes.Buffer
			summary, err := Run(context.Background(), dict, tc.query, &out)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out.String())
			assert.Equal(t, strings.Count(tc.expected, "\n"), summary.Lines)
		})
	}
}

func TestRunIllegalCharacter(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(context.Background(), testDictionary(t), Query{Phrase: "n4p"}, &out)

	var charErr *letters.IllegalCharError
	require.True(t, errors.As(err, &charErr))
	assert.Equal(t, '4', charErr.Char)
	assert.Empty(t, out.String())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := Run(ctx, testDictionary(t), Query{Phrase: "nap"}, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestPrinter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, true, 0)

	assert.True(t, p.Print(search.Result{Words: []string{"AT"}}))
	assert.True(t, p.Print(search.Result{Words: []string{"AT", "TO"}, Full: true}))
	require.NoError(t, p.Flush())

	assert.Equal(t, "  AT\n* AT TO\n", out.String())
	assert.Equal(t, 2, p.Count())
	assert.Equal(t, 1, p.FullCount())
}

func TestInputHandler(t *testing.T) {
	in := strings.NewReader("nap\n\n  at to  \nb4d\nnap")
	var out bytes.Buffer

	h := NewInputHandler(testDictionary(t), Query{}, in, &out)
	require.NoError(t, h.Start(context.Background()))

	assert.Equal(t, "NAP\nPAN\nAT TO\nNAP\nPAN\n", out.String())
	assert.Equal(t, 4, h.requestCount)
}
