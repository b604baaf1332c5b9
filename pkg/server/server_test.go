package server

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bastiangx/anagram/pkg/config"
	"github.com/bastiangx/anagram/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func testDictionary(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	dict, _, err := dictionary.LoadText(strings.NewReader("a\nan\nnap\npan\nat\nto\n"), dictionary.DefaultOptions())
	require.NoError(t, err)
	return dict
}

// serve encodes requests, runs the server until EOF and returns a decoder
// positioned at the first response.
func serve(t *testing.T, cfg *config.Config, requests ...any) *msgpack.Decoder {
	t.Helper()
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}

	var out bytes.Buffer
	srv := NewServerWithIO(testDictionary(t), "words.txt", cfg, &in, &out)
	require.NoError(t, srv.Start(context.Background()))
	return msgpack.NewDecoder(&out)
}

func TestAnagramRequest(t *testing.T) {
	dec := serve(t, nil,
		AnagramRequest{ID: "req_001", Phrase: "nap"},
		AnagramRequest{ID: "req_002", Phrase: "atto", Permutations: true},
		AnagramRequest{ID: "req_003", Phrase: "nap", ShowPartial: true},
	)

	var first AnagramResponse
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "req_001", first.ID)
	assert.Equal(t, []Anagram{{Words: "NAP", Full: true}, {Words: "PAN", Full: true}}, first.Anagrams)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, 2, first.FullCount)
	assert.False(t, first.Truncated)

	var second AnagramResponse
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, []Anagram{{Words: "AT TO", Full: true}, {Words: "TO AT", Full: true}}, second.Anagrams)

	var third AnagramResponse
	require.NoError(t, dec.Decode(&third))
	assert.Equal(t, 4, third.Count)
	assert.Equal(t, 2, third.FullCount)
	assert.Equal(t, Anagram{Words: "A", Full: false}, third.Anagrams[0])
}

func TestAnagramRequestLimit(t *testing.T) {
	dec := serve(t, nil, AnagramRequest{ID: "lim", Phrase: "nap", ShowPartial: true, Limit: 2})

	var resp AnagramResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, 2, resp.Count)
	assert.True(t, resp.Truncated)
}

func TestAnagramRequestErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxPhraseLen = 5

	dec := serve(t, cfg,
		AnagramRequest{ID: "e1", Phrase: ""},
		AnagramRequest{ID: "e2", Phrase: "nap1"},
		AnagramRequest{ID: "e3", Phrase: "abcdefg"},
		AnagramRequest{ID: "e4", Phrase: "'''"},
		"not a map",
	)

	expected := []struct {
		id      string
		message string
	}{
		{"e1", "Missing 'p' parameter"},
		{"e2", "Illegal character in input: 1"},
		{"e3", "Phrase exceeds maximum length of 5 letters"},
		{"e4", "Phrase has no letters"},
		{"", "Invalid msgpack request"},
	}
	for _, exp := range expected {
		var resp AnagramError
		require.NoError(t, dec.Decode(&resp))
		assert.Equal(t, exp.id, resp.ID)
		assert.Equal(t, exp.message, resp.Error)
		assert.Equal(t, 400, resp.Code)
	}
}

func TestNoMatchIsNotAnError(t *testing.T) {
	dec := serve(t, nil, AnagramRequest{ID: "none", Phrase: "xyz"})

	var resp AnagramResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "none", resp.ID)
	assert.Empty(t, resp.Anagrams)
	assert.Zero(t, resp.Count)
}

func TestDictionaryRequest(t *testing.T) {
	dec := serve(t, nil,
		DictionaryRequest{ID: "dict_001", Action: "get_info"},
		DictionaryRequest{ID: "dict_002", Action: "set_size"},
	)

	var info DictionaryResponse
	require.NoError(t, dec.Decode(&info))
	assert.Equal(t, "ok", info.Status)
	assert.Equal(t, 6, info.Words)
	assert.Equal(t, "words.txt", info.Path)
	assert.True(t, info.SmallWords)

	var unknown DictionaryResponse
	require.NoError(t, dec.Decode(&unknown))
	assert.Equal(t, "error", unknown.Status)
	assert.Equal(t, "Unknown action: set_size", unknown.Error)
}

func TestStartStopsOnCancelledContext(t *testing.T) {
	var in, out bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&in).Encode(AnagramRequest{ID: "x", Phrase: "nap"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := NewServerWithIO(testDictionary(t), "", nil, &in, &out)
	require.NoError(t, srv.Start(ctx))
	assert.Zero(t, out.Len())
}
