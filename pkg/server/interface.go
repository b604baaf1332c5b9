/*
Package server implements msgpack IPC for anagram searches.

Clients write msgpack maps to stdin and read one msgpack map per request
from stdout. Requests are processed synchronously, one search at a time.

An anagram request carries the phrase and optional flags:

	{"id": "req_001", "p": "dormitory", "r": false, "s": false, "l": 20}

The server answers with the anagrams found, in discovery order:

	{"id": "req_001", "a": [{"w": "DIRTY ROOM", "f": true}], "c": 1, "n": 1, "t": 5321}

Requests with an "action" field manage the server instead:

	{"id": "dict_001", "action": "get_info"}

Errors are reported per request and never stop the server:

	{"id": "req_002", "e": "Illegal character in input: 1", "c": 400}

A search that hits the configured timeout or result limit returns the
anagrams found so far with "x" set.
*/
package server

// AnagramRequest asks for the anagrams of a phrase.
type AnagramRequest struct {
	ID           string `msgpack:"id"`
	Phrase       string `msgpack:"p"`
	Permutations bool   `msgpack:"r,omitempty"`
	ShowPartial  bool   `msgpack:"s,omitempty"`
	Limit        int    `msgpack:"l,omitempty"`
}

// Anagram is one result line.
type Anagram struct {
	Words string `msgpack:"w"`
	Full  bool   `msgpack:"f"`
}

// AnagramResponse lists the anagrams of a phrase.
type AnagramResponse struct {
	ID        string    `msgpack:"id"`
	Anagrams  []Anagram `msgpack:"a"`
	Count     int       `msgpack:"c"`
	FullCount int       `msgpack:"n"`
	TimeTaken int64     `msgpack:"t"` // microseconds
	Truncated bool      `msgpack:"x,omitempty"`
}

// DictionaryRequest - dictionary management request
type DictionaryRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"` // "get_info"
}

// DictionaryResponse - dictionary operation response
type DictionaryResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	Error        string `msgpack:"error,omitempty"`
	Path         string `msgpack:"path,omitempty"`
	Words        int    `msgpack:"words"`
	NoApostrophe bool   `msgpack:"no_apostrophe"`
	SmallWords   bool   `msgpack:"small_words"`
}

// AnagramError holds basic error information for a failed request
type AnagramError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// envelope is decoded first to route a request.
type envelope struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
}
