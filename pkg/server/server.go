package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/anagram/internal/logger"
	"github.com/bastiangx/anagram/pkg/config"
	"github.com/bastiangx/anagram/pkg/dictionary"
	"github.com/bastiangx/anagram/pkg/letters"
	"github.com/bastiangx/anagram/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server answers anagram requests over msgpack IPC
type Server struct {
	dict     *dictionary.Dictionary
	dictPath string
	config   *config.Config
	reader   *bufio.Reader
	writer   *bufio.Writer
	encoder  *msgpack.Encoder
	logger   *log.Logger
	requests int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(dict *dictionary.Dictionary, dictPath string, cfg *config.Config) *Server {
	return NewServerWithIO(dict, dictPath, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing
// responses to w.
func NewServerWithIO(dict *dictionary.Dictionary, dictPath string, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	writer := bufio.NewWriter(w)
	return &Server{
		dict:     dict,
		dictPath: dictPath,
		config:   cfg,
		reader:   bufio.NewReader(r),
		writer:   writer,
		encoder:  msgpack.NewEncoder(writer),
		logger:   logger.New("ipc"),
	}
}

// Start processes requests until EOF or until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting server")
	decoder := msgpack.NewDecoder(s.reader)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		raw, err := decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Client disconnected", "requests", s.requests)
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return err
		}
		s.requests++
		s.handleRequest(ctx, raw)
	}
}

// handleRequest routes one raw message by its action field
func (s *Server) handleRequest(ctx context.Context, raw msgpack.RawMessage) {
	var env envelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		s.logger.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "Invalid msgpack request", 400)
		return
	}

	if env.Action != "" {
		var request DictionaryRequest
		if err := msgpack.Unmarshal(raw, &request); err != nil {
			s.sendError(env.ID, "Invalid dictionary request", 400)
			return
		}
		s.handleDictionary(request)
		return
	}

	var request AnagramRequest
	if err := msgpack.Unmarshal(raw, &request); err != nil {
		s.sendError(env.ID, "Invalid anagram request", 400)
		return
	}
	s.handleAnagram(ctx, request)
}

// handleAnagram validates the phrase, runs one search and sends the
// results. The search stops at the request limit, the configured maximum
// or the configured timeout, whichever comes first.
func (s *Server) handleAnagram(ctx context.Context, request AnagramRequest) {
	if request.Phrase == "" {
		s.sendError(request.ID, "Missing 'p' parameter", 400)
		return
	}

	budget, err := letters.FromPhrase(request.Phrase)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		return
	}
	total := budget.Total()
	if total == 0 {
		s.sendError(request.ID, "Phrase has no letters", 400)
		return
	}
	if maxLen := s.config.Server.MaxPhraseLen; maxLen > 0 && total > maxLen {
		s.sendError(request.ID, fmt.Sprintf("Phrase exceeds maximum length of %d letters", maxLen), 400)
		return
	}

	limit := request.Limit
	if maxLimit := s.config.Server.MaxLimit; maxLimit > 0 && (limit < 1 || limit > maxLimit) {
		limit = maxLimit
	}

	if timeout := s.config.Server.TimeoutMs; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Millisecond)
		defer cancel()
	}

	mode := search.Combinations
	if request.Permutations {
		mode = search.Permutations
	}
	engine := search.New(search.Options{
		Mode:        mode,
		ShowPartial: request.ShowPartial,
		StartTotal:  total,
	})

	start := time.Now()
	response := AnagramResponse{ID: request.ID, Anagrams: []Anagram{}}
	err = engine.Search(ctx, budget, s.dict.Candidates(budget), func(r search.Result) bool {
		if limit > 0 && len(response.Anagrams) >= limit {
			response.Truncated = true
			return false
		}
		response.Anagrams = append(response.Anagrams, Anagram{Words: r.Key(), Full: r.Full})
		if r.Full {
			response.FullCount++
		}
		return true
	})
	if err != nil {
		s.logger.Warnf("Search for %q stopped: %v", request.Phrase, err)
		response.Truncated = true
	}
	response.Count = len(response.Anagrams)
	response.TimeTaken = time.Since(start).Microseconds()

	s.logger.Debug("Processed request",
		"id", request.ID,
		"phrase", request.Phrase,
		"mode", mode,
		"count", response.Count,
		"us", response.TimeTaken)
	s.sendResponse(response)
}

// handleDictionary answers dictionary management requests
func (s *Server) handleDictionary(request DictionaryRequest) {
	switch request.Action {
	case "get_info":
		opts := s.dict.Options()
		s.sendResponse(DictionaryResponse{
			ID:           request.ID,
			Status:       "ok",
			Path:         s.dictPath,
			Words:        s.dict.Len(),
			NoApostrophe: opts.NoApostrophe,
			SmallWords:   opts.SmallWords,
		})
	default:
		s.sendResponse(DictionaryResponse{
			ID:     request.ID,
			Status: "error",
			Error:  fmt.Sprintf("Unknown action: %s", request.Action),
		})
	}
}

// sendResponse encodes one response and flushes it to the client
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(AnagramError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
