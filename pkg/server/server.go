package server

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/furlang/coretor/internal/logger"
	"github.com/furlang/coretor/pkg/speller"
)

// Server handles the IPC for spell checking
type Server struct {
	engine   *speller.Engine
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	log      *log.Logger
	maxLimit int
}

// NewServer creates a new speller server using stdin/stdout for IPC
func NewServer(engine *speller.Engine, maxLimit int) *Server {
	return NewServerWithIO(engine, maxLimit, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server on explicit streams. Used by tests.
func NewServerWithIO(engine *speller.Engine, maxLimit int, r io.Reader, w io.Writer) *Server {
	if maxLimit < 1 {
		maxLimit = 64
	}
	return &Server{
		engine:   engine,
		decoder:  msgpack.NewDecoder(r),
		encoder:  msgpack.NewEncoder(w),
		log:      logger.New("ipc"),
		maxLimit: maxLimit,
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")

	// Signal that the server is ready
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			continue
		}
		s.handleRequest(request)
	}
}

// handleRequest processes an incoming request
func (s *Server) handleRequest(request Request) {
	switch request.Cmd {
	case "check":
		s.handleCheck(request)
	case "suggest":
		s.handleSuggest(request)
	case "health":
		s.sendResponse(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, "Unknown command: "+request.Cmd, 400)
	}
}

// handleCheck answers a dictionary lookup
func (s *Server) handleCheck(request Request) {
	start := time.Now()
	known, err := s.engine.CheckWord(request.Token)
	if err != nil {
		s.sendEngineError(request.ID, err)
		return
	}
	s.sendResponse(CheckResponse{
		ID:        request.ID,
		Known:     known,
		TimeTaken: time.Since(start).Milliseconds(),
	})
}

// handleSuggest runs the correction pipeline and sends the ranked list
func (s *Server) handleSuggest(request Request) {
	limit := request.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	start := time.Now()
	suggestions, err := s.engine.SuggestDetailed(request.Token, limit)
	if err != nil {
		s.sendEngineError(request.ID, err)
		return
	}
	elapsed := time.Since(start)

	items := make([]SuggestionItem, len(suggestions))
	for i, sug := range suggestions {
		items[i] = SuggestionItem{
			Word:   sug.Word,
			Source: sug.Source.String(),
			Rank:   sug.Rank,
		}
	}

	s.sendResponse(SuggestResponse{
		ID:          request.ID,
		Suggestions: items,
		Count:       len(items),
		TimeTaken:   elapsed.Milliseconds(),
	})
}

// sendEngineError maps engine errors to wire codes
func (s *Server) sendEngineError(id string, err error) {
	var invalid *speller.InvalidInputError
	var notReady *speller.EngineNotReadyError
	switch {
	case errors.As(err, &invalid):
		s.sendError(id, err.Error(), 400)
	case errors.As(err, &notReady):
		s.sendError(id, err.Error(), 503)
	default:
		s.log.Errorf("Engine error: %v", err)
		s.sendError(id, "Internal server error", 500)
	}
}

// sendResponse encodes the response to the output stream
func (s *Server) sendResponse(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
