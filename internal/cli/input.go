// Package cli handles cmd line input for DBG and testing the speller interactively
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/furlang/coretor/internal/logger"
	"github.com/furlang/coretor/internal/utils"
	"github.com/furlang/coretor/pkg/speller"
)

// InputHandler processes user input from stdin, checking each token and
// printing ranked corrections. It accepts flags to control the suggestion
// limit and input filtering.
type InputHandler struct {
	engine       *speller.Engine
	out          *log.Logger
	suggestLimit int
	noFilter     bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine *speller.Engine, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		engine:       engine,
		out:          logger.Default(""),
		suggestLimit: limit,
		noFilter:     noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to the handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	h.out.Print("Coretor CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	h.out.Print("type a word and press Enter to check it (Ctrl+C to exit):")

	for {
		h.out.Print("> ")
		token, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		h.handleInput(token)
	}
}

// handleInput checks a single token and prints corrections when it is
// misspelled. Results are formatted and printed to the log.
func (h *InputHandler) handleInput(token string) {
	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidInput(token) {
			log.Warnf("Not a word token: '%s'", token)
			return
		}
	} else {
		log.Debug("Input filtering disabled")
	}

	start := time.Now()
	known, err := h.engine.CheckWord(token)
	if err != nil {
		log.Errorf("Check failed for '%s': %v", token, err)
		return
	}
	if known {
		h.out.Printf("'%s' is spelled correctly", token)
		return
	}

	suggestions, err := h.engine.SuggestDetailed(token, h.suggestLimit)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Suggest failed for '%s': %v", token, err)
		return
	}
	log.Debugf("Took [ %v ] for token '%s'", elapsed, token)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for: '%s'", token)
		return
	}

	h.out.Printf("Found %d suggestions for '%s':", len(suggestions), token)
	for i, s := range suggestions {
		fmtFreq := utils.FormatWithCommas(s.Frequency)
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		h.out.Printf("%2d. %-40s (%s, freq: %8s)", i+1, clWord, s.Source, fmtFreq)
	}
}
