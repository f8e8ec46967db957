// Copyright 2025 The Coretor Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the Friulian spell checking server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

Coretor provides spell checking and correction suggestions for Friulian using
a Patricia trie dictionary, phonetic hashing and a curated error table. It can
operate as a MessagePack IPC server for integration with text editors, or as a
CLI application for testing and debugging.

Suggestions merge four sources: curated corrections for known misspellings,
phonetically confusable dictionary words, elision expansions (l'aghe -> la aghe)
and hyphen compound splits. Results are ranked deterministically by curated
rank, edit distance, usage frequency and Friulian alphabetical order.

# Usage

Start the server with default settings:

	coretor

Use custom data directory and enable debug mode:

	coretor -data /path/to/feeds -d

Run in CLI mode for interactive testing:

	coretor -c -limit 10

The data directory holds the dictionary feeds: either a tab-separated word
feed (words.tsv) with the error table (errors.tsv) and elidable-word list
(elisions.tsv), or chunked binary files named dict_0001.bin, dict_0002.bin,
etc. Chunks are generated from word frequency data; text feeds are loaded
directly.

# Configuration

Runtime configuration is managed through a TOML file that supports engine
parameters, dictionary feed locations and server settings:

	[engine]
	max_suggestions = 10
	max_token_len = 64

	[dict]
	data_dir = "data"
	words_file = "words.tsv"

	[server]
	max_limit = 64

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests are
processed synchronously with timing information included in responses.

Send a check request:

	{"id": "req1", "cmd": "check", "t": "furlan"}

Send a suggest request and receive ranked corrections:

	{"id": "req2", "cmd": "suggest", "t": "cjasse", "l": 10}
	{"id": "req2", "s": [{"w": "cjase di", "src": "error-map"}], "c": 1, "ms": 1}

# Server Mode

The default mode starts a MessagePack IPC server that processes speller
requests from stdin and writes responses to stdout. This design enables
integration with text editors and other applications through process
communication.

	srv := server.NewServer(engine, maxLimit)
	err := srv.Start()

The server automatically handles request parsing, validation, and response
formatting. Invalid tokens answer with code 400 and queries issued before the
dictionary snapshot is installed with code 503.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging the
speller. It reads tokens from stdin, checks each one and displays ranked
corrections with source and frequency information.

	inputHandler := cli.NewInputHandler(engine, limit, noFilter)
	err := inputHandler.Start()

This mode is primarily intended for development and testing new features
before deploying to server mode.

# Command Line Flags

The following flags control application behavior:

	-data string
	    Directory containing dictionary feeds (default "data/")
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return (default from config)
	-no-filter
	    Disable input filtering for debugging
	-version
	    Show current version

The application automatically resolves data and config paths relative to the
executable location, supporting both development and production deployments.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"github.com/furlang/coretor/internal/cli"
	"github.com/furlang/coretor/internal/utils"
	"github.com/furlang/coretor/pkg/config"
	"github.com/furlang/coretor/pkg/dictionary"
	"github.com/furlang/coretor/pkg/server"
	"github.com/furlang/coretor/pkg/speller"
)

const (
	Version = "0.9.0-beta"
	AppName = "coretor"
	gh      = "https://github.com/furlang/coretor"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "data/", "Directory containing the dictionary feeds")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only) - passes raw tokens to the engine")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["version"] = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ Coretor ] Spell checking for Furlan!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	// Initialize path resolver for robust path handling
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	// Pathfinder for the feed dir
	resolvedDataDir, err := pathResolver.GetDataDir(*dataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir:(%v)", err)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	configPath, err := pathResolver.GetConfigPath("config.toml")
	if err != nil {
		log.Fatalf("Failed to determine config path: (%v)", err)
	}
	log.Debugf("Using config file: (%s)", configPath)

	appConfig, err := config.InitConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	snapshot, err := loadSnapshot(resolvedDataDir, appConfig)
	if err != nil {
		log.Debug("Path diagnostics", "report", pathResolver.DiagnosePathIssues(*dataDir))
		log.Fatalf("Failed to build dictionary snapshot: %v", err)
	}

	engine := speller.New(speller.Options{
		MaxSuggestions: appConfig.Engine.MaxSuggestions,
		MaxTokenLen:    appConfig.Engine.MaxTokenLen,
	})
	engine.Swap(snapshot)

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "limit", *limit, "noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(engine, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, appConfig.Server.MaxLimit)

	showStartupInfo(resolvedDataDir, snapshot)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadSnapshot reads the dictionary feeds from dataDir and builds the engine
// snapshot. Binary chunks take precedence for the word feed; the error table
// and elision list load from their text feeds when present.
func loadSnapshot(dataDir string, appConfig *config.Config) (*speller.Snapshot, error) {
	var words []dictionary.WordPair

	chunkFiles, err := dictionary.ChunkFiles(dataDir)
	if err != nil {
		return nil, err
	}
	if len(chunkFiles) > 0 {
		bar := progressbar.Default(int64(len(chunkFiles)), "loading dictionary")
		for _, file := range chunkFiles {
			chunk, err := dictionary.LoadChunkFile(file)
			if err != nil {
				return nil, err
			}
			words = append(words, chunk...)
			bar.Add(1)
		}
	} else {
		wordsPath := filepath.Join(dataDir, appConfig.Dict.WordsFile)
		words, err = dictionary.LoadWordFeed(wordsPath)
		if err != nil {
			return nil, err
		}
	}

	var errs []dictionary.ErrorEntry
	errorsPath := filepath.Join(dataDir, appConfig.Dict.ErrorsFile)
	if utils.FileExists(errorsPath) {
		errs, err = dictionary.LoadErrorFeed(errorsPath)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warnf("No error table at %s, curated corrections disabled", errorsPath)
	}

	var elidable []string
	elisionsPath := filepath.Join(dataDir, appConfig.Dict.ElisionsFile)
	if utils.FileExists(elisionsPath) {
		elidable, err = dictionary.LoadElisionFeed(elisionsPath)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warnf("No elision list at %s, contracted variants disabled", elisionsPath)
	}

	return speller.BuildSnapshot(words, errs, elidable)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string, snapshot *speller.Snapshot) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=========")
	println(" Coretor ")
	println("=========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("words: [ %d ]", snapshot.Store.Len())
	log.Info("init: OK")
	log.Infof("data dir: ( %s )", dataDir)
	log.Info("status: ready")
	println("=========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
