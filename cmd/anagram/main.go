// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the anagram command.

anagram prints every combination of dictionary words that uses exactly the
letters of the given text:

	anagram dormitory
	anagram -p -d words.txt clint eastwood

# Usage

	anagram [-h] [-p] [-r] [-n] [-s] [-d DICTIONARY] TEXT [TEXT ...]

The words of TEXT are joined; apostrophes and case are ignored and any
other character outside A-Z is rejected.

# Modes

By default each multiset of words is printed once, words sorted. With -r
every ordering of the words is printed instead. This is much slower, but
needs no memory for remembering the combinations already printed.

With -p the partial anagrams found on the way are printed too, indented by
two spaces, and the full ones are preceded by "* ".

# Dictionary

The dictionary defaults to /usr/share/dict/words. Entries are upper-cased
and only kept when made of A-Z letters and apostrophes (-n drops those
with apostrophes). Words of one or two letters are restricted to a small
list of common words unless -s=false is given.

A filtered dictionary can be compiled once with -build words.bin and used
later with -d words.bin.

# Configuration

Defaults are read from config.toml in the user config dir (created on
first run) or from the file given with -config. Flags override it.

# Server Mode

With -server, requests are read as msgpack from stdin and answered on
stdout, see package server.

# Interactive Mode

With -i, phrases are read from stdin, one per line.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/anagram/internal/cli"
	"github.com/bastiangx/anagram/internal/utils"
	"github.com/bastiangx/anagram/pkg/config"
	"github.com/bastiangx/anagram/pkg/dictionary"
	"github.com/bastiangx/anagram/pkg/letters"
	"github.com/bastiangx/anagram/pkg/search"
	"github.com/bastiangx/anagram/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "anagram"
	usage   = "usage: %s [-h] [-p] [-r] [-n] [-s] [-d DICTIONARY] TEXT [TEXT ...]\n"
)

// options holds the parsed command line.
type options struct {
	showPartial  bool
	permutations bool
	noApostrophe bool
	smallWords   bool
	dictPath     string
	configPath   string
	buildPath    string
	limit        int
	debug        bool
	interactive  bool
	serverMode   bool
	showVersion  bool
	set          map[string]bool
}

// sigHandler cancels the returned context on the first interrupt and
// exits on the second one.
func sigHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		cancel()
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(130)
	}()
	return ctx
}

func parseFlags() *options {
	defaults := config.DefaultConfig()
	opts := &options{}

	flag.BoolVar(&opts.showPartial, "p", defaults.Search.ShowPartial, "Show partial anagrams. Full anagrams will be preceded by an '*'")
	flag.BoolVar(&opts.showPartial, "show-partial", defaults.Search.ShowPartial, "Same as -p")
	flag.BoolVar(&opts.permutations, "r", defaults.Search.Permutations, "Generate each permutation instead of each combination. Much slower, but uses much less memory")
	flag.BoolVar(&opts.permutations, "permutations", defaults.Search.Permutations, "Same as -r")
	flag.BoolVar(&opts.noApostrophe, "n", defaults.Dict.NoApostrophe, "Don't generate words with apostrophes")
	flag.BoolVar(&opts.noApostrophe, "no-apostrophe", defaults.Dict.NoApostrophe, "Same as -n")
	flag.BoolVar(&opts.smallWords, "s", defaults.Dict.SmallWords, "Restrict small (<= 2 letters) words to a predefined set")
	flag.BoolVar(&opts.smallWords, "small-words", defaults.Dict.SmallWords, "Same as -s")
	flag.StringVar(&opts.dictPath, "d", defaults.Dict.Path, "Dictionary file")
	flag.StringVar(&opts.dictPath, "dictionary", defaults.Dict.Path, "Same as -d")
	flag.StringVar(&opts.configPath, "config", "", "Config file (defaults to config.toml in the user config dir)")
	flag.StringVar(&opts.buildPath, "build", "", "Compile the filtered dictionary into this binary file and exit")
	flag.IntVar(&opts.limit, "limit", defaults.CLI.MaxResults, "Stop after this many lines (0 for no limit)")
	flag.BoolVar(&opts.debug, "debug", false, "Toggle debug logging")
	flag.BoolVar(&opts.interactive, "i", false, "Read phrases from stdin, one per line")
	flag.BoolVar(&opts.serverMode, "server", false, "Serve msgpack requests on stdin/stdout")
	flag.BoolVar(&opts.showVersion, "version", false, "Show current version")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, AppName)
		fmt.Fprintln(flag.CommandLine.Output(), "\nAnagram generator\n\noptions:")
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts
}

// isSet reports whether any of the given flag names was on the command line.
func (o *options) isSet(names ...string) bool {
	for _, name := range names {
		if o.set[name] {
			return true
		}
	}
	return false
}

// applyConfig fills every option not given on the command line from cfg.
func (o *options) applyConfig(cfg *config.Config) {
	if !o.isSet("p", "show-partial") {
		o.showPartial = cfg.Search.ShowPartial
	}
	if !o.isSet("r", "permutations") {
		o.permutations = cfg.Search.Permutations
	}
	if !o.isSet("n", "no-apostrophe") {
		o.noApostrophe = cfg.Dict.NoApostrophe
	}
	if !o.isSet("s", "small-words") {
		o.smallWords = cfg.Dict.SmallWords
	}
	if !o.isSet("d", "dictionary") && cfg.Dict.Path != "" {
		o.dictPath = cfg.Dict.Path
	}
	if !o.isSet("limit") {
		o.limit = cfg.CLI.MaxResults
	}
}

func (o *options) mode() search.Mode {
	if o.permutations {
		return search.Permutations
	}
	return search.Combinations
}

// main wires flags, config, dictionary loading and the selected mode.
// It does not implement logic for them and only manages the flow.
func main() {
	ctx := sigHandler()
	opts := parseFlags()

	if opts.showVersion {
		printVersion()
		os.Exit(0)
	}

	if opts.debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	phrase := strings.Join(flag.Args(), " ")
	needsPhrase := !opts.interactive && !opts.serverMode && opts.buildPath == ""
	if needsPhrase {
		if phrase == "" {
			flag.Usage()
			os.Exit(2)
		}
		// Reject bad input before paying for the dictionary load.
		if _, err := letters.Normalize(phrase); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	resolver, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
	}

	cfg, configPath, err := config.LoadConfigWithPriority(opts.configPath, resolver)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if configPath != "" {
		log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))
	}
	opts.applyConfig(cfg)

	dictPath := opts.dictPath
	if resolver != nil {
		dictPath = resolver.ResolveDictionary(dictPath)
	}
	cfg.Dict.NoApostrophe = opts.noApostrophe
	cfg.Dict.SmallWords = opts.smallWords
	dictOpts := cfg.DictionaryOptions()
	dict, _, err := dictionary.LoadFile(dictPath, dictOpts)
	if err != nil {
		if errors.Is(err, dictionary.ErrEmptyDictionary) {
			log.Warnf("Dictionary %s has no usable words", dictPath)
			dict = dictionary.New(dictOpts)
		} else {
			log.Fatalf("Error opening dictionary file %s: %v", dictPath, err)
		}
	}

	switch {
	case opts.buildPath != "":
		if err := dictionary.WriteBinaryFile(opts.buildPath, dict); err != nil {
			log.Fatalf("Failed to build dictionary: %v", err)
		}
		log.Infof("Wrote %d words to %s", dict.Len(), opts.buildPath)

	case opts.serverMode:
		srv := server.NewServer(dict, dictPath, cfg)
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("Server error: %v", err)
		}

	case opts.interactive:
		handler := cli.NewInputHandler(dict, cli.Query{
			Mode:        opts.mode(),
			ShowPartial: opts.showPartial,
			Limit:       opts.limit,
			Color:       cfg.CLI.Color,
		}, os.Stdin, os.Stdout)
		if err := handler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}

	default:
		summary, err := cli.Run(ctx, dict, cli.Query{
			Phrase:      phrase,
			Mode:        opts.mode(),
			ShowPartial: opts.showPartial,
			Limit:       opts.limit,
		}, os.Stdout)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		log.Debug("Search finished",
			"lines", summary.Lines,
			"full", summary.Full,
			"frames", summary.Stats.Frames,
			"seen", summary.Stats.SeenKeys)
	}
}

// printVersion shows the version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ anagram ] Finds every phrase hidden in your letters")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}
