// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/pgnview-go/internal/config"
)

var (
	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	lineLength = flag.Int("w", 0, "Maximum line length (default from config, 80)")
	jsonOutput = flag.Bool("J", false, "Output in JSON format")
	noClocks   = flag.Bool("noclocks", false, "Strip clock annotations from comments")
	nodeID     = flag.Int("node", -1, "Print the position at node N instead of the game")

	// Input options
	libraryInput = flag.Bool("library", false, `Inputs are games documents ({"pgn_games": [...]})`)

	// Move resolution
	strict     = flag.Bool("strict", false, "Treat moves that stay ambiguous after king-safety checks as unresolved")
	unresolved = flag.String("unresolved", "", "Board policy for unresolved moves: corner, keep-board")

	// Service
	serve      = flag.Bool("serve", false, "Serve the HTTP replay API")
	configFile = flag.String("config", "", "YAML configuration file (environment overrides apply)")
	logLevel   = flag.String("loglevel", "", "Log level: debug, info, warn, error")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// givenFlags returns the names of the flags set on the command line.
func givenFlags(fs *flag.FlagSet) map[string]bool {
	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		given[f.Name] = true
	})
	return given
}

// applyFlags overrides configuration values with the flags that were given,
// so an explicit -strict=false still beats the config file.
func applyFlags(cfg *config.Config, given map[string]bool) {
	if given["strict"] {
		cfg.Parse.Disambiguation = "first-match"
		if *strict {
			cfg.Parse.Disambiguation = "strict"
		}
	}
	if given["unresolved"] {
		cfg.Parse.Unresolved = *unresolved
	}
	if given["w"] && *lineLength > 0 {
		cfg.Parse.LineLength = *lineLength
	}
	if given["loglevel"] {
		cfg.LogLevel = *logLevel
	}
}
