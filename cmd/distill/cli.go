package main

import (
	"context"
	"io"

	"github.com/ham-zax/distill"
	"github.com/ham-zax/distill/pipeline"
	"github.com/ham-zax/distill/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Processor distill.Processor
	Cache     *sqlite.CacheService
	Diag      *pipeline.DiagnosticLog
	Verbose   bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log per-stage detail to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract main content from a captured HTML file"`
	Batch   BatchCmd   `cmd:"" help:"Extract a set of captured HTML files concurrently"`
	Purge   PurgeCmd   `cmd:"" help:"Delete expired entries from the result cache"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File      string   `arg:"" help:"HTML file to process, or '-' for stdin"`
	URL       string   `short:"u" help:"Source URL of the capture (enables site plugins)"`
	Title     string   `help:"Known page title, preferred over extracted titles"`
	NoCache   bool     `help:"Bypass the result cache"`
	RuleSets  []string `name:"rulesets" help:"Boilerplate rule sets to apply (safe, aggressive)"`
	MaxLength int      `help:"Truncate captures larger than this many bytes"`
	Stats     bool     `help:"Print run statistics to stderr"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Files       []string `arg:"" help:"HTML files to process"`
	OutDir      string   `short:"o" help:"Directory for extracted markdown (default: next to input)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
	NoCache     bool     `help:"Bypass the result cache"`
}

// PurgeCmd is the "purge" subcommand.
type PurgeCmd struct{}
