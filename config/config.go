// Package config loads amalgamation settings and resolves logical include
// paths against the source root and the configured include directories.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultMaxIncludeDepth bounds nested includes when neither the config file
// nor the command line sets a limit.
const DefaultMaxIncludeDepth = 200

// File is the on-disk configuration. JSON and HCL files decode into the same
// shape; attributes it does not name are ignored.
type File struct {
	Target          string   `hcl:"target"`
	Sources         []string `hcl:"sources"`
	IncludePaths    []string `hcl:"include_paths,optional"`
	MaxIncludeDepth int      `hcl:"max_include_depth,optional"`
	Remain          hcl.Body `hcl:",remain"`
}

// Load reads the configuration file at path. Files ending in .hcl are parsed
// as HCL native syntax, anything else as JSON.
func Load(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	parser := hclparse.NewParser()
	var hclFile *hcl.File
	var diags hcl.Diagnostics
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		hclFile, diags = parser.ParseHCL(src, path)
	} else {
		hclFile, diags = parser.ParseJSON(src, path)
	}
	if diags.HasErrors() {
		return nil, &ConfigError{Path: path, Err: diags}
	}

	var file File
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
		return nil, &ConfigError{Path: path, Err: diags}
	}

	if strings.TrimSpace(file.Target) == "" {
		return nil, &ConfigError{Path: path, Err: errors.New(`"target" cannot be empty`)}
	}
	if len(file.Sources) == 0 {
		return nil, &ConfigError{Path: path, Err: errors.New(`"sources" must list at least one file`)}
	}
	if file.MaxIncludeDepth < 0 {
		return nil, &ConfigError{Path: path, Err: errors.New(`"max_include_depth" cannot be negative`)}
	}

	return &file, nil
}

// Options carries the settings that come from the command line rather than
// the configuration file.
type Options struct {
	SourceRoot string
	Prologue   string
	Verbose    bool
	// MaxIncludeDepth overrides the file's limit when positive.
	MaxIncludeDepth int
}

// Config is the validated state of one amalgamation run.
type Config struct {
	Target          string
	Sources         []RawPath
	IncludePaths    []string
	SourceRoot      AbsolutePath
	Prologue        string
	Verbose         bool
	MaxIncludeDepth int
}

// New merges a loaded file with command line options.
func New(file *File, opts Options) (*Config, error) {
	if file == nil {
		return nil, &ConfigError{Err: errors.New("no configuration loaded")}
	}
	if strings.TrimSpace(opts.SourceRoot) == "" {
		return nil, &ConfigError{Err: errors.New("source root is required")}
	}

	absRoot, err := filepath.Abs(opts.SourceRoot)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("failed to resolve source root: %w", err)}
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("source root %s: %w", absRoot, err)}
	}
	if !info.IsDir() {
		return nil, &ConfigError{Err: fmt.Errorf("source root %s is not a directory", absRoot)}
	}

	sources := make([]RawPath, 0, len(file.Sources))
	for _, s := range file.Sources {
		sources = append(sources, RawPath(s))
	}

	depth := DefaultMaxIncludeDepth
	if file.MaxIncludeDepth > 0 {
		depth = file.MaxIncludeDepth
	}
	if opts.MaxIncludeDepth > 0 {
		depth = opts.MaxIncludeDepth
	}

	return &Config{
		Target:          file.Target,
		Sources:         sources,
		IncludePaths:    append([]string(nil), file.IncludePaths...),
		SourceRoot:      AbsolutePath(filepath.Clean(resolveSymlinks(absRoot))),
		Prologue:        opts.Prologue,
		Verbose:         opts.Verbose,
		MaxIncludeDepth: depth,
	}, nil
}

func resolveSymlinks(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
