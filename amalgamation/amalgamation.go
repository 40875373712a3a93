// Package amalgamation assembles the prologue and the expanded root sources
// into a single translation unit and writes it to the target file.
package amalgamation

import (
	"fmt"
	"strings"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgamate/config"
	"github.com/LegacyCodeHQ/amalgamate/inliner"
	"github.com/LegacyCodeHQ/amalgamate/vcs"
)

// SourceResolver resolves root sources and include directives.
type SourceResolver interface {
	inliner.Resolver
	ResolveSource(path config.RawPath) (config.AbsolutePath, bool)
}

// Result is the outcome of one amalgamation run.
type Result struct {
	Content string
	// Sources are the resolved root sources in configured order.
	Sources []config.AbsolutePath
	// Included lists every file read during the run, roots included, in the
	// order they were first reached.
	Included []config.AbsolutePath
}

// Generator runs amalgamations for one configuration.
type Generator struct {
	cfg          *config.Config
	resolver     SourceResolver
	engine       *inliner.Engine
	readPrologue vcs.ContentReader
	report       *Report
}

// Option configures a Generator.
type Option func(*Generator)

// WithPrologueReader overrides how the prologue file is read. The default
// reads it from the filesystem.
func WithPrologueReader(reader vcs.ContentReader) Option {
	return func(g *Generator) {
		g.readPrologue = reader
	}
}

// WithReport makes Generate print progress to report.
func WithReport(report *Report) Option {
	return func(g *Generator) {
		g.report = report
	}
}

// New returns a Generator that reads sources with readFile.
func New(cfg *config.Config, resolver SourceResolver, readFile vcs.ContentReader, opts ...Option) *Generator {
	g := &Generator{
		cfg:          cfg,
		resolver:     resolver,
		engine:       inliner.New(resolver, readFile, inliner.WithMaxDepth(cfg.MaxIncludeDepth)),
		readPrologue: vcs.FilesystemContentReader(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the amalgamation in memory. Every root source is resolved
// before anything is expanded, so a missing root fails the run up front.
func (g *Generator) Generate() (*Result, error) {
	sources := make([]config.AbsolutePath, 0, len(g.cfg.Sources))
	for _, src := range g.cfg.Sources {
		resolved, ok := g.resolver.ResolveSource(src)
		if !ok {
			return nil, &IOError{Path: string(src)}
		}
		sources = append(sources, resolved)
	}

	var b strings.Builder
	if g.cfg.Prologue != "" {
		prologue, err := g.readPrologue(g.cfg.Prologue)
		if err != nil {
			return nil, &inliner.FileReadError{Path: config.AbsolutePath(g.cfg.Prologue), Err: err}
		}
		b.Write(prologue)
	}

	g.report.start(g.cfg)

	reg := inliner.NewRegistry()
	for _, src := range sources {
		g.report.processing(src)
		if reg.Contains(src) {
			log.Warnf("%s was already inlined by an earlier source, expanding it again", src)
		}

		content, err := g.engine.Expand(reg, src)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", src, err)
		}
		b.WriteString(content)
	}

	result := &Result{
		Content:  b.String(),
		Sources:  sources,
		Included: reg.Paths(),
	}
	log.LogVf("Amalgamated %d sources from %d files", len(result.Sources), len(result.Included))
	return result, nil
}

// Run generates the amalgamation and writes it to the configured target.
// Nothing is written when generation fails.
func (g *Generator) Run() (*Result, error) {
	result, err := g.Generate()
	if err != nil {
		return nil, err
	}
	if err := WriteTarget(g.cfg.Target, result.Content); err != nil {
		return nil, err
	}
	g.report.done(g.cfg, result)
	return result, nil
}
