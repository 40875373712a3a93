// Package inliner expands local #include directives of C and C++ files into
// the text of the files they name.
package inliner

import (
	"strings"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgamate/config"
	"github.com/LegacyCodeHQ/amalgamate/preproc"
	"github.com/LegacyCodeHQ/amalgamate/vcs"
)

// Resolver maps the path written in an #include directive to a file.
type Resolver interface {
	ResolveInclude(path config.RawPath) (config.AbsolutePath, bool)
}

// Engine inlines local includes recursively. It holds no per-run state; the
// files already inlined live in the Registry passed to Expand.
type Engine struct {
	resolver Resolver
	readFile vcs.ContentReader
	maxDepth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth limits how deeply includes may nest. Values below one keep
// config.DefaultMaxIncludeDepth.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// New returns an Engine that resolves includes with resolver and reads files
// with readFile.
func New(resolver Resolver, readFile vcs.ContentReader, opts ...Option) *Engine {
	e := &Engine{
		resolver: resolver,
		readFile: readFile,
		maxDepth: config.DefaultMaxIncludeDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand returns the content of path with every resolvable #include replaced
// by a comment echoing the directive, followed by the expanded content of the
// included file the first time that file is reached in reg. Directives that do
// not resolve are left as written.
func (e *Engine) Expand(reg *Registry, path config.AbsolutePath) (string, error) {
	return e.expand(reg, path, []config.AbsolutePath{path})
}

func (e *Engine) expand(reg *Registry, path config.AbsolutePath, chain []config.AbsolutePath) (string, error) {
	content, err := e.readFile(path.String())
	if err != nil {
		return "", &FileReadError{Path: path, Err: err}
	}
	reg.Register(path)

	includes := preproc.ParseIncludes(content)
	if len(includes) == 0 {
		return string(content), nil
	}

	var b strings.Builder
	b.Grow(len(content))
	prevEnd := 0
	for _, inc := range includes {
		resolved, ok := e.resolver.ResolveInclude(config.RawPath(inc.Path))
		if !ok {
			log.LogVf("Keeping external %s in %s", inc.Text, path)
			continue
		}

		b.Write(content[prevEnd:inc.Start])
		b.WriteString("// ")
		b.WriteString(inc.Text)
		b.WriteString("\n")
		prevEnd = inc.End

		if reg.Contains(resolved) {
			if cycle := reg.Link(path, resolved); cycle != nil {
				log.Warnf("Include cycle: %s", joinPaths(cycle))
			}
			log.LogVf("Skipping %s in %s, already inlined", resolved, path)
			continue
		}

		next := append(chain[:len(chain):len(chain)], resolved)
		if len(chain) > e.maxDepth {
			return "", &DepthError{Limit: e.maxDepth, Chain: next}
		}

		reg.Register(resolved)
		reg.Link(path, resolved)
		log.LogVf("Inlining %s into %s", resolved, path)

		body, err := e.expand(reg, resolved, next)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
	}
	b.Write(content[prevEnd:])

	return b.String(), nil
}

func joinPaths(paths []config.AbsolutePath) string {
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " -> ")
}
