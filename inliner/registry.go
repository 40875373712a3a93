package inliner

import (
	"github.com/LegacyCodeHQ/amalgamate/config"
	graphlib "github.com/dominikbraun/graph"
)

// Registry is the set of files already inlined during one amalgamation run,
// together with the include edges seen between them. Create one per run.
type Registry struct {
	graph graphlib.Graph[string, string]
	order []config.AbsolutePath
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		graph: graphlib.New(graphlib.StringHash, graphlib.Directed()),
	}
}

// Register adds path and reports whether it was not present before.
func (r *Registry) Register(path config.AbsolutePath) bool {
	if err := r.graph.AddVertex(string(path)); err != nil {
		return false
	}
	r.order = append(r.order, path)
	return true
}

// Contains reports whether path has been registered.
func (r *Registry) Contains(path config.AbsolutePath) bool {
	_, err := r.graph.Vertex(string(path))
	return err == nil
}

// Link records that from includes to. Both must be registered. When the edge
// closes a cycle, Link returns it as a path starting and ending at to.
func (r *Registry) Link(from, to config.AbsolutePath) []config.AbsolutePath {
	var cycle []config.AbsolutePath
	if from == to {
		cycle = []config.AbsolutePath{to, to}
	} else if path, err := graphlib.ShortestPath(r.graph, string(to), string(from)); err == nil {
		for _, p := range path {
			cycle = append(cycle, config.AbsolutePath(p))
		}
		cycle = append(cycle, to)
	}

	// A repeated include of the same file adds no new edge.
	_ = r.graph.AddEdge(string(from), string(to))
	return cycle
}

// Paths returns every registered path in registration order.
func (r *Registry) Paths() []config.AbsolutePath {
	return append([]config.AbsolutePath(nil), r.order...)
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	return len(r.order)
}
