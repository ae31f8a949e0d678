package graph

import (
	"path/filepath"
	"sort"

	"github.com/disiqueira/gotree/v3"
)

// Graph is a directed require graph keyed by absolute file path.
type Graph struct {
	root  string
	edges map[string][]string
}

// New creates a graph rooted at the given file.
func New(root string) *Graph {
	return &Graph{root: root, edges: map[string][]string{root: nil}}
}

// Root returns the root file.
func (g *Graph) Root() string { return g.root }

// AddEdge records that from required to. Edges keep insertion order.
func (g *Graph) AddEdge(from, to string) {
	g.edges[from] = append(g.edges[from], to)
	if _, ok := g.edges[to]; !ok {
		g.edges[to] = nil
	}
}

// DependenciesOf returns the files directly required by file, in source order.
func (g *Graph) DependenciesOf(file string) []string {
	return append([]string(nil), g.edges[file]...)
}

// Files returns every file in the graph, sorted.
func (g *Graph) Files() []string {
	files := make([]string, 0, len(g.edges))
	for f := range g.edges {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Tree renders the graph from its root. Paths are shown relative to base
// when possible; pass an empty base to print them as recorded.
func (g *Graph) Tree(base string) string {
	label := func(p string) string {
		if base == "" {
			return p
		}
		if rel, err := filepath.Rel(base, p); err == nil {
			return rel
		}
		return p
	}

	tree := gotree.New(label(g.root))
	g.addChildren(tree, g.root, label)
	return tree.Print()
}

func (g *Graph) addChildren(parent gotree.Tree, file string, label func(string) string) {
	for _, dep := range g.edges[file] {
		g.addChildren(parent.Add(label(dep)), dep, label)
	}
}
