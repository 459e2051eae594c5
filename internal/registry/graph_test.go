package registry_test

import (
	"sort"
	"testing"

	"github.com/jonesrussell/crawlsearch/internal/registry"
)

func TestLinkGraphAddEdgeIsSymmetric(t *testing.T) {
	g := registry.NewLinkGraph()
	g.AddEdge("parent", "child1")
	g.AddEdge("parent", "child2")
	g.AddEdge("parent", "child1") // duplicate edge, must not double up

	children := g.Children("parent")
	sort.Strings(children)
	if want := []string{"child1", "child2"}; !equalStrings(children, want) {
		t.Fatalf("Children() = %v, want %v", children, want)
	}

	parents := g.Parents("child1")
	if want := []string{"parent"}; !equalStrings(parents, want) {
		t.Fatalf("Parents() = %v, want %v", parents, want)
	}
}

func TestLinkGraphUnknownNodeHasNoEdges(t *testing.T) {
	g := registry.NewLinkGraph()
	if got := g.Children("nowhere"); got != nil {
		t.Fatalf("Children() for unknown node = %v, want nil", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
