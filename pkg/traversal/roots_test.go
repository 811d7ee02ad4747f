package traversal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobflow/jobtrace/pkg/jobgraph"
)

func newTestGraph() *jobgraph.Graph {
	g := jobgraph.NewGraph()
	g.AddDependency(1)
	g.AddDependency(2, 1)
	g.AddDependency(3, 1)
	g.AddDependency(4, 2, 3)
	g.AddDependency(5, 4)
	g.AddDependency(6, 5)
	g.AddDependency(7, 5, 8)
	g.AddDependency(8)
	return g
}

func TestFindRoots(t *testing.T) {
	ctx := context.TODO()
	g := newTestGraph()

	tests := []struct {
		name   string
		target jobgraph.JobID
		roots  []jobgraph.JobID
	}{
		{"SingleRoot", 6, []jobgraph.JobID{1}},
		{"TwoRoots", 7, []jobgraph.JobID{1, 8}},
		{"RootOfItself", 1, []jobgraph.JobID{1}},
		{"IsolatedRoot", 8, []jobgraph.JobID{8}},
		{"DiamondJoin", 4, []jobgraph.JobID{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := FindRoots(ctx, g, tt.target)
			assert.NoError(t, err)
			assert.Equal(t, tt.roots, roots)

			// every returned root is predecessor-free
			for _, root := range roots {
				node, err := g.Lookup(root)
				assert.NoError(t, err)
				assert.Equal(t, 0, node.PreJobs.Len())
			}
		})
	}
}

func TestFindRootsNotFound(t *testing.T) {
	ctx := context.TODO()
	g := newTestGraph()

	roots, err := FindRoots(ctx, g, 99)
	assert.Nil(t, roots)
	assert.Error(t, err)
	assert.True(t, jobgraph.IsNotFound(err))
	assert.False(t, IsNoRootFound(err))
}

func TestFindRootsNoRootFound(t *testing.T) {
	ctx := context.TODO()

	// every backward path from the target cycles
	g := jobgraph.NewGraph()
	g.AddDependency(1, 2)
	g.AddDependency(2, 1)
	g.AddDependency(3, 2)

	for _, target := range []jobgraph.JobID{1, 2, 3} {
		roots, err := FindRoots(ctx, g, target)
		assert.Nil(t, roots)
		assert.Error(t, err)
		assert.True(t, IsNoRootFound(err))
		assert.False(t, jobgraph.IsNotFound(err))
	}
}

func TestFindRootsPartiallyCyclic(t *testing.T) {
	ctx := context.TODO()

	// one backward path cycles, the other reaches a root
	g := jobgraph.NewGraph()
	g.AddDependency(2, 1)
	g.AddDependency(3, 2)
	g.AddDependency(2, 3)
	g.AddDependency(4, 3)

	roots, err := FindRoots(ctx, g, 4)
	assert.NoError(t, err)
	assert.Equal(t, []jobgraph.JobID{1}, roots)
}

func TestFindRootsDeduplicated(t *testing.T) {
	ctx := context.TODO()

	// both arms of the diamond trace back to the same root
	g := jobgraph.NewGraph()
	g.AddDependency(2, 1)
	g.AddDependency(3, 1)
	g.AddDependency(4, 2, 3)

	roots, err := FindRoots(ctx, g, 4)
	assert.NoError(t, err)
	assert.Equal(t, []jobgraph.JobID{1}, roots)
}
