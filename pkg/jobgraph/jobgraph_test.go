package jobgraph

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
)

func newTestGraph() *Graph {
	g := NewGraph()
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

func TestAddDependency(t *testing.T) {
	g := NewGraph()
	g.AddDependency(4, 2, 3)

	// predecessors are auto-created
	assert.True(t, g.Has(4))
	assert.True(t, g.Has(2))
	assert.True(t, g.Has(3))
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.EdgeCount())

	node, err := g.Lookup(4)
	assert.NoError(t, err)
	assert.Equal(t, []JobID{2, 3}, node.PreJobs.List())
	assert.Empty(t, node.PostJobs.List())
}

func TestAddDependencyEdgeSymmetry(t *testing.T) {
	g := newTestGraph()

	for _, id := range g.JobIDs() {
		node, err := g.Lookup(id)
		assert.NoError(t, err)

		for _, post := range node.PostJobs.List() {
			postNode, err := g.Lookup(post)
			assert.NoError(t, err)
			assert.True(t, postNode.PreJobs.Has(id), "job %d missing from job %d PreJobs", id, post)
		}

		for _, pre := range node.PreJobs.List() {
			preNode, err := g.Lookup(pre)
			assert.NoError(t, err)
			assert.True(t, preNode.PostJobs.Has(id), "job %d missing from job %d PostJobs", id, pre)
		}
	}
}

func TestAddDependencyIdempotent(t *testing.T) {
	g := NewGraph()
	g.AddDependency(2, 1)
	g.AddDependency(2, 1)
	g.AddDependency(2, 1, 1)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 1, g.EdgeCount())

	node, err := g.Lookup(2)
	assert.NoError(t, err)
	assert.Equal(t, []JobID{1}, node.PreJobs.List())
}

func TestLookupNotFound(t *testing.T) {
	g := newTestGraph()

	node, err := g.Lookup(99)
	assert.Nil(t, node)
	assert.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestJobIDs(t *testing.T) {
	g := NewGraph()
	g.AddDependency(7, 5, 8)
	g.AddDependency(2, 1)

	assert.Equal(t, []JobID{1, 2, 5, 7, 8}, g.JobIDs())
}

func TestToFromNode(t *testing.T) {
	g := newTestGraph()

	tests := []struct {
		name     string
		job      JobID
		toNode   []JobID
		fromNode []JobID
	}{
		{"Root", 1, []JobID{}, []JobID{2, 3}},
		{"DiamondJoin", 4, []JobID{2, 3}, []JobID{5}},
		{"Fanout", 5, []JobID{4}, []JobID{6, 7}},
		{"Leaf", 7, []JobID{5, 8}, []JobID{}},
		{"IsolatedRoot", 8, []JobID{}, []JobID{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toNode, err := g.ToNode(tt.job)
			assert.NoError(t, err)
			if diff := deep.Equal(tt.toNode, toNode); diff != nil {
				t.Errorf("ToNode(%d): %v", tt.job, diff)
			}

			fromNode, err := g.FromNode(tt.job)
			assert.NoError(t, err)
			if diff := deep.Equal(tt.fromNode, fromNode); diff != nil {
				t.Errorf("FromNode(%d): %v", tt.job, diff)
			}
		})
	}

	t.Run("NotFound", func(t *testing.T) {
		_, err := g.ToNode(99)
		assert.True(t, IsNotFound(err))

		_, err = g.FromNode(99)
		assert.True(t, IsNotFound(err))
	})
}
