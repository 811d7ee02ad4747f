package jobgraph

import (
	"github.com/pkg/errors"

	"k8s.io/apimachinery/pkg/util/sets"
)

// JobID is the identifier of a single job in the dependency graph. Jobs carry
// no payload beyond their identity.
type JobID = int

// JobNode captures one job's position in the dependency graph: the set of jobs
// that must run directly before it and the set of jobs that run directly after
// it. For any two jobs a and b, b is in a.PostJobs exactly when a is in
// b.PreJobs.
type JobNode struct {
	ID       JobID
	PreJobs  sets.Int
	PostJobs sets.Int
}

// Graph is the full job dependency graph, keyed by job id. It is populated
// through AddDependency calls during initialization and read-only afterwards.
// Every id referenced by any PreJobs/PostJobs set exists as a node.
type Graph struct {
	nodes map[JobID]*JobNode
}

func NewGraph() *Graph {
	return &Graph{
		nodes: map[JobID]*JobNode{},
	}
}

func (g *Graph) ensureNode(job JobID) *JobNode {
	node, ok := g.nodes[job]
	if !ok {
		node = &JobNode{
			ID:       job,
			PreJobs:  sets.NewInt(),
			PostJobs: sets.NewInt(),
		}
		g.nodes[job] = node
	}

	return node
}

// AddDependency records that job runs after every job in preJobs. Jobs are
// created on first reference, re-declaring an existing edge is a no-op.
func (g *Graph) AddDependency(job JobID, preJobs ...JobID) {
	node := g.ensureNode(job)
	for _, pre := range preJobs {
		preNode := g.ensureNode(pre)
		node.PreJobs.Insert(pre)
		preNode.PostJobs.Insert(job)
	}
}

// Lookup returns the node for the given job id.
func (g *Graph) Lookup(job JobID) (*JobNode, error) {
	node, ok := g.nodes[job]
	if !ok {
		return nil, errors.Wrapf(ErrJobNotFound, "job '%d'", job)
	}

	return node, nil
}

func (g *Graph) Has(job JobID) bool {
	_, ok := g.nodes[job]
	return ok
}

// Len returns the number of jobs in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of directed dependency edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, node := range g.nodes {
		count += node.PostJobs.Len()
	}

	return count
}

// JobIDs returns every job id in the graph in ascending order.
func (g *Graph) JobIDs() []JobID {
	ids := sets.NewInt()
	for id := range g.nodes {
		ids.Insert(id)
	}

	return ids.List()
}

// ToNode finds all job ids from which the given job can be reached directly,
// in ascending order.
func (g *Graph) ToNode(job JobID) ([]JobID, error) {
	node, err := g.Lookup(job)
	if err != nil {
		return nil, err
	}

	return node.PreJobs.List(), nil
}

// FromNode finds all job ids directly reachable from the given job, in
// ascending order.
func (g *Graph) FromNode(job JobID) ([]JobID, error) {
	node, err := g.Lookup(job)
	if err != nil {
		return nil, err
	}

	return node.PostJobs.List(), nil
}
