package traversal

import (
	"context"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/jobflow/jobtrace/pkg/jobgraph"
)

type passthroughReachabilityOracle struct {
	g *jobgraph.Graph
}

// LeadsTo walks successor edges depth-first from the given job. A job always
// leads to itself. The visited set is scoped to this call only, so sibling
// calls may legitimately re-explore the same jobs.
func (p *passthroughReachabilityOracle) LeadsTo(ctx context.Context, from, target jobgraph.JobID) (bool, error) {
	return p.leadsTo(from, target, sets.NewInt())
}

func (p *passthroughReachabilityOracle) leadsTo(from, target jobgraph.JobID, visited sets.Int) (bool, error) {
	if from == target {
		return true, nil
	}

	// a job already expanded within this call contributes nothing new
	if visited.Has(from) {
		return false, nil
	}
	visited.Insert(from)

	postJobs, err := p.g.FromNode(from)
	if err != nil {
		return false, err
	}

	for _, post := range postJobs {
		reaches, err := p.leadsTo(post, target, visited)
		if err != nil {
			return false, err
		}

		if reaches {
			return true, nil
		}
	}

	return false, nil
}

func NewPassthroughReachabilityOracle(g *jobgraph.Graph) ReachabilityOracle {
	return &passthroughReachabilityOracle{
		g: g,
	}
}
