package traversal

import (
	"context"
	"fmt"

	"github.com/flyteorg/flytestdlib/promutils"

	"github.com/jobflow/jobtrace/pkg/jobgraph"
)

// ReachabilityOracle decides whether a forward path over successor edges
// exists from one job to another. It is consulted once per candidate successor
// edge while rendering, making it the dominant cost of a query.
type ReachabilityOracle interface {
	LeadsTo(ctx context.Context, from, target jobgraph.JobID) (bool, error)
}

func NewReachabilityOracle(ctx context.Context, cfg *Config, g *jobgraph.Graph, scope promutils.Scope) (ReachabilityOracle, error) {
	switch cfg.Policy {
	case PolicyLRU:
		return NewLRUReachabilityOracle(NewPassthroughReachabilityOracle(g), cfg.Size, scope)
	case PolicyPassThrough:
		return NewPassthroughReachabilityOracle(g), nil
	}

	return nil, fmt.Errorf("unsupported reachability oracle policy '%s'", cfg.Policy)
}
