package traversal

import (
	"context"

	"github.com/flyteorg/flytestdlib/logger"
	"github.com/pkg/errors"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/jobflow/jobtrace/pkg/jobgraph"
)

// FindRoots computes every root job the target job transitively depends on. A
// root is a job with no predecessors. The result is deduplicated and in
// ascending order.
//
// A missing target satisfies jobgraph.IsNotFound. A target whose every
// backward path cycles without reaching a predecessor-free job satisfies
// IsNoRootFound.
func FindRoots(ctx context.Context, g *jobgraph.Graph, target jobgraph.JobID) ([]jobgraph.JobID, error) {
	if _, err := g.Lookup(target); err != nil {
		return nil, err
	}

	roots := sets.NewInt()
	if err := collectRoots(g, target, sets.NewInt(), roots); err != nil {
		return nil, err
	}

	if roots.Len() == 0 {
		return nil, errors.Wrapf(ErrNoRootFound, "target job '%d'", target)
	}

	logger.Debugf(ctx, "found %d root job(s) for target job '%d'", roots.Len(), target)
	return roots.List(), nil
}

// collectRoots walks predecessor edges backward from the given job. The
// visited set terminates the walk on cycles and diamond re-merges.
func collectRoots(g *jobgraph.Graph, job jobgraph.JobID, visited, roots sets.Int) error {
	if visited.Has(job) {
		return nil
	}
	visited.Insert(job)

	preJobs, err := g.ToNode(job)
	if err != nil {
		return err
	}

	if len(preJobs) == 0 {
		roots.Insert(job)
		return nil
	}

	for _, pre := range preJobs {
		if err := collectRoots(g, pre, visited, roots); err != nil {
			return err
		}
	}

	return nil
}
