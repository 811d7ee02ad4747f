package printer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/flyteorg/flytestdlib/contextutils"
	"github.com/flyteorg/flytestdlib/logger"
	"github.com/flyteorg/flytestdlib/promutils"
	"github.com/flyteorg/flytestdlib/promutils/labeled"
	"github.com/prometheus/client_golang/prometheus"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/jobflow/jobtrace/pkg/jobgraph"
	"github.com/jobflow/jobtrace/pkg/traversal"
)

// TargetJobKey labels per-query metrics with the job id being traced.
const TargetJobKey contextutils.Key = "target_job"

const (
	branchLast = "└── "
	branchMid  = "├── "
	indentLast = "    "
	indentMid  = "│   "

	cycleMarker = "(circular dependency detected)"
)

type printerMetrics struct {
	RenderLatency  labeled.StopWatch
	PrunedBranches prometheus.Counter
	CyclesDetected prometheus.Counter
}

// TreePrinter renders the reverse dependency tree of a target job. It walks
// successor edges forward from every root the target depends on, keeping only
// branches the reachability oracle confirms lead back to the target.
type TreePrinter struct {
	g       *jobgraph.Graph
	oracle  traversal.ReachabilityOracle
	metrics *printerMetrics
}

// Print writes the reverse dependency tree for the target job to w. An
// unknown target and a target with no acyclic origin each produce a
// diagnostic line instead of a tree, they are not errors.
func (t *TreePrinter) Print(ctx context.Context, w io.Writer, target jobgraph.JobID) error {
	ctx = context.WithValue(ctx, TargetJobKey, strconv.Itoa(target))

	timer := t.metrics.RenderLatency.Start(ctx)
	defer timer.Stop()

	if !t.g.Has(target) {
		logger.Infof(ctx, "target job '%d' is not declared in the graph", target)
		_, err := fmt.Fprintf(w, "Job '%d' not found.\n", target)
		return err
	}

	if _, err := fmt.Fprintf(w, "Reverse dependency tree starting from root for job: %d\n", target); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "(-> denotes execution order)"); err != nil {
		return err
	}

	roots, err := traversal.FindRoots(ctx, t.g, target)
	if err != nil {
		if traversal.IsNoRootFound(err) {
			logger.Infof(ctx, "every backward path from target job '%d' cycles", target)
			_, werr := fmt.Fprintln(w, "No root job found (circular dependency detected).")
			return werr
		}

		return err
	}

	// roots render as siblings of each other, each starting a fresh tree
	for _, root := range roots {
		if err := t.printSubtree(ctx, w, root, target, "", true, sets.NewInt()); err != nil {
			return err
		}
	}

	return nil
}

func (t *TreePrinter) printSubtree(ctx context.Context, w io.Writer, job, target jobgraph.JobID, prefix string, isLast bool, onPath sets.Int) error {
	branch := branchMid
	if isLast {
		branch = branchLast
	}

	label := fmt.Sprintf("job%d", job)
	if job == target {
		label += " (TARGET)"
	}

	if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, label); err != nil {
		return err
	}

	childPrefix := prefix + indentMid
	if isLast {
		childPrefix = prefix + indentLast
	}

	if onPath.Has(job) {
		t.metrics.CyclesDetected.Inc()
		_, err := fmt.Fprintf(w, "%s%s%s\n", childPrefix, branchLast, cycleMarker)
		return err
	}

	// every sibling branch walks an independent copy of the ancestor path
	onPath = onPath.Union(sets.NewInt(job))

	postJobs, err := t.g.FromNode(job)
	if err != nil {
		return err
	}

	children := make([]jobgraph.JobID, 0, len(postJobs))
	for _, post := range postJobs {
		reaches, err := t.oracle.LeadsTo(ctx, post, target)
		if err != nil {
			return err
		}

		if !reaches {
			t.metrics.PrunedBranches.Inc()
			continue
		}

		children = append(children, post)
	}

	for i, child := range children {
		if err := t.printSubtree(ctx, w, child, target, childPrefix, i == len(children)-1, onPath); err != nil {
			return err
		}
	}

	return nil
}

func NewTreePrinter(g *jobgraph.Graph, oracle traversal.ReachabilityOracle, scope promutils.Scope) *TreePrinter {
	metrics := &printerMetrics{
		RenderLatency:  labeled.NewStopWatch("render", "Total time to render one reverse dependency tree", time.Millisecond, scope),
		PrunedBranches: scope.MustNewCounter("pruned_branches", "Number of successor branches dropped for not leading to the target"),
		CyclesDetected: scope.MustNewCounter("cycles_detected", "Number of circular dependency markers emitted"),
	}

	return &TreePrinter{
		g:       g,
		oracle:  oracle,
		metrics: metrics,
	}
}
