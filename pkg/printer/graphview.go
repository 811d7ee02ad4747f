package printer

import (
	"context"
	"fmt"
	"io"

	gotree "github.com/DiSiqueira/GoTree"
	"github.com/fatih/color"
	"github.com/flyteorg/flytestdlib/logger"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/jobflow/jobtrace/pkg/jobgraph"
)

// GraphView renders the whole dependency graph, one tree per root job, with
// no target pruning. Roots are tinted green, leaves yellow. Informational
// only, shared subtrees repeat under every path that reaches them.
type GraphView struct {
	g *jobgraph.Graph
}

func (v *GraphView) Render(ctx context.Context, w io.Writer) error {
	roots := make([]jobgraph.JobID, 0)
	for _, id := range v.g.JobIDs() {
		node, err := v.g.Lookup(id)
		if err != nil {
			return err
		}

		if node.PreJobs.Len() == 0 {
			roots = append(roots, id)
		}
	}

	logger.Debugf(ctx, "rendering %d root tree(s) over %d job(s)", len(roots), v.g.Len())

	for _, root := range roots {
		tree, err := v.subTree(root, sets.NewInt())
		if err != nil {
			return err
		}

		if _, err := fmt.Fprint(w, tree.Print()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d jobs, %d edges, %d roots\n", v.g.Len(), v.g.EdgeCount(), len(roots))
	return err
}

func (v *GraphView) subTree(job jobgraph.JobID, onPath sets.Int) (gotree.Tree, error) {
	node, err := v.g.Lookup(job)
	if err != nil {
		return nil, err
	}

	tree := gotree.New(v.label(node))
	if onPath.Has(job) {
		tree.Add(color.RedString(cycleMarker))
		return tree, nil
	}

	onPath = onPath.Union(sets.NewInt(job))

	for _, post := range node.PostJobs.List() {
		child, err := v.subTree(post, onPath)
		if err != nil {
			return nil, err
		}

		tree.AddTree(child)
	}

	return tree, nil
}

func (v *GraphView) label(node *jobgraph.JobNode) string {
	switch {
	case node.PreJobs.Len() == 0:
		return color.GreenString("job%d", node.ID)
	case node.PostJobs.Len() == 0:
		return color.YellowString("job%d", node.ID)
	}

	return fmt.Sprintf("job%d", node.ID)
}

func NewGraphView(g *jobgraph.Graph) *GraphView {
	return &GraphView{
		g: g,
	}
}
