package cmd

import (
	"context"
	"io"
	"strconv"

	"github.com/flyteorg/flytestdlib/logger"
	"github.com/flyteorg/flytestdlib/promutils/labeled"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jobflow/jobtrace/pkg/jobgraph"
	"github.com/jobflow/jobtrace/pkg/printer"
	"github.com/jobflow/jobtrace/pkg/traversal"
)

type TraceOptions struct {
	*RootOptions
}

func (t *TraceOptions) run(ctx context.Context, w io.Writer, targets []jobgraph.JobID) error {
	g, err := t.LoadGraph(ctx)
	if err != nil {
		return err
	}

	labeled.SetMetricKeys(printer.TargetJobKey)

	oracle, err := traversal.NewReachabilityOracle(ctx, traversal.GetConfig(), g, t.Scope.NewSubScope("reachability"))
	if err != nil {
		return err
	}

	treePrinter := printer.NewTreePrinter(g, oracle, t.Scope.NewSubScope("printer"))
	for _, target := range targets {
		if err := treePrinter.Print(ctx, w, target); err != nil {
			return err
		}
	}

	return nil
}

func parseJobIDs(args []string) ([]jobgraph.JobID, error) {
	ids := make([]jobgraph.JobID, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid job id '%s'", arg)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func NewTraceCommand(opts *RootOptions) *cobra.Command {
	traceOpts := &TraceOptions{
		RootOptions: opts,
	}

	traceCmd := &cobra.Command{
		Use:   "trace <job-id> ...",
		Short: "Prints the reverse dependency tree for each given job id.",
		Long: `For each job id, finds every root job it transitively depends on and renders
the execution paths from those roots down to the job. Branches that do not
lead to the job are pruned, revisited jobs are marked as circular.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()

			targets, err := parseJobIDs(args)
			if err != nil {
				return err
			}

			queryID := uuid.New().String()
			logger.Infof(ctx, "starting trace query '%s' for %d target(s)", queryID, len(targets))

			return traceOpts.run(ctx, cmd.OutOrStdout(), targets)
		},
	}

	return traceCmd
}
