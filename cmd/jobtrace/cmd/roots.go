package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jobflow/jobtrace/pkg/jobgraph"
	"github.com/jobflow/jobtrace/pkg/traversal"
)

type RootsOptions struct {
	*RootOptions
}

func (r *RootsOptions) run(ctx context.Context, w io.Writer, target jobgraph.JobID) error {
	g, err := r.LoadGraph(ctx)
	if err != nil {
		return err
	}

	roots, err := traversal.FindRoots(ctx, g, target)
	if err != nil {
		if jobgraph.IsNotFound(err) {
			_, werr := fmt.Fprintf(w, "Job '%d' not found.\n", target)
			return werr
		}

		if traversal.IsNoRootFound(err) {
			_, werr := fmt.Fprintln(w, "No root job found (circular dependency detected).")
			return werr
		}

		return err
	}

	for _, root := range roots {
		if _, err := fmt.Fprintf(w, "job%d\n", root); err != nil {
			return err
		}
	}

	return nil
}

func NewRootsCommand(opts *RootOptions) *cobra.Command {
	rootsOpts := &RootsOptions{
		RootOptions: opts,
	}

	rootsCmd := &cobra.Command{
		Use:   "roots <job-id>",
		Short: "Prints every root job the given job transitively depends on.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := parseJobIDs(args)
			if err != nil {
				return err
			}

			return rootsOpts.run(context.TODO(), cmd.OutOrStdout(), targets[0])
		},
	}

	return rootsCmd
}
