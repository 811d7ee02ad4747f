package cmd

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jobflow/jobtrace/pkg/printer"
)

type ShowOptions struct {
	*RootOptions
	noColor bool
}

func (s *ShowOptions) run(ctx context.Context, w io.Writer) error {
	g, err := s.LoadGraph(ctx)
	if err != nil {
		return err
	}

	if s.noColor {
		color.NoColor = true
	}

	return printer.NewGraphView(g).Render(ctx, w)
}

func NewShowCommand(opts *RootOptions) *cobra.Command {
	showOpts := &ShowOptions{
		RootOptions: opts,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Renders the whole dependency graph, one tree per root job.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showOpts.run(context.TODO(), cmd.OutOrStdout())
		},
	}

	showCmd.Flags().BoolVar(&showOpts.noColor, "no-color", false, "Disable colored output")
	return showCmd
}
