package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/flyteorg/flytestdlib/config"
	"github.com/flyteorg/flytestdlib/config/viper"
	"github.com/flyteorg/flytestdlib/logger"
	"github.com/flyteorg/flytestdlib/promutils"
	"github.com/flyteorg/flytestdlib/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	jtConfig "github.com/jobflow/jobtrace/pkg/config"
	"github.com/jobflow/jobtrace/pkg/jobgraph"
	"github.com/jobflow/jobtrace/pkg/loader"
)

const appName = "jobtrace"

var (
	cfgFile        string
	configAccessor = viper.NewAccessor(config.Options{StrictMode: true})
)

func init() {
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	err := flag.CommandLine.Parse([]string{})
	if err != nil {
		logger.Error(context.TODO(), "Error in initializing: %v", err)
		os.Exit(-1)
	}
}

type RootOptions struct {
	Scope     promutils.Scope
	useSample bool
}

func (r *RootOptions) executeRootCmd() error {
	ctx := context.TODO()
	logger.Infof(ctx, "Go Version: %s", runtime.Version())
	logger.Infof(ctx, "Go OS/Arch: %s/%s", runtime.GOOS, runtime.GOARCH)
	version.LogBuildInformation(appName)
	return fmt.Errorf("use one of the sub-commands")
}

// LoadGraph assembles the dependency graph the sub-commands query, either the
// built-in sample or the configured declaration files.
func (r *RootOptions) LoadGraph(ctx context.Context) (*jobgraph.Graph, error) {
	if r.useSample {
		logger.Debugf(ctx, "using the built-in sample graph")
		return loader.Sample(), nil
	}

	cfg := jtConfig.GetConfig()
	if len(cfg.GraphFiles) == 0 {
		return nil, fmt.Errorf("no graph files configured, set graph-files or pass --sample")
	}

	gf, err := loader.LoadFiles(ctx, cfg.GraphFiles...)
	if err != nil {
		return nil, err
	}

	fingerprint, err := loader.Fingerprint(gf)
	if err != nil {
		return nil, err
	}

	g := loader.BuildGraph(gf)
	logger.Infof(ctx, "assembled graph of %d job(s) with declaration fingerprint '%s'", g.Len(), fingerprint)
	return g, nil
}

func initConfig(cmd *cobra.Command, _ []string) error {
	configAccessor = viper.NewAccessor(config.Options{
		StrictMode:  false,
		SearchPaths: []string{cfgFile, ".", "/etc/jobtrace/config"},
	})

	configAccessor.InitializePflags(cmd.Root().PersistentFlags())

	err := configAccessor.UpdateConfig(context.TODO())
	if err != nil {
		return err
	}

	logger.Debugf(context.TODO(), "config file(s) in use: %v", configAccessor.ConfigFilesUsed())
	return nil
}

func NewJobTraceCommand() *cobra.Command {
	rootOpts := &RootOptions{
		Scope: promutils.NewScope(appName),
	}

	command := &cobra.Command{
		Use:   appName,
		Short: "jobtrace renders reverse dependency trees for jobs in a dependency graph.",
		Long: `jobtrace assembles a directed job dependency graph from declaration files and
answers which root jobs a given job transitively depends on, rendering every
execution path from those roots down to the job as a tree.`,
		PersistentPreRunE: initConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.executeRootCmd()
		},
	}

	command.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./jobtrace.yaml)")
	command.PersistentFlags().BoolVar(&rootOpts.useSample, "sample", false, "Query the built-in sample graph instead of the configured graph files")
	configAccessor.InitializePflags(command.PersistentFlags())

	command.AddCommand(NewTraceCommand(rootOpts))
	command.AddCommand(NewRootsCommand(rootOpts))
	command.AddCommand(NewShowCommand(rootOpts))
	command.AddCommand(viper.GetConfigCommand())

	return command
}
