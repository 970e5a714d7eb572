package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agent-portal/portal/internal/buildinfo"
	"github.com/agent-portal/portal/internal/config"
	"github.com/agent-portal/portal/internal/logger"
	"github.com/agent-portal/portal/internal/models"
	"github.com/agent-portal/portal/internal/server"
)

func Execute() {
	cmd := newRootCmd(serve)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command; run is the action executed once the
// configuration has loaded.
func newRootCmd(run func(config.Config) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "agent-portal",
		Short:        "Serve the Agent Portal static site",
		Args:         cobra.NoArgs,
		Version:      buildinfo.String(),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.NewLoader().Load()
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	return cmd
}

func serve(cfg config.Config) error {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return &models.StartupError{Stage: "config.log", Kind: models.KindInvalidConfig, Err: err}
	}
	return server.New(cfg.Site, log).ListenAndServe()
}
