package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-uvtool/pkg/config"
	"github.com/askiada/go-uvtool/pkg/logging"
)

// app holds what every command shares once the root pre-run has completed.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *logging.Logger
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}

	return a.logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	panel := newPanelCmd(a)

	root := &cobra.Command{
		Use:   "uvtool",
		Short: "Remesh and UV tool",
		Long: `uvtool builds two node networks for an imported asset:

  1. Remesh: import, strip UVs and collision hulls, clean and optionally reduce to 1000 polygons.
  2. UV: flatten along sharp edges, unwrap, pack and export <asset>_NewUV.fbx.

Run without arguments to start the interactive panel.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}

			if a.verbose {
				cfg.Logging.Level = "debug"
			}

			// The panel owns the terminal.
			if cmd == panel || cmd.Root() == cmd {
				cfg.Logging.Console = false
			}

			a.cfg = cfg

			a.logger, err = logging.New(cfg.Logging, time.Now(), cmd.ErrOrStderr())
			if err != nil {
				return errors.Wrap(err, "unable to initialize logger")
			}

			a.logger.Debug("Logger started", zap.String("path", a.logger.Path))

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Close()
			}
		},
		RunE: panel.RunE,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "uvtool.yaml", "configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every node created")

	root.AddCommand(panel, newRunCmd(a), newInspectCmd(a), newVersionCmd())

	return root
}
