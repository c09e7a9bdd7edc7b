package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-uvtool/pkg/host/memhost"
	"github.com/askiada/go-uvtool/pkg/orchestrator"
	"github.com/askiada/go-uvtool/pkg/shell"
)

func newPanelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "panel",
		Short: "Start the interactive panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := shell.LoadForm(a.cfg.Panel.Form)
			if err != nil {
				a.log().Error("Unable to load panel", zap.Error(err), zap.String("path", a.cfg.Panel.Form))

				return err
			}

			orch := orchestrator.New(memhost.New(),
				orchestrator.WithLogger(a.log()),
				orchestrator.WithCacheDir(a.cfg.Cache.Dir()),
			)
			defer orch.Close()

			return shell.Start(shell.NewPanel(form, orch, a.log()))
		},
	}
}
