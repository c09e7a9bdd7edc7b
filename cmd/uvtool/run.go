package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-uvtool/pkg/host"
	"github.com/askiada/go-uvtool/pkg/host/memhost"
	"github.com/askiada/go-uvtool/pkg/naming"
	"github.com/askiada/go-uvtool/pkg/orchestrator"
	"github.com/askiada/go-uvtool/pkg/pipeline"
	"github.com/askiada/go-uvtool/pkg/pipeline/drawer"
	"github.com/askiada/go-uvtool/pkg/pipeline/measure"
	"github.com/askiada/go-uvtool/pkg/pipeline/model"
)

type runFlags struct {
	importPath string
	exportPath string
	mirror     bool
	reduce     bool
	open       bool
	dot        string
	dump       bool
}

func newRunCmd(a *app) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the networks for one asset without the panel",
		Long: `Builds the remesh and UV networks for --import and prints the resulting node trees.

Example:
  uvtool run --import C:/models/Crate01.fbx --mirror --reduce --dot crate.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAsset(cmd, a, flags)
		},
	}

	cmd.Flags().StringVar(&flags.importPath, "import", "", "FBX or OBJ file to import")
	cmd.Flags().StringVar(&flags.exportPath, "export", "", "folder the FBX export is written to")
	cmd.Flags().BoolVar(&flags.mirror, "mirror", false, "export next to the import file")
	cmd.Flags().BoolVar(&flags.reduce, "reduce", false, "reduce the mesh to 1000 polygons")
	cmd.Flags().BoolVar(&flags.open, "open", false, "open the export folder when done")
	cmd.Flags().StringVar(&flags.dot, "dot", "", "write the built networks as a DOT graph to this file")
	cmd.Flags().BoolVar(&flags.dump, "dump", false, "print the built node trees as YAML")

	return cmd
}

func runAsset(cmd *cobra.Command, a *app, flags *runFlags) error {
	h := memhost.New()

	opts := []orchestrator.Option{
		orchestrator.WithLogger(a.log()),
		orchestrator.WithCacheDir(a.cfg.Cache.Dir()),
		orchestrator.WithBuildOptions(func(orchestrator.Request) []model.BuildOption {
			buildOpts := []model.BuildOption{pipeline.LogNodes(a.log())}
			if flags.dot != "" {
				m := measure.NewDefaultMeasure()
				buildOpts = append(buildOpts, measure.BuildMeasure(m), drawer.BuildDrawer(drawer.NewDOTDrawer(flags.dot), m))
			}

			return buildOpts
		}),
	}

	orch := orchestrator.New(h, opts...)
	defer orch.Close()

	req := orchestrator.Request{
		ImportPath:      flags.importPath,
		ExportPath:      flags.exportPath,
		ApplyReduction:  flags.reduce,
		OpenFolderAfter: flags.open,
	}
	if flags.mirror && req.ImportPath != "" {
		req.ExportPath = naming.Dir(req.ImportPath)
	}

	record, err := orch.Run(req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flags.dump {
		for _, container := range []host.Path{record.RemeshContainer, record.UVContainer} {
			if err := h.Dump(out, container); err != nil {
				return errors.Wrapf(err, "unable to dump %s", container)
			}
		}
	}

	fmt.Fprintln(out, record.Summary())
	fmt.Fprintf(out, "Export: %s\n", record.ExportFile)

	return nil
}
