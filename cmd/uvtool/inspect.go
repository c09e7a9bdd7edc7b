package main

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-uvtool/pkg/geometry"
	"github.com/askiada/go-uvtool/pkg/operator"
)

func newInspectCmd(a *app) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "inspect [file.obj...]",
		Short: "Report the seams the UV network would cut on OBJ meshes",
		Long: `Reads OBJ meshes and counts the edges the sharp-edge group of the UV network selects:
edges whose dihedral angle is between 80 and 110 degrees. Boundary edges have no angle and are never selected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobs < 1 {
				return errors.Errorf("--jobs must be at least 1, got %d", jobs)
			}

			reports := make([]geometry.Report, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)

			for i, path := range args {
				g.Go(func() error {
					// Another file already failed.
					if err := ctx.Err(); err != nil {
						return err
					}

					mesh, err := geometry.ReadOBJFile(path)
					if err != nil {
						return err
					}

					reports[i] = geometry.Analyze(mesh, operator.SharpEdges())
					a.log().Debug("Mesh inspected", zap.String("path", path), zap.Int("seams", reports[i].Seams))

					return nil
				})
			}

			if err := g.Wait(); err != nil {
				a.log().Error("Inspection failed", zap.Error(err))

				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)

			if err := enc.Encode(reports); err != nil {
				return errors.Wrap(err, "unable to encode reports")
			}

			return errors.Wrap(enc.Close(), "unable to flush reports")
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "meshes read in parallel")

	return cmd
}
