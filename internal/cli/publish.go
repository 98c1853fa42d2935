package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Deps-Tech/deps-registry/pkg/pipeline"
	"github.com/Deps-Tech/deps-registry/pkg/registry"
)

func (c *CLI) publishCommand() *cobra.Command {
	var (
		bf      buildFlags
		dir     string
		force   bool
		author  string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "publish <file.lua> [more.lua...]",
		Short: "Build a package and add it to the registry",
		Long: `Publish builds the manifest and writes the files plus dep.json to
{type}/{id}/{version}/ under the registry directory. When catalog.mongo_uri
is configured the manifest is also indexed in MongoDB.

An existing version is never overwritten unless --force is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			files, err := readSources(args, c.config().Server.MaxFileSize)
			if err != nil {
				return err
			}
			req, err := bf.request(files)
			if err != nil {
				return err
			}
			e := c.newEnv(ctx)
			defer e.Close()

			res, err := e.runner.Build(ctx, req)
			if err != nil {
				return err
			}

			reg := c.newRegistry(dir)
			sinks := []pipeline.Publisher{pipeline.RegistrySink{Registry: reg, Force: force}}
			if e.store != nil {
				sinks = append(sinks, pipeline.StoreSink{Store: e.store})
			}
			if err := e.runner.Publish(ctx, res, sinks...); err != nil {
				return err
			}

			m := res.Manifest
			stderr := cmd.ErrOrStderr()
			printSuccess(stderr, "Published %s %s", m.ID, m.Version)
			printFile(stderr, reg.Dir(res.Type, m.ID, m.Version))

			if summary {
				if author == "" {
					author = res.Author
				}
				body, err := registry.Summary(res.Type, m, author)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, registry.Title(res.Type, m))
				fmt.Fprintln(out)
				fmt.Fprint(out, body)
			}
			return nil
		},
	}

	bf.register(cmd)
	cmd.Flags().StringVar(&dir, "registry", "", "registry directory (default registry.dir)")
	cmd.Flags().BoolVar(&force, "force", false, "replace an already published version")
	cmd.Flags().StringVar(&author, "author", "", "submitter named in the review summary")
	cmd.Flags().BoolVar(&summary, "summary", false, "print the review request title and body")
	return cmd
}
