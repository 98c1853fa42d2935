package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Deps-Tech/deps-registry/pkg/manifest"
)

func (c *CLI) manifestCommand() *cobra.Command {
	var (
		bf     buildFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "manifest <file.lua> [more.lua...]",
		Short: "Build the dep.json manifest for a package",
		Long: `Manifest analyzes the files, pins resolved dependencies to their catalog
versions and prints the resulting dep.json. With -o the manifest is written
into the given directory instead.`,
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

			prog := newProgress(loggerFromContext(ctx))
			res, err := e.runner.Build(ctx, req)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.MkdirAll(output, 0o755); err != nil {
					return err
				}
				if err := manifest.Save(output, res.Manifest); err != nil {
					return err
				}
				prog.done("Built manifest")
				printFile(cmd.ErrOrStderr(), filepath.Join(output, manifest.FileName))
				return nil
			}
			data, err := manifest.Encode(res.Manifest)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	bf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "directory to write dep.json into")
	return cmd
}
