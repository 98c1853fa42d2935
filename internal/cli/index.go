package cli

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) indexCommand() *cobra.Command {
	var (
		dir    string
		dist   string
		cdnURL string
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Pack published versions and write the CDN index",
		Long: `Index writes every published version as {type}/{id}-{version}.zip below
the dist directory, then writes index.json listing each archive with its URL,
sha256, size and manifest. This is the document the catalog is read from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cdnURL == "" {
				cdnURL = c.config().Catalog.URL
			}
			idx, err := c.newRegistry(dir).Dist(cmd.Context(), dist, cdnURL, time.Now())
			if err != nil {
				return err
			}
			out := cmd.ErrOrStderr()
			printSuccess(out, "Indexed %s and %s", count(len(idx.Dependencies), "dependency package"), count(len(idx.Scripts), "script"))
			printFile(out, filepath.Join(dist, "index.json"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "registry", "", "registry directory (default registry.dir)")
	cmd.Flags().StringVar(&dist, "dist", "dist", "output directory")
	cmd.Flags().StringVar(&cdnURL, "cdn-url", "", "base URL archives are served from (default catalog.url)")
	return cmd
}
