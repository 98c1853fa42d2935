package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) catalogCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the package ids dependencies resolve against",
		Long: `Catalog prints every known dependency id with its latest version, merged
from the local registry (--catalog-dir), MongoDB and the CDN index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e := c.newEnv(ctx)
			defer e.Close()

			sp := startSpinner(ctx, cmd.ErrOrStderr(), "Loading catalog...")
			snap := e.runner.Snapshot(ctx)
			sp.Stop()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap.Versions())
			}
			for _, id := range snap.IDs() {
				v, _ := snap.Version(id)
				fmt.Fprintf(out, "%s\t%s\n", id, v)
			}
			printInfo(cmd.ErrOrStderr(), "%s", count(snap.Len(), "package"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print an id to version JSON object")
	return cmd
}
