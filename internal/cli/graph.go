package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Deps-Tech/deps-registry/pkg/dag"
	graphio "github.com/Deps-Tech/deps-registry/pkg/io"
	"github.com/Deps-Tech/deps-registry/pkg/render"
)

// Graph output formats.
const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

func (c *CLI) graphCommand() *cobra.Command {
	var (
		dir      string
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the registry dependency graph",
		Long: `Graph builds the dependency graph of the latest version of every published
package. Dependencies that are not published are drawn dashed, edges on a
cycle in red.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := c.newRegistry(dir).Graph()
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch format {
			case formatDOT:
				buf.WriteString(render.ToDOT(g, render.Options{Versions: true, Detailed: detailed}))
			case formatSVG:
				sp := startSpinner(ctx, cmd.ErrOrStderr(), "Rendering SVG...")
				svg, err := render.SVG(ctx, render.ToDOT(g, render.Options{Versions: true, Detailed: detailed}))
				sp.Stop()
				if err != nil {
					return err
				}
				buf.Write(svg)
			case formatJSON:
				if err := graphio.WriteJSON(g, &buf); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want dot, svg or json)", format)
			}

			if output == "" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			printGraphStats(cmd.ErrOrStderr(), g)
			printFile(cmd.ErrOrStderr(), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "registry", "", "registry directory (default registry.dir)")
	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include node metadata and pinned edge versions in labels")
	return cmd
}

func printGraphStats(w io.Writer, g *dag.DAG) {
	missing := 0
	for _, n := range g.Nodes() {
		if n.Missing {
			missing++
		}
	}
	printInfo(w, "%s, %s, %s", count(g.NodeCount(), "package"), count(g.EdgeCount(), "dependency edge"), count(missing, "missing package"))
}
