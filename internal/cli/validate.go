package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) validateCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Verify every published package version",
		Long: `Validate checks each {type}/{id}/{version}/ directory of the registry:
dep.json must match the schema, its id and version must match the directory
and every listed file must exist with the recorded size and sha256. It also
reports dependency cycles and packages whose files are byte-identical.

Exits non-zero when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := c.newRegistry(dir)
			out := cmd.OutOrStdout()
			prog := newProgress(loggerFromContext(cmd.Context()))

			entries, err := reg.WalkAll()
			if err != nil {
				return err
			}

			problems := 0
			for _, e := range entries {
				found, err := reg.Verify(e)
				if err != nil {
					printError(out, "%s: %v", e.Key(), err)
					problems++
					continue
				}
				for _, p := range found {
					printError(out, "%s: %s", e.Key(), p)
				}
				problems += len(found)
			}

			cycles, err := reg.Cycles()
			if err != nil {
				return err
			}
			for _, cyc := range cycles {
				printError(out, "dependency cycle: %s", strings.Join(cyc, " -> "))
			}
			problems += len(cycles)

			dups, err := reg.Duplicates()
			if err != nil {
				return err
			}
			for _, d := range dups {
				printWarning(out, "%s", d.Error())
			}
			problems += len(dups)

			prog.done(fmt.Sprintf("Checked %d package versions", len(entries)))
			if problems > 0 {
				return fmt.Errorf("registry has %d problem(s)", problems)
			}
			printSuccess(out, "%s verified", count(len(entries), "package version"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "registry", "", "registry directory (default registry.dir)")
	return cmd
}
