package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Deps-Tech/deps-registry/pkg/analysis"
)

func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		scanAll bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file.lua> [more.lua...]",
		Short: "Show detected metadata, dependencies and security flags",
		Long: `Analyze reads the script_name, script_version and script_author
annotations of the first file, scans its require calls and resolves them
against the catalog. With --scan-all every file is scanned.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readSources(args, c.config().Server.MaxFileSize)
			if err != nil {
				return err
			}
			e := c.newEnv(cmd.Context())
			defer e.Close()

			res, err := e.runner.Analyze(cmd.Context(), files, scanAll)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printAnalysis(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&scanAll, "scan-all", false, "scan every file for dependencies, not only the first")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}

func printAnalysis(w io.Writer, res *analysis.Result) {
	printTitle(w, res.Metadata.Name)
	printKeyValue(w, "id", res.Metadata.ID)
	printKeyValue(w, "version", res.Metadata.Version)
	if res.Metadata.Author != "" {
		printKeyValue(w, "author", res.Metadata.Author)
	}
	printList(w, "dependencies", res.Dependencies)
	if len(res.Unresolved) > 0 {
		printList(w, "unresolved", res.Unresolved)
	}
	printKeyValue(w, "network", yesNo(res.Security.UsesNetwork))
	printKeyValue(w, "ffi", yesNo(res.Security.UsesFFI))
	printList(w, "file paths", res.Security.FilePaths)

	for _, warn := range res.Warnings {
		loc := fmt.Sprintf("line %d", warn.Line)
		if warn.File != "" {
			loc = fmt.Sprintf("%s:%d", warn.File, warn.Line)
		}
		printWarning(w, "%s: %s", loc, warn.Message)
		printDetail(w, "%s", warn.Code)
	}
}
