package cli

import (
	"github.com/spf13/cobra"

	"github.com/Deps-Tech/deps-registry/internal/server"
	"github.com/Deps-Tech/deps-registry/pkg/pipeline"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		dir     string
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP ingestion API",
		Long: `Serve exposes analysis and manifest building over HTTP:

  GET  /healthz
  GET  /v1/catalog
  POST /v1/analyze   multipart "files"
  POST /v1/manifest  multipart "files", "type", "tags", "sourceUrl", "metadata"
  POST /v1/publish   same fields; enabled with --publish

Published packages are written to the registry directory and, when
catalog.mongo_uri is configured, indexed in MongoDB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			e := c.newEnv(ctx)
			defer e.Close()

			var publishers []pipeline.Publisher
			if publish {
				publishers = append(publishers, pipeline.RegistrySink{Registry: c.newRegistry(dir)})
				if e.store != nil {
					publishers = append(publishers, pipeline.StoreSink{Store: e.store})
				}
			}

			srv := server.New(e.runner, server.Options{
				MaxFileSize: cfg.Server.MaxFileSize,
				Publishers:  publishers,
				Logger:      c.Logger,
			})
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	cmd.Flags().StringVar(&dir, "registry", "", "registry directory for --publish (default registry.dir)")
	cmd.Flags().BoolVar(&publish, "publish", false, "accept POST /v1/publish")
	return cmd
}
