package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Deps-Tech/deps-registry/internal/config"
	"github.com/Deps-Tech/deps-registry/pkg/buildinfo"
	"github.com/Deps-Tech/deps-registry/pkg/cache"
	"github.com/Deps-Tech/deps-registry/pkg/catalog"
	"github.com/Deps-Tech/deps-registry/pkg/observability"
	"github.com/Deps-Tech/deps-registry/pkg/pipeline"
	"github.com/Deps-Tech/deps-registry/pkg/registry"
	"github.com/Deps-Tech/deps-registry/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// redisPrefix namespaces depsreg keys in a shared Redis database.
const redisPrefix = "depsreg:"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg   *config.Config
	flags globalFlags
}

type globalFlags struct {
	verbose    bool
	configFile string
	catalogURL string
	catalogDir string
	noCache    bool
	refresh    bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "depsreg",
		Short: "depsreg ingests Lua scripts into the package registry",
		Long: `depsreg analyzes Lua scripts, resolves their dependencies against the
registry catalog and builds the dep.json manifests that the registry serves.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.flags.verbose {
				c.SetLogLevel(LogDebug)
				hooks := observability.LogHooks{Logger: c.Logger}
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&c.flags.configFile, "config", "", "config file (default "+config.DefaultConfigFile()+")")
	pf.StringVar(&c.flags.catalogURL, "catalog-url", "", "CDN base URL serving index.json")
	pf.StringVar(&c.flags.catalogDir, "catalog-dir", "", "local registry tree consulted before the CDN")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "disable the catalog response cache")
	pf.BoolVar(&c.flags.refresh, "refresh", false, "refetch the catalog, bypassing cached responses")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.manifestCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.indexCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and environment, then applies flags.
func (c *CLI) loadConfig() error {
	cfg, err := config.NewLoader().LoadWithDefaults(c.flags.configFile)
	if err != nil {
		return err
	}
	if c.flags.catalogURL != "" {
		cfg.Catalog.URL = c.flags.catalogURL
	}
	if c.flags.catalogDir != "" {
		cfg.Catalog.Dir = c.flags.catalogDir
	}
	if c.flags.noCache {
		cfg.Cache.Disabled = true
	}
	c.cfg = cfg
	return nil
}

// config returns the loaded configuration, or defaults when a command runs
// without the root pre-run (as in tests of a single subcommand).
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = (&config.Config{}).WithDefaults()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// env bundles the collaborators a command needs. Close releases them.
type env struct {
	runner *pipeline.Runner
	// store is nil unless catalog.mongo_uri is configured.
	store   *store.MongoStore
	closers []func()
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// newEnv assembles the catalog: the local registry tree, then MongoDB,
// then the CDN index. Earlier sources win for ids present in several.
func (c *CLI) newEnv(ctx context.Context) *env {
	cfg := c.config()
	e := &env{}
	var providers catalog.Multi

	if cfg.Catalog.Dir != "" {
		providers = append(providers, registry.New(cfg.Catalog.Dir, c.Logger))
	}
	if cfg.Catalog.MongoURI != "" {
		st, err := store.Connect(ctx, cfg.Catalog.MongoURI, cfg.Catalog.MongoDatabase, c.Logger)
		if err != nil {
			c.Logger.Warn("mongo catalog unavailable", "err", err)
		} else {
			e.store = st
			providers = append(providers, st)
			e.closers = append(e.closers, func() { _ = st.Close(context.Background()) })
		}
	}

	ch := c.newCache(ctx)
	e.closers = append(e.closers, func() { _ = ch.Close() })
	providers = append(providers,
		catalog.NewIndexProvider(cfg.Catalog.URL, ch, cfg.Catalog.TTL).WithRefresh(c.flags.refresh))

	e.runner = pipeline.NewRunner(providers, c.Logger)
	return e
}

// newCache picks Redis when configured, then the file cache. Failures fall
// back to no caching.
func (c *CLI) newCache(ctx context.Context) cache.Cache {
	cfg := c.config().Cache
	if cfg.Disabled {
		return cache.NewNullCache()
	}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Prefix:   redisPrefix,
		})
		if err == nil {
			return rc
		}
		c.Logger.Warn("redis cache unavailable, using file cache", "err", err)
	}
	fc, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable", "dir", cfg.Dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// newRegistry opens the registry tree at dir, or the configured one.
func (c *CLI) newRegistry(dir string) *registry.Registry {
	if dir == "" {
		dir = c.config().Registry.Dir
	}
	return registry.New(dir, c.Logger)
}
