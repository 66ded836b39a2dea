package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	httpClient "github.com/iudanet/patientdesk/internal/client/api"
	"github.com/iudanet/patientdesk/internal/client/cache"
	"github.com/iudanet/patientdesk/internal/client/fields"
	"github.com/iudanet/patientdesk/internal/client/iocli"
	"github.com/iudanet/patientdesk/internal/client/patients"
	"github.com/iudanet/patientdesk/internal/client/storage/boltdb"
	"github.com/iudanet/patientdesk/internal/config"
	"github.com/iudanet/patientdesk/internal/logging"
)

// BuildInfo заполняется через ldflags
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// rootOptions: глобальные флаги; заданные явно перекрывают конфиг
type rootOptions struct {
	configPath  string
	server      string
	db          string
	logLevel    string
	askCacheKey bool
}

func (o *rootOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.APIBaseURL = o.server
	}
	if flags.Changed("db") {
		cfg.CachePath = o.db
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	return cfg.Validate()
}

// app открывает хранилище и сервисы на время одной команды
type app struct {
	io    iocli.IO
	opts  *rootOptions
	store *boltdb.Storage
	cache *cache.QueryCache
}

func (a *app) open(cmd *cobra.Command) (*Cli, error) {
	ctx := cmd.Context()

	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := a.opts.apply(cmd, cfg); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogPretty, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	passphrase := cfg.CacheKey
	if a.opts.askCacheKey {
		if passphrase, err = a.io.ReadPassword("Cache key: "); err != nil {
			return nil, fmt.Errorf("failed to read cache key: %w", err)
		}
		cfg.CacheKey = passphrase
	}

	store, err := boltdb.New(ctx, cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", cfg.CachePath, err)
	}

	sealer, err := cache.OpenSealer(ctx, store, store, passphrase, logger)
	if err != nil {
		a.closeStore(logger, store)
		return nil, fmt.Errorf("failed to prepare cache encryption: %w", err)
	}

	a.store = store
	a.cache = cache.New(store,
		cache.WithStaleTime(cfg.StaleTime),
		cache.WithRetries(cfg.ReadRetries),
		cache.WithSealer(sealer),
		cache.WithLogger(logger),
	)

	apiClient := httpClient.NewClient(cfg.APIBaseURL,
		httpClient.WithTimeout(cfg.HTTPTimeout),
		httpClient.WithLogger(logger),
	)

	logger.Debug().Str("api", cfg.APIBaseURL).Str("cache", cfg.CachePath).Bool("encrypted", cfg.Encrypted()).Msg("Client initialized")

	return New(Deps{
		IO:       a.io,
		Patients: patients.NewService(apiClient, a.cache, logger, patients.WithPageSize(cfg.PageSize)),
		Fields:   fields.NewService(apiClient, a.cache, logger, fields.WithRetries(cfg.DefinitionRetries)),
		Cache:    a.cache,
		Config:   cfg,
		Logger:   logger,
	}), nil
}

func (a *app) closeStore(logger zerolog.Logger, store *boltdb.Storage) {
	if err := store.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close cache")
	}
}

// run выполняет fn с открытыми сервисами и закрывает их после
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context, c *Cli) error) error {
	c, err := a.open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		a.cache.Close()
		a.closeStore(c.logger, a.store)
	}()
	return fn(cmd.Context(), c)
}

// NewRootCmd строит дерево команд patientdesk
func NewRootCmd(info BuildInfo, stdio iocli.IO) *cobra.Command {
	a := &app{io: stdio, opts: &rootOptions{}}

	root := &cobra.Command{
		Use:           "patientdesk",
		Short:         "Patient dashboard client",
		Long:          "patientdesk lists, shows and edits patients of a patient dashboard REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdio)

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.configPath, "config", "", "path to config file (default: ./patientdesk.yaml or ~/.config/patientdesk/)")
	pf.StringVar(&a.opts.server, "server", config.DefaultAPIBaseURL, "API base URL")
	pf.StringVar(&a.opts.db, "db", config.DefaultCachePath, "path to local cache database")
	pf.StringVar(&a.opts.logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&a.opts.askCacheKey, "ask-cache-key", false, "prompt for the cache encryption key")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newFieldsCmd(a),
		newEditCmd(a),
		newCreateCmd(a),
		newBrowseCmd(a),
		newCacheCmd(a),
		newStatusCmd(a),
		newVersionCmd(info, stdio),
	)
	return root
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *Cli) error {
				return c.runList(ctx, opts)
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.page, "page", 1, "page number")
	f.StringVar(&opts.status, "status", "", "filter by status (inquiry, onboarding, active, churned)")
	f.StringVar(&opts.city, "city", "", "filter by city")
	f.StringVar(&opts.state, "state", "", "filter by state")
	f.StringVar(&opts.search, "search", "", "search by name")
	f.StringVar(&opts.sort, "sort", "", "sort column (name, status, location, age, last_visit)")
	f.BoolVar(&opts.desc, "desc", false, "sort in descending order")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show patient details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *Cli) error {
				return c.runShow(ctx, id)
			})
		},
	}
}

func newFieldsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Manage custom field definitions",
	}

	var refresh bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List custom fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *Cli) error {
				return c.runFieldsList(ctx, refresh)
			})
		},
	}
	list.Flags().BoolVar(&refresh, "refresh", false, "reload from the server, bypassing the cache")

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a custom field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *Cli) error {
				return c.runFieldsAdd(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(list, add)
	return cmd
}

const editExample = `  patientdesk edit 42 --set first_name=Ada --set Allergies=none
  echo 'status=active' | patientdesk edit 42`

func newEditCmd(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Edit a patient",
		Long:    "Edit a patient. Without --set, reads commands from the input:\n\n" + editHelp,
		Example: editExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *Cli) error {
				return c.runEdit(ctx, id, sets)
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field assignment name=value (repeatable)")
	return cmd
}

const createExample = `  patientdesk create --set first_name=Ada --set last_name=Byron --set date_of_birth=1990-12-10
  patientdesk create --set first_name=Ada --set last_name=Byron --set date_of_birth=1990-12-10 \
    --set addresses[0].address_line1="1 Main St" --set addresses[0].city=Austin \
    --set addresses[0].state=TX --set addresses[0].postal_code=73301 --set Allergies=none`

func newCreateCmd(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a patient",
		Long:    "Create a patient. Without --set, asks for the required fields.\nFields use the same names as in edit.",
		Example: createExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *Cli) error {
				return c.runCreate(ctx, sets)
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field assignment name=value (repeatable)")
	return cmd
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse patients interactively",
		Long:  "Browse patients interactively.\n\n" + browseHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *Cli) error {
				return c.runBrowse(ctx)
			})
		},
	}
}

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local response cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *Cli) error {
				return c.runCacheClear(ctx)
			})
		},
	})
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and cache status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *Cli) error {
				return c.runStatus(ctx)
			})
		},
	}
}

func newVersionCmd(info BuildInfo, stdio iocli.IO) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			printVersion(stdio, info)
		},
	}
}

func printVersion(out iocli.IO, info BuildInfo) {
	out.Printf("PatientDesk Client\n")
	out.Printf("Version:    %s\n", info.Version)
	out.Printf("Build Date: %s\n", info.BuildDate)
	out.Printf("Git Commit: %s\n", info.GitCommit)
}
