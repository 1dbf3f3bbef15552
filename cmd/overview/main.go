package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/overview/internal/config"
	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/launcher"
	"github.com/pders01/overview/internal/plugins"
	"github.com/pders01/overview/internal/plugins/builtin"
	"github.com/pders01/overview/internal/storage"
	"github.com/pders01/overview/internal/tui"
	"github.com/pders01/overview/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	cfgFile   string
	dbPath    string
	indexPath string
	logLevel  string
	quiet     bool
	hidden    bool
)

var rootCmd = &cobra.Command{
	Use:          "overview",
	Short:        "A keyboard-driven activities overview with find-as-you-type search",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runOverview(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "overview %s\n", Version)
		fmt.Fprintln(out, "activities overview and search")
		fmt.Fprintln(out, "github.com/pders01/overview")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Write the default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := validation.DefaultConfigPath()
		if len(args) == 1 {
			expanded, err := validation.ExpandPath(args[0])
			if err != nil {
				return err
			}
			path = expanded
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			return fmt.Errorf("generating config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated default configuration at: %s\n", path)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed [catalog.toml]",
	Short: "Load catalog items into the database",
	Long:  "Load the bundled catalog, or the given TOML catalog, into the database. Items with the same id are replaced.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := storage.NewStore(cfg.Database.Path, cfg.Database.Timeout)
		if err != nil {
			return err
		}
		defer store.Close()

		var n int
		if len(args) == 1 {
			n, err = loadCatalogFile(store, args[0])
		} else {
			n, err = seedDefault(store)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d items into %s\n", n, cfg.Database.Path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&indexPath, "index", "", "Path to the document search index (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Skip startup banner")
	rootCmd.Flags().BoolVar(&hidden, "hidden", false, "Start with the overview closed")

	configCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(versionCmd, configCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	overrides := []struct {
		flag string
		dst  *string
	}{
		{dbPath, &cfg.Database.Path},
		{indexPath, &cfg.Database.SearchIndex},
	}
	for _, o := range overrides {
		if o.flag == "" {
			continue
		}
		expanded, err := validation.ExpandPath(o.flag)
		if err != nil {
			return nil, err
		}
		*o.dst = expanded
	}
	if logLevel != "" {
		cfg.Log.Level = strings.ToUpper(logLevel)
	}
	return cfg, nil
}

func loadCatalogFile(store *storage.Store, path string) (int, error) {
	expanded, err := validation.ExpandPath(path)
	if err != nil {
		return 0, err
	}
	f, err := os.Open(expanded)
	if err != nil {
		return 0, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return store.LoadCatalog(f)
}

func seedDefault(store *storage.Store) (int, error) {
	cat, err := storage.DefaultCatalog()
	if err != nil {
		return 0, err
	}
	if err := store.SaveItems(cat.Items); err != nil {
		return 0, fmt.Errorf("saving catalog: %w", err)
	}
	return len(cat.Items), nil
}

// seedIfEmpty loads the bundled catalog into a fresh database.
func seedIfEmpty(store *storage.Store) error {
	total := 0
	for _, kind := range []storage.Kind{storage.KindApplication, storage.KindPlace, storage.KindDocument} {
		n, err := store.Count(kind)
		if err != nil {
			return err
		}
		total += n
	}
	if total > 0 {
		return nil
	}
	n, err := seedDefault(store)
	if err != nil {
		return err
	}
	debuglog.Infof("seeded %d catalog items", n)
	return nil
}

func runOverview(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.File); err != nil {
		return err
	}
	defer debuglog.Close()

	if !quiet {
		tui.ShowBanner(cmd.OutOrStdout(), Version)
	}

	store, err := storage.NewStore(cfg.Database.Path, cfg.Database.Timeout)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := seedIfEmpty(store); err != nil {
		return err
	}

	l := launcher.New(cfg.Launcher)

	registry := plugins.NewRegistry()
	builtin.Register(registry)
	providers := registry.Build(plugins.Env{
		Store:     store,
		Launcher:  l,
		IndexPath: cfg.Database.SearchIndex,
	}, cfg.Search.DisabledProviders)
	defer func() {
		if err := providers.Close(); err != nil {
			debuglog.Warnf("closing providers: %v", err)
		}
	}()

	tui.ApplyColors(cfg.UI.Colors)
	app := tui.NewApp(tui.Options{
		Config:    cfg,
		Store:     store,
		Launcher:  l,
		Providers: providers.List,
		Hidden:    hidden,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running overview: %w", err)
	}
	return nil
}
