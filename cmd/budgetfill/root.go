package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/javajack/budgetfill"
	"github.com/javajack/budgetfill/internal/config"
	"github.com/javajack/budgetfill/internal/logging"
)

// app carries the state shared by all subcommands once the root command has
// loaded configuration.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
	now     func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop(), now: time.Now}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgetfill",
		Short: "Construction budget generator",
		Long: `budgetfill prices the items selected for a maintenance occurrence against the
reference catalog and fills the budget spreadsheet template with the result.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./budgetfill.yaml or $HOME/.config/budgetfill/budgetfill.yaml)")
	flags.String("catalog", "", "reference catalog (.xlsx or .csv)")
	flags.String("template", "", "budget template (.xlsx)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	_ = a.v.BindPFlag("catalog.path", flags.Lookup("catalog"))
	_ = a.v.BindPFlag("template.path", flags.Lookup("template"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	cmd.AddCommand(a.generateCmd())
	cmd.AddCommand(a.describeCmd())
	cmd.AddCommand(a.validateCmd())
	cmd.AddCommand(a.catalogCmd())
	cmd.AddCommand(a.historyCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("config_file", a.v.ConfigFileUsed()),
		zap.String("catalog", cfg.Catalog.Path),
		zap.String("template", cfg.Template.Path))
	return nil
}

// filler builds a Filler from the loaded configuration.
func (a *app) filler(extra ...budgetfill.Option) *budgetfill.Filler {
	opts := []budgetfill.Option{
		budgetfill.WithTemplate(a.cfg.Template.Path),
		budgetfill.WithLayout(a.cfg.BudgetLayout()),
		budgetfill.WithLogger(a.logger),
	}
	return budgetfill.NewFiller(append(opts, extra...)...)
}

func (a *app) loadCatalog() (*budgetfill.Catalog, error) {
	catalog, err := budgetfill.LoadCatalog(a.cfg.Catalog.Path, nil)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("catalog loaded",
		zap.String("path", a.cfg.Catalog.Path),
		zap.Int("rows", catalog.Len()),
		zap.Int("skipped", catalog.Skipped()))
	return catalog, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "budgetfill %s\n", version)
		},
	}
}
