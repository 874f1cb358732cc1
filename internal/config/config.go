// Package config loads budgetfill settings through viper: a YAML file,
// BUDGETFILL_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/javajack/budgetfill"
	"github.com/javajack/budgetfill/internal/logging"
)

// EnvPrefix is the prefix of environment overrides, e.g. BUDGETFILL_CATALOG_PATH.
const EnvPrefix = "BUDGETFILL"

// Configuration errors.
var (
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Block is the row range of one category.
type Block struct {
	Start    int `mapstructure:"start"`
	End      int `mapstructure:"end"`
	Subtotal int `mapstructure:"subtotal"`
}

// Layout mirrors budgetfill.Layout in configuration form.
type Layout struct {
	Sheet          string `mapstructure:"sheet"`
	Civil          Block  `mapstructure:"civil"`
	Electrical     Block  `mapstructure:"electrical"`
	Mechanical     Block  `mapstructure:"mechanical"`
	GrandTotalRow  int    `mapstructure:"grand_total_row"`
	MarkupTotalRow int    `mapstructure:"markup_total_row"`
}

// Config holds every setting of the command.
type Config struct {
	Catalog struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"catalog"`
	Template struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"template"`
	Output struct {
		Dir             string `mapstructure:"dir"`
		FilenamePattern string `mapstructure:"filename_pattern"`
	} `mapstructure:"output"`
	History struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"history"`
	Layout  Layout         `mapstructure:"layout"`
	Logging logging.Config `mapstructure:"logging"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	d := budgetfill.DefaultLayout()
	v.SetDefault("catalog.path", "referencia.xlsx")
	v.SetDefault("template.path", "modelo.xlsx")
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.filename_pattern", "Planilha Orçamentária - Ocorrência%s.xlsx")
	v.SetDefault("history.path", "log_orcamentos.csv")
	v.SetDefault("layout.sheet", d.Sheet)
	for _, b := range d.Blocks {
		key := "layout." + b.Bucket.Key()
		v.SetDefault(key+".start", b.StartRow)
		v.SetDefault(key+".end", b.EndRow)
		v.SetDefault(key+".subtotal", b.SubtotalRow)
	}
	v.SetDefault("layout.grand_total_row", d.GrandTotalRow)
	v.SetDefault("layout.markup_total_row", d.MarkupTotalRow)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init points v at a config file (or the standard search paths when file is
// empty), enables environment overrides and reads the file if present.
func Init(v *viper.Viper, file string) error {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(ExpandPath(file))
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "budgetfill"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("budgetfill")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Catalog.Path = ExpandPath(cfg.Catalog.Path)
	cfg.Template.Path = ExpandPath(cfg.Template.Path)
	cfg.Output.Dir = ExpandPath(cfg.Output.Dir)
	cfg.History.Path = ExpandPath(cfg.History.Path)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required settings and the layout.
func (c Config) Validate() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("%w: catalog.path", ErrMissingConfig)
	}
	if c.Template.Path == "" {
		return fmt.Errorf("%w: template.path", ErrMissingConfig)
	}
	if strings.Count(c.Output.FilenamePattern, "%s") != 1 {
		return fmt.Errorf("%w: output.filename_pattern must contain exactly one %%s", ErrInvalidConfig)
	}
	if err := c.BudgetLayout().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// BudgetLayout converts the layout section to a budgetfill.Layout.
func (c Config) BudgetLayout() budgetfill.Layout {
	block := func(b budgetfill.Bucket, cfg Block) budgetfill.CategoryBlock {
		return budgetfill.CategoryBlock{Bucket: b, StartRow: cfg.Start, EndRow: cfg.End, SubtotalRow: cfg.Subtotal}
	}
	return budgetfill.Layout{
		Sheet: c.Layout.Sheet,
		Blocks: []budgetfill.CategoryBlock{
			block(budgetfill.Civil, c.Layout.Civil),
			block(budgetfill.Electrical, c.Layout.Electrical),
			block(budgetfill.Mechanical, c.Layout.Mechanical),
		},
		GrandTotalRow:  c.Layout.GrandTotalRow,
		MarkupTotalRow: c.Layout.MarkupTotalRow,
	}
}

// OutputPath builds the document path for an occurrence number.
func (c Config) OutputPath(occurrence string) string {
	name := fmt.Sprintf(c.Output.FilenamePattern, strings.TrimSpace(occurrence))
	return filepath.Join(c.Output.Dir, SafeFileName(name))
}
