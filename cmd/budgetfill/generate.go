package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javajack/budgetfill"
	"github.com/javajack/budgetfill/internal/cli"
	"github.com/javajack/budgetfill/internal/history"
	"github.com/javajack/budgetfill/internal/selection"
)

type generateOptions struct {
	selections string
	occurrence string
	estimator  string
	output     string
	noHistory  bool
}

func (a *app) generateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fill the budget template for one occurrence",
		Long: `Resolve the selected items against the catalog, price them and write the
filled budget spreadsheet. Each generated document is recorded in the history log.`,
		Example: `  budgetfill generate -s itens.yaml --rat 123456 --estimator "Ana Souza"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.selections, "selections", "s", "", "selection file (.yaml or .csv)")
	cmd.Flags().StringVar(&opts.occurrence, "rat", "", "occurrence (RAT) number")
	cmd.Flags().StringVar(&opts.estimator, "estimator", "", "name of the estimator")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: output.dir/output.filename_pattern)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not record the document in the history log")
	_ = cmd.MarkFlagRequired("selections")
	_ = cmd.MarkFlagRequired("rat")
	_ = cmd.MarkFlagRequired("estimator")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts generateOptions) error {
	out := cmd.OutOrStdout()
	if strings.TrimSpace(opts.occurrence) == "" || strings.TrimSpace(opts.estimator) == "" {
		return errors.New("both --rat and --estimator must be non-empty")
	}

	sels, err := selection.Load(opts.selections)
	if err != nil {
		return err
	}
	catalog, err := a.loadCatalog()
	if err != nil {
		return err
	}

	filler := a.filler(budgetfill.WithWriteListener(cellLogger(a.logger)))
	data, result, err := filler.Generate(sels, catalog)
	if errors.Is(err, budgetfill.ErrNoValidSelections) {
		a.logger.Warn("no document generated", zap.Int("submitted", result.Stats.Submitted))
		fmt.Fprintln(out, cli.FormatWarning("Nenhum item válido foi selecionado; nenhuma planilha gerada."))
		return nil
	}
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = a.cfg.OutputPath(opts.occurrence)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.logger.Info("budget written", zap.String("path", path), zap.Int("bytes", len(data)))

	if !opts.noHistory {
		entry := history.Entry{
			Occurrence: strings.TrimSpace(opts.occurrence),
			Estimator:  strings.TrimSpace(opts.estimator),
			Time:       a.now(),
		}
		if err := history.Append(a.cfg.History.Path, entry); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, cli.FormatSuccess("Planilha gerada: "+path))
	fmt.Fprintf(out, "Itens: %d de %d", result.Stats.Accepted-result.Stats.Overflow, result.Stats.Submitted)
	if d := result.Stats.Dropped(); d > 0 {
		fmt.Fprintf(out, " (%d descartados)", d)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total geral: %s\n", budgetfill.FormatMoney(result.Total))
	fmt.Fprintf(out, "Total com BDI: %s\n", budgetfill.FormatMoney(result.TotalWithMarkup))
	return nil
}

// cellLogger traces every cell write at debug level.
func cellLogger(logger *zap.Logger) budgetfill.WriteListener {
	return budgetfill.WriteListenerFuncs{
		After: func(ref budgetfill.CellRef, value any, written bool, _ *budgetfill.Workbook) {
			if ce := logger.Check(zap.DebugLevel, "cell"); ce != nil {
				ce.Write(zap.String("ref", ref.String()), zap.Any("value", value), zap.Bool("written", written))
			}
		},
	}
}
