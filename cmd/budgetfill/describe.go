package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajack/budgetfill"
	"github.com/javajack/budgetfill/internal/cli"
	"github.com/javajack/budgetfill/internal/selection"
)

func (a *app) describeCmd() *cobra.Command {
	var selections string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show how a selection would be laid out, without writing a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sels, err := selection.Load(selections)
			if err != nil {
				return err
			}
			catalog, err := a.loadCatalog()
			if err != nil {
				return err
			}
			result, err := a.filler().Budget(sels, catalog)
			out := cmd.OutOrStdout()
			if errors.Is(err, budgetfill.ErrNoValidSelections) {
				fmt.Fprintln(out, cli.FormatWarning("Nenhum item válido foi selecionado."))
			} else if err != nil {
				return err
			}
			fmt.Fprint(out, budgetfill.Describe(result))
			return nil
		},
	}
	cmd.Flags().StringVarP(&selections, "selections", "s", "", "selection file (.yaml or .csv)")
	_ = cmd.MarkFlagRequired("selections")
	return cmd
}
