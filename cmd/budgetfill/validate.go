package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajack/budgetfill"
	"github.com/javajack/budgetfill/internal/cli"
)

var errTemplateInvalid = errors.New("template does not match the layout")

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the template against the configured layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			issues, err := a.filler().Validate()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintln(out, cli.FormatSuccess("template OK: "+a.cfg.Template.Path))
				return nil
			}
			if err := budgetfill.WriteIssues(out, issues); err != nil {
				return err
			}
			if budgetfill.HasErrors(issues) {
				return errTemplateInvalid
			}
			return nil
		},
	}
}
