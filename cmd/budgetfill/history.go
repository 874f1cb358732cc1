package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/javajack/budgetfill/internal/cli"
	"github.com/javajack/budgetfill/internal/history"
)

func (a *app) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := history.Read(a.cfg.History.Path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, cli.FormatSubtle("no budgets generated yet"))
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render(history.Header[0]),
				cli.TableHeaderStyle.Render(history.Header[1]),
				cli.TableHeaderStyle.Render(history.Header[2]))
			for _, e := range entries {
				ts := ""
				if !e.Time.IsZero() {
					ts = e.Time.Format(history.TimeLayout)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Occurrence, e.Estimator, ts)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent entries")
	return cmd
}
