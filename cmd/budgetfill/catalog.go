package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/javajack/budgetfill"
	"github.com/javajack/budgetfill/internal/cli"
)

func (a *app) catalogCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the reference catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			buckets := budgetfill.Buckets
			if category != "" {
				b, ok := budgetfill.ParseBucketKey(category)
				if !ok {
					return fmt.Errorf("unknown category %q: want civil, electrical or mechanical", category)
				}
				buckets = []budgetfill.Bucket{b}
			}

			catalog, err := a.loadCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, b := range buckets {
				rows := catalog.RowsIn(b)
				fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s (%d)", b.Label(), len(rows))))

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					cli.TableHeaderStyle.Render("ITEM"),
					cli.TableHeaderStyle.Render("GRUPO"),
					cli.TableHeaderStyle.Render("DESCRIÇÃO"),
					cli.TableHeaderStyle.Render("UNID."),
					cli.TableHeaderStyle.Render("MATERIAL"),
					cli.TableHeaderStyle.Render("MÃO DE OBRA"))
				for _, r := range rows {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ItemID, r.Group, r.Description, r.Unit,
						budgetfill.FormatMoney(r.Material), budgetfill.FormatMoney(r.Labor))
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
			if n := catalog.Skipped(); n > 0 {
				fmt.Fprintln(out, cli.FormatSubtle(fmt.Sprintf("%d row(s) skipped: unknown category or blank item", n)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list one category (civil, electrical, mechanical)")
	return cmd
}
