package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/glycemic/internal/catalog"
	"github.com/lehigh-university-libraries/glycemic/internal/filter"
	"github.com/lehigh-university-libraries/glycemic/internal/models"
	"github.com/lehigh-university-libraries/glycemic/internal/results"
)

func newFoodsCmd(opts *options) *cobra.Command {
	var category string
	var search string
	var output string

	cmd := &cobra.Command{
		Use:   "foods",
		Short: "List the foods in a category, or search them by name",
		Long: `Lists the foods of one category in catalog order. With --search the whole
catalog is searched by name instead, ignoring case; a blank search falls back
to the category.`,
		Example: `  # Foods in the default category
  glycemic foods

  # Indian cuisine as CSV
  glycemic foods --category "indian cuisine" --output csv

  # Everything with rice in the name
  glycemic foods --search rice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := filter.View{Category: opts.cfg.DefaultCategory()}
			if category != "" {
				parsed, ok := models.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown category %q", category)
				}
				view = view.WithCategory(parsed)
			}
			view = view.WithQuery(search)

			foods, _, err := opts.loadFoods(cmd.Context())
			if err != nil {
				return err
			}

			return results.WriteFoods(cmd.OutOrStdout(), output, view.Records(foods))
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to list (defaults to catalog.default_category)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search the whole catalog by name")
	cmd.Flags().StringVarP(&output, "output", "o", results.FormatText, "Output format (text, json, csv, yaml)")

	return cmd
}

func newCategoriesCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories with their food counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			foods, _, err := opts.loadFoods(cmd.Context())
			if err != nil {
				return err
			}
			return results.WriteCategories(cmd.OutOrStdout(), output, catalog.CountByCategory(foods), opts.cfg.DefaultCategory())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", results.FormatText, "Output format (text, json, csv, yaml)")

	return cmd
}
