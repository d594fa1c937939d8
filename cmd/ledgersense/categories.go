package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ledgersense/ledgersense/internal/cli"
	"github.com/ledgersense/ledgersense/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Inspect spending categories and their keywords",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(keywordsCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(cli.TitleStyle.Render("Categories"))
			for _, cat := range model.Categories {
				if cat == model.DefaultCategory {
					fmt.Println("  " + cat + cli.SubtleStyle.Render("  (fallback)"))
					continue
				}
				fmt.Println("  " + cat)
			}
		},
	}
}

func keywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords [category]",
		Short: "Show the keywords behind one or all categories",
		Long: `Display the lexicon driving classification: seed keywords plus
anything learned from feedback. With no argument, every category is
shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := model.Categories
			if len(args) == 1 {
				if !model.IsValidCategory(args[0]) {
					return fmt.Errorf("unknown category %q, valid categories: %s",
						args[0], strings.Join(model.Categories, ", "))
				}
				categories = []string{args[0]}
			}

			e, store, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "CATEGORY\tKEYWORDS")
			for _, cat := range categories {
				keywords := e.CategoryKeywords(cat)
				fmt.Fprintf(w, "%s\t%s\n", cat, strings.Join(keywords, ", "))
			}
			return nil
		},
	}
}
