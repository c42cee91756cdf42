package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phonestore/storefront/internal/search"
	"github.com/phonestore/storefront/internal/service"
	"github.com/phonestore/storefront/internal/tui"
)

var findCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Run one product search and print the suggestions",
	Example: `  shop find "iphone 15"
  shop find galaxy`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		catalog := service.NewCatalogService(shop.client, nil, shop.cfg.Search, nil, shop.log)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "🔍 Searching for: %s\n\n", query)

		items, err := catalog.Suggestions(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(out, "❌ No products found")
			return nil
		}

		for _, s := range items {
			fmt.Fprintf(out, "  %-40s %16s  %s\n", s.Name, tui.FormatVND(s.Price), search.ProductPath(s.ID))
		}
		fmt.Fprintf(out, "\n  %s  %s\n", search.ViewAllLabel(query), search.SearchPath(query))
		return nil
	},
}
