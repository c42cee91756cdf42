package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/phonestore/storefront/internal/search"
	"github.com/phonestore/storefront/internal/service"
	"github.com/phonestore/storefront/internal/tui"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Interactive search-as-you-type with keyboard navigation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := service.NewCatalogService(shop.client, nil, shop.cfg.Search, nil, shop.log)

		box := search.NewBox(catalog.Suggestions,
			search.WithDelay(shop.cfg.Search.Debounce),
			search.WithMinLength(shop.cfg.Search.MinLength),
			search.WithLogger(shop.log),
		)
		defer box.Stop()

		final, err := tea.NewProgram(tui.Program{SearchModel: tui.NewSearchModel(box)}).Run()
		if err != nil {
			return fmt.Errorf("search box failed: %w", err)
		}

		out := final.(tui.Program).Outcome()
		switch out.Kind {
		case search.ActionSelect:
			fmt.Fprintf(cmd.OutOrStdout(), "%s  (%s, %s)\n", out.Path, out.Suggestion.Name, tui.FormatVND(out.Suggestion.Price))
		case search.ActionSubmit:
			fmt.Fprintln(cmd.OutOrStdout(), out.Path)
		}
		return nil
	},
}
