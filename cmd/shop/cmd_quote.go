package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phonestore/storefront/internal/service"
	"github.com/phonestore/storefront/internal/tui"
)

var quoteCmd = &cobra.Command{
	Use:     "quote <price> <plan-id> <tenor-months>",
	Short:   "Quote an installment plan for a price",
	Example: `  shop quote 15990000 hd-saison 6`,
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", args[0])
		}
		tenor, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid tenor %q", args[2])
		}

		installments := service.NewInstallmentService(shop.client, shop.cfg.Installment.PlansTTL, nil, shop.log)
		q, err := installments.Quote(cmd.Context(), service.QuoteRequest{PlanID: args[1], Price: price, Tenor: tenor})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "Price\t%s\t\n", tui.FormatVND(q.Principal))
		fmt.Fprintf(w, "Down payment (%.0f%%)\t%s\t\n", q.DownPaymentPercent, tui.FormatVND(q.PrepayAmount))
		fmt.Fprintf(w, "Loan\t%s\t\n", tui.FormatVND(q.LoanAmount))
		fmt.Fprintf(w, "Monthly (%d × %.2f%%/month)\t%s\t\n", q.Tenor, q.MonthlyRatePercent, tui.FormatVND(q.MonthlyPayment))
		fmt.Fprintf(w, "Total repaid\t%s\t\n", tui.FormatVND(q.TotalPayment))
		fmt.Fprintf(w, "Difference\t%s\t\n", tui.FormatVND(q.PriceDifference))
		return w.Flush()
	},
}
