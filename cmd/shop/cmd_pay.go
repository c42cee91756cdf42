package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/phonestore/storefront/internal/domain"
	"github.com/phonestore/storefront/internal/payment"
	"github.com/phonestore/storefront/internal/service"
	"github.com/phonestore/storefront/internal/tui"
)

var (
	payInterval    time.Duration
	payMaxAttempts int
)

var payStatusCmd = &cobra.Command{
	Use:   "pay-status <order-code>",
	Short: "Follow an online payment until it settles",
	Long: `Polls the payment status of an order every interval until it is
CAPTURED, FAILED or CANCELED, or the attempt budget runs out. Run it again
to retry with a fresh budget. Ctrl+C stops polling.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		sess, err := shop.currentSession(ctx)
		if err != nil {
			return err
		}

		cfg := shop.cfg.Payment
		if cmd.Flags().Changed("interval") {
			cfg.PollInterval = payInterval
		}
		if cmd.Flags().Changed("max-attempts") {
			cfg.PollMaxAttempts = payMaxAttempts
		}

		out := cmd.OutOrStdout()
		payments := service.NewPaymentService(shop.client, cfg, nil, shop.log)
		snap := payments.Await(ctx, sess, args[0], func(s payment.Snapshot) {
			if s.State == domain.PaymentStateLoading {
				fmt.Fprintf(out, "⏳ Checking payment for %s...\n", s.OrderCode)
				return
			}
			fmt.Fprintf(out, "  [%2d/%d] %s\n", s.Attempts, cfg.PollMaxAttempts, s.State)
		})

		fmt.Fprintln(out)
		switch {
		case snap.State == domain.PaymentStateCaptured:
			if snap.Amount != nil {
				fmt.Fprintf(out, "✅ %s (%s)\n", snap.Message, tui.FormatVND(*snap.Amount))
			} else {
				fmt.Fprintf(out, "✅ %s\n", snap.Message)
			}
		case snap.Exhausted:
			fmt.Fprintf(out, "⏸  %s\n   Run `shop pay-status %s` to check again.\n", snap.Message, snap.OrderCode)
		default:
			fmt.Fprintf(out, "❌ %s\n", snap.Message)
		}

		if snap.State == domain.PaymentStateError {
			return fmt.Errorf("payment status unavailable")
		}
		return nil
	},
}

func init() {
	payStatusCmd.Flags().DurationVar(&payInterval, "interval", payment.DefaultPollInterval, "time between status checks")
	payStatusCmd.Flags().IntVar(&payMaxAttempts, "max-attempts", payment.DefaultMaxAttempts, "status checks before giving up")
}
