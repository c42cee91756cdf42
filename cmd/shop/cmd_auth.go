package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phonestore/storefront/internal/service"
)

var passwordStdin bool

var loginCmd = &cobra.Command{
	Use:   "login <email> [password]",
	Short: "Log in and keep the session for later commands",
	Example: `  shop login an@example.vn
  echo "$PASSWORD" | shop login an@example.vn --password-stdin`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		var password string
		switch {
		case len(args) == 2:
			password = args[1]
		case passwordStdin:
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		default:
			return fmt.Errorf("password required: pass it as an argument or use --password-stdin")
		}

		sess, err := shop.currentSession(cmd.Context())
		if err != nil {
			return err
		}

		account := service.NewAccountService(shop.client, shop.sessions, shop.log)
		user, err := account.Login(cmd.Context(), sess, service.LoginRequest{Email: email, Password: password})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Logged in as %s <%s>\n", user.FullName, user.Email)
		fmt.Fprintf(cmd.OutOrStdout(), "Session saved to %s\n", shop.store.Path())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := shop.currentSession(cmd.Context())
		if err != nil {
			return err
		}
		if !sess.Authenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}

		account := service.NewAccountService(shop.client, shop.sessions, shop.log)
		if err := account.Logout(cmd.Context(), sess); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "👋 Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
}
