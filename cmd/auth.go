package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	authState    string
	refreshToken string
)

// authCmd groups the OAuth2 commands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Obtain and refresh OAuth2 tokens",
	Long: `Run the OAuth2 authorization-code flow against facturation.pro.

Tokens are printed to stdout and never stored. Put the access and refresh
tokens in oauth.access_token and oauth.refresh_token (or the matching
FACTURATION_ environment variables) to use them in later runs.`,
}

var authURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the authorization URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), client.AuthCodeURL(authState))
		return nil
	},
}

var authExchangeCmd = &cobra.Command{
	Use:   "exchange CODE",
	Short: "Exchange an authorization code for a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := client.Exchange(context.Background(), args[0])
		if err != nil {
			return err
		}
		logger.Info().Time("expiry", token.Expiry).Msg("Authorization code exchanged")
		return printJSON(cmd.OutOrStdout(), token)
	},
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the configured token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := refreshToken
		if rt == "" {
			rt = cfg.OAuth.RefreshToken
		}
		if rt == "" {
			return fmt.Errorf("no refresh token: pass --refresh-token or set oauth.refresh_token")
		}

		token, err := client.RefreshToken(context.Background(), rt)
		if err != nil {
			return err
		}
		logger.Info().Time("expiry", token.Expiry).Msg("Token refreshed")
		return printJSON(cmd.OutOrStdout(), token)
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authURLCmd, authExchangeCmd, authRefreshCmd)

	authURLCmd.Flags().StringVar(&authState, "state", "", "state parameter (random when empty)")
	authRefreshCmd.Flags().StringVar(&refreshToken, "refresh-token", "", "refresh token (defaults to oauth.refresh_token)")
}
