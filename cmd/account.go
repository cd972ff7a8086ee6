package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// accountCmd shows the authenticated account
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the account and its firms",
	Args:  cobra.NoArgs,
	RunE:  runAccount,
}

// snapshotCmd summarises a firm
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch a firm with its customers, invoices and credits",
	Args:  cobra.NoArgs,
	RunE:  runSnapshot,
}

// ratelimitCmd reports the tracked rate-limit budget
var ratelimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Show the remaining API rate-limit budget",
	Long: `Issue one cheap request and report the rate-limit budget the API returned.
The budget resets after a minute without requests.`,
	Args: cobra.NoArgs,
	RunE: runRateLimit,
}

func init() {
	rootCmd.AddCommand(accountCmd, snapshotCmd, ratelimitCmd)
}

func runAccount(cmd *cobra.Command, args []string) error {
	account, err := client.GetAccount(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, account)
	}

	fmt.Fprintf(out, "Account %d: %s\n", account.ID, account.Email)
	if len(account.Firms) == 0 {
		fmt.Fprintln(out, "No firms attached to this account.")
		return nil
	}

	fmt.Fprintf(out, "\nFirms:\n")
	for _, firm := range account.Firms {
		fmt.Fprintf(out, "  • %s (ID: %d)", firm.Name, firm.ID)
		if firm.Currency != "" {
			fmt.Fprintf(out, " [%s]", firm.Currency)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}

	snapshot, err := client.Snapshot(context.Background(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, snapshot)
	}

	paid := 0
	for i := range snapshot.Invoices {
		if snapshot.Invoices[i].IsPaid() {
			paid++
		}
	}

	fmt.Fprintf(out, "%s (ID: %d)\n", snapshot.Firm.Name, snapshot.Firm.ID)
	fmt.Fprintf(out, "- Customers: %d\n", len(snapshot.Customers))
	fmt.Fprintf(out, "- Invoices: %d (%d paid)\n", len(snapshot.Invoices), paid)
	fmt.Fprintf(out, "- Credits: %d\n", len(snapshot.Credits))
	fmt.Fprintf(out, "- Outstanding: %s %s\n", snapshot.Outstanding().StringFixed(2), snapshot.Firm.Currency)
	fmt.Fprintf(out, "\nRate limit remaining: %d\n", client.RateLimiter().Remaining())
	return nil
}

func runRateLimit(cmd *cobra.Command, args []string) error {
	if err := client.TestConnection(context.Background()); err != nil {
		return err
	}

	limiter := client.RateLimiter()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Remaining: %d\n", limiter.Remaining())
	fmt.Fprintf(out, "Last request: %s\n", limiter.LastRequestAt().Format("2006-01-02 15:04:05"))
	return nil
}
