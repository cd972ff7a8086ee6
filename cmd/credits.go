package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/facturation/facturation"
	"github.com/s0up4200/facturation/filter"
)

var (
	creditList listOptions
	creditFile string
)

// creditsCmd groups credit note commands
var creditsCmd = &cobra.Command{
	Use:     "credits",
	Aliases: []string{"credit"},
	Short:   "List, show and create credit notes",
}

var creditsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List credit notes of the selected firm",
	Args:  cobra.NoArgs,
	RunE:  runCreditsList,
}

var creditsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a credit note",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreditsGet,
}

var creditsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a credit note from a JSON document",
	Args:  cobra.NoArgs,
	RunE:  runCreditsCreate,
}

func init() {
	rootCmd.AddCommand(creditsCmd)
	creditsCmd.AddCommand(creditsListCmd, creditsGetCmd, creditsCreateCmd)

	creditsListCmd.Flags().StringVarP(&creditList.filter, "filter", "f", "", "filter expression or named filter")
	creditsListCmd.Flags().IntVar(&creditList.page, "page", 0, "page to fetch")
	creditsListCmd.Flags().StringToStringVarP(&creditList.query, "query", "q", nil, "extra query parameters (key=value)")
	creditsCreateCmd.Flags().StringVar(&creditFile, "file", "", "JSON document (default stdin)")
}

func runCreditsList(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}
	f, err := creditList.resolveFilter()
	if err != nil {
		return err
	}

	credits, err := client.ListCredits(context.Background(), id, creditList.params())
	if err != nil {
		return err
	}
	credits = filter.Apply(f, credits)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, credits)
	}

	if len(credits) == 0 {
		fmt.Fprintln(out, "No credit notes found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d credit notes:\n", len(credits))
	for _, cr := range credits {
		fmt.Fprintf(out, "  • %s %s %s", cr.Ref, cr.CreditedOn, cr.Total.StringFixed(2))
		if cr.InvoiceID != 0 {
			fmt.Fprintf(out, " (invoice %d)", cr.InvoiceID)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runCreditsGet(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}
	creditID, err := parseID("credit", args[0])
	if err != nil {
		return err
	}

	credit, err := client.GetCredit(context.Background(), id, creditID)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), credit)
}

func runCreditsCreate(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}

	var credit facturation.Credit
	if err := readDocument(creditFile, cmd.InOrStdin(), &credit); err != nil {
		return err
	}

	created, err := client.CreateCredit(context.Background(), id, &credit)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), created)
}
