package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/facturation/facturation"
	"github.com/s0up4200/facturation/filter"
)

var (
	invoiceList   listOptions
	invoiceFile   string
	invoiceOutput string
)

// invoicesCmd groups invoice commands
var invoicesCmd = &cobra.Command{
	Use:     "invoices",
	Aliases: []string{"invoice"},
	Short:   "List, show, create and download invoices",
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices of the selected firm",
	Long: `List one page of the firm's invoices.

--filter takes an expression such as 'Total > 100 && !Paid' or
'InvoicedOn < daysAgo(30) && Balance > 0', or the name of a filter defined
under filters: in the config file.`,
	Args: cobra.NoArgs,
	RunE: runInvoicesList,
}

var invoicesGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show an invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesGet,
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice from a JSON document",
	Args:  cobra.NoArgs,
	RunE:  runInvoicesCreate,
}

var invoicesPDFCmd = &cobra.Command{
	Use:   "pdf ID",
	Short: "Download an invoice as PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesPDF,
}

func init() {
	rootCmd.AddCommand(invoicesCmd)
	invoicesCmd.AddCommand(invoicesListCmd, invoicesGetCmd, invoicesCreateCmd, invoicesPDFCmd)

	invoicesListCmd.Flags().StringVarP(&invoiceList.filter, "filter", "f", "", "filter expression or named filter")
	invoicesListCmd.Flags().IntVar(&invoiceList.page, "page", 0, "page to fetch")
	invoicesListCmd.Flags().StringToStringVarP(&invoiceList.query, "query", "q", nil, "extra query parameters (key=value)")
	invoicesCreateCmd.Flags().StringVar(&invoiceFile, "file", "", "JSON document (default stdin)")
	invoicesPDFCmd.Flags().StringVarP(&invoiceOutput, "output", "o", "", "output file (default invoice-ID.pdf)")
}

func runInvoicesList(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}
	f, err := invoiceList.resolveFilter()
	if err != nil {
		return err
	}

	invoices, err := client.ListInvoices(context.Background(), id, invoiceList.params())
	if err != nil {
		return err
	}
	invoices = filter.Apply(f, invoices)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, invoices)
	}

	if len(invoices) == 0 {
		fmt.Fprintln(out, "No invoices found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d invoices:\n", len(invoices))
	for _, inv := range invoices {
		fmt.Fprintf(out, "  • %s %s %s", inv.Ref, inv.InvoicedOn, inv.Total.StringFixed(2))
		if inv.Currency != "" {
			fmt.Fprintf(out, " %s", inv.Currency)
		}
		if inv.IsPaid() {
			fmt.Fprintf(out, " [PAID %s]", inv.PaidOn)
		} else if inv.Balance.IsPositive() {
			fmt.Fprintf(out, " [DUE %s]", inv.Balance.StringFixed(2))
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runInvoicesGet(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}
	invoiceID, err := parseID("invoice", args[0])
	if err != nil {
		return err
	}

	invoice, err := client.GetInvoice(context.Background(), id, invoiceID)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), invoice)
}

func runInvoicesCreate(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}

	var invoice facturation.Invoice
	if err := readDocument(invoiceFile, cmd.InOrStdin(), &invoice); err != nil {
		return err
	}

	created, err := client.CreateInvoice(context.Background(), id, &invoice)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), created)
}

func runInvoicesPDF(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}
	invoiceID, err := parseID("invoice", args[0])
	if err != nil {
		return err
	}

	pdf, err := client.DownloadInvoicePDF(context.Background(), id, invoiceID)
	if err != nil {
		return err
	}

	path := invoiceOutput
	if path == "" {
		path = fmt.Sprintf("invoice-%d.pdf", invoiceID)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info().Str("path", path).Int("bytes", len(pdf)).Msg("Invoice PDF saved")
	return nil
}
