package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/facturation/facturation"
	"github.com/s0up4200/facturation/filter"
)

var (
	customerList listOptions
	customerFile string
)

// customersCmd groups customer commands
var customersCmd = &cobra.Command{
	Use:     "customers",
	Aliases: []string{"customer"},
	Short:   "List, show and create customers",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers of the selected firm",
	Long: `List one page of the firm's customers.

--filter takes an expression such as 'hasText(Name, "acme") && Country == "FR"'
or the name of a filter defined under filters: in the config file.`,
	Args: cobra.NoArgs,
	RunE: runCustomersList,
}

var customersGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomersGet,
}

var customersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer from a JSON document",
	Args:  cobra.NoArgs,
	RunE:  runCustomersCreate,
}

func init() {
	rootCmd.AddCommand(customersCmd)
	customersCmd.AddCommand(customersListCmd, customersGetCmd, customersCreateCmd)

	customersListCmd.Flags().StringVarP(&customerList.filter, "filter", "f", "", "filter expression or named filter")
	customersListCmd.Flags().IntVar(&customerList.page, "page", 0, "page to fetch")
	customersListCmd.Flags().StringToStringVarP(&customerList.query, "query", "q", nil, "extra query parameters (key=value)")
	customersCreateCmd.Flags().StringVar(&customerFile, "file", "", "JSON document (default stdin)")
}

func runCustomersList(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}
	f, err := customerList.resolveFilter()
	if err != nil {
		return err
	}

	customers, err := client.ListCustomers(context.Background(), id, customerList.params())
	if err != nil {
		return err
	}
	customers = filter.Apply(f, customers)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, customers)
	}

	if len(customers) == 0 {
		fmt.Fprintln(out, "No customers found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d customers:\n", len(customers))
	for _, c := range customers {
		fmt.Fprintf(out, "  • %s (ID: %d)", c.GetDisplayName(), c.ID)
		if c.City != "" {
			fmt.Fprintf(out, " %s", c.City)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runCustomersGet(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}
	customerID, err := parseID("customer", args[0])
	if err != nil {
		return err
	}

	customer, err := client.GetCustomer(context.Background(), id, customerID)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), customer)
}

func runCustomersCreate(cmd *cobra.Command, args []string) error {
	id, err := requireFirm()
	if err != nil {
		return err
	}

	var customer facturation.Customer
	if err := readDocument(customerFile, cmd.InOrStdin(), &customer); err != nil {
		return err
	}

	created, err := client.CreateCustomer(context.Background(), id, &customer)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), created)
}
