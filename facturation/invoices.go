package facturation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListInvoices retrieves one page of a firm's invoices
func (c *Client) ListInvoices(ctx context.Context, firmID int64, params url.Values) ([]Invoice, error) {
	var invoices []Invoice
	if err := c.getJSON(ctx, firmPath(firmID, "/invoices.json"), params, &invoices); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	c.logger.Debug().
		Int64("firm_id", firmID).
		Int("count", len(invoices)).
		Msg("Retrieved invoices from facturation")

	return invoices, nil
}

// GetInvoice retrieves a single invoice
func (c *Client) GetInvoice(ctx context.Context, firmID, invoiceID int64) (*Invoice, error) {
	var invoice Invoice
	if err := c.getJSON(ctx, firmPath(firmID, "/invoices/%d.json", invoiceID), nil, &invoice); err != nil {
		return nil, fmt.Errorf("failed to get invoice %d: %w", invoiceID, err)
	}
	return &invoice, nil
}

// CreateInvoice creates an invoice and returns it as stored by the service
func (c *Client) CreateInvoice(ctx context.Context, firmID int64, invoice *Invoice) (*Invoice, error) {
	if invoice == nil {
		return nil, fmt.Errorf("invoice is required")
	}

	var created Invoice
	if err := c.postJSON(ctx, firmPath(firmID, "/invoices.json"), invoice, &created); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	c.logger.Info().Int64("firm_id", firmID).Int64("invoice_id", created.ID).Msg("Created invoice")
	return &created, nil
}

// DownloadInvoicePDF returns the rendered PDF of an invoice
func (c *Client) DownloadInvoicePDF(ctx context.Context, firmID, invoiceID int64) ([]byte, error) {
	body, err := c.doRequest(ctx, http.MethodGet, firmPath(firmID, "/invoices/%d.pdf", invoiceID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download invoice %d: %w", invoiceID, err)
	}
	return body, nil
}
