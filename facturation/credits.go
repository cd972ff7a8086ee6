package facturation

import (
	"context"
	"fmt"
	"net/url"
)

// ListCredits retrieves one page of a firm's credit notes
func (c *Client) ListCredits(ctx context.Context, firmID int64, params url.Values) ([]Credit, error) {
	var credits []Credit
	if err := c.getJSON(ctx, firmPath(firmID, "/credits.json"), params, &credits); err != nil {
		return nil, fmt.Errorf("failed to list credits: %w", err)
	}
	return credits, nil
}

// GetCredit retrieves a single credit note
func (c *Client) GetCredit(ctx context.Context, firmID, creditID int64) (*Credit, error) {
	var credit Credit
	if err := c.getJSON(ctx, firmPath(firmID, "/credits/%d.json", creditID), nil, &credit); err != nil {
		return nil, fmt.Errorf("failed to get credit %d: %w", creditID, err)
	}
	return &credit, nil
}

// CreateCredit creates a credit note and returns it as stored by the service
func (c *Client) CreateCredit(ctx context.Context, firmID int64, credit *Credit) (*Credit, error) {
	if credit == nil {
		return nil, fmt.Errorf("credit is required")
	}

	var created Credit
	if err := c.postJSON(ctx, firmPath(firmID, "/credits.json"), credit, &created); err != nil {
		return nil, fmt.Errorf("failed to create credit: %w", err)
	}

	c.logger.Info().Int64("firm_id", firmID).Int64("credit_id", created.ID).Msg("Created credit")
	return &created, nil
}
