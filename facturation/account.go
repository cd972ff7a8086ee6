package facturation

import (
	"context"
	"fmt"
)

// TestConnection verifies the token is accepted by fetching the account
func (c *Client) TestConnection(ctx context.Context) error {
	if _, err := c.GetAccount(ctx); err != nil {
		return err
	}
	return nil
}

// GetAccount retrieves the authenticated account and its firms
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.getJSON(ctx, "/account.json", nil, &account); err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// ListFirms returns the firms attached to the account
func (c *Client) ListFirms(ctx context.Context) ([]Firm, error) {
	account, err := c.GetAccount(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(account.Firms)).Msg("Retrieved firms from facturation")
	return account.Firms, nil
}

// GetFirm retrieves a single firm
func (c *Client) GetFirm(ctx context.Context, firmID int64) (*Firm, error) {
	var firm Firm
	if err := c.getJSON(ctx, firmPath(firmID, ".json"), nil, &firm); err != nil {
		return nil, fmt.Errorf("failed to get firm %d: %w", firmID, err)
	}
	return &firm, nil
}
