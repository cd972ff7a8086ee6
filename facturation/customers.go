package facturation

import (
	"context"
	"fmt"
	"net/url"
)

// ListCustomers retrieves one page of a firm's customers. params is passed
// through untouched (page, search filters).
func (c *Client) ListCustomers(ctx context.Context, firmID int64, params url.Values) ([]Customer, error) {
	var customers []Customer
	if err := c.getJSON(ctx, firmPath(firmID, "/customers.json"), params, &customers); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	c.logger.Debug().
		Int64("firm_id", firmID).
		Int("count", len(customers)).
		Msg("Retrieved customers from facturation")

	return customers, nil
}

// GetCustomer retrieves a single customer
func (c *Client) GetCustomer(ctx context.Context, firmID, customerID int64) (*Customer, error) {
	var customer Customer
	if err := c.getJSON(ctx, firmPath(firmID, "/customers/%d.json", customerID), nil, &customer); err != nil {
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}
	return &customer, nil
}

// CreateCustomer creates a customer and returns it as stored by the service
func (c *Client) CreateCustomer(ctx context.Context, firmID int64, customer *Customer) (*Customer, error) {
	if customer == nil {
		return nil, fmt.Errorf("customer is required")
	}

	var created Customer
	if err := c.postJSON(ctx, firmPath(firmID, "/customers.json"), customer, &created); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	c.logger.Info().Int64("firm_id", firmID).Int64("customer_id", created.ID).Msg("Created customer")
	return &created, nil
}
