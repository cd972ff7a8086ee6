package facturation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// snapshotCalls is the number of requests a Snapshot issues
const snapshotCalls = 4

// Snapshot fetches a firm with the first page of its customers, invoices and
// credits concurrently. It fails fast with ErrRateLimited when the tracked
// budget cannot cover the calls.
func (c *Client) Snapshot(ctx context.Context, firmID int64) (*FirmSnapshot, error) {
	if !c.CheckRateLimit(snapshotCalls) {
		return nil, fmt.Errorf("snapshot of firm %d needs %d calls, %d left: %w",
			firmID, snapshotCalls, c.limiter.Remaining(), ErrRateLimited)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotCalls)

	// Each goroutine writes a distinct field, so no lock is needed
	snapshot := &FirmSnapshot{}

	g.Go(func() error {
		firm, err := c.GetFirm(ctx, firmID)
		if err != nil {
			return err
		}
		snapshot.Firm = firm
		return nil
	})

	g.Go(func() error {
		customers, err := c.ListCustomers(ctx, firmID, nil)
		if err != nil {
			return err
		}
		snapshot.Customers = customers
		return nil
	})

	g.Go(func() error {
		invoices, err := c.ListInvoices(ctx, firmID, nil)
		if err != nil {
			return err
		}
		snapshot.Invoices = invoices
		return nil
	})

	g.Go(func() error {
		credits, err := c.ListCredits(ctx, firmID, nil)
		if err != nil {
			return err
		}
		snapshot.Credits = credits
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to snapshot firm %d: %w", firmID, err)
	}

	c.logger.Debug().
		Int64("firm_id", firmID).
		Int("customers", len(snapshot.Customers)).
		Int("invoices", len(snapshot.Invoices)).
		Int("credits", len(snapshot.Credits)).
		Msg("Built firm snapshot")

	return snapshot, nil
}
