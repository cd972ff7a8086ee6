package facturation

import (
	"context"
	"net/url"

	"golang.org/x/oauth2"
)

// API defines the interface for facturation.pro operations
type API interface {
	// TestConnection verifies the installed token is accepted
	TestConnection(ctx context.Context) error

	// GetAccount retrieves the authenticated account
	GetAccount(ctx context.Context) (*Account, error)
	// ListFirms returns the firms attached to the account
	ListFirms(ctx context.Context) ([]Firm, error)
	// GetFirm retrieves a single firm
	GetFirm(ctx context.Context, firmID int64) (*Firm, error)

	ListCustomers(ctx context.Context, firmID int64, params url.Values) ([]Customer, error)
	GetCustomer(ctx context.Context, firmID, customerID int64) (*Customer, error)
	CreateCustomer(ctx context.Context, firmID int64, customer *Customer) (*Customer, error)

	ListInvoices(ctx context.Context, firmID int64, params url.Values) ([]Invoice, error)
	GetInvoice(ctx context.Context, firmID, invoiceID int64) (*Invoice, error)
	CreateInvoice(ctx context.Context, firmID int64, invoice *Invoice) (*Invoice, error)
	DownloadInvoicePDF(ctx context.Context, firmID, invoiceID int64) ([]byte, error)

	ListCredits(ctx context.Context, firmID int64, params url.Values) ([]Credit, error)
	GetCredit(ctx context.Context, firmID, creditID int64) (*Credit, error)
	CreateCredit(ctx context.Context, firmID int64, credit *Credit) (*Credit, error)

	// Snapshot fetches a firm and its records concurrently
	Snapshot(ctx context.Context, firmID int64) (*FirmSnapshot, error)

	// CheckRateLimit reports whether n more calls fit in the tracked budget
	CheckRateLimit(n int) bool
}

// Authenticator covers the OAuth2 side of the client
type Authenticator interface {
	// AuthCodeURL returns the consent URL for the authorization-code flow
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a token
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// RefreshToken renews a token from its refresh token
	RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error)

	// Token returns the current token, refreshing it if needed
	Token() (*oauth2.Token, error)
}

var (
	_ API           = (*Client)(nil)
	_ Authenticator = (*Client)(nil)
)
