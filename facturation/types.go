package facturation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the calendar date format used by the API
const dateLayout = "2006-01-02"

// Date is a calendar date serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implements json.Unmarshaler for Date
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	// Some payloads carry a full timestamp instead of a bare date
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = parsed
		return nil
	}

	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("unable to parse date: %s", s)
	}
	d.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler for Date
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(dateLayout))
}

// String returns the date as YYYY-MM-DD, or an empty string for the zero value.
func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// Account is the authenticated user and the firms it can access
type Account struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Firms     []Firm `json:"firms"`
}

// Firm is a tenant owning customers, invoices and credits
type Firm struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency,omitempty"`
	Siret     string    `json:"siret,omitempty"`
	VATNumber string    `json:"vat_number,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Customer represents a firm's customer
type Customer struct {
	ID          int64     `json:"id,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Street      string    `json:"street,omitempty"`
	ZipCode     string    `json:"zip_code,omitempty"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	Siret       string    `json:"siret,omitempty"`
	VATNumber   string    `json:"vat_number,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// GetDisplayName returns the best available name for the customer
func (c *Customer) GetDisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	if name := strings.TrimSpace(c.FirstName + " " + c.LastName); name != "" {
		return name
	}
	return c.Email
}

// FilterFields exposes the customer to filter expressions
func (c Customer) FilterFields() map[string]any {
	return map[string]any{
		"ID":        c.ID,
		"Name":      c.GetDisplayName(),
		"Company":   c.CompanyName,
		"Email":     c.Email,
		"City":      c.City,
		"Country":   c.Country,
		"CreatedAt": c.CreatedAt,
	}
}

// Item is an invoice or credit line
type Item struct {
	Title     string          `json:"title"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VATRate   decimal.Decimal `json:"vat,omitzero"`
}

// Total returns quantity times unit price, excluding VAT
func (i Item) Total() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Invoice represents an invoice issued by a firm
type Invoice struct {
	ID           int64           `json:"id,omitempty"`
	CustomerID   int64           `json:"customer_id"`
	Ref          string          `json:"invoice_ref,omitempty"`
	Title        string          `json:"title,omitempty"`
	Currency     string          `json:"currency,omitempty"`
	Total        decimal.Decimal `json:"total"`
	TotalWithVAT decimal.Decimal `json:"total_with_vat"`
	Balance      decimal.Decimal `json:"balance"`
	InvoicedOn   Date            `json:"invoiced_on"`
	PaidOn       Date            `json:"paid_on"`
	Items        []Item          `json:"items,omitempty"`
}

// IsPaid reports whether the invoice has a payment date
func (inv *Invoice) IsPaid() bool {
	return !inv.PaidOn.IsZero()
}

// ItemsTotal sums the line totals, excluding VAT
func (inv *Invoice) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.Total())
	}
	return total
}

// FilterFields exposes the invoice to filter expressions
func (inv Invoice) FilterFields() map[string]any {
	return map[string]any{
		"ID":           inv.ID,
		"CustomerID":   inv.CustomerID,
		"Ref":          inv.Ref,
		"Title":        inv.Title,
		"Currency":     inv.Currency,
		"Total":        inv.Total.InexactFloat64(),
		"TotalWithVAT": inv.TotalWithVAT.InexactFloat64(),
		"Balance":      inv.Balance.InexactFloat64(),
		"InvoicedOn":   inv.InvoicedOn.Time,
		"PaidOn":       inv.PaidOn.Time,
		"Paid":         inv.IsPaid(),
	}
}

// Credit represents a credit note issued against an invoice
type Credit struct {
	ID         int64           `json:"id,omitempty"`
	CustomerID int64           `json:"customer_id"`
	InvoiceID  int64           `json:"invoice_id,omitempty"`
	Ref        string          `json:"credit_ref,omitempty"`
	Title      string          `json:"title,omitempty"`
	Total      decimal.Decimal `json:"total"`
	CreditedOn Date            `json:"credited_on"`
	Items      []Item          `json:"items,omitempty"`
}

// FilterFields exposes the credit to filter expressions
func (cr Credit) FilterFields() map[string]any {
	return map[string]any{
		"ID":         cr.ID,
		"CustomerID": cr.CustomerID,
		"InvoiceID":  cr.InvoiceID,
		"Ref":        cr.Ref,
		"Title":      cr.Title,
		"Total":      cr.Total.InexactFloat64(),
		"CreditedOn": cr.CreditedOn.Time,
	}
}

// FirmSnapshot aggregates a firm and its records fetched in one pass
type FirmSnapshot struct {
	Firm      *Firm
	Customers []Customer
	Invoices  []Invoice
	Credits   []Credit
}

// Outstanding sums the unpaid balance across the snapshot's invoices
func (s *FirmSnapshot) Outstanding() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range s.Invoices {
		total = total.Add(inv.Balance)
	}
	return total
}
