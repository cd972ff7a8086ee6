package facturation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{name: "calendar date", input: `"2024-03-15"`, expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "timestamp", input: `"2024-03-15T10:30:00Z"`, expected: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{name: "null", input: `null`},
		{name: "empty string", input: `""`},
		{name: "garbage", input: `"15/03/2024"`, wantErr: true},
		{name: "not a string", input: `20240315`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(d.Time), "got %v", d.Time)
		})
	}
}

func TestDateMarshal(t *testing.T) {
	data, err := json.Marshal(NewDate(2024, time.March, 5))
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(data))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))

	assert.Equal(t, "2024-03-05", NewDate(2024, time.March, 5).String())
	assert.Equal(t, "", Date{}.String())
}

func TestCustomerGetDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		expected string
	}{
		{name: "company wins", customer: Customer{CompanyName: "Globex", FirstName: "Jane"}, expected: "Globex"},
		{name: "full name", customer: Customer{FirstName: "Jane", LastName: "Doe"}, expected: "Jane Doe"},
		{name: "last name only", customer: Customer{LastName: "Doe"}, expected: "Doe"},
		{name: "email fallback", customer: Customer{Email: "jane@example.com"}, expected: "jane@example.com"},
		{name: "nothing", customer: Customer{}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.customer.GetDisplayName())
		})
	}
}

func TestInvoiceHelpers(t *testing.T) {
	inv := Invoice{
		Items: []Item{
			{Title: "Consulting", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("150.00")},
			{Title: "Travel", Quantity: decimal.RequireFromString("0.5"), UnitPrice: decimal.RequireFromString("80")},
		},
	}

	assert.True(t, decimal.RequireFromString("490").Equal(inv.ItemsTotal()))
	assert.False(t, inv.IsPaid())

	inv.PaidOn = NewDate(2024, time.April, 1)
	assert.True(t, inv.IsPaid())
	assert.Equal(t, true, inv.FilterFields()["Paid"])
}

func TestInvoiceDecodesAmounts(t *testing.T) {
	payload := `{
		"id": 10,
		"customer_id": 3,
		"invoice_ref": "F-2024-001",
		"total": "100.10",
		"total_with_vat": 120.12,
		"balance": "0.00",
		"invoiced_on": "2024-01-31",
		"paid_on": null
	}`

	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(payload), &inv))

	assert.Equal(t, "F-2024-001", inv.Ref)
	assert.True(t, decimal.RequireFromString("100.10").Equal(inv.Total))
	assert.True(t, decimal.RequireFromString("120.12").Equal(inv.TotalWithVAT))
	assert.Equal(t, "2024-01-31", inv.InvoicedOn.String())
	assert.False(t, inv.IsPaid())
}

func TestSnapshotOutstanding(t *testing.T) {
	snapshot := FirmSnapshot{
		Invoices: []Invoice{
			{Balance: decimal.RequireFromString("10.10")},
			{Balance: decimal.RequireFromString("0.20")},
			{Balance: decimal.Zero},
		},
	}
	assert.True(t, decimal.RequireFromString("10.30").Equal(snapshot.Outstanding()))

	empty := FirmSnapshot{}
	assert.True(t, empty.Outstanding().IsZero())
}
