package filter

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/expr-lang/expr/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord map[string]any

func (r testRecord) FilterFields() map[string]any { return r }

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Total > 100 && !Paid`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `Name == "unclosed`,
			wantErr:    true,
		},
		{
			name:       "helpers",
			expression: `daysSince(InvoicedOn) > 30 and hasText(Title, "consulting") and Total >= dec("99.90")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestFilterMatch(t *testing.T) {
	invoice := testRecord{
		"ID":         int64(10),
		"Title":      "Consulting March",
		"Total":      250.5,
		"Paid":       false,
		"InvoicedOn": time.Now().AddDate(0, 0, -45),
		"Currency":   "EUR",
	}

	tests := []struct {
		name       string
		expression string
		expected   bool
	}{
		{name: "amount comparison", expression: `Total > 100`, expected: true},
		{name: "unpaid", expression: `!Paid`, expected: true},
		{name: "combined", expression: `Total > 100 && !Paid`, expected: true},
		{name: "amount too low", expression: `Total > 1000`, expected: false},
		{name: "decimal helper", expression: `Total == dec("250.50")`, expected: true},
		{name: "case-insensitive text", expression: `hasText(Title, "CONSULT")`, expected: true},
		{name: "builtin lower", expression: `lower(Currency) == "eur"`, expected: true},
		{name: "days since", expression: `daysSince(InvoicedOn) >= 44`, expected: true},
		{name: "date comparison", expression: `InvoicedOn < daysAgo(30)`, expected: true},
		{name: "parse date", expression: `InvoicedOn > parseDate("2000-01-01")`, expected: true},
		{name: "in operator", expression: `Currency in ["EUR", "USD"]`, expected: true},
		{name: "unknown field", expression: `Missing == nil`, expected: true},
		{name: "non-bool result", expression: `Total`, expected: false},
		{name: "runtime error", expression: `Title > 3`, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.Match(invoice))
		})
	}
}

func TestFilterEvalErrors(t *testing.T) {
	f := MustCompile(`Total`)

	_, err := f.Eval(testRecord{"Total": 1.0})
	require.Error(t, err)

	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "Total", evalErr.Expression)
}

func TestApply(t *testing.T) {
	records := []testRecord{
		{"ID": 1, "Paid": true},
		{"ID": 2, "Paid": false},
		{"ID": 3, "Paid": false},
	}

	unpaid := Apply(MustCompile(`!Paid`), records)
	require.Len(t, unpaid, 2)
	assert.Equal(t, 2, unpaid[0]["ID"])
	assert.Equal(t, 3, unpaid[1]["ID"])

	assert.Len(t, Apply[testRecord](nil, records), 3)
}

func TestConcurrentMatch(t *testing.T) {
	f := MustCompile(`Total > 50`)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got := f.Match(testRecord{"Total": float64(i * 10)})
			assert.Equal(t, i*10 > 50, got)
		}(i)
	}
	wg.Wait()
}

func TestManager(t *testing.T) {
	m := NewManager()

	err := m.RegisterFilters(map[string]string{
		"unpaid": `!Paid`,
		"large":  `Total > 1000`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"large", "unpaid"}, m.ListFilters())

	t.Run("all or nothing", func(t *testing.T) {
		err := m.RegisterFilters(map[string]string{
			"ok":     `Paid`,
			"broken": `Total >`,
		})
		require.Error(t, err)
		_, exists := m.GetFilter("ok")
		assert.False(t, exists)
	})

	t.Run("resolve by name", func(t *testing.T) {
		f, err := m.Resolve("unpaid")
		require.NoError(t, err)
		assert.Equal(t, "!Paid", f.String())
	})

	t.Run("resolve expression", func(t *testing.T) {
		f, err := m.Resolve(`Total < 10`)
		require.NoError(t, err)
		assert.True(t, f.Match(testRecord{"Total": 5}))
	})

	t.Run("resolve empty", func(t *testing.T) {
		f, err := m.Resolve("")
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("names are case-insensitive", func(t *testing.T) {
		require.NoError(t, m.RegisterFilter("dueSoon", `Balance > 0`))

		for _, name := range []string{"dueSoon", "duesoon", "DUESOON"} {
			f, err := m.Resolve(name)
			require.NoError(t, err)
			assert.Equal(t, "Balance > 0", f.String(), "name %q", name)
		}
	})

	t.Run("register invalid", func(t *testing.T) {
		err := m.RegisterFilter("bad", `(`)
		assert.Error(t, err)
	})
}

func TestProgramCache(t *testing.T) {
	c := newProgramCache(2)
	a, b, d := &vm.Program{}, &vm.Program{}, &vm.Program{}

	c.put("a", a)
	c.put("b", b)
	_, _ = c.get("a")
	c.put("c", d)

	_, ok := c.get("b")
	assert.False(t, ok, "least recently used program should be evicted")

	got, ok := c.get("a")
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 2, c.len())

	c.reset()
	assert.Equal(t, 0, c.len())
	_, ok = c.get("a")
	assert.False(t, ok)
}

func TestCompileUsesCache(t *testing.T) {
	expression := `ID == 424242`
	first, err := Compile(expression)
	require.NoError(t, err)
	second, err := Compile(expression)
	require.NoError(t, err)

	assert.Same(t, first.program, second.program)
}
