package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shopspring/decimal"
)

// programCacheSize bounds the number of compiled expressions kept around
const programCacheSize = 64

var programs = newProgramCache(programCacheSize)

// helpers returns the functions available to every filter expression.
// expr already provides lower, upper, now and the contains/startsWith
// operators, so they are not redefined here.
func helpers() map[string]any {
	return map[string]any{
		// Date helpers
		"daysSince": func(t time.Time) int {
			if t.IsZero() {
				return 0
			}
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"monthsAgo": func(months int) time.Time {
			return time.Now().AddDate(0, -months, 0)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},
		"isZero": func(t time.Time) bool {
			return t.IsZero()
		},

		// Text helpers
		"hasText": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},

		// Amount helpers
		"dec": func(amount string) float64 {
			d, err := decimal.NewFromString(strings.TrimSpace(amount))
			if err != nil {
				return 0
			}
			return d.InexactFloat64()
		},
	}
}

// compileProgram compiles an expression, reusing a cached program when the
// same expression was compiled before.
func compileProgram(expression string) (*vm.Program, error) {
	if cached, ok := programs.get(expression); ok {
		return cached, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(helpers()),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	programs.put(expression, program)
	return program, nil
}

// environment merges the helper functions with a record's fields.
// Record fields shadow helpers of the same name.
func environment(fields map[string]any) map[string]any {
	env := helpers()
	for k, v := range fields {
		env[k] = v
	}
	return env
}

func run(program *vm.Program, expression string, fields map[string]any) (bool, error) {
	result, err := expr.Run(program, environment(fields))
	if err != nil {
		return false, &EvaluationError{
			Expression: expression,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	switch v := result.(type) {
	case bool:
		return v, nil
	case nil:
		return false, nil
	default:
		return false, &EvaluationError{
			Expression: expression,
			Reason:     fmt.Sprintf("expression returned %T, want bool", result),
		}
	}
}
