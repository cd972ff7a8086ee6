package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr/vm"
)

// Record is anything a filter can be evaluated against
type Record interface {
	FilterFields() map[string]any
}

// Filter is a compiled filter expression
type Filter struct {
	program    *vm.Program
	expression string
}

// Compile compiles a filter expression such as `Total > 100 && !Paid`.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := compileProgram(expression)
	if err != nil {
		return nil, err
	}

	return &Filter{program: program, expression: expression}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(expression string) *Filter {
	f, err := Compile(expression)
	if err != nil {
		panic(fmt.Sprintf("filter: %v", err))
	}
	return f
}

// Eval evaluates the filter against a record
func (f *Filter) Eval(record Record) (bool, error) {
	return run(f.program, f.expression, record.FilterFields())
}

// Match reports whether the record satisfies the filter.
// Evaluation errors count as no match.
func (f *Filter) Match(record Record) bool {
	ok, err := f.Eval(record)
	return err == nil && ok
}

// String returns the original expression
func (f *Filter) String() string {
	return f.expression
}

// Apply returns the records matched by f, in order. A nil filter matches everything.
func Apply[T Record](f *Filter, records []T) []T {
	if f == nil {
		return records
	}

	matched := make([]T, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			matched = append(matched, r)
		}
	}
	return matched
}
