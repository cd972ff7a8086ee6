package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"

	"github.com/s0up4200/facturation/filter"
)

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readDocument reads a JSON document from path, or from in when path is
// empty or "-", and decodes it into v.
func readDocument(path string, in io.Reader, v any) error {
	r := in
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON document: %w", err)
	}
	return nil
}

// parseID parses a record ID argument
func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %q", kind, arg)
	}
	return id, nil
}

// listOptions holds the flags shared by list commands
type listOptions struct {
	filter string
	page   int
	query  map[string]string
}

// params turns the list flags into query parameters
func (o *listOptions) params() url.Values {
	params := url.Values{}
	for k, v := range o.query {
		params.Set(k, v)
	}
	if o.page > 0 {
		params.Set("page", strconv.Itoa(o.page))
	}
	return params
}

// resolveFilter returns the filter named by the --filter flag, or compiles
// it as an expression. It returns nil when no filter was given.
func (o *listOptions) resolveFilter() (*filter.Filter, error) {
	f, err := filters.Resolve(o.filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}
