// Package graphql is a small GraphQL-shaped operation router. It does not
// execute GraphQL: each request names one operation, the router looks the
// name up in a dispatch table and wraps the handler result in the standard
// {data} / {errors} envelope.
package graphql

import (
	"strconv"
	"strings"
	"time"
)

// Kind selects which dispatch table an operation is looked up in.
type Kind string

const (
	KindQuery        Kind = "query"
	KindMutation     Kind = "mutation"
	KindSubscription Kind = "subscription"
)

// UnknownMessage is the client-facing error for a name with no handler.
func (k Kind) UnknownMessage() string {
	switch k {
	case KindMutation:
		return "Unknown mutation"
	case KindSubscription:
		return "Unknown subscription type"
	default:
		return "Unknown query"
	}
}

// Request is the JSON body accepted on the query and mutation endpoints.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Operation is a request after the operation name has been resolved.
type Operation struct {
	Name      string
	Kind      Kind
	Variables Variables
}

// Variables are the operation arguments. Values come from JSON (float64,
// string, bool, map, slice) or from a query string (always string), so the
// getters accept either form.
type Variables map[string]interface{}

// String returns the variable as a string, or def when absent or empty.
func (v Variables) String(key, def string) string {
	switch x := v[key].(type) {
	case string:
		if s := strings.TrimSpace(x); s != "" {
			return s
		}
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return def
}

// Float returns the variable as a float64, or def when absent.
func (v Variables) Float(key string, def float64) (float64, error) {
	switch x := v[key].(type) {
	case nil:
		return def, nil
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		if strings.TrimSpace(x) == "" {
			return def, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, Invalidf(key, "%s must be a number", key)
		}
		return f, nil
	default:
		return 0, Invalidf(key, "%s must be a number", key)
	}
}

// Int returns the variable as an int, or def when absent.
func (v Variables) Int(key string, def int) (int, error) {
	f, err := v.Float(key, float64(def))
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, Invalidf(key, "%s must be an integer", key)
	}
	return int(f), nil
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Time parses an RFC3339 timestamp or a YYYY-MM-DD date, or returns def
// when absent.
func (v Variables) Time(key string, def time.Time) (time.Time, error) {
	raw, ok := v[key]
	if !ok || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, Invalidf(key, "%s must be a date string", key)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, Invalidf(key, "%s must be an RFC3339 timestamp or YYYY-MM-DD date", key)
}

// Has reports whether key was supplied.
func (v Variables) Has(key string) bool {
	x, ok := v[key]
	return ok && x != nil
}

// Object returns a required JSON object variable.
func (v Variables) Object(key string) (map[string]interface{}, error) {
	switch x := v[key].(type) {
	case map[string]interface{}:
		return x, nil
	case nil:
		return nil, Invalidf(key, "%s is required", key)
	default:
		return nil, Invalidf(key, "%s must be an object", key)
	}
}
