package graphql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"surge/internal/logging"
	"surge/internal/metrics"
)

// HandlerFunc serves one operation. A *ValidationError becomes a 400 with
// its message; any other error becomes a generic 500.
type HandlerFunc func(ctx context.Context, op Operation) (interface{}, error)

// Route binds an operation name to its handler. Field is the key the result
// is returned under in the data envelope, and also the root field that an
// anonymous document selects to reach this route.
type Route struct {
	Name    string
	Field   string
	Handler HandlerFunc
}

// Result is a dispatch outcome ready to be written by the transport.
type Result struct {
	Status int
	Body   Response
}

// Router holds one dispatch table per operation kind. Names are matched
// exactly, so similarly named operations can never shadow each other.
//
// Go Learning Note — Maps as Dispatch Tables:
// A map keyed by the parsed name replaces a chain of if/else string checks.
// Lookup is O(1), registration order doesn't matter, and a duplicate name is
// caught at startup by Handle.
type Router struct {
	routes map[Kind]map[string]Route
	fields map[Kind]map[string]string
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[Kind]map[string]Route),
		fields: make(map[Kind]map[string]string),
	}
}

// Handle registers a route. It panics on a duplicate name or field since
// that is a wiring bug.
func (r *Router) Handle(kind Kind, name, field string, h HandlerFunc) {
	if r.routes[kind] == nil {
		r.routes[kind] = make(map[string]Route)
		r.fields[kind] = make(map[string]string)
	}
	if _, dup := r.routes[kind][name]; dup {
		panic(fmt.Sprintf("graphql: duplicate %s %q", kind, name))
	}
	if _, dup := r.fields[kind][field]; dup {
		panic(fmt.Sprintf("graphql: duplicate %s field %q", kind, field))
	}
	r.routes[kind][name] = Route{Name: name, Field: field, Handler: h}
	r.fields[kind][field] = name
}

// Lookup finds the route for an operation.
func (r *Router) Lookup(kind Kind, name string) (Route, error) {
	route, ok := r.routes[kind][name]
	if !ok {
		return Route{}, fmt.Errorf("%w: %s %q", ErrUnknownOperation, kind, name)
	}
	return route, nil
}

// nameForField maps a root selection field to its operation name.
func (r *Router) nameForField(kind Kind, field string) (string, bool) {
	name, ok := r.fields[kind][field]
	return name, ok
}

// Dispatch runs the operation's handler and never lets an error or panic
// escape: every outcome is a Result.
func (r *Router) Dispatch(ctx context.Context, op Operation) (res Result) {
	start := time.Now()
	log := logging.FromContext(ctx).With("kind", string(op.Kind), "operation", op.Name)

	route, err := r.Lookup(op.Kind, op.Name)
	if err != nil {
		log.Warn("unknown operation")
		metrics.ObserveOperation(string(op.Kind), "unknown", metrics.OutcomeUnknown, time.Since(start))
		return Result{Status: http.StatusBadRequest, Body: ErrorResponse(op.Kind.UnknownMessage())}
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error("operation panicked", "panic", fmt.Sprint(p), "stack", string(debug.Stack()))
			metrics.ObserveOperation(string(op.Kind), op.Name, metrics.OutcomeRecovered, time.Since(start))
			res = Result{Status: http.StatusInternalServerError, Body: ErrorResponse(InternalErrorMessage)}
		}
	}()

	data, err := route.Handler(ctx, op)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			log.Info("operation rejected", "field", verr.Field, "reason", verr.Message)
			metrics.ObserveOperation(string(op.Kind), op.Name, metrics.OutcomeInvalid, time.Since(start))
			return Result{Status: http.StatusBadRequest, Body: ErrorResponse(verr.Message)}
		}
		log.Error("operation failed", "error", err)
		metrics.ObserveOperation(string(op.Kind), op.Name, metrics.OutcomeError, time.Since(start))
		return Result{Status: http.StatusInternalServerError, Body: ErrorResponse(InternalErrorMessage)}
	}

	metrics.ObserveOperation(string(op.Kind), op.Name, metrics.OutcomeOK, time.Since(start))
	return Result{
		Status: http.StatusOK,
		Body:   Response{Data: map[string]interface{}{route.Field: data}},
	}
}
