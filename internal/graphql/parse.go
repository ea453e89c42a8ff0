package graphql

import (
	"regexp"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

var bareName = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// Resolve turns a raw request into an Operation by naming it exactly once,
// in this order:
//
//  1. the explicit operationName field
//  2. the name of the operation in the query document
//  3. for an anonymous document, the route registered for its first root field
//  4. a body that is nothing but a bare operation name
//
// An unresolvable request yields an Operation with an empty name, which
// Dispatch reports as unknown.
func (r *Router) Resolve(kind Kind, req Request) Operation {
	op := Operation{Kind: kind, Variables: Variables(req.Variables)}
	if op.Variables == nil {
		op.Variables = Variables{}
	}

	if name := strings.TrimSpace(req.OperationName); name != "" {
		op.Name = name
		return op
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return op
	}

	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err == nil && doc != nil && len(doc.Operations) > 0 {
		def := doc.Operations[0]
		if def.Name != "" {
			op.Name = def.Name
			return op
		}
		if field := firstField(def.SelectionSet); field != "" {
			if name, ok := r.nameForField(kind, field); ok {
				op.Name = name
			}
		}
		return op
	}

	if bareName.MatchString(query) {
		op.Name = query
	}
	return op
}

func firstField(set ast.SelectionSet) string {
	for _, sel := range set {
		if f, ok := sel.(*ast.Field); ok {
			return f.Name
		}
	}
	return ""
}
