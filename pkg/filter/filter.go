// Package filter selects JSON records with jq expressions.
package filter

import (
	"context"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/ccollicutt/logkit/pkg/jsonvalue"
)

// Filter is a compiled jq expression used as a record predicate.
type Filter struct {
	expr string
	code *gojq.Code
}

// Compile parses and compiles a jq expression.
func Compile(expr string) (*Filter, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing filter %q: %w", expr, err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", expr, err)
	}

	return &Filter{expr: expr, code: code}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Match runs the expression against v and reports whether its first result is
// truthy, i.e. neither false nor null. An expression that yields nothing does
// not match.
func (f *Filter) Match(ctx context.Context, v jsonvalue.Value) (bool, error) {
	iter := f.code.RunWithContext(ctx, jsonvalue.ToInterface(v))

	result, ok := iter.Next()
	if !ok {
		return false, nil
	}
	if err, ok := result.(error); ok {
		return false, err
	}

	return truthy(result), nil
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	default:
		return true
	}
}
