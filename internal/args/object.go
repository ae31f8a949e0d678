package args

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// decodeObject evaluates raw as an HCL object constructor with no variables
// or functions in scope.
func decodeObject(raw string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(raw), "argument", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid object literal %s: %w", raw, diags)
	}
	if _, ok := expr.(*hclsyntax.ObjectConsExpr); !ok {
		return cty.NilVal, fmt.Errorf("invalid object literal %s: not an object constructor", raw)
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid object literal %s: %w", raw, diags)
	}
	return val, nil
}
