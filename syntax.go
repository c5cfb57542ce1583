package schema

import (
	"fmt"

	"github.com/binbingao/json-schema-validator/ref"
)

// SyntaxStage performs the structural checks the resolution stage defers: a
// schema must be a JSON object, and a $ref member that survived resolution
// did so because it is not a usable reference. Keyword semantics belong to
// later stages.
type SyntaxStage struct{}

// Validate implements Stage.
func (SyntaxStage) Validate(ctx *Context, report *Report, node Node) (Node, bool) {
	obj, ok := node.Value().(map[string]any)
	if !ok {
		report.Add(Issue{
			Path:    "/",
			Code:    CodeInvalidSchema,
			Message: fmt.Sprintf("schema is not an object (got %T)", node.Value()),
		})
		return node, false
	}
	if raw, present := obj["$ref"]; present {
		s, isString := raw.(string)
		if !isString {
			report.Add(Issue{
				Path:    "/",
				Code:    CodeMalformedRef,
				Message: fmt.Sprintf("$ref member is not a string: %v", raw),
			})
			return node, false
		}
		if _, err := ref.Parse(s); err != nil {
			report.Add(Issue{
				Path:    "/",
				Code:    CodeMalformedRef,
				Message: fmt.Sprintf("$ref member is not a valid reference: %q", s),
				Cause:   err,
			})
			return node, false
		}
	}
	return node, true
}
