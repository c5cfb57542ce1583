package schema

import (
	"fmt"
	"strings"

	"github.com/binbingao/json-schema-validator/ref"
)

// ResolveOptions tunes ResolveRefWith. The zero value matches ResolveRef.
type ResolveOptions struct {
	// MaxHops caps the number of dereference hops performed in one call.
	// Zero means unlimited: only target repetition stops a chain, so a
	// hostile document graph offering endless distinct targets can run
	// indefinitely. Set a ceiling when documents are untrusted.
	MaxHops int
}

// ResolveRef follows the node's $ref chain until the content it designates is
// reached, switching the context's container whenever a hop leaves the
// current document. On success it returns the fully dereferenced node and
// true; the context then reflects the container that node lives in. On
// failure it appends one issue to report and returns false; validation of
// the instance must stop.
//
// A $ref member whose value is not even URI-shaped is not treated as a
// reference: the node is returned as-is and the syntax stage reports it.
func ResolveRef(ctx *Context, report *Report, node Node) (Node, bool) {
	return ResolveRefWith(ctx, report, node, ResolveOptions{})
}

// ResolveRefWith is ResolveRef with explicit options.
func ResolveRefWith(ctx *Context, report *Report, node Node, opt ResolveOptions) (Node, bool) {
	// Absolute references visited while walking this one chain. Re-adding
	// one is the definition of a ref loop. The set lives and dies with
	// this call; it is never shared with sibling resolutions elsewhere in
	// a schema tree.
	visited := &refSet{}

	current := node.Value()
	for {
		text, ok := refCandidate(current)
		if !ok {
			break
		}
		next, iss := resolveHop(ctx, text, visited, opt)
		if iss != nil {
			report.Add(*iss)
			return Node{}, false
		}
		current = next
	}
	return NewNode(ctx.Container(), current), true
}

// resolveHop dereferences one $ref. It updates the context's container only
// after the target's document was loaded successfully, so a failed hop leaves
// the prior container intact.
func resolveHop(ctx *Context, text string, visited *refSet, opt ResolveOptions) (any, *Issue) {
	container := ctx.Container()
	source := container.Locator()

	r, err := ref.Parse(text)
	if err != nil {
		return nil, &Issue{
			Path:    "/",
			Code:    CodeMalformedRef,
			Message: fmt.Sprintf("$ref problem: invalid reference %q", text),
			Cause:   err,
		}
	}
	target := source.Resolve(r)

	if !visited.add(target) {
		return nil, &Issue{
			Path:    "/",
			Code:    CodeRefLoop,
			Message: fmt.Sprintf("$ref problem: ref loop detected: %s", visited),
			Params:  map[string]any{"refs": visited.strings()},
		}
	}
	if opt.MaxHops > 0 && visited.len() > opt.MaxHops {
		return nil, &Issue{
			Path:    "/",
			Code:    CodeHopLimit,
			Message: fmt.Sprintf("$ref problem: more than %d hops: %s", opt.MaxHops, visited),
			Params:  map[string]any{"refs": visited.strings(), "max": opt.MaxHops},
		}
	}

	if !source.Contains(target) {
		next, err := ctx.Loader().Load(target.Root())
		if err != nil {
			return nil, &Issue{
				Path:    "/",
				Code:    CodeLoadFailure,
				Message: fmt.Sprintf("$ref problem: cannot load schema %s", target.Root()),
				Cause:   err,
				Params:  map[string]any{"ref": target.Root().String()},
			}
		}
		ctx.SetContainer(next)
		container = next
	}

	v, found := target.Fragment().Eval(container.Document())
	if !found {
		return nil, &Issue{
			Path:    "/",
			Code:    CodeDanglingRef,
			Message: fmt.Sprintf("$ref problem: dangling JSON ref %s", target),
			Params:  map[string]any{"ref": target.String()},
		}
	}
	return v, nil
}

// refCandidate returns the $ref member of v when it is a string shaped like
// a URI reference. Anything else is left alone for the syntax stage.
func refCandidate(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := obj["$ref"].(string)
	if !ok || !ref.IsURIShaped(s) {
		return "", false
	}
	return s, true
}

// refSet is an insertion-ordered set of absolute references.
type refSet struct {
	seen  map[string]struct{}
	order []ref.Ref
}

// add inserts r and reports true, or reports false when r was already seen.
func (s *refSet) add(r ref.Ref) bool {
	key := r.String()
	if _, dup := s.seen[key]; dup {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, r)
	return true
}

func (s *refSet) len() int { return len(s.order) }

func (s *refSet) strings() []string {
	out := make([]string, len(s.order))
	for i, r := range s.order {
		out[i] = r.String()
	}
	return out
}

func (s *refSet) String() string {
	return "[" + strings.Join(s.strings(), ", ") + "]"
}
