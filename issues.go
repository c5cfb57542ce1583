package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Reference resolution
	CodeMalformedRef = "malformed_ref"
	CodeRefLoop      = "ref_loop"
	CodeLoadFailure  = "load_failure"
	CodeDanglingRef  = "dangling_ref"
	CodeHopLimit     = "ref_hop_limit"
	// Syntax stage
	CodeInvalidSchema = "invalid_schema"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /definitions/a).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"ref":"other.json#/x"})
	// for observability; message text stays free-form.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. dangling_ref at /definitions/a
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Report is an append-only issue sink scoped to one validation run. Stages
// add to it and never read back or clear prior entries.
type Report struct {
	issues Issues
}

// Add appends one issue.
func (r *Report) Add(is Issue) {
	r.issues = AppendIssues(r.issues, is)
}

// Issues returns everything added so far.
func (r *Report) Issues() Issues { return r.issues }

// HasIssues reports whether any stage added an issue.
func (r *Report) HasIssues() bool { return len(r.issues) > 0 }
