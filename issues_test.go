package schema_test

import (
	"strings"
	"testing"

	schema "github.com/binbingao/json-schema-validator"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := schema.Issues{
		{Path: "/a", Code: schema.CodeDanglingRef},
		{Path: "/b", Code: schema.CodeRefLoop},
		{Path: "/c", Code: schema.CodeLoadFailure},
		{Path: "/d", Code: schema.CodeMalformedRef},
	}
	s := iss.Error()
	if s == "" {
		t.Fatalf("expected non-empty error summary")
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("summary should note the total beyond the shown prefix: %q", s)
	}
	if (schema.Issues{}).Error() != "" {
		t.Fatalf("empty issues render empty")
	}
}

func TestAsIssues(t *testing.T) {
	var err error = schema.Issues{{Path: "/", Code: schema.CodeDanglingRef}}
	iss, ok := schema.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected to extract one issue, got %v (%v)", iss, ok)
	}
	if _, ok := schema.AsIssues(nil); ok {
		t.Fatalf("nil error carries no issues")
	}
}

func TestReport_AppendOnly(t *testing.T) {
	r := &schema.Report{}
	if r.HasIssues() {
		t.Fatalf("fresh report has no issues")
	}
	r.Add(schema.Issue{Path: "/", Code: schema.CodeRefLoop})
	r.Add(schema.Issue{Path: "/", Code: schema.CodeDanglingRef})
	if got := len(r.Issues()); got != 2 {
		t.Fatalf("expected 2 issues, got %d", got)
	}
}
