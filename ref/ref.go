package ref

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRef reports a string that cannot be used as a JSON Reference.
var ErrInvalidRef = errors.New("ref: invalid reference")

// Ref is an immutable JSON Reference: a URI reference whose fragment, when
// present, is an RFC 6901 JSON Pointer into the target document. The zero
// value is the empty reference.
type Ref struct {
	u *url.URL
}

// IsURIShaped reports whether s is syntactically a URI reference. It is a
// cheap gate; it does not check the fragment against the JSON Pointer
// grammar, Parse does.
func IsURIShaped(s string) bool {
	if s == "" {
		return false
	}
	_, err := url.Parse(s)
	return err == nil
}

// Parse builds a Ref from s. The fragment, if any, must be a valid JSON
// Pointer; anchor-style fragments are rejected.
func Parse(s string) (Ref, error) {
	if s == "" {
		return Ref{}, fmt.Errorf("%w: empty string", ErrInvalidRef)
	}
	u, err := url.Parse(s)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %q: %v", ErrInvalidRef, s, err)
	}
	if _, err := ParsePointer(u.Fragment); err != nil {
		return Ref{}, fmt.Errorf("%w: %q: %v", ErrInvalidRef, s, err)
	}
	return Ref{u: u}, nil
}

// MustParse is Parse for test fixtures and constants; it panics on error.
func MustParse(s string) Ref {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// IsZero reports whether r is the empty reference.
func (r Ref) IsZero() bool { return r.u == nil }

// Resolve combines r as a base with other, producing the absolute target
// reference per RFC 3986. Resolving against the zero reference returns other
// unchanged.
func (r Ref) Resolve(other Ref) Ref {
	if r.u == nil {
		return other
	}
	if other.u == nil {
		return r
	}
	res := r.u.ResolveReference(other.u)
	// url.ResolveReference forces a leading slash onto the merged path. For a
	// relative base like "schema.json" that would turn every target into
	// "/schema.json#...", defeating same-document detection against the
	// original locator. Strip the slash the base never had.
	if r.u.Scheme == "" && r.u.Host == "" && !strings.HasPrefix(r.u.Path, "/") &&
		res.Scheme == "" && res.Host == "" && strings.HasPrefix(res.Path, "/") {
		c := *res
		c.Path = strings.TrimPrefix(c.Path, "/")
		c.RawPath = strings.TrimPrefix(c.RawPath, "/")
		return Ref{u: &c}
	}
	return Ref{u: res}
}

// Contains reports whether other points into the same document as r, that is,
// the two differ at most by fragment.
func (r Ref) Contains(other Ref) bool {
	if r.u == nil || other.u == nil {
		return false
	}
	return r.Root().String() == other.Root().String()
}

// Root returns r without its fragment: the lookup key for the document the
// reference points into.
func (r Ref) Root() Ref {
	if r.u == nil {
		return r
	}
	c := *r.u
	c.Fragment = ""
	c.RawFragment = ""
	return Ref{u: &c}
}

// Fragment returns the reference's fragment as a JSON Pointer. The empty
// fragment yields the root pointer.
func (r Ref) Fragment() Pointer {
	if r.u == nil {
		return Pointer{}
	}
	// The fragment was validated at Parse time.
	p, _ := ParsePointer(r.u.Fragment)
	return p
}

// Scheme returns the URI scheme, or "" for scheme-relative references.
func (r Ref) Scheme() string {
	if r.u == nil {
		return ""
	}
	return r.u.Scheme
}

// Path returns the URI path component.
func (r Ref) Path() string {
	if r.u == nil {
		return ""
	}
	return r.u.Path
}

// String returns the canonical textual form. Two references are the same
// target iff their strings are equal.
func (r Ref) String() string {
	if r.u == nil {
		return ""
	}
	return r.u.String()
}
