package ref

import (
	"fmt"
	"strconv"
	"strings"
)

// Pointer is an RFC 6901 JSON Pointer: a sequence of unescaped reference
// tokens. The zero value is the root pointer, addressing the whole document.
type Pointer struct {
	tokens []string
}

// ParsePointer parses an RFC 6901 pointer. "" addresses the document root;
// any other pointer must start with '/'.
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return Pointer{}, fmt.Errorf("pointer must start with '/': %q", s)
	}
	raw := strings.Split(s[1:], "/")
	tokens := make([]string, len(raw))
	for i, t := range raw {
		tok, err := unescapeToken(t)
		if err != nil {
			return Pointer{}, fmt.Errorf("pointer %q: %w", s, err)
		}
		tokens[i] = tok
	}
	return Pointer{tokens: tokens}, nil
}

func unescapeToken(t string) (string, error) {
	if !strings.Contains(t, "~") {
		return t, nil
	}
	var b strings.Builder
	for i := 0; i < len(t); i++ {
		if t[i] != '~' {
			b.WriteByte(t[i])
			continue
		}
		if i+1 >= len(t) {
			return "", fmt.Errorf("dangling '~' in token %q", t)
		}
		switch t[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("bad escape %q in token %q", t[i:i+2], t)
		}
		i++
	}
	return b.String(), nil
}

func escapeToken(t string) string {
	t = strings.ReplaceAll(t, "~", "~0")
	return strings.ReplaceAll(t, "/", "~1")
}

// IsRoot reports whether p addresses the document root.
func (p Pointer) IsRoot() bool { return len(p.tokens) == 0 }

// Field returns a new pointer descending into the named object member.
func (p Pointer) Field(name string) Pointer {
	return Pointer{tokens: append(append([]string{}, p.tokens...), name)}
}

// Index returns a new pointer descending into the i-th array element.
func (p Pointer) Index(i int) Pointer {
	return p.Field(strconv.Itoa(i))
}

// String renders the pointer in escaped RFC 6901 form. The root pointer
// renders as "".
func (p Pointer) String() string {
	if len(p.tokens) == 0 {
		return ""
	}
	parts := make([]string, len(p.tokens))
	for i, t := range p.tokens {
		parts[i] = escapeToken(t)
	}
	return "/" + strings.Join(parts, "/")
}

// Eval walks doc along the pointer. The second result is false when the path
// does not exist; Eval never fails otherwise.
func (p Pointer) Eval(doc any) (any, bool) {
	cur := doc
	for _, tok := range p.tokens {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[tok]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, ok := arrayIndex(tok)
			if !ok || i >= len(v) {
				return nil, false
			}
			cur = v[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// arrayIndex parses tok as an RFC 6901 array index: "0", or digits without a
// leading zero. "-" (the append position) is not a readable index.
func arrayIndex(tok string) (int, bool) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return i, true
}
