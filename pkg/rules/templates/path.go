//
//  Copyright © Manetu Inc. All rights reserved.
//

package templates

import (
	"strings"

	"github.com/pkg/errors"
)

// pathExpr is one parsed ${...} placeholder: a root reference plus an
// ordered segment list. The root is either a binding name or a qualified
// global reference (prefix:LocalName) resolved through the namespace
// resolver and required context at render time.
type pathExpr struct {
	source string

	root         string
	globalPrefix string
	globalLocal  string
	segments     []string
}

func (p *pathExpr) isGlobal() bool {
	return p.globalPrefix != ""
}

// part is either literal text or a placeholder.
type part struct {
	literal string
	expr    *pathExpr
}

// Template is a compiled template string. Placeholders are parsed exactly
// once, at store-load time.
type Template struct {
	source string
	parts  []part
}

// Source returns the original template string.
func (t *Template) Source() string {
	return t.source
}

// Compile parses the ${root.segment...} placeholders out of a template
// string. Malformed placeholders fail compilation; they are authoring
// errors caught when the store is loaded, not at render time.
func Compile(src string) (*Template, error) {
	t := &Template{source: src}

	rest := src
	for {
		start := strings.Index(rest, "${")
		if start == -1 {
			if rest != "" {
				t.parts = append(t.parts, part{literal: rest})
			}
			return t, nil
		}
		if start > 0 {
			t.parts = append(t.parts, part{literal: rest[:start]})
		}

		end := strings.Index(rest[start:], "}")
		if end == -1 {
			return nil, errors.Errorf("unterminated placeholder in %q", src)
		}
		expr, err := parsePath(rest[start+2 : start+end])
		if err != nil {
			return nil, errors.Wrapf(err, "in template %q", src)
		}
		t.parts = append(t.parts, part{expr: expr})
		rest = rest[start+end+1:]
	}
}

func parsePath(raw string) (*pathExpr, error) {
	if raw == "" {
		return nil, errors.New("empty placeholder")
	}
	segments := strings.Split(raw, ".")
	for _, s := range segments {
		if s == "" {
			return nil, errors.Errorf("empty path segment in %q", raw)
		}
	}

	expr := &pathExpr{
		source:   raw,
		root:     segments[0],
		segments: segments[1:],
	}
	if prefix, local, ok := strings.Cut(segments[0], ":"); ok {
		if prefix == "" || local == "" {
			return nil, errors.Errorf("malformed global reference %q", segments[0])
		}
		expr.globalPrefix = prefix
		expr.globalLocal = local
	}
	return expr, nil
}

// MustCompile compiles a template known to be well-formed at build time.
func MustCompile(src string) *Template {
	t, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return t
}
