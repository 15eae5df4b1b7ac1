// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Filename templates name each output file from the document stem and the
// 1-based page number. Supported tokens: {stem}, and {page} with an optional
// zero-pad width such as {page:03d}.

// pageSpecRE matches the format spec of a page token, e.g. "03d" or "2d".
var pageSpecRE = regexp.MustCompile(`^0?(\d+)d$`)

// tmplToken is one segment of a parsed template: a literal run, the stem,
// or the padded page number.
type tmplToken struct {
	literal string
	isStem  bool
	isPage  bool
	pad     int
}

// parseTemplate splits tmpl into tokens and reports whether it references
// the page number. Malformed templates return an error describing the
// offending part.
func parseTemplate(tmpl string) (toks []tmplToken, hasPage bool, err error) {
	if tmpl == "" {
		return nil, false, fmt.Errorf("template is empty")
	}

	for i := 0; i < len(tmpl); {
		switch tmpl[i] {
		case '{':
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				return nil, false, fmt.Errorf("unbalanced '{' at position %d", i)
			}
			tok, err := parseToken(tmpl[i+1 : i+end])
			if err != nil {
				return nil, false, err
			}
			if tok.isPage {
				hasPage = true
			}
			toks = append(toks, tok)
			i += end + 1
		case '}':
			return nil, false, fmt.Errorf("unbalanced '}' at position %d", i)
		default:
			j := i
			for j < len(tmpl) && tmpl[j] != '{' && tmpl[j] != '}' {
				j++
			}
			toks = append(toks, tmplToken{literal: tmpl[i:j]})
			i = j
		}
	}

	return toks, hasPage, nil
}

func parseToken(body string) (tmplToken, error) {
	name, spec, hasSpec := strings.Cut(body, ":")
	switch name {
	case "stem":
		if hasSpec {
			return tmplToken{}, fmt.Errorf("format spec not supported for {stem}")
		}
		return tmplToken{isStem: true}, nil
	case "page":
		pad := 0
		if hasSpec {
			m := pageSpecRE.FindStringSubmatch(spec)
			if m == nil {
				return tmplToken{}, fmt.Errorf("unsupported format spec %q for {page}", spec)
			}
			pad, _ = strconv.Atoi(m[1])
		}
		return tmplToken{isPage: true, pad: pad}, nil
	}
	return tmplToken{}, fmt.Errorf("unknown template token %q", name)
}

// renderTokens expands a parsed template for the given stem and page.
func renderTokens(toks []tmplToken, stem string, page int) string {
	var b strings.Builder
	for _, t := range toks {
		switch {
		case t.isStem:
			b.WriteString(stem)
		case t.isPage:
			fmt.Fprintf(&b, "%0*d", t.pad, page)
		default:
			b.WriteString(t.literal)
		}
	}
	return b.String()
}
