package markup

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrorMalformed is returned when no node sequence at all can be produced
// from the input. In practice only degenerate inputs reach this: almost
// every malformed construct is reclassified as literal text instead.
var ErrorMalformed = errors.New("markup: malformed input")

// Each parse function takes the remaining input, and returns the parsed
// value together with the input that follows it. ok reports whether the
// construct matched at the very start of the input; on failure the input
// is returned untouched so the caller can try another alternative.

// Whitespace inside a tag is ASCII only, while whitespace between nodes
// is trimmed with the full Unicode definition.

func isASCIIWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// skipWhiteSpace returns in without its leading ASCII whitespace.
func skipWhiteSpace(in string) string {
	for i := 0; i < len(in); i++ {
		if !isASCIIWhitespace(in[i]) {
			return in[i:]
		}
	}
	return ""
}

// skipWhiteSpace1 is like skipWhiteSpace but requires at least one
// whitespace byte.
func skipWhiteSpace1(in string) (string, bool) {
	rest := skipWhiteSpace(in)
	if len(rest) == len(in) {
		return in, false
	}
	return rest, true
}

func trimLeftSpace(in string) string {
	return strings.TrimLeftFunc(in, unicode.IsSpace)
}

func trimRightSpace(in string) string {
	return strings.TrimRightFunc(in, unicode.IsSpace)
}

// matchFold consumes the keyword kw, compared ASCII case-insensitively.
func matchFold(in, kw string) (string, bool) {
	if len(in) >= len(kw) && strings.EqualFold(in[:len(kw)], kw) {
		return in[len(kw):], true
	}
	return in, false
}

// parseComment matches <!-- ... --> up to the first closing delimiter and
// normalizes the body as described on Comment. It fails if the closing
// delimiter is absent.
func parseComment(in string) (Comment, string, bool) {
	const openDelim, closeDelim = "<!--", "-->"

	if !strings.HasPrefix(in, openDelim) {
		return Comment{}, in, false
	}
	raw := in[len(openDelim):]
	end := strings.Index(raw, closeDelim)
	if end < 0 {
		return Comment{}, in, false
	}
	body := raw[:end]
	rest := raw[end+len(closeDelim):]

	if strings.Contains(strings.TrimSpace(body), "\n") {
		// Drop the first and last raw lines, keep the interior verbatim.
		start := strings.IndexByte(body, '\n') + 1
		last := strings.LastIndexByte(body, '\n')
		body = body[start:last]
	} else {
		body = strings.TrimSpace(body)
	}

	return Comment{Text: body}, rest, true
}

// parseDoctype matches a <!DOCTYPE html> declaration, optionally carrying
// the about:legacy-compat system string. The keywords are matched
// case-insensitively; the legacy string itself is not.
func parseDoctype(in string) (Doctype, string, bool) {
	if !strings.HasPrefix(in, "<!") {
		return Doctype{}, in, false
	}
	rest, ok := matchFold(in[2:], "DOCTYPE")
	if !ok {
		return Doctype{}, in, false
	}
	rest, ok = skipWhiteSpace1(rest)
	if !ok {
		return Doctype{}, in, false
	}
	rest, ok = matchFold(rest, "html")
	if !ok {
		return Doctype{}, in, false
	}

	// The whitespace and the legacy string are optional as a unit, so a
	// stray space before > makes the whole declaration fail.
	legacy := false
	if r, ok := skipWhiteSpace1(rest); ok {
		if r, ok := parseLegacyString(r); ok {
			rest = r
			legacy = true
		}
	}

	if !strings.HasPrefix(rest, ">") {
		return Doctype{}, in, false
	}
	return Doctype{Legacy: legacy}, rest[1:], true
}

// parseLegacyString matches SYSTEM "about:legacy-compat" with either
// quote style.
func parseLegacyString(in string) (string, bool) {
	rest, ok := matchFold(in, "SYSTEM")
	if !ok {
		return in, false
	}
	rest, ok = skipWhiteSpace1(rest)
	if !ok {
		return in, false
	}
	for _, quote := range []byte{'"', '\''} {
		if len(rest) > 0 && rest[0] == quote {
			r := rest[1:]
			if strings.HasPrefix(r, "about:legacy-compat") {
				r = r[len("about:legacy-compat"):]
				if len(r) > 0 && r[0] == quote {
					return r[1:], true
				}
			}
		}
	}
	return in, false
}

// isForbiddenNameRune reports whether r may not appear in an attribute
// name. See https://html.spec.whatwg.org/multipage/syntax.html#attributes-2.
func isForbiddenNameRune(r rune) bool {
	switch {
	case r >= 0x007F && r <= 0x009F:
		return true
	case r == ' ' || r == '"' || r == '\'' || r == '/' || r == '>' || r == '=':
		return true
	case r >= 0xFDD0 && r <= 0xFDEF:
		return true
	case r&0xFFFE == 0xFFFE:
		// The xFFFE/xFFFF noncharacter pair in every plane.
		return true
	}
	return false
}

// parseAttributeName consumes a maximal run of one or more name runes.
func parseAttributeName(in string) (string, string, bool) {
	i := 0
	for i < len(in) {
		r, size := utf8.DecodeRuneInString(in[i:])
		if isForbiddenNameRune(r) {
			break
		}
		i += size
	}
	if i == 0 {
		return "", in, false
	}
	return in[:i], in[i:], true
}

// parseAttributeValue consumes a double-quoted, single-quoted or unquoted
// attribute value, tried in that order.
func parseAttributeValue(in string) (string, string, bool) {
	if len(in) > 0 && (in[0] == '"' || in[0] == '\'') {
		quote := in[0]
		end := strings.IndexByte(in[1:], quote)
		if end < 0 {
			return "", in, false
		}
		return in[1 : 1+end], in[2+end:], true
	}

	// An unquoted value runs until whitespace or a character that would
	// be ambiguous inside a tag.
	i := 0
	for i < len(in) {
		c := in[i]
		if isASCIIWhitespace(c) || c == '"' || c == '\'' || c == '`' || (c >= '<' && c <= '>') {
			break
		}
		i++
	}
	if i == 0 {
		return "", in, false
	}
	return in[:i], in[i:], true
}

// parseAttribute parses one name or name=value pair. If an = sign is
// present but no value can be parsed after it, the attribute backtracks
// to a bare name.
func parseAttribute(in string) (Attribute, string, bool) {
	name, rest, ok := parseAttributeName(in)
	if !ok {
		return Attribute{}, in, false
	}
	attr := Attribute{Key: name}

	r := skipWhiteSpace(rest)
	if !strings.HasPrefix(r, "=") {
		return attr, rest, true
	}
	r = skipWhiteSpace(r[1:])

	val, r, ok := parseAttributeValue(r)
	if !ok {
		return attr, rest, true
	}
	attr.Val = val
	attr.HasVal = true
	return attr, r, true
}

// parseTagName consumes a possibly empty run of tag name bytes. See
// https://html.spec.whatwg.org/multipage/syntax.html#syntax-tag-name.
func parseTagName(in string) (string, string) {
	i := 0
	for i < len(in) && !isASCIIWhitespace(in[i]) && in[i] != '/' && in[i] != '>' {
		i++
	}
	return in[:i], in[i:]
}

// parseEndTag matches </name>, allowing whitespace between the name and
// the closing bracket, and returns the end tag's name.
func parseEndTag(in string) (string, string, bool) {
	if !strings.HasPrefix(in, "</") {
		return "", in, false
	}
	name, rest := parseTagName(in[2:])
	rest = skipWhiteSpace(rest)
	if !strings.HasPrefix(rest, ">") {
		return "", in, false
	}
	return name, rest[1:], true
}

// parseElement parses a start tag and, for normal elements, its content
// and matching end tag. The end tag name must equal the start tag name
// byte for byte, while void-ness classification is case-insensitive: <BR>
// is void, but <Foo>...</foo> is a parse failure.
func parseElement(in string) (*Element, string, bool) {
	if !strings.HasPrefix(in, "<") {
		return nil, in, false
	}
	name, rest := parseTagName(in[1:])

	var attributes []Attribute
	for {
		r, ok := skipWhiteSpace1(rest)
		if !ok {
			break
		}
		attr, r, ok := parseAttribute(r)
		if !ok {
			break
		}
		attributes = append(attributes, attr)
		rest = r
	}

	rest = skipWhiteSpace(rest)
	selfClosing := strings.HasPrefix(rest, "/")
	if selfClosing {
		rest = rest[1:]
	}
	if !strings.HasPrefix(rest, ">") {
		return nil, in, false
	}
	rest = rest[1:]

	if selfClosing || contains(voidElements, strings.ToLower(name)) {
		return &Element{Name: name, Attributes: attributes, Void: true}, rest, true
	}

	content, rest, err := parseMany(rest)
	if err != nil {
		return nil, in, false
	}
	endName, rest, ok := parseEndTag(rest)
	if !ok || endName != name {
		return nil, in, false
	}

	return &Element{Name: name, Attributes: attributes, Content: content}, rest, true
}

// parseNonText tries the non-text alternatives in order: comment,
// doctype, element.
func parseNonText(in string) (Node, string, bool) {
	if comment, rest, ok := parseComment(in); ok {
		return comment, rest, true
	}
	if doctype, rest, ok := parseDoctype(in); ok {
		return doctype, rest, true
	}
	if element, rest, ok := parseElement(in); ok {
		return element, rest, true
	}
	return nil, in, false
}

// parseText consumes input as literal text up to the first position where
// an end tag or another kind of node begins, or to the end of input. A <
// that introduces neither is ordinary text: the scan steps over it and
// keeps going, which is what lets a malformed element degrade into
// literal text instead of failing the surrounding document. The second
// node, when not nil, is the non-text node that terminated the scan,
// already parsed.
func parseText(in string) (Text, Node, string, bool) {
	in = trimLeftSpace(in)
	if in == "" {
		return Text{}, nil, in, false
	}

	index := 0
	for {
		delta := strings.IndexByte(in[index:], '<')
		if delta < 0 {
			return Text{Body: trimRightSpace(in)}, nil, "", true
		}
		index += delta

		if _, _, ok := parseEndTag(in[index:]); ok {
			return Text{Body: trimRightSpace(in[:index])}, nil, in[index:], true
		}
		if next, rest, ok := parseNonText(in[index:]); ok {
			return Text{Body: trimRightSpace(in[:index])}, next, rest, true
		}
		index++
	}
}

// parseMany parses nodes until an end tag or the end of input. An end tag
// is left unconsumed: the caller, an enclosing element parse or the
// top-level driver, knows which element it should close.
func parseMany(in string) ([]Node, string, error) {
	remaining := trimLeftSpace(in)
	var buffer []Node

	for {
		if _, _, ok := parseEndTag(remaining); ok {
			return buffer, remaining, nil
		}
		if remaining == "" {
			return buffer, "", nil
		}

		if node, rest, ok := parseNonText(remaining); ok {
			buffer = append(buffer, node)
			remaining = trimLeftSpace(rest)
			continue
		}

		text, next, rest, ok := parseText(remaining)
		if !ok {
			return nil, remaining, ErrorMalformed
		}
		buffer = append(buffer, text)
		if next != nil {
			buffer = append(buffer, next)
		}
		remaining = trimLeftSpace(rest)
	}
}
