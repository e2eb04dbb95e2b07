package markup

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/hesusruiz/markfmt/layout"
)

// Format parses the input markup and renders it again in canonical form
// at the configured line width. Formatting an already canonical document
// reproduces it exactly. The parsed tree is built once, consumed once and
// discarded, so Format is safe to call concurrently on independent
// inputs.
func Format(input string, config *Configuration) (string, error) {
	nodes, _, err := parseMany(input)
	if err != nil {
		return "", err
	}

	if uint64(config.LineWidth) > uint64(math.MaxInt) {
		return "", fmt.Errorf("markup: line width %d is not representable", config.LineWidth)
	}

	// Each top-level node is followed by a soft separator, which at the
	// top level always renders as a newline.
	docs := make([]layout.Doc, 0, 2*len(nodes))
	for _, node := range nodes {
		docs = append(docs, prettyNode(node, config), layout.SoftLine())
	}

	var buffer bytes.Buffer
	if err := layout.Render(&buffer, int(config.LineWidth), layout.Concat(docs...)); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

func prettyNode(node Node, config *Configuration) layout.Doc {
	switch n := node.(type) {
	case Comment:
		return prettyComment(n, config)
	case Doctype:
		return prettyDoctype(n)
	case *Element:
		return prettyElement(n, config)
	case Text:
		return prettyText(n)
	}
	return layout.Nil
}

func prettyComment(comment Comment, config *Configuration) layout.Doc {
	if comment.Text == "" {
		return layout.Text("<!---->")
	}

	lines := strings.Split(comment.Text, "\n")

	var body []layout.Doc
	for _, line := range lines {
		body = append(body, layout.Line(), layout.Text(line))
	}

	var buffer layout.Doc
	if len(lines) == 1 {
		// Only single line comments are indented. A multiline body is
		// kept verbatim, and the hard line forces the closing delimiter
		// onto its own unindented line.
		buffer = layout.Concat(
			layout.Nest(int(config.IndentWidth), layout.Concat(body...)),
			layout.Line(),
		)
	} else {
		buffer = layout.Concat(append(body, layout.HardLine())...)
	}

	return layout.Group(layout.Concat(layout.Text("<!--"), buffer, layout.Text("-->")))
}

func prettyDoctype(doctype Doctype) layout.Doc {
	if doctype.Legacy {
		return layout.Text(`<!DOCTYPE html SYSTEM "about:legacy-compat">`)
	}
	return layout.Text("<!DOCTYPE html>")
}

func prettyElement(element *Element, config *Configuration) layout.Doc {
	indent := int(config.IndentWidth)

	buffer := []layout.Doc{layout.Text("<" + element.Name)}

	if len(element.Attributes) > 0 {
		var attrs []layout.Doc
		for _, attr := range element.Attributes {
			attrs = append(attrs, layout.Line(), layout.Text(attr.Key))
			if attr.HasVal {
				attrs = append(attrs, layout.Text(`="`+attr.Val+`"`))
			}
		}
		// Attributes stay on one line when they fit. Otherwise each goes
		// on its own indented line and the closing bracket returns to
		// the element's own indentation.
		buffer = append(buffer, layout.Group(layout.Concat(
			layout.Nest(indent, layout.Concat(attrs...)),
			layout.SoftLine(),
		)))
	}

	if element.Void {
		buffer = append(buffer, layout.Text("/>"))
		return layout.Concat(buffer...)
	}

	buffer = append(buffer, layout.Text(">"))

	if len(element.Content) > 0 {
		// Pure element content is always laid out one child per line;
		// content with any text in it may stay flat.
		forceMultiline := true
		for _, node := range element.Content {
			if _, ok := node.(Text); ok {
				forceMultiline = false
				break
			}
		}

		var children []layout.Doc
		for _, node := range element.Content {
			if forceMultiline {
				children = append(children, layout.HardLine())
			} else {
				children = append(children, layout.SoftLine())
			}
			children = append(children, prettyNode(node, config))
		}
		buffer = append(buffer, layout.Group(layout.Concat(
			layout.Nest(indent, layout.Concat(children...)),
			layout.SoftLine(),
		)))
	}

	buffer = append(buffer, layout.Text("</"+element.Name+">"))
	return layout.Group(layout.Concat(buffer...))
}

func prettyText(text Text) layout.Doc {
	if text.Body == "" {
		return layout.Nil
	}
	return layout.Reflow(text.Body)
}
