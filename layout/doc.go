// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package layout implements a small document algebra for building pretty
// printers, in the style of the classic Wadler/Hughes combinators.
//
// A Doc describes layout constraints rather than explicit formatting
// decisions: literal text, breakable separators, indentation scopes and
// groups. The renderer then decides, per group, whether its content fits
// flat on the current line or must be broken across several lines.
package layout

import "strings"

// A Doc is an immutable description of how a piece of text may be laid
// out. Docs are built bottom-up with the constructor functions in this
// package and rendered with Render.
type Doc interface {
	doc()
}

type textDoc string

type lineDoc struct {
	// hard forces a newline and makes every enclosing group break.
	hard bool
	// omitWhenFlat renders the separator as nothing instead of a space
	// when the enclosing group is laid out flat.
	omitWhenFlat bool
}

type nestDoc struct {
	indent int
	inner  Doc
}

type groupDoc struct {
	inner Doc
}

type concatDoc []Doc

func (textDoc) doc()   {}
func (lineDoc) doc()   {}
func (nestDoc) doc()   {}
func (groupDoc) doc()  {}
func (concatDoc) doc() {}

// Nil is the empty document.
var Nil Doc = concatDoc(nil)

// Text is a literal string. It must not contain newlines; use the
// separator constructors for those.
func Text(s string) Doc {
	return textDoc(s)
}

// Line is a breakable separator. It renders as a single space when its
// enclosing group is laid out flat, and as a newline followed by the
// current indentation when the group is broken.
func Line() Doc {
	return lineDoc{}
}

// SoftLine is like Line but renders as nothing at all when the enclosing
// group is laid out flat.
func SoftLine() Doc {
	return lineDoc{omitWhenFlat: true}
}

// HardLine always renders as a newline followed by the current
// indentation, and forces every enclosing group to choose the broken
// layout.
func HardLine() Doc {
	return lineDoc{hard: true}
}

// Nest renders inner with the indentation level increased by indent
// columns for every newline produced within it.
func Nest(indent int, inner Doc) Doc {
	return nestDoc{indent: indent, inner: inner}
}

// Group marks inner as a unit that is laid out flat if it fits in the
// width remaining on the current line, and broken otherwise.
func Group(inner Doc) Doc {
	return groupDoc{inner: inner}
}

// Concat sequences documents left to right.
func Concat(docs ...Doc) Doc {
	return concatDoc(docs)
}

// Reflow splits text on whitespace and joins the words with individually
// grouped Line separators. Consecutive words render space-separated while
// they fit on the line and wrap onto a new line, at the current
// indentation, once they would not.
func Reflow(text string) Doc {
	words := strings.Fields(text)
	docs := make(concatDoc, 0, 2*len(words))
	for i, word := range words {
		if i > 0 {
			docs = append(docs, Group(Line()))
		}
		docs = append(docs, textDoc(word))
	}
	return docs
}
