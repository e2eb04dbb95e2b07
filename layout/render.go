// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"io"
	"strings"
)

type mode int

const (
	modeFlat mode = iota
	modeBreak
)

// A cmd is one pending rendering step: a document together with the
// indentation and layout mode it inherited from its context.
type cmd struct {
	indent int
	mode   mode
	doc    Doc
}

// Render writes doc to w, breaking every group that does not fit within
// width columns. Write errors are returned as is.
func Render(w io.Writer, width int, doc Doc) error {
	col := 0
	stack := []cmd{{0, modeBreak, doc}}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch d := c.doc.(type) {
		case textDoc:
			if _, err := io.WriteString(w, string(d)); err != nil {
				return err
			}
			col += len(d)

		case lineDoc:
			if c.mode == modeFlat && !d.hard {
				if !d.omitWhenFlat {
					if _, err := io.WriteString(w, " "); err != nil {
						return err
					}
					col++
				}
				continue
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			if _, err := io.WriteString(w, strings.Repeat(" ", c.indent)); err != nil {
				return err
			}
			col = c.indent

		case nestDoc:
			stack = append(stack, cmd{c.indent + d.indent, c.mode, d.inner})

		case concatDoc:
			for i := len(d) - 1; i >= 0; i-- {
				stack = append(stack, cmd{c.indent, c.mode, d[i]})
			}

		case groupDoc:
			// A group inside a flat context already fit as part of the
			// enclosing measurement, so only break-mode groups decide.
			m := modeFlat
			if c.mode == modeBreak && !fits(width-col, d.inner, stack) {
				m = modeBreak
			}
			stack = append(stack, cmd{c.indent, m, d.inner})

		default:
			return fmt.Errorf("layout: unknown document node %T", c.doc)
		}
	}

	return nil
}

// RenderString renders doc at the given width into a string.
func RenderString(width int, doc Doc) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, width, doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// fits reports whether doc, laid out flat, fits in the remaining columns
// of the current line. The measurement looks past the end of doc into the
// pending commands, so that a group immediately followed by, say, a
// closing delimiter accounts for that delimiter before choosing the flat
// layout. Pending content is scanned in broken mode: its first separator
// ends the line, and with it the measurement.
func fits(remaining int, doc Doc, pending []cmd) bool {
	// trial holds the candidate group's own subtree, scanned flat.
	trial := []cmd{{0, modeFlat, doc}}
	next := len(pending)

	for remaining >= 0 {
		var c cmd
		if len(trial) > 0 {
			c = trial[len(trial)-1]
			trial = trial[:len(trial)-1]
		} else {
			if next == 0 {
				return true
			}
			next--
			c = pending[next]
			c.mode = modeBreak
		}

		switch d := c.doc.(type) {
		case textDoc:
			remaining -= len(d)

		case lineDoc:
			if c.mode == modeBreak {
				return true
			}
			if d.hard {
				// A hard line can never be rendered flat.
				return false
			}
			if !d.omitWhenFlat {
				remaining--
			}

		case nestDoc:
			trial = append(trial, cmd{c.indent, c.mode, d.inner})

		case concatDoc:
			for i := len(d) - 1; i >= 0; i-- {
				trial = append(trial, cmd{c.indent, c.mode, d[i]})
			}

		case groupDoc:
			trial = append(trial, cmd{c.indent, c.mode, d.inner})
		}
	}

	return false
}
