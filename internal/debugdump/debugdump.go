// SPDX-License-Identifier: GPL-3.0-or-later

// Package debugdump renders a GbaCore snapshot for debugging tools: a
// Graphviz graph of the struct's field relationships via memviz, or a
// recursive text dump of the same value via go-spew, grounded on the
// teacher's own use of memviz for the same purpose on its commandline
// index (see _examples/JetSetIlly-Gopher2600/debugger/terminal/commandline).
package debugdump

import (
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/davecgh/go-spew/spew"
)

// Graph renders v (typically a GbaCore.Inspect() snapshot or the core
// itself) as a Graphviz dot graph for visual inspection.
func Graph(w io.Writer, v interface{}) (err error) {
	// memviz.Map panics on a value it can't walk (e.g. an unexported-only
	// leaf); recover and surface it as an error rather than crashing a
	// caller that only wanted a best-effort dump.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("debugdump: graph: %v", r)
		}
	}()
	memviz.Map(w, v)
	return nil
}

// Text renders v as an indented, recursive struct dump via go-spew. Used
// where a dot graph is unnecessary or where v contains cycles/pointers
// memviz can't usefully render.
func Text(w io.Writer, v interface{}) {
	spew.Fdump(w, v)
}
