// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"fmt"
	"strings"
)

type Node interface {
	Span() Span
}

// Entry is a node that may appear in a Module or Component body.
type Entry interface {
	Node
	entry()
}

type node struct {
	span Span
}

func (self node) Span() Span {
	return self.span
}

type Module struct {
	node
	Entries []Entry
}

// Parameter values are stored without their surrounding quotes. A quoted
// list keeps its members joined by commas.
type Parameter struct {
	node
	Name   []byte
	Value  []byte
	Quoted bool
}

// Property is a single content line. Name and Value reference the parsed
// buffer whenever the line was not folded.
type Property struct {
	node
	Name       []byte
	Parameters []Parameter
	Value      []byte
	NameSpan   Span
	ValueSpan  Span
}

func (*Property) entry() {}

// Component is a BEGIN/END block. The BEGIN and END lines themselves are not
// part of Entries.
type Component struct {
	node
	Kind    string
	Entries []Entry
}

func (*Component) entry() {}

type Comment struct {
	node
	Text []byte
}

func (self *Module) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Module %s\n", self.span)
	writeEntries(&b, self.Entries, 1)
	return b.String()
}

func writeEntries(b *strings.Builder, entries []Entry, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		switch n := e.(type) {
		case *Property:
			fmt.Fprintf(b, "%sProperty %s %s", indent, n.Name, n.span)
			for _, param := range n.Parameters {
				fmt.Fprintf(b, " ;%s=%q", param.Name, param.Value)
			}
			fmt.Fprintf(b, " %q\n", n.Value)
		case *Component:
			fmt.Fprintf(b, "%sComponent %s %s\n", indent, n.Kind, n.span)
			writeEntries(b, n.Entries, depth+1)
		}
	}
}
