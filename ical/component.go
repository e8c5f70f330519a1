// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package ical holds the mutable component tree of an iCalendar document
// and serializes it back to folded content lines.
package ical

import (
	"strings"

	"github.com/JonDotsoy/icalendar.go/internal/exc"
	"github.com/JonDotsoy/icalendar.go/values"
)

type Exception = exc.Exception

type Property struct {
	Value      values.Value
	Parameters *values.Parameters
}

// Component is a node of the tree. Each property name holds a single
// Property: a repeated name replaces the earlier value but keeps its
// position. Components are not safe for concurrent mutation.
type Component struct {
	kind     string
	names    []string
	props    map[string]Property
	children []*Component
}

func Create(kind string) *Component {
	return &Component{
		kind:  kind,
		props: map[string]Property{},
	}
}

func (self *Component) Kind() string {
	return self.kind
}

// Set stores v under name without parameters.
func (self *Component) Set(name string, v values.Value) *Component {
	self.SetProperty(name, Property{Value: v})
	return self
}

func (self *Component) SetProperty(name string, p Property) {
	if self.props == nil {
		self.props = map[string]Property{}
	}
	if _, ok := self.props[name]; !ok {
		self.names = append(self.names, name)
	}
	self.props[name] = p
}

func (self *Component) Property(name string) (Property, bool) {
	p, ok := self.props[name]
	return p, ok
}

func (self *Component) Value(name string) (values.Value, bool) {
	p, ok := self.props[name]
	if !ok {
		return nil, false
	}
	return p.Value, true
}

func (self *Component) Remove(name string) bool {
	if _, ok := self.props[name]; !ok {
		return false
	}
	delete(self.props, name)
	for x, n := range self.names {
		if n == name {
			self.names = append(self.names[:x], self.names[x+1:]...)
			break
		}
	}
	return true
}

// PropertyNames lists names in first insertion order.
func (self *Component) PropertyNames() []string {
	return append([]string(nil), self.names...)
}

func (self *Component) AddComponent(c *Component) *Component {
	self.children = append(self.children, c)
	return self
}

// RemoveComponent detaches c. Components are compared by identity.
func (self *Component) RemoveComponent(c *Component) bool {
	for x, child := range self.children {
		if child == c {
			self.children = append(self.children[:x], self.children[x+1:]...)
			return true
		}
	}
	return false
}

func (self *Component) Components() []*Component {
	return append([]*Component(nil), self.children...)
}

func (self *Component) ComponentsOf(kind string) []*Component {
	var out []*Component
	for _, child := range self.children {
		if child.kind == kind {
			out = append(out, child)
		}
	}
	return out
}

// Lines renders the unfolded content lines of the component and its
// descendants.
func (self *Component) Lines() []string {
	lines := []string{"BEGIN:" + self.kind}
	for _, name := range self.names {
		lines = append(lines, formatProperty(name, self.props[name]))
	}
	for _, child := range self.children {
		lines = append(lines, child.Lines()...)
	}
	return append(lines, "END:"+self.kind)
}

// ICS renders the component without folding.
func (self *Component) ICS() string {
	return joinLines(self.Lines())
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

func formatProperty(name string, p Property) string {
	var b strings.Builder
	b.WriteString(name)
	for _, key := range p.Parameters.Keys() {
		v, _ := p.Parameters.Get(key)
		b.WriteByte(';')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(quoteParameter(v))
	}
	b.WriteByte(':')
	if p.Value != nil {
		b.WriteString(values.Format(p.Value))
	}
	return b.String()
}

func quoteParameter(v string) string {
	if strings.ContainsAny(v, ":;,") {
		return `"` + v + `"`
	}
	return v
}
