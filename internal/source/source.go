// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package source describes positions inside an input buffer.
package source

import "fmt"

// Location is a single point in a source buffer. Offset is a 0-based byte
// offset. Line and Column are 1-based.
type Location struct {
	Offset int
	Line   int
	Column int
}

// Start returns the location of the first byte of any buffer.
func Start() Location {
	return Location{Offset: 0, Line: 1, Column: 1}
}

func (self Location) String() string {
	return fmt.Sprintf("%d:%d", self.Line, self.Column)
}

// Span is the half-open range [Start, End) of a token or node.
type Span struct {
	Start Location
	End   Location
}

func (self Span) String() string {
	return fmt.Sprintf("%s-%s", self.Start, self.End)
}

// Len is the number of bytes covered by the span.
func (self Span) Len() int {
	return self.End.Offset - self.Start.Offset
}

// Bytes slices buf without copying.
func (self Span) Bytes(buf []byte) []byte {
	return buf[self.Start.Offset:self.End.Offset]
}

// Join returns the smallest span covering both a and b. a must not start
// after b.
func Join(a Span, b Span) Span {
	return Span{Start: a.Start, End: b.End}
}
