// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package ical

import (
	"io"
	"strings"
)

// Fold splits line into physical lines. The first takes limit bytes and each
// continuation is a space followed by at most limit-1 bytes. Lengths are in
// bytes, so a multi-byte character may be split.
func Fold(line string, limit int) string {
	if limit < 2 || len(line) <= limit {
		return line
	}
	var b strings.Builder
	b.Grow(len(line) + (len(line)/(limit-1)+1)*3)
	b.WriteString(line[:limit])
	rest := line[limit:]
	for len(rest) > 0 {
		n := min(limit-1, len(rest))
		b.WriteString("\r\n ")
		b.WriteString(rest[:n])
		rest = rest[n:]
	}
	return b.String()
}

// Format writes the folded calendar to w.
func Format(w io.Writer, cal *Calendar, opts ...SerializeOption) error {
	_, err := io.WriteString(w, cal.ICS(opts...))
	return err
}
