// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package values

import "strings"

// Text holds one item, or several when the raw value had unescaped commas.
type Text struct {
	items []string
}

func NewText(s string) Text {
	return Text{items: []string{s}}
}

func NewTextList(items ...string) Text {
	if len(items) == 0 {
		return NewText("")
	}
	return Text{items: append([]string(nil), items...)}
}

func (self Text) IsList() bool {
	return len(self.items) > 1
}

func (self Text) Items() []string {
	if len(self.items) == 0 {
		return []string{""}
	}
	return append([]string(nil), self.items...)
}

// String joins the decoded items with commas.
func (self Text) String() string {
	return strings.Join(self.items, ",")
}

var unescapes = map[byte]byte{
	'\\': '\\',
	',':  ',',
	'.':  '.',
	'\'': '\'',
	'"':  '"',
	'n':  '\n',
	'N':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	';':  ';',
}

// escapes is a strict subset of unescapes.
var escapes = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	"\b", `\b`,
)

// ParseText decodes escapes and splits raw on unescaped commas. Unknown
// escapes are kept as written.
func ParseText(raw string) Text {
	var items []string
	var b strings.Builder
	for x := 0; x < len(raw); x = x + 1 {
		c := raw[x]
		switch {
		case c == '\\' && x+1 < len(raw):
			if r, ok := unescapes[raw[x+1]]; ok {
				b.WriteByte(r)
				x = x + 1
				continue
			}
			b.WriteByte(c)
		case c == ',':
			items = append(items, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	items = append(items, b.String())
	return Text{items: items}
}

func formatText(t Text) string {
	if len(t.items) == 1 {
		return escapes.Replace(t.items[0])
	}
	out := make([]string, len(t.items))
	for x, item := range t.items {
		out[x] = escapes.Replace(item)
	}
	return strings.Join(out, ",")
}
