// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/JonDotsoy/icalendar.go/internal/exc"
	"github.com/JonDotsoy/icalendar.go/internal/source"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

type special struct {
	seq []byte
	typ TokenType
}

// specials are tried longest first. Sequences of equal length keep their
// declaration order.
var specials = sortSpecials([]special{
	{[]byte("\r\n "), TokenTypeUnfold},
	{[]byte("\r\n\t"), TokenTypeUnfold},
	{[]byte("\n "), TokenTypeUnfold},
	{[]byte("\n\t"), TokenTypeUnfold},
	{[]byte("\r\n"), TokenTypeNewline},
	{[]byte("\n"), TokenTypeNewline},
	{[]byte("\r"), TokenTypeCR},
	{[]byte(":"), TokenTypeColon},
	{[]byte(";"), TokenTypeSemicolon},
	{[]byte("="), TokenTypeEqual},
	{[]byte(","), TokenTypeComma},
	{[]byte(`"`), TokenTypeQuote},
	{[]byte(`\`), TokenTypeBackslash},
	{[]byte("-"), TokenTypeHyphen},
	{[]byte("N"), TokenTypeN},
	{[]byte("T"), TokenTypeT},
	{[]byte("X"), TokenTypeX},
	{[]byte("Z"), TokenTypeZ},
	{[]byte("n"), TokenTypeLowerN},
})

// specialStart marks every byte that begins at least one special sequence.
var specialStart = func() [256]bool {
	var table [256]bool
	for _, s := range specials {
		table[s.seq[0]] = true
	}
	return table
}()

func sortSpecials(s []special) []special {
	slices.SortStableFunc(s, func(a special, b special) int {
		return len(b.seq) - len(a.seq)
	})
	return s
}

func isControl(b byte) bool {
	return (b < 0x20 && b != '\t') || b == 0x7F
}

// LexerICS splits an iCalendar buffer into positioned tokens. The tokens
// cover the whole buffer without gaps.
type LexerICS struct {
	uri string
}

func NewLexerICS(uri string) *LexerICS {
	return &LexerICS{uri: uri}
}

// Lex tokenizes buf with an anonymous lexer.
func Lex(buf []byte) ([]Token, error) {
	return NewLexerICS("").Lex(buf)
}

func (self *LexerICS) Lex(buf []byte) ([]Token, error) {
	l := &lexerICSTokens{
		uri: self.uri,
		buf: buf,
		loc: source.Start(),
	}
	tokens := make([]Token, 0, len(buf)/4+1)
	if bytes.HasPrefix(buf, bom) {
		start := l.loc
		l.loc.Offset = len(bom)
		tokens = append(tokens, newToken(TokenTypeBOM, start, l.loc))
	}
	for l.loc.Offset < len(buf) {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

type lexerICSTokens struct {
	uri string
	buf []byte
	loc Location
}

func (self *lexerICSTokens) advance(n int) {
	for _, b := range self.buf[self.loc.Offset : self.loc.Offset+n] {
		if b == '\n' {
			self.loc.Line = self.loc.Line + 1
			self.loc.Column = 1
		} else {
			self.loc.Column = self.loc.Column + 1
		}
	}
	self.loc.Offset = self.loc.Offset + n
}

func (self *lexerICSTokens) next() (Token, error) {
	start := self.loc
	rest := self.buf[start.Offset:]
	if specialStart[rest[0]] {
		for _, s := range specials {
			if bytes.HasPrefix(rest, s.seq) {
				self.advance(len(s.seq))
				return newToken(s.typ, start, self.loc), nil
			}
		}
	}
	n := 0
	for n < len(rest) && !specialStart[rest[n]] && !isControl(rest[n]) {
		n = n + 1
	}
	if n == 0 {
		return Token{}, exc.At(start, self.uri, exc.CodeCharSyntax, fmt.Sprintf("char syntax error (0x%02X)", rest[0]))
	}
	self.advance(n)
	return newToken(TokenTypeWord, start, self.loc), nil
}
