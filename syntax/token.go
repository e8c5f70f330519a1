// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"fmt"

	"github.com/JonDotsoy/icalendar.go/internal/exc"
	"github.com/JonDotsoy/icalendar.go/internal/source"
)

type (
	Location  = source.Location
	Span      = source.Span
	Exception = exc.Exception
)

type TokenType uint8

const (
	TokenTypeUnknown TokenType = iota
	TokenTypeWord
	TokenTypeBOM
	TokenTypeUnfold
	TokenTypeNewline
	TokenTypeCR
	TokenTypeColon
	TokenTypeSemicolon
	TokenTypeEqual
	TokenTypeComma
	TokenTypeQuote
	TokenTypeBackslash
	TokenTypeHyphen
	TokenTypeN
	TokenTypeT
	TokenTypeX
	TokenTypeZ
	TokenTypeLowerN
)

var tokenTypeNames = [...]string{
	TokenTypeUnknown:   "unknown",
	TokenTypeWord:      "word",
	TokenTypeBOM:       "bom",
	TokenTypeUnfold:    "unfold",
	TokenTypeNewline:   "newline",
	TokenTypeCR:        "cr",
	TokenTypeColon:     "colon",
	TokenTypeSemicolon: "semicolon",
	TokenTypeEqual:     "equal",
	TokenTypeComma:     "comma",
	TokenTypeQuote:     "quote",
	TokenTypeBackslash: "backslash",
	TokenTypeHyphen:    "hyphen",
	TokenTypeN:         "N",
	TokenTypeT:         "T",
	TokenTypeX:         "X",
	TokenTypeZ:         "Z",
	TokenTypeLowerN:    "n",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

// Keyword reports whether the token may appear in a property or parameter
// name.
func (t TokenType) Keyword() bool {
	switch t {
	case TokenTypeWord, TokenTypeHyphen, TokenTypeN, TokenTypeT, TokenTypeX, TokenTypeZ, TokenTypeLowerN:
		return true
	default:
		return false
	}
}

// Token does not carry its text. Use Span.Bytes with the lexed buffer to
// recover it.
type Token struct {
	Type TokenType
	Span Span
}

func newToken(t TokenType, start Location, end Location) Token {
	return Token{Type: t, Span: Span{Start: start, End: end}}
}

// FormatToken renders a token for debugging output.
func FormatToken(tok Token, buf []byte) string {
	return fmt.Sprintf("%s %-9s %q", tok.Span, tok.Type, tok.Span.Bytes(buf))
}
