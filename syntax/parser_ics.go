// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"bytes"
	"fmt"

	"github.com/JonDotsoy/icalendar.go/internal/exc"
	"github.com/JonDotsoy/icalendar.go/internal/iter"
	"github.com/JonDotsoy/icalendar.go/internal/source"
)

const parserICSLookahead = 2

// ParserICS builds a syntax tree from the tokens of LexerICS.
type ParserICS struct {
	uri string
}

func NewParserICS(uri string) *ParserICS {
	return &ParserICS{uri: uri}
}

// Parse lexes and parses buf.
func Parse(buf []byte) (*Module, error) {
	tokens, err := Lex(buf)
	if err != nil {
		return nil, err
	}
	return NewParserICS("").Parse(buf, tokens)
}

func (self *ParserICS) Parse(buf []byte, tokens []Token) (*Module, error) {
	p := self.prepare(buf, tokens)
	m := p.parseModule()
	if p.err != nil {
		return nil, p.err
	}
	return m, nil
}

func (self *ParserICS) prepare(buf []byte, tokens []Token) *parserICSTokens {
	// Folds may appear anywhere, including inside names.
	filtered := iter.NewIteratorFilter(iter.NewSlice(tokens), iter.Filter[Token](iter.FilterFunc[Token](func(t Token) bool {
		switch t.Type {
		case TokenTypeUnfold, TokenTypeBOM:
			return false
		default:
			return true
		}
	})))
	return &parserICSTokens{
		uri:    self.uri,
		buf:    buf,
		tokens: iter.NewLookahead(filtered, parserICSLookahead),
		loc:    source.Start(),
	}
}

type parserICSTokens struct {
	uri string
	buf []byte
	// end of the last consumed token, used to place errors at end of input.
	loc    Location
	tokens iter.Lookahead[Token]
	err    Exception
}

func (p *parserICSTokens) report(loc Location, code string, message string) {
	if p.err != nil {
		return
	}
	p.err = exc.At(loc, p.uri, code, message)
}

func (p *parserICSTokens) advance() {
	if t, ok := p.tokens.Next(); ok {
		p.loc = t.Span.End
	}
}

func (p *parserICSTokens) peekN(n int) *Token {
	t, ok := p.tokens.Lookahead(n)
	if !ok {
		return nil
	}
	return &t
}

func (p *parserICSTokens) peek() *Token {
	return p.peekN(0)
}

// reports an error if the current token isn't of the expected type.
// advances on success
func (p *parserICSTokens) expectOne(expectedType TokenType) *Token {
	t := p.peek()
	if t == nil {
		p.report(p.loc, exc.CodeExpectedToken, fmt.Sprintf("expected token `%s` at `%s`", expectedType, p.loc))
		return nil
	}
	if t.Type != expectedType {
		p.report(t.Span.Start, exc.CodeExpectedToken, fmt.Sprintf("expected token `%s` at `%s`", expectedType, t.Span.Start))
		return nil
	}
	p.advance()
	return t
}

func (p *parserICSTokens) invalid(t *Token) {
	p.report(t.Span.Start, exc.CodeInvalidToken, fmt.Sprintf("invalid token at `%s` (`%s`)", t.Span.Start, t.Type))
}

// text returns the bytes covered by tokens. Contiguous runs are returned as a
// subslice of the buffer.
func (p *parserICSTokens) text(tokens []Token) []byte {
	if len(tokens) == 0 {
		return []byte{}
	}
	contiguous := true
	for x := 1; x < len(tokens); x = x + 1 {
		if tokens[x].Span.Start.Offset != tokens[x-1].Span.End.Offset {
			contiguous = false
			break
		}
	}
	if contiguous {
		return source.Join(tokens[0].Span, tokens[len(tokens)-1].Span).Bytes(p.buf)
	}
	out := make([]byte, 0, tokens[len(tokens)-1].Span.End.Offset-tokens[0].Span.Start.Offset)
	for _, t := range tokens {
		out = append(out, t.Span.Bytes(p.buf)...)
	}
	return out
}

// takeWhile consumes tokens while keep returns true.
func (p *parserICSTokens) takeWhile(keep func(TokenType) bool) []Token {
	var tokens []Token
	for {
		t := p.peek()
		if t == nil || !keep(t.Type) {
			return tokens
		}
		p.advance()
		tokens = append(tokens, *t)
	}
}

func spanOf(tokens []Token, at Location) Span {
	if len(tokens) == 0 {
		return Span{Start: at, End: at}
	}
	return source.Join(tokens[0].Span, tokens[len(tokens)-1].Span)
}

// Module = { Entry }
func (p *parserICSTokens) parseModule() *Module {
	this := &Module{}
	for p.peek() != nil {
		e := p.parseEntry()
		if p.err != nil {
			return nil
		}
		if e != nil {
			this.Entries = append(this.Entries, e)
		}
	}
	this.span = Span{Start: source.Start(), End: p.loc}
	return this
}

// Entry = Newline | Comment | Component | Property
//
// Blank lines and comments produce no entry.
func (p *parserICSTokens) parseEntry() Entry {
	t := p.peek()
	switch {
	case t.Type == TokenTypeNewline:
		p.advance()
		return nil
	case t.Type == TokenTypeSemicolon:
		_ = p.parseComment()
		return nil
	case t.Type.Keyword():
		prop := p.parseProperty()
		if prop == nil {
			return nil
		}
		switch {
		case bytes.EqualFold(prop.Name, []byte("BEGIN")):
			if c := p.parseComponent(prop); c != nil {
				return c
			}
			return nil
		case bytes.EqualFold(prop.Name, []byte("END")):
			p.report(prop.span.Start, exc.CodeUnmatchedEnd, fmt.Sprintf("unmatched END:`%s` at `%s`", prop.Value, prop.span.Start))
			return nil
		}
		return prop
	default:
		p.invalid(t)
		return nil
	}
}

// Comment = ";" { any } Newline
func (p *parserICSTokens) parseComment() *Comment {
	start := p.expectOne(TokenTypeSemicolon)
	if start == nil {
		return nil
	}
	body := p.takeWhile(func(t TokenType) bool { return t != TokenTypeNewline })
	_ = p.takeWhile(func(t TokenType) bool { return t == TokenTypeNewline })
	this := &Comment{Text: p.text(body)}
	this.span = Span{Start: start.Span.Start, End: spanOf(body, start.Span.End).End}
	return this
}

// Component = BEGIN ":" Kind Newline { Entry } END ":" Kind
func (p *parserICSTokens) parseComponent(begin *Property) *Component {
	this := &Component{Kind: string(begin.Value)}
	if this.Kind == "" {
		p.report(begin.ValueSpan.Start, exc.CodeExpectedToken, fmt.Sprintf("expected token `%s` at `%s`", TokenTypeWord, begin.ValueSpan.Start))
		return nil
	}
	for {
		t := p.peek()
		if t == nil {
			p.report(p.loc, exc.CodeUnterminatedComponent, fmt.Sprintf("expected END:`%s`", this.Kind))
			return nil
		}
		switch {
		case t.Type == TokenTypeNewline:
			p.advance()
			continue
		case t.Type == TokenTypeSemicolon:
			if p.parseComment() == nil {
				return nil
			}
			continue
		case !t.Type.Keyword():
			p.invalid(t)
			return nil
		}
		prop := p.parseProperty()
		if prop == nil {
			return nil
		}
		switch {
		case bytes.EqualFold(prop.Name, []byte("BEGIN")):
			child := p.parseComponent(prop)
			if child == nil {
				return nil
			}
			this.Entries = append(this.Entries, child)
		case bytes.EqualFold(prop.Name, []byte("END")):
			if string(prop.Value) != this.Kind {
				p.report(prop.span.Start, exc.CodeUnterminatedComponent, fmt.Sprintf("expected END:`%s`", this.Kind))
				return nil
			}
			this.span = source.Join(begin.span, prop.span)
			return this
		default:
			this.Entries = append(this.Entries, prop)
		}
	}
}

// Property = Name { ";" Parameter } ":" Value [ Newline ]
func (p *parserICSTokens) parseProperty() *Property {
	name := p.takeWhile(TokenType.Keyword)
	if len(name) == 0 {
		p.expectOne(TokenTypeWord)
		return nil
	}
	this := &Property{
		Name:     p.text(name),
		NameSpan: spanOf(name, p.loc),
	}
	for {
		t := p.peek()
		if t == nil || t.Type != TokenTypeSemicolon {
			break
		}
		p.advance()
		param := p.parseParameter()
		if param == nil {
			return nil
		}
		this.Parameters = append(this.Parameters, *param)
	}
	colon := p.expectOne(TokenTypeColon)
	if colon == nil {
		return nil
	}
	value := p.takeWhile(func(t TokenType) bool { return t != TokenTypeNewline })
	this.Value = p.text(value)
	this.ValueSpan = spanOf(value, colon.Span.End)
	this.span = Span{Start: this.NameSpan.Start, End: this.ValueSpan.End}
	if t := p.peek(); t != nil {
		p.advance()
	}
	return this
}

// Parameter = Name "=" Segment { "," Segment }
// Segment = Quoted | Bare
func (p *parserICSTokens) parseParameter() *Parameter {
	name := p.takeWhile(TokenType.Keyword)
	if len(name) == 0 {
		p.expectOne(TokenTypeWord)
		return nil
	}
	if p.expectOne(TokenTypeEqual) == nil {
		return nil
	}
	this := &Parameter{Name: p.text(name)}
	var segments [][]byte
	for {
		t := p.peek()
		if t != nil && t.Type == TokenTypeQuote {
			seg := p.parseQuoted()
			if seg == nil {
				return nil
			}
			this.Quoted = true
			segments = append(segments, seg)
		} else {
			bare := p.takeWhile(func(t TokenType) bool {
				switch t {
				case TokenTypeColon, TokenTypeSemicolon, TokenTypeNewline, TokenTypeComma:
					return false
				default:
					return true
				}
			})
			segments = append(segments, p.text(bare))
		}
		t = p.peek()
		if t == nil || t.Type != TokenTypeComma {
			break
		}
		p.advance()
	}
	if len(segments) == 1 {
		this.Value = segments[0]
	} else {
		this.Value = bytes.Join(segments, []byte(","))
	}
	this.span = Span{Start: name[0].Span.Start, End: p.loc}
	return this
}

// Quoted = DQUOTE { any but DQUOTE or Newline } DQUOTE
func (p *parserICSTokens) parseQuoted() []byte {
	if p.expectOne(TokenTypeQuote) == nil {
		return nil
	}
	body := p.takeWhile(func(t TokenType) bool {
		return t != TokenTypeQuote && t != TokenTypeNewline
	})
	if p.expectOne(TokenTypeQuote) == nil {
		return nil
	}
	return p.text(body)
}
