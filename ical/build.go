// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package ical

import (
	"fmt"

	"github.com/JonDotsoy/icalendar.go/internal/exc"
	"github.com/JonDotsoy/icalendar.go/internal/source"
	"github.com/JonDotsoy/icalendar.go/syntax"
	"github.com/JonDotsoy/icalendar.go/values"
)

// Parse reads buf and returns its first VCALENDAR.
func Parse(buf []byte, opts ...Option) (*Calendar, error) {
	cfg := newParseConfig(opts)
	components, err := parseComponents(buf, cfg)
	if err != nil {
		return nil, err
	}
	for _, c := range components {
		if c.kind == KindCalendar {
			return &Calendar{Component: c}, nil
		}
	}
	return nil, exc.At(source.Start(), cfg.uri, exc.CodeMissingComponent, fmt.Sprintf("missing component %s", KindCalendar))
}

// ParseComponents reads buf and returns every top level component.
func ParseComponents(buf []byte, opts ...Option) ([]*Component, error) {
	return parseComponents(buf, newParseConfig(opts))
}

func parseComponents(buf []byte, cfg *parseConfig) ([]*Component, error) {
	tokens, err := syntax.NewLexerICS(cfg.uri).Lex(buf)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("lexed input", "uri", cfg.uri, "bytes", len(buf), "tokens", len(tokens))
	if cfg.onTokens != nil {
		cfg.onTokens(buf, tokens)
	}
	m, err := syntax.NewParserICS(cfg.uri).Parse(buf, tokens)
	if err != nil {
		return nil, err
	}
	if cfg.onTree != nil {
		cfg.onTree(m)
	}
	components, err := fromSyntax(m, cfg)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("built component tree", "uri", cfg.uri, "components", len(components))
	return components, nil
}

// FromSyntax types every property of m. Property lines outside of any
// component are rejected.
func FromSyntax(m *syntax.Module, opts ...Option) ([]*Component, error) {
	return fromSyntax(m, newParseConfig(opts))
}

func fromSyntax(m *syntax.Module, cfg *parseConfig) ([]*Component, error) {
	out := make([]*Component, 0, len(m.Entries))
	for _, e := range m.Entries {
		switch n := e.(type) {
		case *syntax.Component:
			c, err := buildComponent(n, cfg.uri)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		case *syntax.Property:
			return nil, exc.At(n.Span().Start, cfg.uri, exc.CodeStrayProperty, fmt.Sprintf("property %s outside of a component", n.Name))
		}
	}
	return out, nil
}

func buildComponent(n *syntax.Component, uri string) (*Component, error) {
	c := Create(n.Kind)
	for _, e := range n.Entries {
		switch n := e.(type) {
		case *syntax.Component:
			child, err := buildComponent(n, uri)
			if err != nil {
				return nil, err
			}
			c.AddComponent(child)
		case *syntax.Property:
			p, err := buildProperty(n, uri)
			if err != nil {
				return nil, err
			}
			c.SetProperty(string(n.Name), p)
		}
	}
	return c, nil
}

func buildProperty(n *syntax.Property, uri string) (Property, error) {
	params := values.NewParameters()
	for _, param := range n.Parameters {
		params.Set(string(param.Name), string(param.Value))
	}
	v, err := values.ParseProperty(string(n.Name), string(n.Value), params)
	if err != nil {
		loc := exc.Location{Location: n.ValueSpan.Start, URI: uri}
		return Property{}, exc.Wrap(loc, exc.CodeInvalidValue, fmt.Errorf("%s: %w", n.Name, err))
	}
	return Property{Value: v, Parameters: params}, nil
}
