// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package ical

import (
	"io"
	"log/slog"

	"github.com/JonDotsoy/icalendar.go/syntax"
)

// DefaultFoldLimit is the byte length of the first physical line of a
// folded content line.
const DefaultFoldLimit = 61

type parseConfig struct {
	uri      string
	logger   *slog.Logger
	onTokens func(buf []byte, tokens []syntax.Token)
	onTree   func(m *syntax.Module)
}

func newParseConfig(opts []Option) *parseConfig {
	cfg := &parseConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

type Option func(*parseConfig)

// WithURI names the input in exceptions.
func WithURI(uri string) Option {
	return func(cfg *parseConfig) {
		cfg.uri = uri
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *parseConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithTokens observes the token stream of each successful lex.
func WithTokens(fn func(buf []byte, tokens []syntax.Token)) Option {
	return func(cfg *parseConfig) {
		cfg.onTokens = fn
	}
}

// WithTree observes the syntax tree before it is typed.
func WithTree(fn func(m *syntax.Module)) Option {
	return func(cfg *parseConfig) {
		cfg.onTree = fn
	}
}

type serializeConfig struct {
	foldLimit int
}

type SerializeOption func(*serializeConfig)

// WithFoldLimit sets the fold limit in bytes. Limits below 2 disable
// folding.
func WithFoldLimit(limit int) SerializeOption {
	return func(cfg *serializeConfig) {
		cfg.foldLimit = limit
	}
}
