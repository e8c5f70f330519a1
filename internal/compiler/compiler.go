// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package compiler parses many calendar files concurrently and accumulates
// their exceptions.
package compiler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/JonDotsoy/icalendar.go/ical"
	"github.com/JonDotsoy/icalendar.go/internal/exc"
	"github.com/JonDotsoy/icalendar.go/internal/fs"
	"github.com/JonDotsoy/icalendar.go/internal/target"
	"github.com/JonDotsoy/icalendar.go/syntax"
)

type Option func(c *compiler) error

func OptionWithFS(fs fs.FileSystem) Option {
	return func(c *compiler) error {
		c.FS = fs
		return nil
	}
}

func OptionWithLogger(logger *slog.Logger) Option {
	return func(c *compiler) error {
		c.Logger = logger
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(c *compiler) error {
		c.Reporter = reporter
		return nil
	}
}

func OptionWithMaxConcurrency(n int) Option {
	return func(c *compiler) error {
		if n < 0 {
			return fmt.Errorf("max concurrency must not be negative: %d", n)
		}
		c.MaxConcurrency = n
		return nil
	}
}

type CompileRequest struct {
	// Files are paths or URIs. A directory expands to the calendar files
	// directly inside it.
	Files      []string
	DumpTokens bool
	DumpTree   bool
	// Dump receives token and tree dumps. Output of one file is never
	// interleaved with another.
	Dump io.Writer
}

type Result struct {
	URI      string
	Calendar *ical.Calendar
}

type CompileResponse struct {
	// Results follow the order of the request files.
	Results []Result
}

type Compiler interface {
	Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error)
}

func New(opts ...Option) (Compiler, error) {
	c := &compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.FS == nil {
		local, err := fs.NewFileSystemLocal("/")
		if err != nil {
			return nil, err
		}
		c.FS = local
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.MaxConcurrency == 0 {
		max := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if max > cpus {
			max = cpus
		}
		c.MaxConcurrency = max
	}
	if c.Semaphore == nil {
		c.Semaphore = newSemaphore(c.MaxConcurrency)
	}
	if c.Reporter == nil {
		c.Reporter = exc.NewReporter()
	}
	return c, nil
}

type compiler struct {
	FS             fs.FileSystem
	Logger         *slog.Logger
	MaxConcurrency int
	Semaphore      *semaphore
	Reporter       exc.Reporter
}

func (self *compiler) Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error) {
	dump := req.Dump
	if dump == nil {
		dump = io.Discard
	}
	files := make([]fs.File, 0, len(req.Files))
	seen := make(map[string]bool)
	for _, f := range req.Files {
		uri := target.Normalize(f)
		in, err := self.FS.Open(ctx, uri)
		if err != nil {
			_ = self.Reporter.Report(asException(uri, err))
			continue
		}
		for _, inf := range in {
			if seen[inf.Path()] {
				continue
			}
			seen[inf.Path()] = true
			if !fs.Supported(inf.Path()) {
				e := exc.New(exc.Location{URI: inf.Path()}, exc.CodeUnsupportedFileFormat, "unsupported file format")
				_ = self.Reporter.Report(e)
				continue
			}
			files = append(files, inf)
		}
	}

	calendars := make([]*ical.Calendar, len(files))
	results := make(chan fileResult, len(files))
	var dumpLock sync.Mutex

	for x, file := range files {
		go func(x int, file fs.File) {
			cal, out := self.compileFile(ctx, file, req.DumpTokens, req.DumpTree)
			if out != nil && out.Len() > 0 {
				dumpLock.Lock()
				_, _ = out.WriteTo(dump)
				dumpLock.Unlock()
			}
			results <- fileResult{index: x, calendar: cal}
		}(x, file)
	}

	for x := 0; x < len(files); x = x + 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			calendars[result.index] = result.calendar
		}
	}

	resp := &CompileResponse{}
	for x, cal := range calendars {
		if cal == nil {
			continue
		}
		resp.Results = append(resp.Results, Result{URI: files[x].Path(), Calendar: cal})
	}
	caught := self.Reporter.Reported()
	if len(caught) > 0 {
		return resp, MultiException(caught)
	}
	return resp, nil
}

func (self *compiler) compileFile(ctx context.Context, file fs.File, dumpTokens bool, dumpTree bool) (*ical.Calendar, *bytes.Buffer) {
	self.Semaphore.Lock()
	defer self.Semaphore.Unlock()

	uri := file.Path()
	logger := self.Logger.With("uri", uri)
	body, err := file.Body(ctx)
	if err != nil {
		logger.Warn("failed to read file", "error", err)
		_ = self.Reporter.Report(asException(uri, err))
		return nil, nil
	}
	logger.Debug("parsing file", "bytes", len(body))

	out := &bytes.Buffer{}
	opts := []ical.Option{ical.WithURI(uri), ical.WithLogger(logger)}
	if dumpTokens {
		opts = append(opts, ical.WithTokens(func(buf []byte, tokens []syntax.Token) {
			fmt.Fprintf(out, "# tokens %s\n", uri)
			for _, tok := range tokens {
				fmt.Fprintln(out, syntax.FormatToken(tok, buf))
			}
		}))
	}
	if dumpTree {
		opts = append(opts, ical.WithTree(func(m *syntax.Module) {
			fmt.Fprintf(out, "# tree %s\n", uri)
			fmt.Fprint(out, m.String())
		}))
	}
	cal, err := ical.Parse(body, opts...)
	if err != nil {
		logger.Warn("failed to parse file", "error", err)
		_ = self.Reporter.Report(asException(uri, err))
		return nil, out
	}
	return cal, out
}

func asException(uri string, err error) exc.Exception {
	if e, ok := err.(exc.Exception); ok {
		return e
	}
	return exc.WrapUnknown(exc.Location{URI: uri}, err)
}

type fileResult struct {
	index    int
	calendar *ical.Calendar
}

type MultiException []exc.Exception

func (self MultiException) Error() string {
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}
