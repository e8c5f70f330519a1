// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/JonDotsoy/icalendar.go/ical"
	"github.com/JonDotsoy/icalendar.go/internal/compiler"
	"github.com/JonDotsoy/icalendar.go/internal/fs"
	"github.com/JonDotsoy/icalendar.go/internal/target"
)

type opts struct {
	Roots      []string
	Output     string
	FoldLimit  int
	JSON       bool
	DumpTokens bool
	DumpTree   bool
	LogLevel   string
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	os.Exit(run(ctx, os.Args[1:], os.LookupEnv, os.Stdout, os.Stderr))
}

func envOr(lookup func(string) (string, bool), key string, fallback string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func run(ctx context.Context, args []string, lookup func(string) (string, bool), stdout io.Writer, stderr io.Writer) int {
	foldDefault := ical.DefaultFoldLimit
	if v, ok := lookup("ICALC_FOLD_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fmt.Fprintf(stderr, "invalid ICALC_FOLD_LIMIT %q\n", v)
			return 2
		}
		foldDefault = n
	}

	op := &opts{}
	flags := pflag.NewFlagSet("icalc", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringSliceVar(&op.Roots, "root", []string{"."}, "Directories searched for relative targets before the file system root.")
	flags.StringVarP(&op.Output, "output", "o", envOr(lookup, "ICALC_OUTPUT", "-"), "Output directory or - for STDOUT.")
	flags.IntVar(&op.FoldLimit, "fold-limit", foldDefault, "Fold output lines at this many bytes. 0 disables folding.")
	flags.BoolVar(&op.JSON, "json", false, "Write the JSON projection instead of ICS.")
	flags.BoolVar(&op.DumpTokens, "dump-tokens", false, "Output the token stream as it is processed")
	flags.BoolVar(&op.DumpTree, "dump-tree", false, "Output the parse tree after parsing")
	flags.StringVar(&op.LogLevel, "log-level", envOr(lookup, "ICALC_LOG_LEVEL", "warn"), "One of debug, info, warn or error.")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	targets := flags.Args()
	if len(targets) < 1 {
		fmt.Fprintln(stderr, "usage: icalc [flags] <file|dir>...")
		flags.PrintDefaults()
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(op.LogLevel)); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}
	logger := slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	for _, t := range targets {
		if !target.IsLocal(target.Normalize(t)) {
			fmt.Fprintf(stderr, "unsupported target %q: only local paths and file URIs can be read\n", t)
			return 2
		}
	}

	mf := make(fs.FileSystemMulti, 0, len(op.Roots)+1)
	for _, root := range op.Roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		mf = append(mf, rf)
	}
	local, err := fs.NewFileSystemLocal("/")
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	mf = append(mf, local)

	c, err := compiler.New(
		compiler.OptionWithFS(mf),
		compiler.OptionWithLogger(logger),
	)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	out, err := c.Compile(ctx, &compiler.CompileRequest{
		Files:      targets,
		DumpTokens: op.DumpTokens,
		DumpTree:   op.DumpTree,
		Dump:       stdout,
	})
	if err != nil {
		var me compiler.MultiException
		if errors.As(err, &me) {
			for _, err := range me {
				fmt.Fprintln(stderr, err.Error())
			}
			return 1
		}
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	for _, result := range out.Results {
		content, ext, err := render(result.Calendar, op)
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		if op.Output == "-" {
			if _, err := io.WriteString(stdout, content); err != nil {
				fmt.Fprintln(stderr, err.Error())
				return 1
			}
			continue
		}
		output, err := filepath.Abs(op.Output)
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		base := filepath.Base(result.URI)
		name := strings.TrimSuffix(base, filepath.Ext(base)) + ext
		if err := local.Write(ctx, filepath.Join(output, name), content); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		logger.Info("wrote calendar", "uri", result.URI, "output", filepath.Join(output, name))
	}
	return 0
}

func render(cal *ical.Calendar, op *opts) (string, string, error) {
	if !op.JSON {
		return cal.ICS(ical.WithFoldLimit(op.FoldLimit)), ".ics", nil
	}
	s, err := cal.ToJSON()
	if err != nil {
		return "", "", err
	}
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return "", "", err
	}
	return string(b) + "\n", ".json", nil
}
