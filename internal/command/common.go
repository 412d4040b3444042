// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/wbdctl/internal/attrs"
	"github.com/staranto/wbdctl/internal/aws"
	"github.com/staranto/wbdctl/internal/cache"
	"github.com/staranto/wbdctl/internal/dataset"
	"github.com/staranto/wbdctl/internal/huc"
	"github.com/staranto/wbdctl/internal/meta"
	"github.com/staranto/wbdctl/internal/output"
	"github.com/staranto/wbdctl/internal/retrieve"
	"github.com/staranto/wbdctl/internal/wbd"
)

// redisPrefix namespaces wbdctl hashes in a shared redis.
const redisPrefix = "wbdctl:"

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr wbdctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "wbdctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("--attrs: %w", err)
		}
	}
	al.SetGlobalTransformSpec()
	return al, nil
}

// resolvePath anchors a relative path at the starting directory.
func resolvePath(cmd *cli.Command, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if sd := GetMeta(cmd).StartingDir; sd != "" {
		return filepath.Join(sd, p)
	}
	return p
}

// DataDir returns --data-dir or, by default, a downloads directory below the
// cache base (falling back to the temp dir).
func DataDir(cmd *cli.Command) string {
	if d := cmd.String("data-dir"); d != "" {
		return resolvePath(cmd, d)
	}
	if base, ok := cache.Dir(); ok {
		return filepath.Join(base, "downloads")
	}
	return filepath.Join(os.TempDir(), "wbdctl")
}

// NewStore builds the cache backend named by --cache. A disabled file cache
// (WBDCTL_CACHE=0) turns into a no-op store.
func NewStore(cmd *cli.Command) (cache.Store, error) {
	switch backend := cmd.String("cache"); backend {
	case CacheMemory:
		return cache.NewMemoryStore(), nil
	case CacheRedis:
		return cache.NewRedisStore(cache.OpenRedis(cmd.String("redis-addr")), redisPrefix), nil
	case CacheFile, "":
		if !cache.Enabled() {
			log.Debug("file cache disabled")
			return cache.Nop{}, nil
		}
		base, ok := cache.Dir()
		if !ok {
			log.Debug("no cache directory, caching disabled")
			return cache.Nop{}, nil
		}
		return cache.NewFileStore(base), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// NewRetriever builds the downloader named by --source.
func NewRetriever(ctx context.Context, cmd *cli.Command) (retrieve.Retriever, error) {
	switch source := cmd.String("source"); source {
	case SourceS3:
		client, err := aws.NewPublicS3(ctx, cmd.String("s3-endpoint"), cmd.String("aws-profile"))
		if err != nil {
			return nil, err
		}
		return &retrieve.S3Retriever{Client: client}, nil
	case SourceHTTPS, "":
		return retrieve.NewHTTPRetriever(), nil
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}

// datasetURL honors --base-url.
func datasetURL(cmd *cli.Command) func(string) string {
	base := strings.TrimRight(cmd.String("base-url"), "/")
	if base == "" {
		return retrieve.DatasetURL
	}
	return func(name string) string {
		return base + "/" + name + ".zip"
	}
}

// NewFetcher wires store, retriever and data dir from the command's flags.
func NewFetcher(ctx context.Context, cmd *cli.Command) (*wbd.Fetcher, error) {
	store, err := NewStore(cmd)
	if err != nil {
		return nil, err
	}
	r, err := NewRetriever(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dataDir := DataDir(cmd)
	log.Debugf("cache=%s source=%s data-dir=%s", cmd.String("cache"), cmd.String("source"), dataDir)
	return wbd.NewFetcher(r, store, dataDir, wbd.WithURL(datasetURL(cmd))), nil
}

// ParseLevel reads --level.
func ParseLevel(cmd *cli.Command) (huc.Level, error) {
	return huc.Parse(cmd.String("level"))
}

// colorEnabled honors an explicit --color/--no-color and otherwise colors
// only a terminal.
func colorEnabled(cmd *cli.Command) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Emit renders ds per the output flags, to --out when given.
func Emit(cmd *cli.Command, ds *dataset.Dataset, defaults ...string) (err error) {
	al, err := BuildAttrs(cmd, defaults...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	opts := output.Options{
		Format: cmd.String("output"),
		Attrs:  al,
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Color:  colorEnabled(cmd),
		Titles: cmd.Bool("titles"),
	}

	out := resolvePath(cmd, cmd.String("out"))
	if opts.Format == output.FormatShapefile {
		opts.Path = out
		return output.Emit(io.Discard, ds, opts)
	}

	w := cmd.Root().Writer
	if out != "" {
		f, cerr := os.Create(out)
		if cerr != nil {
			return fmt.Errorf("failed to create %s: %w", out, cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
		opts.Color = false
	}
	return output.Emit(w, ds, opts)
}
