// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package wbd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/apex/log"

	"github.com/staranto/wbdctl/internal/cache"
	"github.com/staranto/wbdctl/internal/dataset"
	"github.com/staranto/wbdctl/internal/huc"
	"github.com/staranto/wbdctl/internal/retrieve"
	"github.com/staranto/wbdctl/internal/shapefile"
)

// FetchRequest identifies one fetch. CacheKey and StorageKey are trusted:
// reusing a key for different Dataset/Level values returns whatever was
// stored first.
type FetchRequest struct {
	Dataset      string
	Level        huc.Level
	CacheKey     string
	StorageKey   string
	ForceRefresh bool
}

// Parser reads a layer file into a dataset.
type Parser func(path string) (*dataset.Dataset, error)

// Fetcher downloads, parses and memoizes WBD layers.
type Fetcher struct {
	retriever retrieve.Retriever
	memo      cache.Memo[*dataset.Dataset]
	parse     Parser
	dataDir   string
	urlFor    func(dataset string) string
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithParser replaces the shapefile reader.
func WithParser(p Parser) Option {
	return func(f *Fetcher) { f.parse = p }
}

// WithURL replaces the staged products URL template.
func WithURL(urlFor func(dataset string) string) Option {
	return func(f *Fetcher) { f.urlFor = urlFor }
}

// NewFetcher wires a fetcher. Archives are unpacked below
// dataDir/<dataset>; parsed layers go to store as GeoJSON.
func NewFetcher(r retrieve.Retriever, store cache.Store, dataDir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		retriever: r,
		memo:      cache.Memo[*dataset.Dataset]{Store: store, Codec: dataset.GeoJSONCodec{}},
		parse:     shapefile.Read,
		dataDir:   dataDir,
		urlFor:    retrieve.DatasetURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the layer for req.Level of req.Dataset. Unless
// req.ForceRefresh is set, a cached entry under (StorageKey, CacheKey) is
// returned without touching the network. On a miss the archive is
// retrieved, the layer parsed and then stored; nothing is stored when any
// step fails.
func (f *Fetcher) Fetch(ctx context.Context, req FetchRequest) (*dataset.Dataset, error) {
	fail := func(stage Stage, err error) error {
		return &Error{Stage: stage, Dataset: req.Dataset, Level: req.Level, CacheKey: req.CacheKey, Err: err}
	}

	if req.Dataset == "" {
		return nil, fail(StageNotFound, errors.New("empty dataset identifier"))
	}
	shapeFile, err := req.Level.ShapeFile()
	if err != nil {
		return nil, fail(StageNotFound, err)
	}

	ds, err := f.memo.Do(ctx, req.StorageKey, req.CacheKey, req.ForceRefresh,
		func(ctx context.Context) (*dataset.Dataset, error) {
			log.WithFields(log.Fields{
				"dataset": req.Dataset,
				"level":   int(req.Level),
				"key":     req.CacheKey,
			}).Info("fetching")

			root, err := f.retriever.Retrieve(ctx, retrieve.Request{
				URL:   f.urlFor(req.Dataset),
				Dir:   filepath.Join(f.dataDir, req.Dataset),
				Force: req.ForceRefresh,
			})
			if err != nil {
				return nil, fail(StageRetrieval, err)
			}

			path := filepath.Join(root, "Shape", shapeFile)
			ds, err := f.parse(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil, fail(StageNotFound, err)
				}
				return nil, fail(StageParse, err)
			}
			return ds, nil
		})
	if err != nil {
		var stageErr *Error
		if errors.As(err, &stageErr) {
			return nil, err
		}
		return nil, fail(StageCache, err)
	}
	return ds, nil
}

// Cached reports whether Fetch would be served from the cache.
func (f *Fetcher) Cached(ctx context.Context, storageKey, cacheKey string) (bool, error) {
	ok, err := f.memo.Cached(ctx, storageKey, cacheKey)
	if err != nil {
		return false, &Error{Stage: StageCache, CacheKey: cacheKey, Err: fmt.Errorf("storage %s: %w", storageKey, err)}
	}
	return ok, nil
}
