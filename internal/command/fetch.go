// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/wbdctl/internal/config"
	"github.com/staranto/wbdctl/internal/huc"
	"github.com/staranto/wbdctl/internal/meta"
	"github.com/staranto/wbdctl/internal/wbd"
)

func FetchCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "fetch") {
		return nil
	}

	config.Config.Namespace = "fetch"

	level, err := ParseLevel(cmd)
	if err != nil {
		return err
	}

	name := cmd.String("dataset")
	storageKey := cmd.String("storage-key")
	if name == "" {
		region := cmd.String("region")
		if name, err = huc.DatasetName(region); err != nil {
			return err
		}
		if storageKey == "" {
			storageKey = wbd.StorageKeyFor(region)
		}
	} else if storageKey == "" {
		storageKey = strings.ToLower(name)
	}

	cacheKey := cmd.String("cache-key")
	if cacheKey == "" {
		cacheKey = level.CacheKey()
	}

	f, err := NewFetcher(ctx, cmd)
	if err != nil {
		return err
	}

	refresh := cmd.Bool("refresh")
	hit, err := f.Cached(ctx, storageKey, cacheKey)
	if err != nil {
		log.WithError(err).Warn("cache probe failed")
	}

	ds, err := f.Fetch(ctx, wbd.FetchRequest{
		Dataset:      name,
		Level:        level,
		CacheKey:     cacheKey,
		StorageKey:   storageKey,
		ForceRefresh: refresh,
	})
	if err != nil {
		return err
	}

	how := "downloaded"
	if hit && !refresh {
		how = "cached"
	}
	fmt.Fprintf(cmd.Root().Writer, "%s %s: %d features, %s (%s/%s)\n",
		name, level, ds.Len(), how, storageKey, cacheKey)

	return nil
}

func FetchCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "download and cache a WBD layer",
		UsageText: `wbdctl fetch [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append([]cli.Flag{
			&cli.StringFlag{
				Name:  "dataset",
				Usage: "staged product name, default WBD_<region>_HU2_Shape",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.StringFlag{
				Name:  "cache-key",
				Usage: "cache entry name, default hu<level>",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			tldrFlag,
		}, NewLayerFlags("fetch", meta.Config.Source)...), NewStoreFlags("fetch", meta.Config.Source)...),
		Action: FetchCommandAction,
	}
}
