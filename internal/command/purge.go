// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/wbdctl/internal/cache"
	"github.com/staranto/wbdctl/internal/config"
	"github.com/staranto/wbdctl/internal/meta"
)

func PurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "purge") {
		return nil
	}

	config.Config.Namespace = "purge"

	store, err := NewStore(cmd)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	switch s := store.(type) {
	case *cache.FileStore:
		n, err := s.Purge(cmd.Int("hours"))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "purged %d cache entries\n", n)
	case *cache.RedisStore:
		sk := cmd.String("storage-key")
		if sk == "" {
			return errors.New("--storage-key is required with --cache redis")
		}
		if err := s.Drop(ctx, sk); err != nil {
			return err
		}
		fmt.Fprintf(w, "dropped %s\n", sk)
	default:
		log.Debugf("nothing to purge for %T", store)
		fmt.Fprintln(w, "nothing to purge")
	}
	return nil
}

func PurgeCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "purge",
		Usage:     "remove stale cache entries",
		UsageText: `wbdctl purge [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:    "hours",
				Usage:   "remove file cache entries older than this, 0 disables",
				Value:   24,
				Sources: configChain("purge", "cache.clean", meta.Config.Source, "WBDCTL_CACHE_CLEAN"),
				Validator: func(value int) error {
					return FlagValidators(value, HoursValidator)
				},
			},
			&cli.StringFlag{
				Name:  "storage-key",
				Usage: "redis namespace to drop",
			},
			tldrFlag,
		}, NewStoreFlags("purge", meta.Config.Source)...),
		Action: PurgeCommandAction,
	}
}
