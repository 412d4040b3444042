// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/wbdctl/internal/config"
	"github.com/staranto/wbdctl/internal/huc"
	"github.com/staranto/wbdctl/internal/meta"
	"github.com/staranto/wbdctl/internal/output"
	"github.com/staranto/wbdctl/internal/wbd"
)

func SelectCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "select") {
		return nil
	}

	config.Config.Namespace = "select"

	level, err := ParseLevel(cmd)
	if err != nil {
		return err
	}

	watershed := cmd.String("watershed")
	region := cmd.String("region")
	if !cmd.IsSet("region") {
		if r := huc.Region(watershed); r != "" {
			region = r
		}
	}
	log.WithFields(log.Fields{
		"region":    region,
		"level":     int(level),
		"watershed": watershed,
	}).Debug("selecting")

	f, err := NewFetcher(ctx, cmd)
	if err != nil {
		return err
	}

	ds, err := f.Watershed(ctx, wbd.WatershedRequest{
		Region:     region,
		Level:      level,
		Watershed:  watershed,
		Dissolve:   cmd.Bool("dissolve"),
		StorageKey: cmd.String("storage-key"),
		Override:   cmd.Bool("refresh"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("strict") {
		if err := wbd.RequireMatch(ds, level, watershed); err != nil {
			return err
		}
	}

	column, err := level.Column()
	if err != nil {
		return err
	}
	return Emit(cmd, ds, column, "name", ".geometry", ".area_km2::k", ".geohash")
}

func SelectCommandBuilder(meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "watershed",
			Aliases: []string{"w"},
			Usage:   "hydrologic unit code to select",
			Value:   wbd.DefaultWatershed,
			Sources: configChain("select", "watershed", meta.Config.Source),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, WatershedValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "dissolve",
			Aliases: []string{"d"},
			Usage:   "merge the selected features into one",
			Sources: configChain("select", "dissolve", meta.Config.Source),
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail when nothing matches",
		},
		tldrFlag,
	}
	flags = append(flags, NewLayerFlags("select", meta.Config.Source)...)
	flags = append(flags, NewStoreFlags("select", meta.Config.Source)...)
	flags = append(flags, NewGlobalFlags("select", meta.Config.Source)...)

	return &cli.Command{
		Name:      "select",
		Usage:     "select a watershed",
		UsageText: `wbdctl select [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := SelectCommandValidator(ctx, c); err != nil {
				return err
			}
			return SelectCommandAction(ctx, c)
		},
	}
}

// SelectCommandValidator checks combinations a single flag validator cannot.
func SelectCommandValidator(_ context.Context, cmd *cli.Command) error {
	level, err := ParseLevel(cmd)
	if err != nil {
		return err
	}
	w := cmd.String("watershed")
	if w != "" && len(w) != level.CodeLength() {
		log.Warnf("watershed %s is not a %s code", w, level)
	}
	if cmd.String("output") == output.FormatShapefile && cmd.String("out") == "" {
		return errors.New("--output shp requires --out")
	}
	if cmd.IsSet("region") && w != "" {
		if r := huc.Region(w); r != "" && r != cmd.String("region") {
			return fmt.Errorf("watershed %s is not in region %s", w, cmd.String("region"))
		}
	}
	return nil
}
