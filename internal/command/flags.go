// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/wbdctl/internal/output"
	"github.com/staranto/wbdctl/internal/wbd"
)

// Cache backends and download sources accepted by --cache and --source.
const (
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheMemory = "memory"

	SourceHTTPS = "https"
	SourceS3    = "s3"
)

var tldrFlag = &cli.BoolFlag{
	Name:        "tldr",
	Usage:       "show tldr page",
	Hidden:      !pathHas("tldr"),
	HideDefault: true,
}

// configChain returns the value sources for a flag: env vars first, then the
// namespaced and global keys of the config file at path.
func configChain(ns, key, path string, envs ...string) cli.ValueSourceChain {
	var sources []cli.ValueSource
	for _, e := range envs {
		sources = append(sources, cli.EnvVar(e))
	}
	if ns != "" {
		sources = append(sources, yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)))
	}
	sources = append(sources, yaml.YAML(key, altsrc.StringSourcer(path)))
	return cli.NewValueSourceChain(sources...)
}

// NewStoreFlags are the flags that pick where layers are downloaded from and
// cached to.
func NewStoreFlags(ns, cfgPath string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			Usage:   "cache backend: file, redis or memory",
			Sources: configChain(ns, "cache.backend", cfgPath, "WBDCTL_CACHE_BACKEND"),
			Value:   CacheFile,
			Validator: func(value string) error {
				return FlagValidators(value, OneOfValidator(CacheFile, CacheRedis, CacheMemory))
			},
		},
		&cli.StringFlag{
			Name:    "source",
			Usage:   "download source: https or s3",
			Sources: configChain(ns, "source", cfgPath, "WBDCTL_SOURCE"),
			Value:   SourceHTTPS,
			Validator: func(value string) error {
				return FlagValidators(value, OneOfValidator(SourceHTTPS, SourceS3))
			},
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "directory receiving downloaded archives",
			Sources: configChain(ns, "data_dir", cfgPath, "WBDCTL_DATA_DIR"),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.StringFlag{
			Name:    "redis-addr",
			Usage:   "redis host:port for --cache redis",
			Sources: configChain(ns, "redis.addr", cfgPath, "REDIS_ADDR"),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "base URL of the staged HU2 shape products",
			Sources: configChain(ns, "base_url", cfgPath, "WBDCTL_BASE_URL"),
		},
		&cli.StringFlag{
			Name:    "s3-endpoint",
			Usage:   "S3 endpoint for --source s3, eg. a mirror",
			Sources: configChain(ns, "s3.endpoint", cfgPath, "WBDCTL_S3_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:    "aws-profile",
			Usage:   "shared config profile for --source s3, default unsigned",
			Sources: configChain(ns, "s3.profile", cfgPath),
		},
	}
}

// NewLayerFlags identify a region and level.
func NewLayerFlags(ns, cfgPath string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "region",
			Aliases: []string{"r"},
			Usage:   "two digit HU2 region",
			Sources: configChain(ns, "region", cfgPath),
			Value:   wbd.DefaultRegion,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, RegionValidator)
			},
		},
		&cli.StringFlag{
			Name:    "level",
			Aliases: []string{"l"},
			Usage:   "hydrologic unit level, 2 to 16",
			Sources: configChain(ns, "level", cfgPath),
			Value:   "12",
			Validator: func(value string) error {
				return FlagValidators(value, LevelValidator)
			},
		},
		&cli.StringFlag{
			Name:    "storage-key",
			Usage:   "cache namespace, default wbd_<region>",
			Sources: configChain(ns, "storage_key", cfgPath),
		},
		&cli.BoolFlag{
			Name:  "refresh",
			Usage: "ignore cached data and download again",
		},
	}
}

// NewGlobalFlags are the output flags shared by commands that emit
// datasets.
func NewGlobalFlags(ns, cfgPath string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output, default when stdout is a terminal",
			Sources: configChain(ns, "color", cfgPath),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: text, json, yaml, geojson, wkt, shp or raw",
			Sources: configChain(ns, "output", cfgPath),
			Value:   output.FormatText,
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "write results to this file instead of stdout; required for shp",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: configChain(ns, "sort", cfgPath),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: configChain(ns, "titles", cfgPath),
			Value:   false,
		},
	}
}

// pathHas reports whether target is on the PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
