// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package wbd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/staranto/wbdctl/internal/huc"
)

// Failure classes. Every error returned by Fetch, Select and Watershed
// matches exactly one of them with errors.Is.
var (
	ErrRetrieval = errors.New("retrieval failed")
	ErrNotFound  = errors.New("not found")
	ErrParse     = errors.New("parse failed")
	ErrCache     = errors.New("cache failed")
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageRetrieval Stage = "retrieval"
	StageNotFound  Stage = "lookup"
	StageParse     Stage = "parse"
	StageCache     Stage = "cache"
)

func (s Stage) sentinel() error {
	switch s {
	case StageRetrieval:
		return ErrRetrieval
	case StageParse:
		return ErrParse
	case StageCache:
		return ErrCache
	default:
		return ErrNotFound
	}
}

// Error reports a failed stage together with the identifiers involved.
type Error struct {
	Stage    Stage
	Dataset  string
	Level    huc.Level
	CacheKey string
	Err      error
}

func (e *Error) Error() string {
	var ids []string
	if e.Dataset != "" {
		ids = append(ids, "dataset="+e.Dataset)
	}
	if e.Level != 0 {
		ids = append(ids, fmt.Sprintf("level=%d", int(e.Level)))
	}
	if e.CacheKey != "" {
		ids = append(ids, "cache_key="+e.CacheKey)
	}
	return fmt.Sprintf("%s failed (%s): %v", e.Stage, strings.Join(ids, " "), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the stage's sentinel.
func (e *Error) Is(target error) bool {
	return target == e.Stage.sentinel()
}
