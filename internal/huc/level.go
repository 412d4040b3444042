// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package huc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedLevel is returned for levels the WBD does not publish.
var ErrUnsupportedLevel = errors.New("unsupported HUC level")

// Level is a hydrologic unit subdivision level. The WBD publishes one layer
// per even level from 2 (regions) through 16.
type Level int

// levels maps each published level to its code column and shapefile name.
var levels = map[Level]struct {
	column string
	file   string
}{
	2:  {"huc2", "WBDHU2.shp"},
	4:  {"huc4", "WBDHU4.shp"},
	6:  {"huc6", "WBDHU6.shp"},
	8:  {"huc8", "WBDHU8.shp"},
	10: {"huc10", "WBDHU10.shp"},
	12: {"huc12", "WBDHU12.shp"},
	14: {"huc14", "WBDHU14.shp"},
	16: {"huc16", "WBDHU16.shp"},
}

// Levels returns the supported levels in ascending order.
func Levels() []Level {
	return []Level{2, 4, 6, 8, 10, 12, 14, 16}
}

// Parse converts "12", "hu12" or "huc12" into a validated Level.
func Parse(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(strings.TrimPrefix(s, "huc"), "hu")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedLevel, s)
	}
	l := Level(n)
	return l, l.Validate()
}

// Validate returns ErrUnsupportedLevel if l has no published layer.
func (l Level) Validate() error {
	if _, ok := levels[l]; !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedLevel, int(l))
	}
	return nil
}

// Column returns the attribute column holding codes at this level.
func (l Level) Column() (string, error) {
	m, ok := levels[l]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedLevel, int(l))
	}
	return m.column, nil
}

// ShapeFile returns the shapefile name of this level's layer.
func (l Level) ShapeFile() (string, error) {
	m, ok := levels[l]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedLevel, int(l))
	}
	return m.file, nil
}

// CacheKey is the default cache key for a dataset read at this level.
func (l Level) CacheKey() string {
	return "hu" + strconv.Itoa(int(l))
}

// CodeLength is the number of digits in a code at this level.
func (l Level) CodeLength() int {
	return int(l)
}

func (l Level) String() string {
	return "HU" + strconv.Itoa(int(l))
}

// DatasetName returns the staged HU2 shape product name for a two digit
// region code, e.g. "08" -> "WBD_08_HU2_Shape".
func DatasetName(region string) (string, error) {
	region = strings.TrimSpace(region)
	if len(region) != 2 || !isDigit(region[0]) || !isDigit(region[1]) {
		return "", fmt.Errorf("invalid HU2 region %q: must be two digits", region)
	}
	return "WBD_" + region + "_HU2_Shape", nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Region returns the HU2 region prefix of a code, or "" if it is too short.
func Region(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}
