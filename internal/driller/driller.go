// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segmentRegex = regexp.MustCompile(`^([^\[]*)((?:\[\d+\])*)$`)
var indexRegex = regexp.MustCompile(`\[(\d+)\]`)

// Driller returns the value at path in the JSON document raw. Segments are
// separated by '.', and each may carry one or more [n] indexes. A single
// element array reached without an index is unwrapped, so "rings.id"
// reaches into [{"id": 1}]. Anything that cannot be resolved yields an
// empty result.
func Driller(raw string, path string) gjson.Result {
	current := gjson.Parse(raw)
	if path == "" {
		return current
	}

	for _, segment := range strings.Split(path, ".") {
		parts := segmentRegex.FindStringSubmatch(segment)
		if parts == nil {
			return gjson.Result{}
		}

		if current.IsArray() {
			arr := current.Array()
			if len(arr) != 1 {
				return gjson.Result{}
			}
			current = arr[0]
		}

		if parts[1] != "" {
			current = current.Get(escape(parts[1]))
		}
		if !current.Exists() {
			return gjson.Result{}
		}

		for _, m := range indexRegex.FindAllStringSubmatch(parts[2], -1) {
			i, _ := strconv.Atoi(m[1])
			arr := current.Array()
			if !current.IsArray() || i >= len(arr) {
				return gjson.Result{}
			}
			current = arr[i]
		}
	}

	if current.IsArray() {
		if arr := current.Array(); len(arr) == 1 {
			return arr[0]
		}
	}
	return current
}

// escape quotes gjson's path metacharacters in a single key.
func escape(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
