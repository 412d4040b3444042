// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ColumnPrefix is where dataset columns live in an output record. Keys
// starting with '.' address the record root instead (eg. .area_km2).
const ColumnPrefix = "attributes."

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr represents each of the keys to be included in the output.
type Attr struct {
	// Key is the path to extract from the output record.
	Key string
	// Include is false for attrs used only for filtering and sorting.
	Include bool
	// OutputKey is the key used in the output, and the column title when
	// output=text.
	OutputKey string
	// TransformSpec is applied to the value before output.
	TransformSpec string
}

// Transform applies the TransformSpec to value. Spec characters:
//
//	l, u  lower or upper case; the last one wins
//	k     group digits of numeric values with commas
//	n     keep the first n characters; -n keeps both ends around ".."
func (a *Attr) Transform(value any) any {
	if a.TransformSpec == "" {
		return value
	}

	var result string
	switch v := value.(type) {
	case string:
		result = v
		if strings.ContainsAny(a.TransformSpec, "kK") {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				result = humanize.CommafWithDigits(f, 2)
			}
		}
	case float64:
		if !strings.ContainsAny(a.TransformSpec, "kK") {
			return value
		}
		result = humanize.CommafWithDigits(v, 2)
	default:
		return value
	}

	// The last case transformation wins, so a per-attr spec overrides a global
	// one prepended to it: --attrs '*::u,name::l' is lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	if match := lengthRegex.FindAllString(a.TransformSpec, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := int(math.Abs(float64(l)))
		if abs > 0 && len(result) > abs {
			if l < 0 {
				keep := max(abs/2-1, 1)
				result = result[:keep] + ".." + result[len(result)-keep:]
			} else {
				result = result[:l]
			}
		}
	}

	return result
}

type AttrList []Attr

// String renders the list in --attrs syntax.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses an --attrs value and merges it into the list. Each
// comma-separated spec is key[:output[:transform]]. A leading '!' keeps the
// attr for filtering and sorting but hides it, and '*' carries a transform
// applied to every attr.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("invalid attr spec %q", spec)
		}

		attr := Attr{Include: true}
		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec %q: empty key", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		// The output key defaults to the last segment of the key.
		segments := strings.Split(attr.Key, ".")
		attr.OutputKey = segments[len(segments)-1]
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}
		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		for i := range *a {
			if (*a)[i].OutputKey == attr.OutputKey || (*a)[i].Key == qualify(attr.Key) {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		attr.Key = qualify(attr.Key)
		*a = append(*a, attr)
	}

	return nil
}

func qualify(key string) string {
	switch {
	case key == "*":
		return key
	case strings.HasPrefix(key, "."):
		return key[1:]
	default:
		return ColumnPrefix + key
	}
}

// SetGlobalTransformSpec prepends the '*' attr's transform to every attr.
func (a *AttrList) SetGlobalTransformSpec() {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return
	}

	for i := range *a {
		if (*a)[i].Key == "*" {
			continue
		}
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
}

// Included returns the attrs that appear in the output.
func (a AttrList) Included() AttrList {
	out := make(AttrList, 0, len(a))
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

func (a *AttrList) Type() string {
	return "list"
}
