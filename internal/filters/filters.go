// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/wbdctl/internal/attrs"
	"github.com/staranto/wbdctl/internal/driller"
)

// EnvDelim overrides the ',' separating filter expressions.
const EnvDelim = "WBDCTL_FILTER_DELIM"

// filterRegex splits an expression into key, operator and target. Operators
// are one of = ^ ~ < > @ or /, optionally prefixed with '!'.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Filter represents a single parsed --filter expression including the key,
// operand, optional negation and target value.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (unsupported operand or malformed expression) are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc // We don't know how many entries will survive parsing.
	var filters []Filter

	// No filters specified, go home early.
	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override.
	delim := ","
	if d, ok := os.LookupEnv(EnvDelim); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(filterSpec)
		// No supported operand or no key. Log it and throw it away.
		if parts == nil || parts[1] == "" {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		// parts[2] is the operand, possibly with a leading negation.
		negate := strings.HasPrefix(parts[2], "!")
		filters = append(filters, Filter{
			Key:     parts[1],
			Negate:  negate,
			Operand: strings.TrimPrefix(parts[2], "!"),
			Target:  parts[3],
		})
	}

	return filters
}

// FilterDataset returns the candidates matching spec, projected onto the
// attrs, together with each match's position in candidates.
func FilterDataset(candidates gjson.Result, al attrs.AttrList, spec string) ([]map[string]any, []int) {
	//nolint:prealloc
	var (
		results []map[string]any
		indexes []int
	)

	// Parse the spec once rather than for every candidate row.
	filters := BuildFilters(spec)

	for i, candidate := range candidates.Array() {
		if !Match(candidate, al, filters) {
			continue
		}

		// Transform is deferred to the output phase; keep raw values here.
		result := make(map[string]any, len(al))
		for _, attr := range al {
			result[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		results = append(results, result)
		indexes = append(indexes, i)
	}

	return results, indexes
}

// Match reports whether candidate satisfies every filter. A filter key is
// looked up among the attrs' output keys first and otherwise taken as a
// dataset column.
func Match(candidate gjson.Result, al attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := resolveKey(al, filter.Key)

		// A missing value never matches, negated or not.
		value := driller.Driller(candidate.Raw, key).Value()
		if value == nil {
			return false
		}

		var result bool
		switch v := value.(type) {
		case string:
			result = checkStringOperand(v, filter)
		case bool:
			result = checkStringOperand(strconv.FormatBool(v), filter)
		case float64:
			result = checkNumericOperand(v, filter)
		default:
			if filter.Operand != "@" {
				log.Error(fmt.Sprintf("unsupported operand %q for %s", filter.Operand, filter.Key))
				return false
			}
			result = checkContainsOperand(value, filter)
		}

		if !result {
			return false
		}
	}

	return true
}

// resolveKey maps a filter key to a record path. A leading '.' addresses the
// record root.
func resolveKey(al attrs.AttrList, key string) string {
	for _, attr := range al {
		if attr.OutputKey == key {
			return attr.Key
		}
	}
	if strings.HasPrefix(key, ".") {
		return key[1:]
	}
	return attrs.ColumnPrefix + key
}

// checkContainsOperand evaluates a membership style filter (operand '@')
// against slice or map values.
func checkContainsOperand(value any, filter Filter) bool {
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprint(item) == filter.Target {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]any:
		_, found := val[filter.Target]
		return found == !filter.Negate
	default:
		log.Error(fmt.Sprintf("unsupported type for contains filtering: %T", value))
		return false
	}
}

// checkNumericOperand compares a number against the filter target. The
// string operands apply to its decimal form.
func checkNumericOperand(value float64, filter Filter) bool {
	switch filter.Operand {
	case "=", ">", "<":
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Target), 64)
	if err != nil {
		log.Error("invalid numeric target: " + filter.Target)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	default:
		return (value < tgt) == !filter.Negate
	}
}

// checkStringOperand evaluates a string comparison style filter. Dataset
// attributes are always strings, so < and > compare numerically when both
// sides parse as numbers.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Target == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Target) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Target) == !filter.Negate
	case ">", "<":
		// areaacres and friends arrive as strings.
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			if _, err := strconv.ParseFloat(filter.Target, 64); err == nil {
				return checkNumericOperand(v, filter)
			}
		}
		if filter.Operand == ">" {
			return value > filter.Target == !filter.Negate
		}
		return value < filter.Target == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Target) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Target, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Target)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
