// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/staranto/wbdctl/internal/attrs"
	"github.com/staranto/wbdctl/internal/config"
	"github.com/staranto/wbdctl/internal/dataset"
	"github.com/staranto/wbdctl/internal/filters"
	"github.com/staranto/wbdctl/internal/shapefile"
)

// Output formats.
const (
	FormatText      = "text"
	FormatJSON      = "json"
	FormatYAML      = "yaml"
	FormatGeoJSON   = "geojson"
	FormatWKT       = "wkt"
	FormatShapefile = "shp"
	FormatRaw       = "raw"
)

// Formats lists every accepted --output value.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatGeoJSON, FormatWKT, FormatShapefile, FormatRaw}
}

// ErrNoPath is returned for shapefile output without a destination.
var ErrNoPath = errors.New("shapefile output needs a destination path")

// Options control a single Emit.
type Options struct {
	Format string
	Attrs  attrs.AttrList
	Filter string
	Sort   string
	Color  bool
	Titles bool
	// Path is the destination .shp file for FormatShapefile.
	Path string
}

// Emit filters, sorts and renders ds to w. Attribute formats (text, json,
// yaml) render the attrs of each record; geometry formats (geojson, wkt,
// shp) keep whole rows but honor the filter and sort. Raw writes ds as
// GeoJSON untouched.
func Emit(w io.Writer, ds *dataset.Dataset, opts Options) error {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if !slices.Contains(Formats(), opts.Format) {
		return fmt.Errorf("unknown output format %q, must be one of %v", opts.Format, Formats())
	}

	// If raw, just dump it and go home.
	if opts.Format == FormatRaw {
		b, err := dataset.GeoJSONCodec{}.Encode(ds)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	}

	raw, err := Records(ds)
	if err != nil {
		return err
	}

	// Filter first so sorting and rendering work on the smaller set. indexes
	// tie each result back to its row for the geometry formats.
	results, indexes := filters.FilterDataset(gjson.ParseBytes(raw), opts.Attrs, opts.Filter)
	log.Debugf("output %s: %d of %d rows after filter %q", opts.Format, len(results), ds.Len(), opts.Filter)

	if order := sortOrder(results, opts.Sort); order != nil {
		sortedResults := make([]map[string]any, len(order))
		sortedIndexes := make([]int, len(order))
		for i, j := range order {
			sortedResults[i] = results[j]
			sortedIndexes[i] = indexes[j]
		}
		results, indexes = sortedResults, sortedIndexes
	}

	switch opts.Format {
	case FormatGeoJSON:
		b, err := subset(ds, indexes).FeatureCollection().MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal geojson: %w", err)
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatWKT:
		for _, row := range subset(ds, indexes).Rows {
			if row.Geometry == nil {
				continue
			}
			if _, err := fmt.Fprintln(w, wkt.MarshalString(row.Geometry)); err != nil {
				return err
			}
		}
		return nil
	case FormatShapefile:
		if opts.Path == "" {
			return ErrNoPath
		}
		out := subset(ds, indexes)
		if err := shapefile.Write(opts.Path, out); err != nil {
			return err
		}
		log.Infof("wrote %d rows to %s", out.Len(), opts.Path)
		return nil
	}

	// Transform each value in each row.
	for _, row := range results {
		for i := range opts.Attrs {
			attr := &opts.Attrs[i]
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	// Hidden attrs only take part in filtering and sorting.
	included := opts.Attrs.Included()
	for _, row := range results {
		for _, attr := range opts.Attrs {
			if !attr.Include {
				delete(row, attr.OutputKey)
			}
		}
	}

	switch opts.Format {
	case FormatJSON:
		// No match is an empty array, not null.
		if results == nil {
			results = []map[string]any{}
		}
		b, err := json.Marshal(results)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatYAML:
		b, err := yaml.Marshal(results)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		TableWriter(results, included, opts, w)
		return nil
	}
}

// subset returns the rows of ds at indexes, in that order.
func subset(ds *dataset.Dataset, indexes []int) *dataset.Dataset {
	out := dataset.New(ds.Columns...)
	for _, i := range indexes {
		out.Rows = append(out.Rows, ds.Rows[i])
	}
	return out
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(resultSet []map[string]any, al attrs.AttrList, opts Options, w io.Writer) {
	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	// Build rows for the lipgloss table renderer.
	rows := make([][]string, 0, len(resultSet))
	for _, result := range resultSet {
		row := make([]string, 0, len(al))
		for _, attr := range al {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	pad, _ := config.GetInt("padding", 1)

	// Hidden border everywhere; the colors carry the structure.
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(al))
		for _, attr := range al {
			headers = append(headers, attr.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value any, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
