// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

type testAttr struct {
	Key           string `yaml:"key"`
	OutputKey     string `yaml:"outputKey"`
	Include       bool   `yaml:"include"`
	TransformSpec string `yaml:"transformSpec"`
}

func (ta testAttr) attr() Attr {
	return Attr{Key: ta.Key, OutputKey: ta.OutputKey, Include: ta.Include, TransformSpec: ta.TransformSpec}
}

func toList(in []testAttr) AttrList {
	out := AttrList{}
	for _, ta := range in {
		out = append(out, ta.attr())
	}
	return out
}

// testSetCase represents a single test case for TestAttrList_Set.
type testSetCase struct {
	Name      string     `yaml:"name"`
	Initial   []testAttr `yaml:"initial"`
	Value     string     `yaml:"value"`
	WantLen   int        `yaml:"wantLen"`
	WantAttrs []testAttr `yaml:"wantAttrs"`
	WantErr   bool       `yaml:"wantErr"`
}

type testTransformCase struct {
	Name          string `yaml:"name"`
	TransformSpec string `yaml:"transformSpec"`
	Input         any    `yaml:"input"`
	Want          any    `yaml:"want"`
}

type testGlobalTransformCase struct {
	Name      string     `yaml:"name"`
	Initial   []testAttr `yaml:"initial"`
	WantSpecs []string   `yaml:"wantSpecs"`
}

type testStringCase struct {
	Name     string     `yaml:"name"`
	AttrList []testAttr `yaml:"attrList"`
	Want     string     `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(t *testing.T, filename string, v any) {
	t.Helper()
	data, err := testDataFS.ReadFile("testdata/" + filename)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, v))
}

func TestAttrList_Set(t *testing.T) {
	var tests []testSetCase
	loadTestData(t, "set_cases.yaml", &tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := toList(tt.Initial)
			err := a.Set(tt.Value)

			if tt.WantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, a, tt.WantLen)
			for i, want := range tt.WantAttrs {
				assert.Equal(t, want.attr(), a[i], "attr[%d]", i)
			}
		})
	}
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	var tests []testGlobalTransformCase
	loadTestData(t, "global_transform_cases.yaml", &tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := toList(tt.Initial)
			a.SetGlobalTransformSpec()

			require.Len(t, a, len(tt.WantSpecs))
			for i, wantSpec := range tt.WantSpecs {
				assert.Equal(t, wantSpec, a[i].TransformSpec, "attr[%d].TransformSpec", i)
			}
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	var tests []testTransformCase
	loadTestData(t, "transform_cases.yaml", &tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			attr := Attr{TransformSpec: tt.TransformSpec}
			assert.Equal(t, tt.Want, attr.Transform(tt.Input))
		})
	}
}

func TestAttrList_String(t *testing.T) {
	var tests []testStringCase
	loadTestData(t, "string_cases.yaml", &tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := toList(tt.AttrList)
			assert.Equal(t, tt.Want, a.String())
		})
	}
}

func TestAttrList_Included(t *testing.T) {
	a := AttrList{}
	require.NoError(t, a.Set("huc12,!name,*::u"))

	inc := a.Included()
	require.Len(t, inc, 1)
	assert.Equal(t, "huc12", inc[0].OutputKey)
}

func TestAttrList_Type(t *testing.T) {
	a := AttrList{}
	assert.Equal(t, "list", a.Type())
}
