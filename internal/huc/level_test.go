// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package huc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Level
		wantErr bool
	}{
		{name: "bare number", input: "12", want: 12},
		{name: "hu prefix", input: "hu8", want: 8},
		{name: "huc prefix", input: "HUC10", want: 10},
		{name: "padded", input: " 2 ", want: 2},
		{name: "odd level", input: "11", wantErr: true},
		{name: "too deep", input: "18", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "garbage", input: "twelve", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelNames(t *testing.T) {
	for _, l := range Levels() {
		col, err := l.Column()
		require.NoError(t, err)
		file, err := l.ShapeFile()
		require.NoError(t, err)

		assert.Equal(t, "huc"+l.String()[2:], col)
		assert.Equal(t, "WBD"+l.String()+".shp", file)
	}

	col, _ := Level(12).Column()
	assert.Equal(t, "huc12", col)
	file, _ := Level(12).ShapeFile()
	assert.Equal(t, "WBDHU12.shp", file)
	assert.Equal(t, "hu12", Level(12).CacheKey())
}

func TestUnsupportedLevel(t *testing.T) {
	_, err := Level(7).Column()
	assert.ErrorIs(t, err, ErrUnsupportedLevel)

	_, err = Level(20).ShapeFile()
	assert.ErrorIs(t, err, ErrUnsupportedLevel)

	assert.Error(t, Level(-2).Validate())
}

func TestDatasetName(t *testing.T) {
	name, err := DatasetName("08")
	require.NoError(t, err)
	assert.Equal(t, "WBD_08_HU2_Shape", name)

	for _, bad := range []string{"8", "080", "ab", "", "+1", "-1", "٠٨"} {
		_, err := DatasetName(bad)
		assert.Error(t, err, bad)
	}
}

func TestRegion(t *testing.T) {
	assert.Equal(t, "08", Region("080902030506"))
	assert.Equal(t, "", Region("8"))
}
