// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points WBDCTL_CFG at a testdata file and resets Config.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err)

	t.Setenv(EnvPath, absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "08", cfg.Data["region"])
				assert.Equal(t, "file", cfg.Data["cache"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				redis, ok := cfg.Data["redis"].(map[string]any)
				require.True(t, ok, "redis should be a map")
				assert.Equal(t, "localhost:6379", redis["addr"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, 12, cfg.Data["level"])
				assert.Equal(t, false, cfg.Data["dissolve"])
				assert.Equal(t, 36.5, cfg.Data["hours"])
				assert.Len(t, cfg.Data["regions"], 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Empty(t, cfg.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)
			cfg, err := Load()
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	cfg, err := Load(filepath.Join("testdata", "nested.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Data["cache"])
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv(EnvPath, "/nonexistent/path/wbdctl.yaml")
	Config = Type{}

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_SearchPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", "")
	t.Setenv("HOME", t.TempDir())
	Config = Type{}

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotFound)

	abs, err := filepath.Abs("testdata")
	require.NoError(t, err)
	t.Setenv("HOME", abs)

	_, err = Load()
	assert.ErrorIs(t, err, ErrNotFound, "testdata has no wbdctl.yaml")
}

func TestLoad_CfgIsDirectory(t *testing.T) {
	t.Setenv(EnvPath, "testdata")
	Config = Type{}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "simple", testFile: "simple.yaml", key: "region", want: "08"},
		{name: "nested", testFile: "nested.yaml", key: "redis.addr", want: "localhost:6379"},
		{name: "missing with default", testFile: "simple.yaml", key: "missing", defaultValue: []string{"x"}, want: "x"},
		{name: "missing without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "not a string", testFile: "mixed-types.yaml", key: "level", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetString(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "int", testFile: "mixed-types.yaml", key: "level", want: 12},
		{name: "float truncated", testFile: "mixed-types.yaml", key: "hours", want: 36},
		{name: "nested", testFile: "nested.yaml", key: "redis.db", want: 2},
		{name: "missing with default", testFile: "simple.yaml", key: "missing", defaultValue: []int{24}, want: 24},
		{name: "missing without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "not an int", testFile: "simple.yaml", key: "cache", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetInt(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetBool(t *testing.T) {
	setupTestConfig(t, "mixed-types.yaml")

	got, err := GetBool("dissolve")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = GetBool("missing", true)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = GetBool("name")
	assert.Error(t, err)
}

func TestNamespace(t *testing.T) {
	setupTestConfig(t, "nested.yaml")
	_, err := Load()
	require.NoError(t, err)

	Config.Namespace = "select"
	level, err := GetInt("level")
	require.NoError(t, err)
	assert.Equal(t, 10, level)

	// Falls back to the bare key.
	cache, err := GetString("cache")
	require.NoError(t, err)
	assert.Equal(t, "redis", cache)

	Config.Namespace = "fetch"
	level, err = GetInt("level")
	require.NoError(t, err)
	assert.Equal(t, 8, level)

	_, err = GetBool("dissolve")
	assert.Error(t, err)
}

func TestLazyLoad(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	val, err := GetString("region")
	require.NoError(t, err)
	assert.Equal(t, "08", val)
	assert.NotEmpty(t, Config.Source)
}

func TestGetStringSlice(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    []string
		wantErr bool
	}{
		{name: "single string", key: "select.sets.defaults", want: []string{"--output json"}},
		{name: "sequence", key: "select.sets.delta", want: []string{"-w 080902030506", "--dissolve"}},
		{name: "not strings", key: "select.sets.bad", wantErr: true},
		{name: "map", key: "select.sets", wantErr: true},
		{name: "missing", key: "select.sets.none", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, "nested.yaml")

			got, err := GetStringSlice(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
