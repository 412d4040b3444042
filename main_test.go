// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/wbdctl/internal/config"
)

func TestMangleArguments(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "wbdctl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
select:
  sets:
    defaults: "--output json"
    delta:
      - "-w 080902030506"
      - "--dissolve -o wkt"
`), 0o600))
	t.Setenv(config.EnvPath, cfg)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults",
			args: []string{"wbdctl", "select", "-r", "08"},
			want: []string{"wbdctl", "select", "--output", "json", "-r", "08"},
		},
		{
			name: "named set",
			args: []string{"wbdctl", "select", "@delta", "--titles"},
			want: []string{"wbdctl", "select", "-w", "080902030506", "--dissolve", "-o", "wkt", "--titles"},
		},
		{
			name: "unknown set",
			args: []string{"wbdctl", "select", "@nope"},
			want: []string{"wbdctl", "select"},
		},
		{
			name: "no sets for command",
			args: []string{"wbdctl", "fetch", "-l", "8"},
			want: []string{"wbdctl", "fetch", "-l", "8"},
		},
		{
			name: "help",
			args: []string{"wbdctl", "select", "-w", "08", "-h"},
			want: []string{"wbdctl", "select", "--help"},
		},
		{
			name: "leading flag",
			args: []string{"wbdctl", "--version"},
			want: []string{"wbdctl", "--version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mangleArguments(tt.args))
		})
	}
}
