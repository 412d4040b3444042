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
	"github.com/urfave/cli/v3"
)

const sampleDoc = "# wbdctl select\n\n" +
	"## Short description\n\n" +
	"Select one watershed\nfrom a regional layer.\n\n" +
	"## Quick examples\n\n" +
	"```sh\n" +
	"# Mississippi delta as GeoJSON\n" +
	"wbdctl select -w 080902030506   -o geojson\n\n" +
	"wbdctl select --dissolve\n" +
	"```\n"

func TestExtractTitleAndShortDesc(t *testing.T) {
	title, short := extractTitleAndShortDesc(sampleDoc)
	assert.Equal(t, "wbdctl select", title)
	assert.Equal(t, "Select one watershed from a regional layer.", short)

	title, short = extractTitleAndShortDesc("# wbdctl purge\n")
	assert.Equal(t, "wbdctl purge", title)
	assert.Equal(t, "wbdctl purge.", short)
}

func TestExtractQuickExamples(t *testing.T) {
	got := extractQuickExamples(sampleDoc)
	assert.Equal(t, []example{
		{Desc: "Mississippi delta as GeoJSON", Cmd: "wbdctl select -w 080902030506 -o geojson"},
		{Desc: "Example", Cmd: "wbdctl select --dissolve"},
	}, got)

	assert.Nil(t, extractQuickExamples("# nothing here"))
}

func TestBuildTLDR(t *testing.T) {
	got := buildTLDR("select", "wbdctl select", "Select one watershed.", []example{
		{Desc: "Default watershed", Cmd: "wbdctl select"},
	})
	assert.Equal(t, "# wbdctl-select\n\n"+
		"> Select one watershed.\n"+
		"> More information: https://github.com/staranto/wbdctl.\n\n"+
		"- Default watershed:\n\n"+
		"`wbdctl select`\n", got)

	assert.Contains(t, buildTLDR("purge", "", "", nil), "`wbdctl purge --help`")
}

func TestFlagsSection(t *testing.T) {
	cmd := &cli.Command{
		Name: "select",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "watershed", Aliases: []string{"w"}, Usage: "code to select"},
			&cli.BoolFlag{Name: "secret", Hidden: true},
		},
	}
	got := flagsSection(cmd)
	assert.Contains(t, got, "- `--watershed, -w`: code to select\n")
	assert.NotContains(t, got, "secret")
}

func TestWriteFileIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, writeFileIfChanged(path, []byte("one\n"), true))

	past := []byte("one")
	require.NoError(t, writeFileIfChanged(path, past, true))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\n", string(b), "whitespace-only change is skipped")

	require.NoError(t, writeFileIfChanged(path, past, false))
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one", string(b))
}
