// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/wbdctl/internal/meta"
)

const bashCompletionScript = `# bash completion for wbdctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_wbdctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "fetch select purge completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local store="--cache --source --data-dir --redis-addr --base-url --s3-endpoint --aws-profile"
    local common="$store --attrs -a --color -c --filter -f --output -o --sort -s --titles -t --out --tldr"

    case "$cmd" in
        fetch)
            local opts="$store --dataset --region -r --level -l --cache-key --storage-key --refresh --tldr"
            ;;
        select)
            local opts="$common --region -r --level -l --watershed -w --dissolve -d --strict --refresh"
            ;;
        purge)
            local opts="$store --hours --storage-key --tldr"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml geojson wkt shp raw" -- "$cur") )
            return 0
            ;;
        --level|-l)
            COMPREPLY=( $(compgen -W "2 4 6 8 10 12 14 16" -- "$cur") )
            return 0
            ;;
        --cache)
            COMPREPLY=( $(compgen -W "file redis memory" -- "$cur") )
            return 0
            ;;
        --source)
            COMPREPLY=( $(compgen -W "https s3" -- "$cur") )
            return 0
            ;;
        --data-dir|--out)
            COMPREPLY=( $(compgen -o filenames -f -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _wbdctl wbdctl
`

const zshCompletionScript = `#compdef wbdctl

_wbdctl() {
  local -a cmds
  cmds=(
    'fetch:download and cache a WBD layer'
    'select:select a watershed'
    'purge:remove stale cache entries'
    'completion:generate shell completion script'
  )

  local -a store
  store=(
  '--cache[cache backend]:backend:(file redis memory)'
  '--source[download source]:source:(https s3)'
  '--data-dir[download directory]:dir:_directories'
  '--redis-addr[redis address]:addr'
  '--base-url[staged products base URL]:url'
  '--s3-endpoint[S3 endpoint]:url'
  '--aws-profile[AWS shared config profile]:profile'
  )

  local -a common
  common=(
  $store
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml geojson wkt shp raw)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--out[output file]:file:_files'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'wbdctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    fetch)
      _arguments -C \
        $store \
        '--dataset[dataset identifier]:dataset' \
        '(-r --region)'{-r,--region}'[HU2 region]:region' \
        '(-l --level)'{-l,--level}'[HU level]:level:(2 4 6 8 10 12 14 16)' \
        '--cache-key[cache key]:key' \
        '--storage-key[storage key]:key' \
        '--refresh[ignore cached data]' \
        '--tldr[show tldr page]'
      ;;
    select)
      _arguments -C \
        $common \
        '(-r --region)'{-r,--region}'[HU2 region]:region' \
        '(-l --level)'{-l,--level}'[HU level]:level:(2 4 6 8 10 12 14 16)' \
        '(-w --watershed)'{-w,--watershed}'[watershed code]:code' \
        '(-d --dissolve)'{-d,--dissolve}'[dissolve into one geometry]' \
        '--strict[fail when nothing matches]' \
        '--refresh[ignore cached data]'
      ;;
    purge)
      _arguments -C \
        $store \
        '--hours[age in hours]:hours' \
        '--storage-key[redis namespace to drop]:key' \
        '--tldr[show tldr page]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _wbdctl wbdctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	w := cmd.Root().Writer
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: wbdctl completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "wbdctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
