// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package retrieve

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned for archive entries that would land outside the
// extraction directory.
var ErrUnsafePath = errors.New("unsafe path in archive")

// Unzip extracts archive into dir and returns the number of files written.
func Unzip(archive, dir string) (int, error) {
	rz, err := zip.OpenReader(archive)
	if err != nil {
		return 0, fmt.Errorf("opening zip file %s: %w", archive, err)
	}
	defer rz.Close()

	root, err := filepath.Abs(dir)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, f := range rz.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return count, fmt.Errorf("%w: %s", ErrUnsafePath, f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil { //nolint:mnd
				return count, fmt.Errorf("creating %s: %w", target, err)
			}
			continue
		}
		if err := extractEntry(f, target); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// extractEntry writes a single archive member. Split out so the deferred
// closes run per entry.
func extractEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s in zip: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	return dst.Close()
}
