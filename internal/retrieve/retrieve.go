// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package retrieve

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

// URLTemplate is where the USGS stages the HU2 shape products. The only
// varying part is the dataset identifier.
const URLTemplate = "https://prd-tnm.s3.amazonaws.com/StagedProducts/Hydrography/WBD/HU2/Shape/%s.zip"

// markerFile flags a fully extracted tree.
const markerFile = ".wbdctl-complete"

// DatasetURL fills URLTemplate with a dataset identifier.
func DatasetURL(dataset string) string {
	return fmt.Sprintf(URLTemplate, url.PathEscape(dataset))
}

// Request describes one archive retrieval.
type Request struct {
	// URL of the zip archive.
	URL string
	// Dir receives the archive and its extracted contents.
	Dir string
	// Force downloads and extracts again even if Dir is already complete.
	Force bool
}

// Retriever downloads a zip archive and extracts it.
type Retriever interface {
	// Retrieve returns the root of the extracted tree.
	Retrieve(ctx context.Context, req Request) (string, error)
}

// opener opens the remote archive body. size is -1 when unknown.
type opener func(ctx context.Context) (body io.ReadCloser, size int64, err error)

// fetchAndExtract is the shared download/extract path of every retriever.
// A completed tree is reused unless req.Force is set. Partial downloads are
// removed; a partially extracted tree is left behind but not marked
// complete, so the next call starts over.
func fetchAndExtract(ctx context.Context, req Request, open opener) (string, error) {
	if req.Dir == "" {
		return "", fmt.Errorf("no download directory for %s", req.URL)
	}
	marker := filepath.Join(req.Dir, markerFile)

	if !req.Force {
		if _, err := os.Stat(marker); err == nil {
			log.Debugf("reusing extracted %s", req.Dir)
			return req.Dir, nil
		}
	}
	_ = os.Remove(marker)

	if err := os.MkdirAll(req.Dir, 0o755); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	archive := filepath.Join(req.Dir, archiveName(req.URL))
	n, err := download(ctx, archive, open)
	if err != nil {
		return "", err
	}
	log.Infof("downloaded %s (%s)", req.URL, humanize.Bytes(uint64(n)))

	files, err := Unzip(archive, req.Dir)
	if err != nil {
		return "", err
	}
	log.Debugf("extracted %d files into %s", files, req.Dir)

	if err := os.WriteFile(marker, []byte(req.URL+"\n"), 0o644); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to mark %s complete: %w", req.Dir, err)
	}
	return req.Dir, nil
}

// download streams the body to dest and returns the byte count.
func download(ctx context.Context, dest string, open opener) (int64, error) {
	body, size, err := open(ctx)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	if size > 0 {
		log.Debugf("downloading %s to %s", humanize.Bytes(uint64(size)), dest)
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("creating file %s: %w", dest, err)
	}

	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(dest)
		}
	}()

	n, err := io.Copy(out, body)
	if err != nil {
		return n, fmt.Errorf("writing file %s: %w", dest, err)
	}
	if size > 0 && n != size {
		return n, fmt.Errorf("writing file %s: short body, got %d of %d bytes", dest, n, size)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("closing file %s: %w", dest, err)
	}
	success = true
	return n, nil
}

// archiveName is the last path element of rawURL, or "archive.zip".
func archiveName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "archive.zip"
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || !strings.HasSuffix(strings.ToLower(name), ".zip") {
		return "archive.zip"
	}
	return name
}
