// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package retrieve

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
)

// HTTPRetriever fetches archives with plain GETs.
type HTTPRetriever struct {
	Client *http.Client
}

// NewHTTPRetriever returns a retriever using a non-shared pooled client.
func NewHTTPRetriever() *HTTPRetriever {
	return &HTTPRetriever{Client: cleanhttp.DefaultPooledClient()}
}

func (r *HTTPRetriever) Retrieve(ctx context.Context, req Request) (string, error) {
	return fetchAndExtract(ctx, req, func(ctx context.Context) (io.ReadCloser, int64, error) {
		hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := r.Client.Do(hreq)
		if err != nil {
			return nil, 0, fmt.Errorf("HTTP GET %s: %w", req.URL, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, 0, fmt.Errorf("HTTP GET %s: status %d", req.URL, resp.StatusCode)
		}
		return resp.Body, resp.ContentLength, nil
	})
}
