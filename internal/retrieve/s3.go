// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package retrieve

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the slice of the S3 API the retriever needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Retriever fetches archives straight from their bucket, addressing the
// object by the virtual-hosted URL's bucket and key.
type S3Retriever struct {
	Client ObjectGetter
}

func (r *S3Retriever) Retrieve(ctx context.Context, req Request) (string, error) {
	bucket, key, err := BucketKey(req.URL)
	if err != nil {
		return "", err
	}
	return fetchAndExtract(ctx, req, func(ctx context.Context) (io.ReadCloser, int64, error) {
		out, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: awsv2.String(bucket),
			Key:    awsv2.String(key),
		})
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get S3 object s3://%s/%s: %w", bucket, key, err)
		}
		return out.Body, awsv2.ToInt64(out.ContentLength), nil
	})
}

// BucketKey splits a virtual-hosted S3 URL such as
// https://prd-tnm.s3.amazonaws.com/StagedProducts/x.zip into its bucket and
// key. s3://bucket/key URLs are accepted too.
func BucketKey(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	key = strings.TrimPrefix(u.Path, "/")

	switch {
	case u.Scheme == "s3":
		bucket = u.Host
	default:
		host := u.Hostname()
		i := strings.Index(host, ".s3")
		if i <= 0 || !strings.HasSuffix(host, ".amazonaws.com") {
			return "", "", fmt.Errorf("not a virtual-hosted S3 URL: %s", rawURL)
		}
		bucket = host[:i]
	}

	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("no bucket or key in %s", rawURL)
	}
	return bucket, key, nil
}
