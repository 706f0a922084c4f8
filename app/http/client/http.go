// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package http provides the shared HTTP request helper used by the
// diagnostic probes. Each call issues exactly one request; retry behavior is
// intentionally absent.
package http

import (
	"context"
	"io"
	net "net/http"
	"net/url"

	"github.com/pkg/errors"
)

const (
	HeaderContentType = "Content-Type"
	HeaderCookie      = "Cookie"

	// HeaderSID and HeaderCSRFToken carry the appliance session material.
	// The appliance accepts the session identifier either as a bare header
	// or as a cookie; callers send both for robustness.
	HeaderSID       = "sid"
	HeaderCSRFToken = "X-CSRF-Token"

	ContentTypeJSON = "application/json"
)

// maxResponseBytes bounds how much of a response body Fetch will read.
const maxResponseBytes = 1 << 20

// Do issues a single request and returns the response status code, draining
// and discarding the body.
func Do(ctx context.Context, client *net.Client, method string, headers, queryParams map[string]string, endpoint string, body io.Reader) (int, error) {
	resp, err := do(ctx, client, method, headers, queryParams, endpoint, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// Fetch issues a single request and returns the status code, the reason
// phrase, and the (bounded) response body.
func Fetch(ctx context.Context, client *net.Client, method string, headers map[string]string, endpoint string, body io.Reader) (int, string, []byte, error) {
	resp, err := do(ctx, client, method, headers, nil, endpoint, body)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, resp.Status, nil, errors.Wrap(err, "read response body")
	}
	return resp.StatusCode, resp.Status, payload, nil
}

func do(ctx context.Context, client *net.Client, method string, headers, queryParams map[string]string, endpoint string, body io.Reader) (*net.Response, error) {
	if client == nil {
		client = net.DefaultClient
	}

	req, err := net.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	if len(queryParams) > 0 {
		q := url.Values{}
		for k, v := range queryParams {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, endpoint)
	}
	return resp, nil
}
