// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/canonical/permission-service/internal/identity"
)

var (
	userID       string
	httpEndpoint string
)

// apiClient is a thin JSON client for the service's HTTP API, used by the
// admin subcommands.
type apiClient struct {
	endpoint string
	userID   string
	http     *http.Client
}

func newAPIClient() *apiClient {
	endpoint := httpEndpoint
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}
	// remove trailing slash
	endpoint = strings.TrimSuffix(endpoint, "/")

	return &apiClient{
		endpoint: endpoint,
		userID:   userID,
		http:     http.DefaultClient,
	}
}

// do sends a JSON request and decodes the response into out when it is
// non-nil. Status codes of 400 and above surface as errors carrying the body.
func (c *apiClient) do(method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	target := c.endpoint + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set(identity.UserHeaderName, c.userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// raw sends a request and returns the response body verbatim, for endpoints
// that stream non JSON payloads such as the audit export.
func (c *apiClient) raw(path string, query url.Values) (io.ReadCloser, error) {
	target := c.endpoint + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.userID != "" {
		req.Header.Set(identity.UserHeaderName, c.userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return resp.Body, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpEndpoint, "endpoint", "http://localhost:8080", "HTTP endpoint of the permission service")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID to act as")
}
