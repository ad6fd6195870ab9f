// Package probe provides a lightweight HTTP reachability check used to
// decide when queued offline writes can be replayed.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client issues HEAD requests against a well-known URL to test connectivity.
type Client struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a probe client for the given URL.
func NewClient(url string) *Client {
	restyClient := resty.New()
	restyClient.
		SetTimeout(5 * time.Second).
		SetRetryCount(0)

	return &Client{
		httpClient: restyClient,
		url:        url,
	}
}

// Probe returns nil when the probe URL answers with a non-5xx status.
func (c *Client) Probe(ctx context.Context) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Head(c.url)
	if err != nil {
		return fmt.Errorf("connectivity probe failed: %w", err)
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("connectivity probe failed: status=%d", resp.StatusCode())
	}
	return nil
}
