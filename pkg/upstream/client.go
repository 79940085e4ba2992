package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/creastat/stream-gateway/pkg/logger"
	"github.com/creastat/stream-gateway/pkg/types"
)

// ErrNoVendor is returned when no configured credential source carries both
// a base URL and a token. The gateway fails fast with 503 before opening
// any connection.
var ErrNoVendor = errors.New("no upstream vendor credentials resolve")

const (
	connectTimeout = 10 * time.Second
	writeTimeout   = 30 * time.Second
)

// Client is the authenticated streaming HTTP client for the upstream AI
// vendor. Credentials come from a prioritized source list; the first source
// with both URL and token wins.
type Client struct {
	sources []types.VendorSource
	http    *http.Client
	log     logger.Logger
}

// New creates a client over the given sources, in priority order.
//
// The transport uses a short connect timeout and a bounded response-header
// budget, but no overall request timeout: the response body is a long-lived
// stream and must not be cut off by a read deadline.
func New(sources []types.VendorSource, log logger.Logger) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: writeTimeout,
	}

	return &Client{
		sources: sources,
		http:    &http.Client{Transport: transport},
		log:     log,
	}
}

// Resolve returns the first credential source with both URL and token.
func (c *Client) Resolve() (types.VendorSource, error) {
	for _, src := range c.sources {
		if src.Resolvable() {
			return src, nil
		}
	}
	return types.VendorSource{}, ErrNoVendor
}

// OpenStream opens the upstream chat completion stream. The request always
// goes out with stream=true; the caller owns the response body and must
// close it.
func (c *Client) OpenStream(ctx context.Context, vendor types.VendorSource, req openai.ChatCompletionRequest) (*http.Response, error) {
	req.Stream = true

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal upstream request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, vendor.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Authorization", "Bearer "+vendor.Token)

	c.log.Debug("opening upstream stream", "vendor", vendor.Name, "model", req.Model)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream connection failed: %w", err)
	}

	return resp, nil
}

// VendorTraceID extracts the vendor's request correlation id, if any.
func VendorTraceID(resp *http.Response) string {
	return resp.Header.Get("x-request-id")
}
