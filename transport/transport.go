// Package transport is the single choke point between the operation
// clients and FitBank. It signs, sends and classifies every request.
//
// FitBank does not speak ordinary REST: every call is a POST to
// main/execute/<Method> and the bank answers 200 OK no matter what
// happened. A business failure is signaled by the body field Success
// holding the string "false" (the API uses string-typed booleans), so the
// classifier compares that string verbatim and only then hands the body to
// the caller.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/latampay/fitbank-go/logger"
	"github.com/latampay/fitbank-go/metrics"
	"github.com/latampay/fitbank-go/types"
)

const executePathPrefix = "/main/execute/"

// Client executes signed FitBank calls. It is immutable after
// construction and safe for reuse across sequential calls; it performs no
// retries and no caching of its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
	rec        metrics.Recorder
}

// New builds a transport for baseURL (sandbox or production). Nil logger,
// recorder or http client fall back to no-op / default instances.
func New(baseURL string, httpClient *http.Client, log logger.Logger, rec metrics.Recorder) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
		rec:        rec,
	}
}

// Execute POSTs payload to main/execute/<method> with basic auth and
// classifies the outcome:
//
//   - non-2xx status: *types.TransportError (infrastructure failure)
//   - 2xx with Success "false": *types.APIError (business rejection)
//   - 2xx with Success "true": the parsed body
//
// Numbers in the body are decoded as json.Number so correlation tokens
// like SearchProtocol and DocumentNumber keep their literal form.
func (c *Client) Execute(ctx context.Context, method string, payload map[string]any, creds types.Credentials) (types.Body, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("fitbank: encode %s payload: %w", method, err)
	}

	url := c.baseURL + executePathPrefix + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("fitbank: build %s request: %w", method, err)
	}
	req.SetBasicAuth(creds.Username, creds.Password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Debug("fitbank request", map[string]any{
		"method":  method,
		"payload": json.RawMessage(encoded),
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.rec.IncCounter("network_error", map[string]string{"method": method})
		return nil, fmt.Errorf("fitbank: %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fitbank: read %s response: %w", method, err)
	}
	c.rec.ObserveLatency("request", time.Since(start), map[string]string{"method": method})

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		c.rec.IncCounter("transport_error", map[string]string{"method": method})
		c.log.Error("fitbank transport failure", map[string]any{
			"method": method,
			"status": resp.StatusCode,
			"body":   string(raw),
		})
		return nil, &types.TransportError{StatusCode: resp.StatusCode, Body: raw}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body types.Body
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("fitbank: decode %s response: %w", method, err)
	}

	// String compare on purpose: the wire value is "false", not false.
	if body["Success"] == "false" {
		apiErr := types.NewAPIError(body)
		c.rec.IncCounter("api_error", map[string]string{"method": method})
		c.log.Error("fitbank rejected request", map[string]any{
			"method":  method,
			"message": apiErr.Message,
		})
		return nil, apiErr
	}

	c.rec.IncCounter("success", map[string]string{"method": method})
	return body, nil
}
