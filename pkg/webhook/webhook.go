// Package webhook delivers converted records to HTTP collectors.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ccollicutt/logkit/pkg/jsonvalue"
	"github.com/ccollicutt/logkit/pkg/output"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 10 * time.Second

// SourceHeader carries the input path of the conversion.
const SourceHeader = "X-Logkit-Source"

// Payload selects how records are encoded in a request body.
type Payload string

const (
	// PayloadJSON sends each batch as one compact JSON array.
	PayloadJSON Payload = "json"
	// PayloadNDJSON sends each batch as one compact record per line.
	PayloadNDJSON Payload = "ndjson"
)

// Client posts converted records to webhook endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new webhook client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// SendOptions configures delivery to one endpoint.
type SendOptions struct {
	URL     string
	Token   string        // Bearer token (optional)
	Timeout time.Duration // Per-request timeout (uses DefaultTimeout if zero)
	Payload Payload       // Body encoding (PayloadJSON if empty)

	// BatchSize caps the records per request. Zero sends everything at once.
	BatchSize int
}

// Response summarizes a delivery.
type Response struct {
	// StatusCode is the status of the last request made.
	StatusCode int

	// Requests is the number of batches accepted by the endpoint.
	Requests int

	// Records is the number of records in accepted batches.
	Records int

	Duration time.Duration
	Error    error
}

// Success returns true if every batch was accepted with a 2xx status.
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts the report's records, batch by batch, stopping at the first
// batch that fails. An empty report still sends one empty batch.
func (c *Client) Send(ctx context.Context, report *output.Report, opts SendOptions) (resp *Response) {
	start := time.Now()
	resp = &Response{}
	defer func() {
		resp.Duration = time.Since(start)
	}()

	batches := Batches(report.Records, opts.BatchSize)
	for i, batch := range batches {
		status, err := c.post(ctx, report.Metadata.Source, batch, opts)
		resp.StatusCode = status
		if err != nil {
			if len(batches) > 1 {
				err = fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
			}
			resp.Error = err
			return resp
		}
		resp.Requests++
		resp.Records += len(batch)
	}

	return resp
}

// Batches splits records into consecutive groups of at most size records.
// A size of zero or less yields a single group.
func Batches(records []jsonvalue.Value, size int) [][]jsonvalue.Value {
	if size <= 0 || len(records) <= size {
		return [][]jsonvalue.Value{records}
	}

	out := make([][]jsonvalue.Value, 0, (len(records)+size-1)/size)
	for len(records) > 0 {
		n := min(size, len(records))
		out = append(out, records[:n])
		records = records[n:]
	}
	return out
}

func (c *Client) post(ctx context.Context, source string, records []jsonvalue.Value, opts SendOptions) (int, error) {
	body, contentType := encode(records, opts.Payload)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "logkit-webhook")
	if source != "" {
		req.Header.Set(SourceHeader, source)
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	// Drain so the connection can be reused by the next batch.
	_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, 1024*1024))

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return httpResp.StatusCode, fmt.Errorf("webhook returned status %d", httpResp.StatusCode)
	}
	return httpResp.StatusCode, nil
}

func encode(records []jsonvalue.Value, payload Payload) ([]byte, string) {
	if payload == PayloadNDJSON {
		var buf bytes.Buffer
		for _, r := range records {
			buf.Write(jsonvalue.Marshal(r))
			buf.WriteByte('\n')
		}
		return buf.Bytes(), "application/x-ndjson"
	}
	return jsonvalue.Marshal(jsonvalue.Array(records)), "application/json"
}
