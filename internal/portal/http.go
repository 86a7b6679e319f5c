package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"docportal/internal/model"
)

const remoteDateLayout = "2006-01-02"

// HTTPClient reads a portal exposing GET {base}/status and GET {base}/documents,
// authenticated with an X-API-Key header.
type HTTPClient struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a traced client. Requests are bounded by timeout.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) (*HTTPClient, error) {
	if baseURL == "" || apiKey == "" {
		return nil, ErrNotConfigured
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		hc: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

func (c *HTTPClient) URL() string { return c.baseURL }

type statusPayload struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	TotalDocuments int    `json:"total_documents"`
	Status         string `json:"status"`
}

type documentPayload struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ExpirationDate string `json:"expiration_date"`
	Size           int64  `json:"size"`
	MimeType       string `json:"mime_type"`
	Extension      string `json:"extension"`
}

func (c *HTTPClient) Ping(ctx context.Context) (*Info, error) {
	var p statusPayload
	if err := c.getJSON(ctx, "/status", &p); err != nil {
		return nil, err
	}
	return &Info{Name: p.Name, Version: p.Version, TotalDocuments: p.TotalDocuments, APIStatus: p.Status}, nil
}

func (c *HTTPClient) Fetch(ctx context.Context) ([]model.RemoteDocument, error) {
	var body struct {
		Documents []documentPayload `json:"documents"`
	}
	if err := c.getJSON(ctx, "/documents", &body); err != nil {
		return nil, err
	}
	out := make([]model.RemoteDocument, 0, len(body.Documents))
	for _, d := range body.Documents {
		exp, err := time.Parse(remoteDateLayout, d.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("document %q: bad expiration date %q", d.ID, d.ExpirationDate)
		}
		out = append(out, model.RemoteDocument{
			ExternalID:     d.ID,
			Name:           d.Name,
			Description:    d.Description,
			ExpirationDate: exp,
			SizeBytes:      d.Size,
			MimeType:       d.MimeType,
			Extension:      strings.ToLower(d.Extension),
		})
	}
	return out, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("portal request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("portal responded %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode portal response: %w", err)
	}
	return nil
}
