// Package processor talks to an external change-detection backend that
// computes analysis reports.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"terrawatch/models"
)

const defaultTimeout = 25 * time.Second

// reportReq is the payload sent to POST {baseURL}/reports.
type reportReq struct {
	Zone  string  `json:"zone"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Zoom  int     `json:"zoom"`
	Start string  `json:"start"` // YYYY-MM-DD
	End   string  `json:"end"`
}

// Client implements session.Generator against a remote processor.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL. A nil httpClient gets a 25s timeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("processor: empty base url")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

func (c *Client) Name() string { return "processor" }

// Generate calls POST {baseURL}/reports and decodes the report.
func (c *Client) Generate(ctx context.Context, zone models.Zone, period models.Period) (models.AnalysisReport, error) {
	body, err := json.Marshal(reportReq{
		Zone:  zone.Name,
		Lat:   zone.Lat,
		Lon:   zone.Lon,
		Zoom:  zone.Zoom,
		Start: period.From(),
		End:   period.To(),
	})
	if err != nil {
		return models.AnalysisReport{}, fmt.Errorf("marshal processor req: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reports", bytes.NewReader(body))
	if err != nil {
		return models.AnalysisReport{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.AnalysisReport{}, fmt.Errorf("processor call failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.AnalysisReport{}, fmt.Errorf("read processor resp: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.AnalysisReport{}, fmt.Errorf("processor non-2xx: %s, body: %s", resp.Status, string(data))
	}

	var out models.AnalysisReport
	if err := json.Unmarshal(data, &out); err != nil {
		return models.AnalysisReport{}, fmt.Errorf("decode processor resp: %w", err)
	}
	return out, nil
}
