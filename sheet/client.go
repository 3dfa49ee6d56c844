package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"relationship-dashboard/config"
	"relationship-dashboard/model"
	"relationship-dashboard/utils"

	"github.com/rs/zerolog/log"
)

const exportBase = "https://docs.google.com/spreadsheets/d/"

// RecordSource yields the current survey rows.
type RecordSource interface {
	Records(ctx context.Context) ([]model.Record, error)
}

// Client reads a public spreadsheet through its gviz JSON export. A client
// built without a sheet answers every read with utils.ErrSheetNotConfigured.
type Client struct {
	exportURL  string
	httpClient *http.Client
}

type gvizResponse struct {
	Status string `json:"status"`
	Errors []struct {
		Reason          string `json:"reason"`
		Message         string `json:"message"`
		DetailedMessage string `json:"detailed_message"`
	} `json:"errors"`
	Table Table `json:"table"`
}

// NewClient builds a client for the configured sheet. A nil httpClient gets
// one with the configured request timeout. Only a malformed sheet URL is an
// error here; a missing one is reported on each fetch.
func NewClient(cfg config.SheetConfig, httpClient *http.Client) (*Client, error) {
	exportURL, err := ExportURL(cfg)
	if err != nil && !errors.Is(err, utils.ErrSheetNotConfigured) {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second}
	}
	return &Client{exportURL: exportURL, httpClient: httpClient}, nil
}

// ExportURL resolves the gviz JSON endpoint from either a spreadsheet id or
// a sharing URL. URLs that already point at a gviz export are used as-is.
func ExportURL(cfg config.SheetConfig) (string, error) {
	if cfg.URL != "" && strings.Contains(cfg.URL, "/gviz/") {
		if err := utils.ValidateSheetURL(cfg.URL); err != nil {
			return "", err
		}
		return cfg.URL, nil
	}

	id := cfg.ID
	var gid string
	if id == "" {
		if err := utils.ValidateSheetURL(cfg.URL); err != nil {
			return "", err
		}
		u, _ := url.Parse(cfg.URL)
		id = spreadsheetID(u.Path)
		if id == "" {
			return "", fmt.Errorf("%w: no spreadsheet id in %q", utils.ErrInvalidSheetURL, cfg.URL)
		}
		gid = u.Query().Get("gid")
		if frag := strings.TrimPrefix(u.Fragment, "gid="); frag != u.Fragment {
			gid = frag
		}
	}

	q := url.Values{}
	q.Set("tqx", "out:json")
	if cfg.SheetName != "" {
		q.Set("sheet", cfg.SheetName)
	} else if gid != "" {
		q.Set("gid", gid)
	}
	return exportBase + url.PathEscape(id) + "/gviz/tq?" + q.Encode(), nil
}

// spreadsheetID extracts <id> from /spreadsheets/d/<id>/...
func spreadsheetID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "spreadsheets" && parts[i+1] == "d" {
			return parts[i+2]
		}
	}
	return ""
}

// Configured reports whether a sheet was set.
func (c *Client) Configured() bool {
	return c.exportURL != ""
}

// Key identifies the sheet for caching.
func (c *Client) Key() string {
	return "sheet:" + utils.HashKey(c.exportURL)
}

// Fetch performs one GET against the export and decodes its table.
func (c *Client) Fetch(ctx context.Context) (*Table, error) {
	if c.exportURL == "" {
		return nil, fmt.Errorf("%w: set GOOGLE_SHEET_URL or sheet.id", utils.ErrSheetNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build sheet request: %w", err)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sheet response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", utils.ErrSheetResponse, resp.StatusCode)
	}

	payload, err := unwrap(body)
	if err != nil {
		return nil, err
	}

	var gr gvizResponse
	if err := json.Unmarshal(payload, &gr); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", utils.ErrSheetResponse, err)
	}

	if gr.Status != "" && gr.Status != "ok" && gr.Status != "warning" {
		msg := gr.Status
		if len(gr.Errors) > 0 {
			msg = gr.Errors[0].Message
			if gr.Errors[0].DetailedMessage != "" {
				msg = gr.Errors[0].DetailedMessage
			}
		}
		return nil, fmt.Errorf("%w: %s", utils.ErrSheetResponse, msg)
	}

	log.Debug().
		Int("rows", len(gr.Table.Rows)).
		Int("cols", len(gr.Table.Cols)).
		Dur("elapsed", time.Since(started)).
		Msg("Fetched sheet")

	return &gr.Table, nil
}

// Records fetches and normalizes the sheet.
func (c *Client) Records(ctx context.Context) ([]model.Record, error) {
	t, err := c.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Normalize(t), nil
}

// unwrap strips the JSONP wrapper:
// /*O_o*/\ngoogle.visualization.Query.setResponse({...});
func unwrap(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return trimmed, nil
	}

	start := bytes.IndexByte(trimmed, '(')
	end := bytes.LastIndexByte(trimmed, ')')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: unexpected export format", utils.ErrSheetResponse)
	}
	return trimmed[start+1 : end], nil
}
