package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Client talks to the hub's REST API with a client key. One client is
// shared by every session holding the same key, so it carries no per-request
// selection state; the catalog is refreshed once at construction.
type Client struct {
	baseURL   string
	clientKey string
	httpc     *http.Client

	mu        sync.RWMutex
	datasets  []Dataset
	namespace map[string]string // dataset name -> namespace
	remaining bool              // latched by the last stored fetch
}

// NewClient builds a hub client and refreshes the dataset catalog, the
// moral equivalent of the SDK's refresh_datasets call.
func NewClient(ctx context.Context, baseURL, clientKey string, timeout time.Duration) (*Client, error) {
	c := &Client{
		baseURL:   baseURL,
		clientKey: clientKey,
		httpc:     &http.Client{Timeout: timeout},
		namespace: make(map[string]string),
	}
	if err := c.refreshDatasets(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.clientKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hub: GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) refreshDatasets(ctx context.Context) error {
	var body struct {
		Datasets []Dataset `json:"datasets"`
	}
	if err := c.get(ctx, "/api/v1/datasets", nil, &body); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.datasets = body.Datasets
	for _, d := range body.Datasets {
		c.namespace[d.Name] = d.Namespace
	}
	log.Printf("[HUB] catalog refreshed: %d datasets", len(body.Datasets))
	return nil
}

// Datasets lists dataset names. If first is non-empty and present it is
// moved to the front (the portal's default selection).
func (c *Client) Datasets(first string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.datasets))
	for _, d := range c.datasets {
		if d.Name == first {
			continue
		}
		names = append(names, d.Name)
	}
	if first != "" {
		if _, ok := c.namespace[first]; ok {
			names = append([]string{first}, names...)
		}
	}
	return names
}

// NamespaceOf resolves a dataset to its hub namespace.
func (c *Client) NamespaceOf(dataset string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ns, ok := c.namespace[dataset]
	if !ok {
		return "", fmt.Errorf("hub: unknown dataset %q", dataset)
	}
	return ns, nil
}

// Assets lists assets of a dataset. The client is shared across sessions,
// so the dataset rides along on every call instead of being client state.
func (c *Client) Assets(ctx context.Context, dataset string) ([]Asset, error) {
	ns, err := c.NamespaceOf(dataset)
	if err != nil {
		return nil, err
	}

	var body struct {
		Assets []Asset `json:"assets"`
	}
	path := fmt.Sprintf("/api/v1/namespaces/%s/assets", url.PathEscape(ns))
	if err := c.get(ctx, path, nil, &body); err != nil {
		return nil, err
	}
	return body.Assets, nil
}

// AssetDataviews lists dataview ids associated with an asset, optionally
// filtered. The first entry is the asset's default dataview.
func (c *Client) AssetDataviews(ctx context.Context, dataset, filter, asset string) ([]string, error) {
	ns, err := c.NamespaceOf(dataset)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	if filter != "" {
		q.Set("filter", filter)
	}
	var body struct {
		Dataviews []string `json:"dataviews"`
	}
	path := fmt.Sprintf("/api/v1/namespaces/%s/assets/%s/dataviews",
		url.PathEscape(ns), url.PathEscape(asset))
	if err := c.get(ctx, path, q, &body); err != nil {
		return nil, err
	}
	return body.Dataviews, nil
}

// AssetMetadata returns the hub's metadata document for an asset.
func (c *Client) AssetMetadata(ctx context.Context, dataset, asset string) (map[string]any, error) {
	ns, err := c.NamespaceOf(dataset)
	if err != nil {
		return nil, err
	}

	var body map[string]any
	path := fmt.Sprintf("/api/v1/namespaces/%s/assets/%s/metadata",
		url.PathEscape(ns), url.PathEscape(asset))
	if err := c.get(ctx, path, nil, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// dataPage is one page of dataview rows from the hub.
type dataPage struct {
	Columns      []string   `json:"columns"`
	Rows         [][]string `json:"rows"`
	Continuation string     `json:"continuation,omitempty"`
}

// DataviewInterpolated fetches resampled rows. The interval string is passed
// through unchanged; the hub is the validator of its HH:MM:SS shape.
func (c *Client) DataviewInterpolated(ctx context.Context, ns, dataview, startISO, endISO, interval string) (*Table, error) {
	q := url.Values{}
	q.Set("start", startISO)
	q.Set("end", endISO)
	q.Set("interval", interval)

	var page dataPage
	path := fmt.Sprintf("/api/v1/namespaces/%s/dataviews/%s/data/interpolated",
		url.PathEscape(ns), url.PathEscape(dataview))
	if err := c.get(ctx, path, q, &page); err != nil {
		return nil, err
	}

	c.setRemaining(false)
	return &Table{Columns: page.Columns, Rows: page.Rows}, nil
}

// DataviewStored fetches raw recorded rows, following continuation pages.
// maxRows 0 means uncapped. When the cap cuts the fetch short with pages
// left, the remaining-data flag latches so the caller can warn instead of
// silently truncating.
func (c *Client) DataviewStored(ctx context.Context, ns, dataview, startISO, endISO string, resume bool, maxRows int) (*Table, error) {
	path := fmt.Sprintf("/api/v1/namespaces/%s/dataviews/%s/data/stored",
		url.PathEscape(ns), url.PathEscape(dataview))

	table := &Table{}
	continuation := ""
	remaining := false

	for {
		q := url.Values{}
		q.Set("start", startISO)
		q.Set("end", endISO)
		if resume {
			q.Set("resume", "true")
		}
		if continuation != "" {
			q.Set("continuation", continuation)
		}
		if maxRows > 0 {
			q.Set("count", strconv.Itoa(maxRows-table.Len()))
		}

		var page dataPage
		if err := c.get(ctx, path, q, &page); err != nil {
			return nil, err
		}
		if len(table.Columns) == 0 {
			table.Columns = page.Columns
		}
		table.Rows = append(table.Rows, page.Rows...)

		if maxRows > 0 && table.Len() >= maxRows {
			table.Rows = table.Rows[:maxRows]
			remaining = page.Continuation != ""
			break
		}
		if page.Continuation == "" {
			break
		}
		// a repeated token or an empty page means the hub is not making
		// progress; stop instead of spinning on identical requests
		if page.Continuation == continuation || len(page.Rows) == 0 {
			remaining = true
			break
		}
		continuation = page.Continuation
	}

	c.setRemaining(remaining)
	return table, nil
}

func (c *Client) setRemaining(v bool) {
	c.mu.Lock()
	c.remaining = v
	c.mu.Unlock()
}

// RemainingData reports whether the last stored fetch left rows unfetched.
func (c *Client) RemainingData() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.remaining
}
