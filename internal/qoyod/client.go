// Package qoyod fetches accounting records from the Qoyod REST API and
// normalizes them into domain types. It deliberately does not retry, back
// off, or rate limit; a failed fetch surfaces as ErrSnapshotUnavailable.
package qoyod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"hawafiz/internal/config"
	"hawafiz/internal/domain"
)

// Response list fields per endpoint. Each endpoint names its collection
// explicitly; the payload also carries a meta block that is ignored.
const (
	fieldInvoices    = "invoices"
	fieldProducts    = "products"
	fieldUnitTypes   = "product_units"
	fieldCreditNotes = "credit_notes"
)

// Client talks to the Qoyod API v2.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	perPage  int
	maxPages int
}

// NewClient builds a Client from config.
func NewClient(cfg *config.QoyodConfig) *Client {
	return &Client{
		http:     &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		perPage:  cfg.PerPage,
		maxPages: cfg.MaxPages,
	}
}

// FetchSnapshot pulls the four collections for the given issue-date window
// and returns them as one normalized snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, window domain.DateWindow) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{Window: window, FetchedAt: time.Now().UTC()}

	invQuery := url.Values{}
	invQuery.Set("q[issue_date_gteq]", window.From.String())
	invQuery.Set("q[issue_date_lteq]", window.To.String())
	invQuery.Set("q[s]", "issue_date desc")
	rawInvoices, err := c.fetchAllPages(ctx, "/invoices", invQuery, fieldInvoices)
	if err != nil {
		return nil, fmt.Errorf("fetching invoices: %w", err)
	}
	for _, raw := range rawInvoices {
		var r rawInvoice
		if err := json.Unmarshal(raw, &r); err != nil {
			log.Printf("qoyod.Client: skipping malformed invoice record: %v", err)
			continue
		}
		snap.Invoices = append(snap.Invoices, normalizeInvoice(&r))
	}

	rawProducts, err := c.fetchAllPages(ctx, "/products", nil, fieldProducts)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	for _, raw := range rawProducts {
		var r rawProduct
		if err := json.Unmarshal(raw, &r); err != nil {
			log.Printf("qoyod.Client: skipping malformed product record: %v", err)
			continue
		}
		snap.Products = append(snap.Products, normalizeProduct(&r))
	}

	rawUnits, err := c.fetchAllPages(ctx, "/product_units", nil, fieldUnitTypes)
	if err != nil {
		return nil, fmt.Errorf("fetching product units: %w", err)
	}
	for _, raw := range rawUnits {
		var r rawUnitType
		if err := json.Unmarshal(raw, &r); err != nil {
			log.Printf("qoyod.Client: skipping malformed unit record: %v", err)
			continue
		}
		snap.UnitTypes = append(snap.UnitTypes, normalizeUnitType(&r))
	}

	noteQuery := url.Values{}
	noteQuery.Set("q[issue_date_gteq]", window.From.String())
	noteQuery.Set("q[s]", "issue_date desc")
	rawNotes, err := c.fetchAllPages(ctx, "/credit_notes", noteQuery, fieldCreditNotes)
	if err != nil {
		return nil, fmt.Errorf("fetching credit notes: %w", err)
	}
	for _, raw := range rawNotes {
		var r rawCreditNote
		if err := json.Unmarshal(raw, &r); err != nil {
			log.Printf("qoyod.Client: skipping malformed credit note record: %v", err)
			continue
		}
		snap.CreditNotes = append(snap.CreditNotes, normalizeCreditNote(&r))
	}

	log.Printf("qoyod.Client: snapshot %s..%s: invoices=%d products=%d units=%d credit_notes=%d",
		window.From, window.To,
		len(snap.Invoices), len(snap.Products), len(snap.UnitTypes), len(snap.CreditNotes))

	return snap, nil
}

// fetchAllPages walks page=1.. of one endpoint, reading the named list field
// from each payload, until an empty page, a non-2xx status past the first
// page, or the page cap. A failure on the first page is fatal; a failure on a
// later page keeps what was already fetched, matching how the upstream API
// signals "no more pages" in practice.
func (c *Client) fetchAllPages(ctx context.Context, path string, query url.Values, field string) ([]json.RawMessage, error) {
	var items []json.RawMessage

	for page := 1; page <= c.maxPages; page++ {
		q := url.Values{}
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("per_page", fmt.Sprint(c.perPage))
		q.Set("page", fmt.Sprint(page))

		pageItems, err := c.fetchPage(ctx, path, q, field)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotUnavailable, err)
			}
			log.Printf("qoyod.Client: %s stopped at page %d: %v", path, page, err)
			break
		}
		if len(pageItems) == 0 {
			break
		}
		items = append(items, pageItems...)
	}

	return items, nil
}

func (c *Client) fetchPage(ctx context.Context, path string, query url.Values, field string) ([]json.RawMessage, error) {
	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}

	raw, ok := payload[field]
	if !ok {
		return nil, nil
	}
	var pageItems []json.RawMessage
	if err := json.Unmarshal(raw, &pageItems); err != nil {
		return nil, fmt.Errorf("decoding %s list %q: %w", path, field, err)
	}
	return pageItems, nil
}
