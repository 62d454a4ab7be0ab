// Package client is a Go client for the horse-calendar HTTP API.
// It speaks the same wire format as the browser front-end: mutation
// responses carry the full updated collection, which callers adopt
// wholesale instead of patching local state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

// Client wraps an http.Client pointed at one horse-calendar server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client for the given base URL (e.g. "http://localhost:4000").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithHTTPClient constructs a Client with a caller-supplied http.Client,
// for tests or custom transport settings.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// apiError is the {"error": "..."} failure envelope.
type apiError struct {
	Error string `json:"error"`
}

// rosterResponse is the {"success": ..., "cavaliers": ...} envelope.
type rosterResponse struct {
	Success   bool              `json:"success"`
	Cavaliers []domain.Cavalier `json:"cavaliers"`
}

// assignmentsResponse is the {"success": ..., "assignments": ...} envelope.
type assignmentsResponse struct {
	Success     bool            `json:"success"`
	Assignments domain.Snapshot `json:"assignments"`
}

// Cavaliers fetches the full roster.
func (c *Client) Cavaliers(ctx context.Context) ([]domain.Cavalier, error) {
	var roster []domain.Cavalier
	if err := c.get(ctx, "/api/cavaliers", &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// ActiveCavaliers fetches the cavaliers assignable on the given day.
func (c *Client) ActiveCavaliers(ctx context.Context, date domain.DateKey) ([]domain.Cavalier, error) {
	path := "/api/cavaliers/active?date=" + url.QueryEscape(string(date))
	var roster []domain.Cavalier
	if err := c.get(ctx, path, &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// CreateCavalier adds a roster member and returns the updated roster.
func (c *Client) CreateCavalier(ctx context.Context, cav domain.Cavalier) ([]domain.Cavalier, error) {
	var resp rosterResponse
	if err := c.send(ctx, http.MethodPost, "/api/cavaliers", cav, &resp); err != nil {
		return nil, err
	}
	return resp.Cavaliers, nil
}

// UpdateCavalier patches the roster entry at index and returns the updated
// roster. Only non-nil patch fields are transmitted.
func (c *Client) UpdateCavalier(ctx context.Context, index int, patch domain.CavalierPatch) ([]domain.Cavalier, error) {
	body := map[string]any{}
	if patch.Name != nil {
		body["name"] = *patch.Name
	}
	if patch.Color != nil {
		body["color"] = *patch.Color
	}
	if patch.StartDate != nil {
		body["start_date"] = string(*patch.StartDate)
	}
	if patch.EndDate != nil {
		body["end_date"] = string(*patch.EndDate)
	}

	var resp rosterResponse
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/api/cavaliers/%d", index), body, &resp); err != nil {
		return nil, err
	}
	return resp.Cavaliers, nil
}

// DeleteCavalier removes the roster entry at index and returns the updated roster.
func (c *Client) DeleteCavalier(ctx context.Context, index int) ([]domain.Cavalier, error) {
	var resp rosterResponse
	if err := c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/cavaliers/%d", index), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cavaliers, nil
}

// Assignments fetches the full day-record snapshot.
func (c *Client) Assignments(ctx context.Context) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	if err := c.get(ctx, "/api/assignments", &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// SaveDay replaces the full record for one day and returns the
// authoritative snapshot of all days.
func (c *Client) SaveDay(ctx context.Context, key domain.DateKey, rec domain.DayRecord) (domain.Snapshot, error) {
	cavaliers := rec.Cavaliers
	if cavaliers == nil {
		cavaliers = []string{}
	}
	body := map[string]any{
		"date":      string(key),
		"cavaliers": cavaliers,
		"comment":   rec.Comment,
		"work_type": string(rec.WorkType),
	}

	var resp assignmentsResponse
	if err := c.send(ctx, http.MethodPost, "/api/assignments", body, &resp); err != nil {
		return nil, err
	}
	return resp.Assignments, nil
}

// Stats fetches the aggregated counts, optionally filtered to one month.
// Pass empty strings for the all-time report.
func (c *Client) Stats(ctx context.Context, month, year string) (domain.StatsReport, error) {
	path := "/api/stats"
	if month != "" && year != "" {
		path += "?month=" + url.QueryEscape(month) + "&year=" + url.QueryEscape(year)
	}
	var report domain.StatsReport
	if err := c.get(ctx, path, &report); err != nil {
		return domain.StatsReport{}, err
	}
	return report, nil
}

// get performs a GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, out)
}

// send performs one request-response exchange. A non-2xx status is turned
// into an error carrying the server's {"error": ...} message when present.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("client: %s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("client: %s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}
