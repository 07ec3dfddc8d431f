// Package apiclient implements the dashboard engine's Store contract
// over the NaviHive HTTP API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/dashboard"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/importexport"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/models"
)

// TokenSource provides bearer tokens for API requests.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource returning a fixed token.
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

// Client talks to the NaviHive server API. It classifies responses into
// the dashboard error taxonomy: 401 becomes ErrAuthRequired, 404 becomes
// ErrNotFound, and the order endpoints' 409 surfaces as a rejected batch
// (false, nil) rather than an error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

// NewClient creates an API client. baseURL is typically
// "http://localhost:8080/api".
func NewClient(baseURL string, httpClient *http.Client, token TokenSource) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		token:      token,
	}
}

// apiError is the {"error": "..."} body the server sends on failure.
type apiError struct {
	Error string `json:"error"`
}

// do executes one JSON request and decodes a 2xx response into out.
// Non-2xx responses are classified into the dashboard error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		token, err := c.token.Token()
		if err != nil {
			return fmt.Errorf("apiclient: token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("apiclient: decode response: %w", err)
		}
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)
	var msg apiError
	_ = json.Unmarshal(raw, &msg)
	if msg.Error == "" {
		msg.Error = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", msg.Error, dashboard.ErrAuthRequired)
	case http.StatusNotFound, http.StatusConflict:
		return fmt.Errorf("%s: %w", msg.Error, dashboard.ErrNotFound)
	default:
		return fmt.Errorf("apiclient: %s %s: %s (status %d)", method, path, msg.Error, resp.StatusCode)
	}
}

// doBool wraps do for the contract operations that report a recoverable
// rejection as false rather than an error.
func (c *Client) doBool(ctx context.Context, method, path string, body interface{}) (bool, error) {
	err := c.do(ctx, method, path, body, nil)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, dashboard.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// LoginResponse carries the token issued by Login.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login authenticates with username and password and returns a JWT for
// use as a TokenSource.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ListGroups returns all groups ordered by order_num.
func (c *Client) ListGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := c.do(ctx, http.MethodGet, "/groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ListSites returns a group's sites ordered by order_num.
func (c *Client) ListSites(ctx context.Context, groupID uint) ([]models.Site, error) {
	var sites []models.Site
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/groups/%d/sites", groupID), nil, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// CreateGroup persists a new group and returns it with its assigned id.
func (c *Client) CreateGroup(ctx context.Context, group models.Group) (models.Group, error) {
	var created models.Group
	if err := c.do(ctx, http.MethodPost, "/groups", group, &created); err != nil {
		return models.Group{}, err
	}
	return created, nil
}

// UpdateGroup updates a group; false means the target no longer exists.
func (c *Client) UpdateGroup(ctx context.Context, id uint, group models.Group) (bool, error) {
	return c.doBool(ctx, http.MethodPut, fmt.Sprintf("/groups/%d", id), group)
}

// DeleteGroup deletes a group; its sites cascade server-side.
func (c *Client) DeleteGroup(ctx context.Context, id uint) (bool, error) {
	return c.doBool(ctx, http.MethodDelete, fmt.Sprintf("/groups/%d", id), nil)
}

// CreateSite persists a new site and returns it with its assigned id.
func (c *Client) CreateSite(ctx context.Context, site models.Site) (models.Site, error) {
	var created models.Site
	path := fmt.Sprintf("/groups/%d/sites", site.GroupID)
	if err := c.do(ctx, http.MethodPost, path, site, &created); err != nil {
		return models.Site{}, err
	}
	return created, nil
}

// UpdateSite updates a site; false means the target no longer exists.
func (c *Client) UpdateSite(ctx context.Context, id uint, site models.Site) (bool, error) {
	return c.doBool(ctx, http.MethodPut, fmt.Sprintf("/sites/%d", id), site)
}

// DeleteSite deletes a site.
func (c *Client) DeleteSite(ctx context.Context, id uint) (bool, error) {
	return c.doBool(ctx, http.MethodDelete, fmt.Sprintf("/sites/%d", id), nil)
}

type orderRequest struct {
	Orders []dashboard.OrderPair `json:"orders"`
}

// SetGroupOrder submits a batched group order commit.
func (c *Client) SetGroupOrder(ctx context.Context, pairs []dashboard.OrderPair) (bool, error) {
	return c.doBool(ctx, http.MethodPut, "/groups/order", orderRequest{Orders: pairs})
}

// SetSiteOrder submits a batched site order commit.
func (c *Client) SetSiteOrder(ctx context.Context, pairs []dashboard.OrderPair) (bool, error) {
	return c.doBool(ctx, http.MethodPut, "/sites/order", orderRequest{Orders: pairs})
}

// ImportDataset submits a snapshot for reconciliation. A rejected
// snapshot comes back as a result with Success false, not an error.
func (c *Client) ImportDataset(ctx context.Context, snapshot importexport.Snapshot) (importexport.ImportResult, error) {
	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return importexport.ImportResult{}, fmt.Errorf("apiclient: encode snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/import", bytes.NewReader(encoded))
	if err != nil {
		return importexport.ImportResult{}, fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		token, err := c.token.Token()
		if err != nil {
			return importexport.ImportResult{}, fmt.Errorf("apiclient: token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return importexport.ImportResult{}, fmt.Errorf("apiclient: POST /import: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return importexport.ImportResult{}, fmt.Errorf("import: %w", dashboard.ErrAuthRequired)
	}

	// Both 200 and 400 carry an ImportResult body.
	var result importexport.ImportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return importexport.ImportResult{}, fmt.Errorf("apiclient: decode import result (status %d): %w", resp.StatusCode, err)
	}
	return result, nil
}

// ListConfigs returns all config entries.
func (c *Client) ListConfigs(ctx context.Context) ([]models.Config, error) {
	var responses []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := c.do(ctx, http.MethodGet, "/configs", nil, &responses); err != nil {
		return nil, err
	}
	entries := make([]models.Config, len(responses))
	for i, r := range responses {
		entries[i] = models.Config{Key: r.Key, Value: r.Value}
	}
	return entries, nil
}

// GetConfig returns the value stored under key, or ErrNotFound.
func (c *Client) GetConfig(ctx context.Context, key string) (string, error) {
	var resp struct {
		Value string `json:"value"`
	}
	if err := c.do(ctx, http.MethodGet, "/configs/"+key, nil, &resp); err != nil {
		return "", err
	}
	return resp.Value, nil
}

// SetConfig stores a value under key.
func (c *Client) SetConfig(ctx context.Context, key, value string) (bool, error) {
	return c.doBool(ctx, http.MethodPut, "/configs/"+key, map[string]string{"value": value})
}

var _ dashboard.Store = (*Client)(nil)
