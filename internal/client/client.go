// Package client is a small HTTP client for the v1 API. It satisfies
// favcache.Transport.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"dinefinder/internal/domain/claims"
	"dinefinder/internal/domain/favorites"
	"dinefinder/internal/domain/history"
	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/params"
)

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, RequestID: requestID}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	envelope := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func restaurantPath(id int64, suffix string) string {
	return "/v1/restaurants/" + strconv.FormatInt(id, 10) + suffix
}

func (c *Client) AddFavorite(ctx context.Context, restaurantID int64) error {
	return c.do(ctx, http.MethodPost, restaurantPath(restaurantID, "/favorite"), nil, nil, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, restaurantID int64) error {
	return c.do(ctx, http.MethodDelete, restaurantPath(restaurantID, "/favorite"), nil, nil, nil)
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	return q
}

func (c *Client) ListFavorites(ctx context.Context, page, size int) (*params.Page[favorites.FavoriteRestaurant], error) {
	var out params.Page[favorites.FavoriteRestaurant]
	if err := c.do(ctx, http.MethodGet, "/v1/users/me/favorites", pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FavoriteIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := c.do(ctx, http.MethodGet, "/v1/users/me/favorites/ids", nil, nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) History(ctx context.Context) (*history.History, error) {
	var out history.History
	if err := c.do(ctx, http.MethodGet, "/v1/users/me/history", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Restaurant(ctx context.Context, id int64) (*restaurants.Summary, error) {
	var out restaurants.Summary
	if err := c.do(ctx, http.MethodGet, restaurantPath(id, ""), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Claim(ctx context.Context, restaurantID int64) (*claims.ClaimResult, error) {
	var out claims.ClaimResult
	path := "/v1/owner/restaurants/" + strconv.FormatInt(restaurantID, 10) + "/claim"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
