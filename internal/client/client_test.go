package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteCallsAndEnvelope(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path)
		mu.Unlock()
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/users/me/favorites/ids":
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []int64{4, 2}})
		case "/v1/users/me/favorites":
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "5", r.URL.Query().Get("size"))
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
				"items": []map[string]any{{"id": 4, "name": "Noodle Bar", "city": "Austin", "review_count": 0}},
				"page":  2, "size": 5, "total": 6,
			}})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"restaurant_id": 4, "favorited": true}})
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "tkn", srv.Client())
	ctx := context.Background()

	require.NoError(t, c.AddFavorite(ctx, 4))
	require.NoError(t, c.RemoveFavorite(ctx, 4))

	ids, err := c.FavoriteIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 2}, ids)

	page, err := c.ListFavorites(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Noodle Bar", page.Items[0].Name)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"POST /v1/restaurants/4/favorite",
		"DELETE /v1/restaurants/4/favorite",
		"GET /v1/users/me/favorites/ids",
		"GET /v1/users/me/favorites",
	}, seen)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false, "status": 409, "code": "already_claimed", "message": "restaurant 55 has already been claimed",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tkn", nil).Claim(context.Background(), 55)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "already_claimed", apiErr.Code)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL, "", nil).AddFavorite(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Message)
}
