package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dinefinder/internal/auth"
)

// fakeAPI serves the favorites endpoints over an in-memory set. Requests
// for restaurant 13 fail.
type fakeAPI struct {
	mu        sync.Mutex
	favorites map[int64]bool
}

func newFakeAPI(t *testing.T, ids ...int64) *httptest.Server {
	t.Helper()
	api := &fakeAPI{favorites: map[int64]bool{}}
	for _, id := range ids {
		api.favorites[id] = true
	}

	data := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": v})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/users/me/favorites/ids", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		out := []int64{}
		for id := range api.favorites {
			out = append(out, id)
		}
		data(w, out)
	})
	toggle := func(on bool) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
			if id == 13 {
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "status": 500, "code": "internal_error", "message": "boom"})
				return
			}
			api.mu.Lock()
			if on {
				api.favorites[id] = true
			} else {
				delete(api.favorites, id)
			}
			api.mu.Unlock()
			data(w, map[string]any{"restaurant_id": id, "favorited": on})
		}
	}
	mux.HandleFunc("POST /v1/restaurants/{id}/favorite", toggle(true))
	mux.HandleFunc("DELETE /v1/restaurants/{id}/favorite", toggle(false))
	mux.HandleFunc("POST /v1/owner/restaurants/{id}/claim", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "status": 409, "code": "already_claimed", "message": "restaurant 55 has already been claimed"})
	})
	mux.HandleFunc("GET /v1/users/me/history", func(w http.ResponseWriter, r *http.Request) {
		data(w, map[string]any{
			"reviews_authored": []map[string]any{{
				"id": 1, "restaurant_id": 9, "rating": 4, "restaurant_name": "Pho House",
				"created_at": time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			}},
			"restaurants_added": []map[string]any{},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, path := range [][]string{
		{"favorites", "list"},
		{"favorites", "ids"},
		{"favorites", "toggle"},
		{"history"},
		{"restaurant", "show"},
		{"owner", "claim"},
		{"token"},
	} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://api.example:9000")
	cmd := NewRootCommand()

	apiURL := cmd.PersistentFlags().Lookup("api-url")
	require.NotNil(t, apiURL)
	assert.Equal(t, "http://api.example:9000", apiURL.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	_, _, err := execute(t, "--format", "xml", "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestToggleReconcilesAndRollsBack(t *testing.T) {
	srv := newFakeAPI(t, 1)

	stdout, _, err := execute(t, "--api-url", srv.URL, "--format", "json", "favorites", "toggle", "1", "2", "13")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string       `json:"status"`
		Data   ToggleResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []int64{2}, resp.Data.Favorites)
	require.Contains(t, resp.Data.Failed, int64(13))
	assert.Contains(t, resp.Data.Failed[13], "internal_error")
}

func TestIDsAsYAML(t *testing.T) {
	srv := newFakeAPI(t, 7)

	stdout, _, err := execute(t, "--api-url", srv.URL, "--format", "yaml", "favorites", "ids")
	require.NoError(t, err)

	var resp struct {
		Status string  `yaml:"status"`
		Data   []int64 `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &resp), stdout)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []int64{7}, resp.Data)
}

func TestHistoryText(t *testing.T) {
	srv := newFakeAPI(t)

	stdout, _, err := execute(t, "--api-url", srv.URL, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Reviews (1)")
	assert.Contains(t, stdout, "Pho House\t4/5\t2026-03-01")
	assert.Contains(t, stdout, "Restaurants added (0)")
}

func TestClaimConflictReportsAPICode(t *testing.T) {
	srv := newFakeAPI(t)

	_, stderr, err := execute(t, "--api-url", srv.URL, "owner", "claim", "55")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "Error [already_claimed]")
}

func TestUnreachableServerIsCommandError(t *testing.T) {
	srv := newFakeAPI(t)
	url := srv.URL
	srv.Close()

	_, _, err := execute(t, "--api-url", url, "--timeout", "2s", "favorites", "ids")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTokenMint(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "dev-secret")
	t.Setenv("AUTH_TOKEN_ISS", "dinefinder")

	stdout, _, err := execute(t, "token", "--subject", "42", "--type", "owner")
	require.NoError(t, err)

	a := auth.NewJWTAuthenticator("dev-secret", "dinefinder", "dinefinder", time.Hour)
	id, err := a.Identify(string(bytes.TrimSpace([]byte(stdout))))
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{Subject: 42, TokenType: auth.TokenTypeOwner}, id)

	_, _, err = execute(t, "token", "--subject", "42", "--type", "admin")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
