package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *MemorySessionStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := NewMemorySessionStore(token)
	c, err := New(server.URL, WithSessionStore(store))
	require.NoError(t, err)
	return c, store
}

// countingTransport fails every request it sees, so a test using it
// proves that no network call happened at all.
type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls++
	return nil, errors.New("unexpected network call")
}

func TestNoSessionShortCircuits(t *testing.T) {
	transport := &countingTransport{}
	c, err := New("http://api.invalid",
		WithSessionStore(NewMemorySessionStore("")),
		WithHTTPClient(&http.Client{Transport: transport}),
	)
	require.NoError(t, err)

	_, err = c.Books(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, transport.calls, "an authenticated call without a session must not reach the network")
}

func TestBearerInjectionAndDecoding(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/books", r.URL.Path)
		json.NewEncoder(w).Encode(BooksResponse{
			Books: []Book{{ID: 7, Titre: "Solaris", Auteur: "Lem"}},
			Stats: Stats{"total": float64(1), "lus": float64(1)},
		})
	})
	c, _ := newTestClient(t, handler, "secret-key")

	result, err := c.Books(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Books, 1)
	assert.Equal(t, "Solaris", result.Books[0].Titre)
	assert.Equal(t, 1, result.Stats.Int("total"))
	assert.Zero(t, result.Stats.Int("a_lire"), "a missing stat reads as zero")
}

func TestUnauthorizedPurgesSession(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid API Key"})
	})
	c, store := newTestClient(t, handler, "stale-key")

	_, err := c.Books(context.Background(), nil)
	assert.ErrorIs(t, err, ErrSessionExpired)

	token, _ := store.Load()
	assert.Empty(t, token, "the rejected key must be purged from the store")
	assert.False(t, c.HasSession())

	_, err = c.Wishlist(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, 1, calls, "no further call should retry the dead key")
}

func TestLoginRejectionIsNotSessionExpiry(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	})
	c, _ := newTestClient(t, handler, "")

	_, err := c.Login(context.Background(), "admin", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.NotErrorIs(t, err, ErrSessionExpired)
}

func TestLoginStoresKey(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin", creds["username"])
		json.NewEncoder(w).Encode(LoginResponse{Message: "Login successful", APIKey: "fresh-key"})
	})
	c, store := newTestClient(t, handler, "")

	result, err := c.Login(context.Background(), "admin", "pass")
	require.NoError(t, err)
	assert.Equal(t, "fresh-key", result.APIKey)
	token, _ := store.Load()
	assert.Equal(t, "fresh-key", token)
	assert.True(t, c.HasSession())
}

func TestErrorMessageFallback(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway exploded</html>"))
	})
	c, _ := newTestClient(t, handler, "key")

	_, err := c.Book(context.Background(), 3)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP 500", apiErr.Message)
}

func TestWishlistUpdateSendsOnlyEditableFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/wishlist/5", r.URL.Path)
		var raw map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Contains(t, raw, "titre")
		assert.Contains(t, raw, "auteur")
		assert.Contains(t, raw, "proprietaire")
		assert.NotContains(t, raw, "note")
		assert.NotContains(t, raw, "statut_lecture")
		assert.NotContains(t, raw, "est_wishlist")
		json.NewEncoder(w).Encode(MessageResponse{Message: "Book updated."})
	})
	c, _ := newTestClient(t, handler, "key")

	// Even a caller handing over a full record must not leak the
	// collection-only fields into a wishlist update.
	_, err := c.UpdateWishlistBook(context.Background(), 5, Book{
		Titre: "Ubik", Auteur: "Dick", Proprietaire: "K", Note: 5, StatutLecture: "lu",
	})
	require.NoError(t, err)
}

func TestAddWishlistBookForcesWishlistFlag(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, float64(1), raw["est_wishlist"])
		assert.NotContains(t, raw, "note")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(MessageResponse{Message: "Book added to the wishlist.", ID: 12})
	})
	c, _ := newTestClient(t, handler, "key")

	result, err := c.AddWishlistBook(context.Background(), Book{Titre: "Ubik", Auteur: "Dick", Proprietaire: "J", Note: 4})
	require.NoError(t, err)
	assert.Equal(t, 12, result.ID)
}

func TestMoveToCollection(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wishlist/9/move_to_collection", r.URL.Path)
		json.NewEncoder(w).Encode(MessageResponse{Message: `Book "Ubik" added to your collection!`})
	})
	c, _ := newTestClient(t, handler, "key")

	result, err := c.MoveToCollection(context.Background(), 9)
	require.NoError(t, err)
	assert.Contains(t, result.Message, "added to your collection")
}

func TestFilterParamsForwarded(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "K", r.URL.Query().Get("proprietaire"))
		assert.Equal(t, "a_lire", r.URL.Query().Get("statut"))
		json.NewEncoder(w).Encode(BooksResponse{Stats: Stats{}})
	})
	c, _ := newTestClient(t, handler, "key")

	params := url.Values{}
	params.Set("proprietaire", "K")
	params.Set("statut", "a_lire")
	_, err := c.Books(context.Background(), params)
	require.NoError(t, err)
}
