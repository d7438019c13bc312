package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qkart/storefront-service/internal/app/storefront/entity"
	"qkart/storefront-service/internal/app/storefront/infrastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*QKartClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewQKartClient(server.URL, 5*time.Second)
	return client, server
}

// ===================== FetchProducts Tests =====================

func TestFetchProducts_Success(t *testing.T) {
	// Arrange
	catalog := []entity.Product{
		{ID: "abc", Name: "iPhone XR", Category: "Phones", Cost: 100, Rating: 4, Image: "http://img"},
	}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		json.NewEncoder(w).Encode(catalog)
	})
	defer server.Close()

	// Act
	products, err := client.FetchProducts(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, catalog, products)
}

func TestFetchProducts_ServerError(t *testing.T) {
	// Arrange
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(entity.BackendMessage{Success: false, Message: "database down"})
	})
	defer server.Close()

	// Act
	products, err := client.FetchProducts(context.Background())

	// Assert
	assert.Nil(t, products)
	be, ok := infrastructure.AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, be.StatusCode)
	assert.Equal(t, "database down", be.Message)
}

func TestFetchProducts_NetworkError(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // соединение откажет

	client := NewQKartClient(server.URL, time.Second)

	// Act
	_, err := client.FetchProducts(context.Background())

	// Assert
	assert.Error(t, err)
	_, ok := infrastructure.AsBackendError(err)
	assert.False(t, ok)
}

// ===================== SearchProducts Tests =====================

func TestSearchProducts_PassesQuery(t *testing.T) {
	// Arrange
	results := []entity.Product{{ID: "abc", Name: "iPhone XR", Cost: 100}}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "red iphone", r.URL.Query().Get("value"))
		json.NewEncoder(w).Encode(results)
	})
	defer server.Close()

	// Act
	products, err := client.SearchProducts(context.Background(), "red iphone")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, results, products)
}

func TestSearchProducts_NotFoundIsSentinel(t *testing.T) {
	// Arrange
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	// Act
	products, err := client.SearchProducts(context.Background(), "zzz")

	// Assert
	assert.Nil(t, products)
	assert.ErrorIs(t, err, infrastructure.ErrSearchNotFound)
}

// ===================== FetchCart Tests =====================

func TestFetchCart_SendsBearerToken(t *testing.T) {
	// Arrange
	entries := []entity.CartEntry{{ProductID: "abc", Qty: 2}}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(entries)
	})
	defer server.Close()

	// Act
	got, err := client.FetchCart(context.Background(), "test-token")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

// ===================== MutateCart Tests =====================

func TestMutateCart_PostsEntryAndReturnsFullCart(t *testing.T) {
	// Arrange
	updated := []entity.CartEntry{
		{ProductID: "abc", Qty: 2},
		{ProductID: "def", Qty: 1},
	}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body entity.CartEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "def", body.ProductID)
		assert.Equal(t, 1, body.Qty)

		json.NewEncoder(w).Encode(updated)
	})
	defer server.Close()

	// Act
	got, err := client.MutateCart(context.Background(), "test-token", "def", 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestMutateCart_BadRequestCarriesMessage(t *testing.T) {
	// Arrange
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(entity.BackendMessage{Success: false, Message: "Product doesn't exist"})
	})
	defer server.Close()

	// Act
	_, err := client.MutateCart(context.Background(), "test-token", "ghost", 1)

	// Assert
	be, ok := infrastructure.AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, be.StatusCode)
	assert.Equal(t, "Product doesn't exist", be.Message)
}

// ===================== Login Tests =====================

func TestLogin_SuccessReturnsSession(t *testing.T) {
	// Arrange
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		var req entity.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "crio.do", req.Username)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"token":    "jwt-token",
			"username": "crio.do",
			"balance":  5000,
		})
	})
	defer server.Close()

	// Act
	sess, err := client.Login(context.Background(), "crio.do", "learnbydoing")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", sess.Token)
	assert.Equal(t, "crio.do", sess.Username)
	assert.Equal(t, 5000.0, sess.Balance)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	// Arrange
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(entity.BackendMessage{Success: false, Message: "Password is incorrect"})
	})
	defer server.Close()

	// Act
	sess, err := client.Login(context.Background(), "crio.do", "wrongpass")

	// Assert
	assert.Nil(t, sess)
	be, ok := infrastructure.AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, be.StatusCode)
	assert.Equal(t, "Password is incorrect", be.Message)
}

func TestLogin_EmptyErrorBody(t *testing.T) {
	// Arrange
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	// Act
	_, err := client.Login(context.Background(), "crio.do", "learnbydoing")

	// Assert
	be, ok := infrastructure.AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, be.StatusCode)
	assert.Empty(t, be.Message)
}
