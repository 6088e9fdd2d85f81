package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","title":"1984","author":"George Orwell","price":1999,"rating":4.8,"genre":["Fiction"],"isNew":true},
			{"id":"2","title":"Dune","author":"Frank Herbert","price":2500,"rating":4.5,"genre":["SciFi"]}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	books, err := client.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "1984", books[0].Title)
	assert.True(t, books[0].IsNew)
	assert.Equal(t, []string{"SciFi"}, []string(books[1].Genres))
}

func TestClient_FetchAll_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.FetchAll(context.Background())

	assert.ErrorContains(t, err, "unexpected status")
}

func TestClient_FetchAll_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.FetchAll(context.Background())

	assert.ErrorContains(t, err, "decode catalog")
}

func TestClient_FetchAll_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.FetchAll(ctx)

	assert.Error(t, err)
}
