package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "jane@example.com", payload["email"])

		_, _ = w.Write([]byte(`{
			"user": {"id": "42", "name": "Jane Reader", "email": "jane@example.com"},
			"session": {"access_token": "tok-123"}
		}`))
	}))
	defer server.Close()

	client := NewUpstreamClient(server.URL, 5*time.Second)
	user, token, err := client.Login(context.Background(), "jane@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "Jane Reader", user.Name)
	assert.Equal(t, "tok-123", token)
}

func TestUpstreamClient_Login_Failure_SurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "wrong email or password"}`))
	}))
	defer server.Close()

	client := NewUpstreamClient(server.URL, 5*time.Second)
	_, _, err := client.Login(context.Background(), "jane@example.com", "bad")

	require.Error(t, err)
	assert.Equal(t, "wrong email or password", err.Error())
}

func TestUpstreamClient_Login_Failure_NoMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewUpstreamClient(server.URL, 5*time.Second)
	_, _, err := client.Login(context.Background(), "jane@example.com", "secret")

	assert.ErrorContains(t, err, "status 502")
}

func TestUpstreamClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/register", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Jane Reader", payload["name"])

		_, _ = w.Write([]byte(`{
			"user": {"id": "43", "name": "Jane Reader", "email": "jane@example.com"},
			"session": {"access_token": "tok-456"}
		}`))
	}))
	defer server.Close()

	client := NewUpstreamClient(server.URL, 5*time.Second)
	user, token, err := client.Register(context.Background(), "Jane Reader", "jane@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "43", user.ID)
	assert.Equal(t, "tok-456", token)
}

func TestUpstreamClient_Register_EmailConfirmationRequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"user": {"id": "44", "name": "Jane", "email": "jane@example.com"},
			"session": {}
		}`))
	}))
	defer server.Close()

	client := NewUpstreamClient(server.URL, 5*time.Second)
	_, _, err := client.Register(context.Background(), "Jane", "jane@example.com", "secret")

	assert.ErrorIs(t, err, ErrEmailConfirmationRequired)
}
