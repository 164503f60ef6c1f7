package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" || r.Method != http.MethodPost {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(Token{
			AccessToken: "token-123",
			TokenType:   "bearer",
			User:        &User{Username: "amina"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	token, err := c.Login(context.Background(), "amina", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token.AccessToken != "token-123" {
		t.Errorf("Expected access token, got %q", token.AccessToken)
	}
	if c.Token() != "token-123" {
		t.Errorf("Expected session token to be stored, got %q", c.Token())
	}

	c.Logout()
	if c.Token() != "" {
		t.Error("Expected token to be cleared on logout")
	}
}

func TestAuthorizedRequestsCarryBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("Expected bearer header, got %q", got)
		}
		json.NewEncoder(w).Encode(User{Username: "amina"})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("token-123")

	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
}

func TestProfileRejectedTokenEndsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid or expired token"})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("stale-token")

	_, err := c.Profile(context.Background())
	if err == nil {
		t.Fatal("Expected an error for a rejected token")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "Invalid or expired token" {
		t.Errorf("Expected detail from body, got %q", apiErr.Detail)
	}

	if c.Token() != "" {
		t.Error("Expected token to be cleared after rejection")
	}
}

func TestAPIErrorWithoutDetailBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not json", http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Tags(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", apiErr.StatusCode)
	}
	if apiErr.Detail == "" {
		t.Error("Expected a fallback detail message")
	}
}

func TestTagCloudComputesWeightsFromCounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]*TagInfo{
			"tags": {
				{Name: "politics", Count: 20},
				{Name: "culture", Count: 10},
				{Name: "sports", Count: 5},
			},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	weights, err := c.TagCloud(context.Background())
	if err != nil {
		t.Fatalf("TagCloud failed: %v", err)
	}

	// 100% -> 5, 50% -> 3, 25% -> 2
	want := map[string]int{"politics": 5, "culture": 3, "sports": 2}
	for name, tier := range want {
		if weights[name] != tier {
			t.Errorf("Expected %s weight %d, got %d", name, tier, weights[name])
		}
	}
}
