package httpclient_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/config"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/httpclient"
)

// TestNamedHTTPClient_Integration builds a registry of named HTTP clients from
// config.HTTPClientConfig entries the way server.New does at startup, then
// exercises each client against a real server requiring its auth scheme.
func TestNamedHTTPClient_Integration(t *testing.T) {
	basicAuthServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || username != "testuser" || password != "testpass" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("unauthorized"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("authenticated with basic auth"))
	}))
	defer basicAuthServer.Close()

	bearerServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token-123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("unauthorized"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("authenticated with bearer token"))
	}))
	defer bearerServer.Close()

	customHeaderServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "my-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("missing api key"))
			return
		}
		if r.Header.Get("User-Agent") != "MyApp/1.0" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("invalid user agent"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("custom headers validated"))
	}))
	defer customHeaderServer.Close()

	engineConfig := config.Testing()
	engineConfig.HTTPClients = []config.HTTPClientConfig{
		{
			Name:        "basic-auth-client",
			Description: "Client with basic authentication",
			AuthType:    "basic",
			Username:    "testuser",
			Password:    "testpass",
			Timeout:     30 * time.Second,
		},
		{
			Name:        "bearer-token-client",
			Description: "Client with bearer token",
			AuthType:    "bearer",
			Token:       "secret-token-123",
			Timeout:     30 * time.Second,
		},
		{
			Name:        "custom-headers-client",
			Description: "Client with custom headers",
			AuthType:    "none",
			Timeout:     30 * time.Second,
			DefaultHeaders: map[string]string{
				"X-API-Key":  "my-api-key",
				"User-Agent": "MyApp/1.0",
			},
		},
	}

	builder := httpclient.NewBuilder(*engineConfig)
	registry := httpclient.NewRegistry()

	for _, clientConfig := range engineConfig.HTTPClients {
		built, err := builder.Build(httpclient.FromConfigHTTPClient(clientConfig))
		if err != nil {
			t.Fatalf("Failed to build HTTP client %q: %v", clientConfig.Name, err)
		}
		if err := registry.Register(clientConfig.Name, built); err != nil {
			t.Fatalf("Failed to register HTTP client %q: %v", clientConfig.Name, err)
		}
	}

	t.Run("basic auth client", func(t *testing.T) {
		client, err := registry.Get("basic-auth-client")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		resp, err := client.Get(basicAuthServer.URL)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %v, want 200", resp.StatusCode)
		}
	})

	t.Run("bearer token client", func(t *testing.T) {
		client, err := registry.Get("bearer-token-client")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		resp, err := client.Get(bearerServer.URL)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %v, want 200", resp.StatusCode)
		}
	})

	t.Run("custom headers client", func(t *testing.T) {
		client, err := registry.Get("custom-headers-client")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		resp, err := client.Get(customHeaderServer.URL)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %v, want 200", resp.StatusCode)
		}
	})

	t.Run("non-existent client", func(t *testing.T) {
		if _, err := registry.Get("no-such-client"); err == nil {
			t.Error("Get() expected error for non-existent client, got nil")
		}
	})

	t.Run("wrong credentials rejected", func(t *testing.T) {
		// The bearer client used against the basic-auth server should fail auth.
		client, err := registry.Get("bearer-token-client")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		resp, err := client.Get(basicAuthServer.URL)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %v, want 401", resp.StatusCode)
		}
	})
}

// TestHTTPClientConfig_FromConfig tests the conversion from config.HTTPClientConfig
func TestHTTPClientConfig_FromConfig(t *testing.T) {
	configClient := config.HTTPClientConfig{
		Name:                "test-client",
		Description:         "Test client",
		AuthType:            "basic",
		Username:            "user",
		Password:            "pass",
		Timeout:             60 * time.Second,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 5,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     120 * time.Second,
		TLSHandshakeTimeout: 15 * time.Second,
		DisableKeepAlives:   true,
		MaxRedirects:        5,
		MaxResponseSize:     5 * 1024 * 1024,
		FollowRedirects:     false,
		DefaultHeaders: map[string]string{
			"X-Custom": "value",
		},
		DefaultQueryParams: map[string]string{
			"api_key": "secret",
		},
		BaseURL: "https://api.example.com",
	}

	httpClient := httpclient.FromConfigHTTPClient(configClient)

	if httpClient.Name != configClient.Name {
		t.Errorf("Name = %v, want %v", httpClient.Name, configClient.Name)
	}
	if httpClient.Description != configClient.Description {
		t.Errorf("Description = %v, want %v", httpClient.Description, configClient.Description)
	}
	if string(httpClient.AuthType) != configClient.AuthType {
		t.Errorf("AuthType = %v, want %v", httpClient.AuthType, configClient.AuthType)
	}
	if httpClient.Username != configClient.Username {
		t.Errorf("Username = %v, want %v", httpClient.Username, configClient.Username)
	}
	if httpClient.Password.Value() != configClient.Password {
		t.Errorf("Password = %v, want %v", httpClient.Password.Value(), configClient.Password)
	}
	if httpClient.Timeout != configClient.Timeout {
		t.Errorf("Timeout = %v, want %v", httpClient.Timeout, configClient.Timeout)
	}
	if httpClient.MaxIdleConns != configClient.MaxIdleConns {
		t.Errorf("MaxIdleConns = %v, want %v", httpClient.MaxIdleConns, configClient.MaxIdleConns)
	}
	if httpClient.BaseURL != configClient.BaseURL {
		t.Errorf("BaseURL = %v, want %v", httpClient.BaseURL, configClient.BaseURL)
	}

	// Verify maps are copied correctly
	if httpClient.DefaultHeaders["X-Custom"] != "value" {
		t.Error("DefaultHeaders not copied correctly")
	}
	if httpClient.DefaultQueryParams["api_key"] != "secret" {
		t.Error("DefaultQueryParams not copied correctly")
	}
}
