package crates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cratewalk/cratewalk/pkg/cache"
	"github.com/cratewalk/cratewalk/pkg/registry"
)

func TestNewClient(t *testing.T) {
	c := NewClient(cache.NewNullCache(), time.Hour)
	if c.Client == nil {
		t.Error("expected client to be initialized")
	}
}

func TestClient_FetchCrate(t *testing.T) {
	crateResp := crateResponse{}
	crateResp.Crate.Name = "serde"
	crateResp.Crate.MaxVersion = "1.0.0"

	depsResp := depsResponse{
		Dependencies: []struct {
			CrateID  string `json:"crate_id"`
			Kind     string `json:"kind"`
			Optional bool   `json:"optional"`
		}{
			{CrateID: "serde_derive", Kind: "normal", Optional: false},
			{CrateID: "test_dep", Kind: "dev", Optional: false},
			{CrateID: "optional_dep", Kind: "normal", Optional: true},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crates/serde":
			json.NewEncoder(w).Encode(crateResp)
		case "/crates/serde/1.0.0/dependencies":
			json.NewEncoder(w).Encode(depsResp)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := NewClientWithBaseURL(cache.NewNullCache(), time.Hour, server.URL)

	info, err := c.FetchCrate(context.Background(), "serde", true)
	if err != nil {
		t.Fatalf("FetchCrate failed: %v", err)
	}

	if info.Name != "serde" {
		t.Errorf("expected name serde, got %s", info.Name)
	}
	if info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", info.Version)
	}
	if len(info.Dependencies) != 1 {
		t.Errorf("expected 1 dependency, got %d", len(info.Dependencies))
	}
	if len(info.Dependencies) > 0 && info.Dependencies[0] != "serde_derive" {
		t.Errorf("expected serde_derive, got %s", info.Dependencies[0])
	}
}

func TestClient_FetchCrate_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClientWithBaseURL(cache.NewNullCache(), time.Hour, server.URL)

	_, err := c.FetchCrate(context.Background(), "nonexistent", true)
	if !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchCrate_DepsLookupFailureDegrades(t *testing.T) {
	crateResp := crateResponse{}
	crateResp.Crate.Name = "lonely"
	crateResp.Crate.MaxVersion = "0.1.0"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/crates/lonely" {
			json.NewEncoder(w).Encode(crateResp)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClientWithBaseURL(cache.NewNullCache(), time.Hour, server.URL)

	info, err := c.FetchCrate(context.Background(), "lonely", true)
	if err != nil {
		t.Fatalf("FetchCrate failed: %v", err)
	}
	if len(info.Dependencies) != 0 {
		t.Errorf("expected no dependencies, got %v", info.Dependencies)
	}
}

func TestClient_FetchCrate_UsesCache(t *testing.T) {
	calls := 0
	crateResp := crateResponse{}
	crateResp.Crate.Name = "serde"
	crateResp.Crate.MaxVersion = "1.0.0"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/crates/serde" {
			calls++
			json.NewEncoder(w).Encode(crateResp)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	c := NewClientWithBaseURL(backend, time.Hour, server.URL)

	for range 2 {
		if _, err := c.FetchCrate(context.Background(), "serde", false); err != nil {
			t.Fatalf("FetchCrate failed: %v", err)
		}
	}

	if calls != 1 {
		t.Errorf("registry hit %d times, want 1 (second call should be cached)", calls)
	}
}
