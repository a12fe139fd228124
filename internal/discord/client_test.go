package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLookupChannelName(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels/c1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bot secret" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","name":"general","type":0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	name, err := client.LookupChannelName(context.Background(), "c1")
	if err != nil {
		t.Fatalf("LookupChannelName returned error: %v", err)
	}
	if name != "general" {
		t.Fatalf("expected channel name, got %q", name)
	}
}

func TestLookupChannelName_RefusalIsEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Missing Access"}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	name, err := client.LookupChannelName(context.Background(), "c1")
	if err != nil {
		t.Fatalf("refusal must not be an error: %v", err)
	}
	if name != "" {
		t.Fatalf("refusal must yield no name, got %q", name)
	}
}

func TestLookupChannelName_WithoutToken(t *testing.T) {
	t.Parallel()

	client := NewClient("http://127.0.0.1:0", "", time.Second)
	name, err := client.LookupChannelName(context.Background(), "c1")
	if err != nil || name != "" {
		t.Fatalf("tokenless client must be a no-op, got %q, %v", name, err)
	}
}

func TestLookupChannelName_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	if _, err := client.LookupChannelName(context.Background(), "c1"); err == nil {
		t.Fatal("expected transport error from closed server")
	}
}
