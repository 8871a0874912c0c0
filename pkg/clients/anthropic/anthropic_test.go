package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompleteSendsPersonaAndReturnsText(t *testing.T) {
	var got messageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "key" {
			t.Errorf("missing api key header")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"  1. Réduire les pertes  "}]}`))
	}))
	defer srv.Close()

	c := NewClient("key", WithBaseURL(srv.URL), WithModel("test-model"))
	text, err := c.Complete(context.Background(), CompletionRequest{System: "persona", Prompt: "data", Temperature: 0.7})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if text != "1. Réduire les pertes" {
		t.Fatalf("unexpected text %q", text)
	}
	if got.System != "persona" || got.Model != "test-model" || len(got.Messages) != 1 || got.Messages[0].Content != "data" {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestCompleteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	c := NewClient("key", WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), CompletionRequest{Prompt: "x"}); err == nil {
		t.Fatalf("expected api error")
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer empty.Close()

	c = NewClient("key", WithBaseURL(empty.URL))
	if _, err := c.Complete(context.Background(), CompletionRequest{Prompt: "x"}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
}
