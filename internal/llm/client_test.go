package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientAvailability(t *testing.T) {
	tests := []struct {
		name       string
		client     *Client
		titles     bool
		embeddings bool
	}{
		{"nil client", nil, false, false},
		{"no base url", NewClient("", "", "gpt-4o-mini", "text-embedding-3-small"), false, false},
		{"chat only", NewClient("http://localhost:11434", "", "llama3", ""), true, false},
		{"embed only", NewClient("http://localhost:11434", "", "", "nomic-embed-text"), false, true},
		{"both", NewClient("http://localhost:11434", "", "llama3", "nomic-embed-text"), true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.client.TitlesAvailable(); got != tc.titles {
				t.Errorf("TitlesAvailable = %v, want %v", got, tc.titles)
			}
			if got := tc.client.EmbeddingsAvailable(); got != tc.embeddings {
				t.Errorf("EmbeddingsAvailable = %v, want %v", got, tc.embeddings)
			}
		})
	}
}

func TestEmbedAlignsByIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("path = %q", r.URL.Path)
		}
		// Out of order and missing index 1.
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 2, "embedding": []float64{0.3, 0.4}},
				{"index": 0, "embedding": []float64{0.1, 0.2}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "", "nomic-embed-text")
	vectors, err := client.Embed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vectors))
	}
	if vectors[0] == nil || vectors[0][0] != 0.1 {
		t.Errorf("vectors[0] = %v", vectors[0])
	}
	if vectors[1] != nil {
		t.Errorf("vectors[1] = %v, want nil for missing index", vectors[1])
	}
	if vectors[2] == nil || vectors[2][0] != 0.3 {
		t.Errorf("vectors[2] = %v", vectors[2])
	}
}

func TestEmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "", "nomic-embed-text")
	if _, err := client.Embed(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected error for failing backend")
	}
}

func TestGenerateTitle(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  \"Opening Remarks\"  "}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "gpt-4o-mini", "")
	title, err := client.GenerateTitle(context.Background(), "welcome to the show", "Ep 1", 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if title != "Opening Remarks" {
		t.Errorf("title = %q, want quotes and whitespace stripped", title)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header = %q", gotAuth)
	}
}

func TestGenerateTitleEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "gpt-4o-mini", "")
	if _, err := client.GenerateTitle(context.Background(), "excerpt", "Ep 1", 0); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
