package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to an OpenAI-compatible API (OpenAI, Ollama, llama.cpp server)
// for embeddings and chapter-title generation.
type Client struct {
	baseURL    string
	apiKey     string
	chatModel  string
	embedModel string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, chatModel, embedModel string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		chatModel:  chatModel,
		embedModel: embedModel,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// TitlesAvailable reports whether title generation is configured; it can be
// queried without invoking the model.
func (c *Client) TitlesAvailable() bool {
	return c != nil && c.baseURL != "" && c.chatModel != ""
}

// EmbeddingsAvailable reports whether an embedding model is configured.
func (c *Client) EmbeddingsAvailable() bool {
	return c != nil && c.baseURL != "" && c.embedModel != ""
}

func (c *Client) post(ctx context.Context, path string, reqBody any, out any) error {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("llm error (status %d): %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}

// Embed returns one vector per input text, aligned by index. A text the
// backend returned nothing for gets a nil vector.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if !c.EmbeddingsAvailable() {
		return nil, fmt.Errorf("embedding model not configured")
	}

	var parsed struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	err := c.post(ctx, "/v1/embeddings", map[string]any{
		"model": c.embedModel,
		"input": texts,
	}, &parsed)
	if err != nil {
		return nil, err
	}

	vectors := make([][]float64, len(texts))
	for _, d := range parsed.Data {
		if d.Index >= 0 && d.Index < len(vectors) && len(d.Embedding) > 0 {
			vectors[d.Index] = d.Embedding
		}
	}
	return vectors, nil
}

// GenerateTitle produces a short chapter title from a transcript excerpt.
func (c *Client) GenerateTitle(ctx context.Context, excerpt, episodeTitle string, index int) (string, error) {
	if !c.TitlesAvailable() {
		return "", fmt.Errorf("title model not configured")
	}

	userPrompt := fmt.Sprintf(
		"Episode: %s\nChapter %d transcript excerpt:\n%s\n\nReply with the title only.",
		episodeTitle, index+1, excerpt)

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	err := c.post(ctx, "/v1/chat/completions", map[string]any{
		"model": c.chatModel,
		"messages": []map[string]string{
			{"role": "system", "content": "You title podcast chapters. Given a transcript excerpt, respond with a concise descriptive title of at most six words. No quotes, no numbering."},
			{"role": "user", "content": userPrompt},
		},
		"temperature": 0.3,
	}, &parsed)
	if err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty llm response")
	}

	title := strings.TrimSpace(parsed.Choices[0].Message.Content)
	title = strings.Trim(title, `"'`)
	if title == "" {
		return "", fmt.Errorf("empty title")
	}
	return title, nil
}
