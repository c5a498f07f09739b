// Package discovery turns natural-language prompts ("find an icy moon with
// faint rings") into new celestial-body records via an LLM, appends them to the
// snapshot file, and lets the file watcher deliver them to the engine like any
// other edit.
package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client sends a prompt to an LLM and returns the reply text.
// Model is provider-specific (e.g. "gpt-4o-mini", "llama-3.3-70b-versatile").
type Client interface {
	Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error)
}

const (
	openAIBaseURL = "https://api.openai.com/v1/chat/completions"
	groqBaseURL   = "https://api.groq.com/openai/v1/chat/completions"
)

// ChatClient implements Client against an OpenAI-compatible Chat Completions
// endpoint. OpenAI and Groq share the wire format, so both are this type with
// different base URLs.
type ChatClient struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewOpenAI returns a Client that uses the OpenAI API with the given API key.
func NewOpenAI(apiKey string) *ChatClient {
	return &ChatClient{name: "openai", baseURL: openAIBaseURL, apiKey: apiKey, client: http.DefaultClient}
}

// NewGroq returns a Client that uses Groq's OpenAI-compatible API.
func NewGroq(apiKey string) *ChatClient {
	return &ChatClient{name: "groq", baseURL: groqBaseURL, apiKey: apiKey, client: http.DefaultClient}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Complete sends system and user messages and returns the assistant reply.
func (c *ChatClient) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%s: API key not set", c.name)
	}
	reqBody := chatRequest{
		Model: model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %s", c.name, resp.Status)
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", c.name)
	}
	return out.Choices[0].Message.Content, nil
}

// Fallback tries primary first; if it returns an error, tries secondary.
// Use when the preferred provider may be missing its key but the other is set.
type Fallback struct {
	Primary   Client
	Secondary Client
}

// Complete calls Primary.Complete; on any error, calls Secondary.Complete.
func (f *Fallback) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	s, err := f.Primary.Complete(ctx, model, systemPrompt, userMessage)
	if err != nil && f.Secondary != nil {
		return f.Secondary.Complete(ctx, model, systemPrompt, userMessage)
	}
	return s, err
}
