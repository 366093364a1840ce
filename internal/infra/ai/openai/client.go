package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

const maxTokens = 1024

const defaultEmbedModel = string(openai.SmallEmbedding3)

// Client adapts the OpenAI API to the TextScorer and Embedder ports.
type Client struct {
	*openai.Client
	Model      string
	EmbedModel string
}

func NewClient(apiKey, model, embedModel string) *Client {
	if embedModel == "" {
		embedModel = defaultEmbedModel
	}
	return &Client{Client: openai.NewClient(apiKey), Model: model, EmbedModel: embedModel}
}

// Evaluate runs one rubric scoring call: instruction as system message,
// pitch text as user message, JSON object response enforced.
func (c *Client) Evaluate(ctx context.Context, instruction, text string) (domain.RubricResult, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return domain.RubricResult{}, mapErr("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return domain.RubricResult{}, fmt.Errorf("chat completion returned no choices")
	}

	var out domain.RubricResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return domain.RubricResult{}, fmt.Errorf("failed to parse scoring response: %w", err)
	}
	return out, nil
}

// Embed returns the embedding vector for one text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	vs, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vs[0], nil
}

// EmbedBatch returns one vector per input text, in input order.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	resp, err := c.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(c.EmbedModel),
	})
	if err != nil {
		return nil, mapErr("create embeddings", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response size mismatch: got %d, want %d", len(resp.Data), len(texts))
	}

	out := make([][]float64, len(resp.Data))
	for i, d := range resp.Data {
		v := make([]float64, len(d.Embedding))
		for j, f := range d.Embedding {
			v[j] = float64(f)
		}
		out[i] = v
	}
	return out, nil
}

func mapErr(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		return fmt.Errorf("%s: %w", op, domain.ErrQuotaExceeded)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
