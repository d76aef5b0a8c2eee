// Package llm wraps the Vertex AI Gemini API behind a plain text
// generation interface.
package llm

import (
	"context"
	"fmt"

	"cloud.google.com/go/vertexai/genai"

	"github.com/talentsift/talentsift/internal/models"
)

// VertexAIClient wraps a Vertex AI generative model.
type VertexAIClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewVertexAIClient creates a client for the given project, location,
// and model name.
func NewVertexAIClient(ctx context.Context, projectID, location, modelName string) (*VertexAIClient, error) {
	if projectID == "" {
		return nil, &models.ConfigurationError{Reason: "vertex ai project id not set"}
	}
	if location == "" {
		location = "us-central1"
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// Low temperature keeps scoring and skill inference consistent
	// across runs.
	model.SetTemperature(0.2)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)

	return &VertexAIClient{client: client, model: model}, nil
}

// GenerateContent sends a prompt to the model and returns the response text.
func (v *VertexAIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &models.ExternalServiceError{Service: "vertexai", Err: err}
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates returned")
	}

	var result string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			result += string(text)
		}
	}

	return result, nil
}

// Close closes the underlying client.
func (v *VertexAIClient) Close() error {
	return v.client.Close()
}
