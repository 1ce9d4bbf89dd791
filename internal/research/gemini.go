package research

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiCompleter implements Completer against Google's Gemini API.
type GeminiCompleter struct {
	client *genai.Client
}

// NewGeminiCompleter creates a Gemini-backed completer. It uses the
// GEMINI_API_KEY environment variable for authentication.
func NewGeminiCompleter(ctx context.Context) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiCompleter{client: client}, nil
}

// Complete executes one completion call, attaching any inline images before
// the text prompt.
func (g *GeminiCompleter) Complete(ctx context.Context, req Request) (*Completion, error) {
	var parts []*genai.Part
	for _, img := range req.Images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIMEType},
		})
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: req.MaxTokens,
		Temperature:     genai.Ptr(req.Temperature),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	completion := &Completion{Text: result.Text()}
	if result.UsageMetadata != nil {
		completion.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		completion.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
	}

	return completion, nil
}
