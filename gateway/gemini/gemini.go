// Package gemini provides a core.Gateway backed by the Google Gemini API,
// reachable either directly with an API key or through Vertex AI.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/hupe1980/wolfarena/core"
)

// Options configures the Gemini gateway. Setting ProjectID selects the
// Vertex AI backend; otherwise the Gemini API backend is used with APIKey
// (or the GEMINI_API_KEY environment variable).
type Options struct {
	// Model is the Gemini model identifier.
	Model string

	// Temperature controls sampling randomness.
	Temperature float32

	// MaxOutputTokens bounds the reply length.
	MaxOutputTokens int32

	// APIKey authenticates against the Gemini API backend.
	APIKey string

	// ProjectID and Location select the Vertex AI backend.
	ProjectID string
	Location  string
}

// Gateway wraps the Gemini generate-content API behind core.Gateway.
type Gateway struct {
	client *genai.Client
	opts   Options
}

// Compile-time check that Gateway satisfies core.Gateway.
var _ core.Gateway = (*Gateway)(nil)

// NewGateway creates a Gemini gateway, customized by optFns. The context
// is used for client construction only.
func NewGateway(ctx context.Context, optFns ...func(o *Options)) (*Gateway, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := &genai.ClientConfig{}
	if opts.ProjectID != "" {
		cfg.Project = opts.ProjectID
		cfg.Location = opts.Location
		cfg.Backend = genai.BackendVertexAI
	} else {
		cfg.APIKey = opts.APIKey
		cfg.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gateway{client: client, opts: opts}, nil
}

// NewGatewayFromClient creates a Gemini gateway from an existing client.
func NewGatewayFromClient(client *genai.Client, optFns ...func(o *Options)) *Gateway {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Gateway{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:           "gemini-2.0-flash",
		Temperature:     0.7,
		MaxOutputTokens: 4096,
	}
}

// Name identifies the provider in logs and transcripts.
func (g *Gateway) Name() string { return "gemini" }

// Respond performs one blocking completion call.
func (g *Gateway) Respond(ctx context.Context, req core.GatewayRequest) (core.GatewayResponse, error) {
	temp := g.opts.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: g.opts.MaxOutputTokens,
		SystemInstruction: &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: req.SystemContext}},
		},
	}
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: req.Situation}},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.opts.Model, contents, cfg)
	if err != nil {
		return core.GatewayResponse{}, fmt.Errorf("gemini api error: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return core.GatewayResponse{}, fmt.Errorf("gemini: empty response")
	}

	return core.GatewayResponse{Text: text}, nil
}

// extractText returns the first non-empty text part across candidates.
func extractText(res *genai.GenerateContentResponse) string {
	if res == nil {
		return ""
	}
	for _, c := range res.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}
