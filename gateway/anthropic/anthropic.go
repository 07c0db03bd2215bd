// Package anthropic provides a core.Gateway backed by the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/wolfarena/core"
)

// Options configures the Anthropic gateway (model id, temperature, max
// tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	// Model is the Claude model identifier.
	Model anthropic.Model

	// Temperature controls sampling randomness.
	Temperature float64

	// MaxTokens bounds the reply length.
	MaxTokens int64

	// APIKey overrides the ANTHROPIC_API_KEY environment variable.
	APIKey string
}

// Gateway wraps the Anthropic Messages API behind core.Gateway.
type Gateway struct {
	client *anthropic.Client
	opts   Options
}

// Compile-time check that Gateway satisfies core.Gateway.
var _ core.Gateway = (*Gateway)(nil)

// NewGateway creates an Anthropic gateway using the official client,
// customized by optFns.
func NewGateway(optFns ...func(o *Options)) *Gateway {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)
	return &Gateway{client: &client, opts: opts}
}

// NewGatewayFromClient creates an Anthropic gateway from an existing
// client.
func NewGatewayFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Gateway {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Gateway{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}

// Name identifies the provider in logs and transcripts.
func (g *Gateway) Name() string { return "anthropic" }

// Respond performs one blocking completion call.
func (g *Gateway) Respond(ctx context.Context, req core.GatewayRequest) (core.GatewayResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       g.opts.Model,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: anthropic.Float(g.opts.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Situation)),
		},
	}
	if req.SystemContext != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemContext}}
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return core.GatewayResponse{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	return core.GatewayResponse{Text: sb.String()}, nil
}
