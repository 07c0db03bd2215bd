// Package openai provides a core.Gateway backed by the OpenAI Chat
// Completions API. It also serves OpenAI-compatible endpoints (Qwen,
// DeepSeek, local inference servers) through the BaseURL option.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hupe1980/wolfarena/core"
)

// Options configures the OpenAI gateway. Fields mirror a minimal subset of
// Chat Completion parameters; extend via functional options without
// breaking callers.
type Options struct {
	// Model is the chat model identifier.
	Model string

	// Temperature controls sampling randomness.
	Temperature float64

	// MaxCompletionTokens bounds the reply length.
	MaxCompletionTokens int64

	// APIKey overrides the OPENAI_API_KEY environment variable.
	APIKey string

	// BaseURL points the client at an OpenAI-compatible endpoint. Empty
	// uses the official API.
	BaseURL string
}

// Gateway wraps the OpenAI Chat Completions API behind core.Gateway.
type Gateway struct {
	client *openai.Client
	opts   Options
}

// Compile-time check that Gateway satisfies core.Gateway.
var _ core.Gateway = (*Gateway)(nil)

// NewGateway creates an OpenAI gateway using the official client,
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
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := openai.NewClient(clientOpts...)
	return &Gateway{client: &client, opts: applyDefaults(opts)}
}

// NewGatewayFromClient creates an OpenAI gateway from an existing client.
func NewGatewayFromClient(client *openai.Client, optFns ...func(o *Options)) *Gateway {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Gateway{client: client, opts: applyDefaults(opts)}
}

func defaultOptions() Options {
	return Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
}

func applyDefaults(opts Options) Options {
	if opts.Model == "" {
		opts.Model = openai.ChatModelGPT4oMini
	}
	return opts
}

// Name identifies the provider in logs and transcripts.
func (g *Gateway) Name() string { return "openai" }

// Respond performs one blocking completion call.
func (g *Gateway) Respond(ctx context.Context, req core.GatewayRequest) (core.GatewayResponse, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.opts.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemContext),
			openai.UserMessage(req.Situation),
		},
		Temperature:         openai.Float(g.opts.Temperature),
		MaxCompletionTokens: openai.Int(g.opts.MaxCompletionTokens),
	})
	if err != nil {
		return core.GatewayResponse{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return core.GatewayResponse{}, fmt.Errorf("openai: no choices returned")
	}

	return core.GatewayResponse{Text: resp.Choices[0].Message.Content}, nil
}
