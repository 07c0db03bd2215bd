// Command wolfarena plays one unattended game of Werewolf between
// LLM-backed agents and narrates it to the console.
//
// All configuration comes from WOLFARENA_* environment variables; with none
// set the game runs fully offline against the scripted gateway:
//
//	WOLFARENA_PROVIDER           scripted | openai | anthropic | gemini (default scripted)
//	WOLFARENA_MODEL              provider model override
//	WOLFARENA_OPENAI_API_KEY     key for provider openai
//	WOLFARENA_OPENAI_BASE_URL    OpenAI-compatible endpoint override (Qwen, DeepSeek, local)
//	WOLFARENA_ANTHROPIC_API_KEY  key for provider anthropic
//	WOLFARENA_GEMINI_API_KEY     key for provider gemini (Gemini API backend)
//	WOLFARENA_GEMINI_PROJECT_ID  Vertex AI project (alternative to the key)
//	WOLFARENA_GEMINI_LOCATION    Vertex AI location
//	WOLFARENA_MAX_ROUNDS         round cap (default 30)
//	WOLFARENA_MAX_GATEWAY_CALLS  reasoning-call budget (default 200)
//	WOLFARENA_SEED               seed for the deal and the scripted gateway (0 = time seeded)
//	WOLFARENA_ARCHIVE_PATH       sqlite file the finished game is archived into
//	WOLFARENA_TRANSCRIPT_DIR     directory the markdown transcript is written into
//	WOLFARENA_LISTEN_ADDR        host:port for the WebSocket spectator hub (serves /watch)
//	WOLFARENA_LOG_LEVEL          debug | info | warn | error (default info)
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/caarlos0/env/v11"

	"github.com/hupe1980/wolfarena"
	"github.com/hupe1980/wolfarena/archive"
	archivesqlite "github.com/hupe1980/wolfarena/archive/sqlite"
	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/engine"
	"github.com/hupe1980/wolfarena/gateway"
	anthropicgw "github.com/hupe1980/wolfarena/gateway/anthropic"
	geminigw "github.com/hupe1980/wolfarena/gateway/gemini"
	openaigw "github.com/hupe1980/wolfarena/gateway/openai"
	"github.com/hupe1980/wolfarena/logging"
	"github.com/hupe1980/wolfarena/sink"
	"github.com/hupe1980/wolfarena/sink/ws"
)

type config struct {
	Provider        string `env:"WOLFARENA_PROVIDER" envDefault:"scripted"`
	Model           string `env:"WOLFARENA_MODEL"`
	OpenAIAPIKey    string `env:"WOLFARENA_OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"WOLFARENA_OPENAI_BASE_URL"`
	AnthropicAPIKey string `env:"WOLFARENA_ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"WOLFARENA_GEMINI_API_KEY"`
	GeminiProjectID string `env:"WOLFARENA_GEMINI_PROJECT_ID"`
	GeminiLocation  string `env:"WOLFARENA_GEMINI_LOCATION" envDefault:"us-central1"`
	MaxRounds       int    `env:"WOLFARENA_MAX_ROUNDS" envDefault:"30"`
	MaxGatewayCalls int    `env:"WOLFARENA_MAX_GATEWAY_CALLS" envDefault:"200"`
	Seed            int64  `env:"WOLFARENA_SEED"`
	ArchivePath     string `env:"WOLFARENA_ARCHIVE_PATH"`
	TranscriptDir   string `env:"WOLFARENA_TRANSCRIPT_DIR"`
	ListenAddr      string `env:"WOLFARENA_LISTEN_ADDR"`
	LogLevel        string `env:"WOLFARENA_LOG_LEVEL" envDefault:"info"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)

	gw, err := newGateway(ctx, cfg)
	if err != nil {
		log.Fatalf("configure gateway: %v", err)
	}

	sinks := []core.EventSink{sink.NewConsole()}

	var transcript *sink.Transcript
	if cfg.TranscriptDir != "" {
		transcript = sink.NewTranscript(func(o *sink.TranscriptOptions) {
			o.OutputDir = cfg.TranscriptDir
			o.Logger = logger
		})
		sinks = append(sinks, transcript)
	}

	if cfg.ListenAddr != "" {
		hub := ws.NewHub(func(o *ws.HubOptions) {
			o.Logger = logger
		})
		defer hub.Close()

		mux := http.NewServeMux()
		mux.Handle("/watch", hub)
		srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server failed", "error", err.Error())
			}
		}()
		defer srv.Close()

		sinks = append(sinks, hub)
		logger.Info("spectator hub listening", "addr", cfg.ListenAddr, "path", "/watch")
	}

	var store archive.Store
	if cfg.ArchivePath != "" {
		sqlStore, err := archivesqlite.Open(cfg.ArchivePath)
		if err != nil {
			log.Fatalf("open archive: %v", err)
		}
		defer sqlStore.Close()
		store = sqlStore
	}

	var rnd *rand.Rand
	if cfg.Seed != 0 {
		rnd = rand.New(rand.NewSource(cfg.Seed))
	}

	arena := wolfarena.New(func(o *wolfarena.Options) {
		o.EngineConfig = engine.Config{
			MaxRounds:       cfg.MaxRounds,
			MaxGatewayCalls: cfg.MaxGatewayCalls,
		}
		o.Gateway = gw
		o.Sink = sink.NewFanout(sinks...)
		o.Archive = store
		o.Logger = logger
		o.Rand = rnd
	})

	_, err = arena.Run(ctx)
	switch {
	case errors.Is(err, core.ErrCallBudget):
		logger.Warn("gateway call budget exhausted, reported the standings at the cap")
	case errors.Is(err, context.Canceled):
		logger.Warn("game interrupted before completion")
		os.Exit(1)
	case err != nil:
		log.Fatalf("run game: %v", err)
	}

	if transcript != nil {
		logger.Info("transcript written", "path", transcript.Path())
	}
	if id := arena.GameID(); id != "" {
		logger.Info("game archived", "game_id", id, "path", cfg.ArchivePath)
	}
}

// newGateway selects the reasoning-service transport for the configured
// provider. Key checks happen here so a misconfigured run fails before any
// game state exists.
func newGateway(ctx context.Context, cfg config) (core.Gateway, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "scripted":
		var optFns []func(o *gateway.ScriptedOptions)
		if cfg.Seed != 0 {
			optFns = append(optFns, func(o *gateway.ScriptedOptions) {
				o.Rand = rand.New(rand.NewSource(cfg.Seed))
			})
		}
		return gateway.NewScripted(optFns...), nil

	case "openai":
		if cfg.OpenAIAPIKey == "" && cfg.OpenAIBaseURL == "" {
			return nil, fmt.Errorf("provider openai requires WOLFARENA_OPENAI_API_KEY")
		}
		return openaigw.NewGateway(func(o *openaigw.Options) {
			o.APIKey = cfg.OpenAIAPIKey
			o.BaseURL = cfg.OpenAIBaseURL
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil

	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("provider anthropic requires WOLFARENA_ANTHROPIC_API_KEY")
		}
		return anthropicgw.NewGateway(func(o *anthropicgw.Options) {
			o.APIKey = cfg.AnthropicAPIKey
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
		}), nil

	case "gemini":
		if cfg.GeminiAPIKey == "" && cfg.GeminiProjectID == "" {
			return nil, fmt.Errorf("provider gemini requires WOLFARENA_GEMINI_API_KEY or WOLFARENA_GEMINI_PROJECT_ID")
		}
		return geminigw.NewGateway(ctx, func(o *geminigw.Options) {
			o.APIKey = cfg.GeminiAPIKey
			o.ProjectID = cfg.GeminiProjectID
			o.Location = cfg.GeminiLocation
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		})

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func newLogger(cfg config) logging.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return logging.NewSlogAdapter(slog.New(handler))
}
