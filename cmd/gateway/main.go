package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creastat/stream-gateway/pkg/collab"
	"github.com/creastat/stream-gateway/pkg/config"
	"github.com/creastat/stream-gateway/pkg/gateway"
	"github.com/creastat/stream-gateway/pkg/logger"
	"github.com/creastat/stream-gateway/pkg/ops"
	"github.com/creastat/stream-gateway/pkg/ratelimit"
	"github.com/creastat/stream-gateway/pkg/server"
	"github.com/creastat/stream-gateway/pkg/session"
	"github.com/creastat/stream-gateway/pkg/types"
	"github.com/creastat/stream-gateway/pkg/upstream"
	"github.com/creastat/stream-gateway/pkg/usage"
)

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.Default()
	if err := config.Load(&cfg, "STREAMGW", *configPath); err != nil {
		logger.New("info").Fatal("failed to load config", "error", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sources := []types.VendorSource{
		{Name: "primary", BaseURL: cfg.Vendors.Primary.BaseURL, Token: cfg.Vendors.Primary.Token},
		{Name: "alias", BaseURL: cfg.Vendors.Alias.BaseURL, Token: cfg.Vendors.Alias.Token},
		{Name: "tertiary", BaseURL: cfg.Vendors.Tertiary.BaseURL, Token: cfg.Vendors.Tertiary.Token},
	}
	upstreamClient := upstream.New(sources, log)

	limiter := ratelimit.NewLimiter(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)

	identity := collab.NewStaticIdentity(cfg.AuthTokens)

	var recorder usage.Recorder = usage.NopRecorder{}
	if cfg.Redis.Addr != "" {
		asynqRecorder := usage.NewAsynqRecorder(cfg.Redis.Addr, log)
		defer asynqRecorder.Close()
		recorder = asynqRecorder
		log.Info("usage recording enabled", "redis", cfg.Redis.Addr)
	}

	var translator collab.Translator = collab.NewLocalTranslator()
	if cfg.Gemini.APIKey != "" {
		gemini, err := collab.NewGeminiTranslator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal("failed to initialize Gemini translator", "error", err)
		}
		translator = gemini
		log.Info("Gemini translator enabled", "model", cfg.Gemini.Model)
	}

	var dispatcherOpts []ops.Option
	if cfg.SuggestionsFile != "" {
		candidates, err := ops.LoadCandidates(cfg.SuggestionsFile)
		if err != nil {
			log.Fatal("failed to load suggestions", "error", err)
		}
		dispatcherOpts = append(dispatcherOpts, ops.WithCandidates(candidates))
	}

	search := collab.NewLocalSearchService(nil)
	dispatcher := ops.NewDispatcher(search, translator, log, dispatcherOpts...)
	sessions := session.NewManager(dispatcher, log)

	gw := gateway.New(upstreamClient, limiter, identity, recorder, version, log)

	srv := server.New(cfg, gw, sessions, log)
	if err := srv.Start(ctx); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
