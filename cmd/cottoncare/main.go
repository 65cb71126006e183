package main

import (
	"context"
	"log"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"cottoncare/internal/advisor"
	"cottoncare/internal/config"
	"cottoncare/internal/detect"
	"cottoncare/internal/http/handlers"
	applog "cottoncare/internal/log"
	"cottoncare/internal/store"
)

func main() {
	cfg := config.Load()

	zl, err := applog.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("[log] %v", err)
	}
	defer func() { _ = zl.Sync() }()
	applog.SetLogger(zl)

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		zl.Fatal("store.open.fail", zap.Error(err), zap.String("driver", cfg.StoreDriver))
	}
	defer st.Close()

	var adv *advisor.Advisor
	if cfg.GenAIKey != "" {
		gen, err := advisor.NewGenAI(ctx, &genai.ClientConfig{APIKey: cfg.GenAIKey}, cfg.GenAIModel, cfg.GenAITimeout)
		if err != nil {
			zl.Error("advisor.init.fail", zap.Error(err))
		} else {
			adv = advisor.New(gen)
		}
	} else {
		zl.Warn("advisor.disabled", zap.String("reason", "GENAI_API_KEY not set"))
	}
	det := detect.New(cfg.PredictURL, cfg.PredictTimeout, cfg.MaxUploadBytes)

	deps := handlers.NewDeps(st, cfg, adv, det)
	app := handlers.NewApp(cfg, deps)

	zl.Info("server.start", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Fatal("server.listen.fail", zap.Error(err))
	}
}
