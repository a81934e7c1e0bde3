// cmd/server/main.go
package main

import (
	"log"
	"log/slog"

	"github.com/sozercan/datachat/internal/analyzer"
	"github.com/sozercan/datachat/internal/config"
	"github.com/sozercan/datachat/internal/dataset"
	"github.com/sozercan/datachat/internal/llm"
	"github.com/sozercan/datachat/internal/logging"
	"github.com/sozercan/datachat/internal/server"
)

func main() {
	logging.Preinit()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logging.Setup(cfg.Log.Level)

	llmProvider, err := llm.NewOpenAI(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	store := dataset.NewStore()
	analyzer := analyzer.New(store, llmProvider)

	srv := server.New(*cfg, store, analyzer)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "static_dir", cfg.Server.StaticDir)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
