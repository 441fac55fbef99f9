package main

import (
	"fmt"
	"log"
	"net/http"

	"jarvis/config"
	"jarvis/db"
	"jarvis/handlers"
	"jarvis/services"
	"jarvis/services/assistant"
	"jarvis/services/engine"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var repo db.TranscriptRepository
	if cfg.DatabaseURL != "" {
		pgRepo, err := db.NewPostgresTranscriptRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize transcript database: %v", err)
		}
		repo = pgRepo
	} else {
		repo = db.NewFileTranscriptRepository(cfg.MemoryFile)
	}
	defer repo.Close()

	eng, err := newEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize completion engine: %v", err)
	}

	transcriptService := services.NewTranscriptService(repo, cfg.MaxHistory)

	assistantService, err := assistant.NewService(eng, transcriptService, cfg.DefaultRole)
	if err != nil {
		log.Fatalf("Failed to initialize assistant: %v", err)
	}
	assistantHandler := handlers.NewAssistantHandler(assistantService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	assistantHandler.RegisterRoutes(router)

	addr := ":" + cfg.Port
	fmt.Printf("JARVIS server starting on port %s (provider: %s)\n", cfg.Port, cfg.Provider)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func newEngine(cfg *config.Config) (engine.Engine, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return engine.NewOpenAIEngine(cfg.OpenAIAPIKey, cfg.Model, cfg.MaxTokens, cfg.Temperature)
	case config.ProviderAnthropic:
		return engine.NewAnthropicEngine(cfg.AnthropicAPIKey, cfg.Model, cfg.MaxTokens, cfg.Temperature)
	default:
		return engine.NewGeminiEngine(cfg.GeminiAPIKey, cfg.Model, cfg.MaxTokens, cfg.Temperature)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
