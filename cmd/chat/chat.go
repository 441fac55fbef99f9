package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"jarvis/config"
	"jarvis/db"
	"jarvis/services"
	"jarvis/services/assistant"
	"jarvis/services/engine"
)

const (
	ColorReset  = "\033[0m"
	ColorBlue   = "\033[34m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

func colorize(color, text string) string {
	return color + text + ColorReset
}

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

	jarvis, err := assistant.NewService(eng, transcriptService, cfg.DefaultRole)
	if err != nil {
		log.Fatalf("Failed to initialize assistant: %v", err)
	}

	fmt.Println(colorize(ColorCyan, "JARVIS terminal chat. Type /help for commands, /quit to exit."))
	fmt.Printf("%s: %s\n\n", colorize(ColorYellow, "JARVIS"), jarvis.StartConversation())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(colorize(ColorBlue, "You") + ": ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(input, "/") {
			if !runCommand(jarvis, input) {
				break
			}
			continue
		}

		fmt.Print(colorize(ColorYellow, "JARVIS") + ": ")
		jarvis.RespondStream(input, func(chunk string) {
			fmt.Print(chunk)
		})
		fmt.Print("\n\n")
	}
}

// runCommand handles slash commands; returns false when the session ends.
func runCommand(jarvis *assistant.Service, input string) bool {
	fields := strings.Fields(input)
	command := fields[0]
	arg := strings.TrimSpace(strings.TrimPrefix(input, command))

	switch command {
	case "/quit", "/exit":
		return false

	case "/help":
		fmt.Println("Commands:")
		fmt.Println("  /roles           list assistant modes")
		fmt.Println("  /role <name>     switch mode (key or name fragment)")
		fmt.Println("  /history         show recent conversation")
		fmt.Println("  /stats           conversation statistics")
		fmt.Println("  /clear           clear conversation history")
		fmt.Println("  /export [file]   export conversation to a text file")
		fmt.Println("  /health          check engine connectivity")
		fmt.Println("  /quit            exit")

	case "/roles":
		current := jarvis.CurrentRole()
		for _, key := range assistant.RoleKeys() {
			role, _ := assistant.RoleByKey(key)
			marker := " "
			if key == current.Key {
				marker = "*"
			}
			fmt.Printf(" %s %-8s %s\n", marker, key, role.Description)
		}

	case "/role":
		key, ok := assistant.MatchRole(arg)
		if !ok {
			fmt.Printf("Unknown role %q. Try /roles.\n", arg)
			break
		}
		if err := jarvis.ChangeRole(key); err != nil {
			fmt.Printf("Error changing role: %v\n", err)
			break
		}
		role := jarvis.CurrentRole()
		fmt.Printf("Role changed to: %s - %s\n", role.Name, role.Description)
		fmt.Printf("%s: %s\n", colorize(ColorYellow, "JARVIS"), jarvis.StartConversation())

	case "/history":
		fmt.Println(jarvis.FormattedHistory(20))

	case "/stats":
		stats := jarvis.Statistics()
		fmt.Printf("Total: %d, you: %d, JARVIS: %d\n",
			stats.TotalMessages, stats.UserMessages, stats.AssistantMessages)

	case "/clear":
		fmt.Println(jarvis.ClearHistory())

	case "/export":
		path, err := jarvis.Export(arg)
		if err != nil {
			fmt.Printf("Failed to export conversation: %v\n", err)
			break
		}
		fmt.Printf("Conversation exported to: %s\n", path)

	case "/health":
		health := jarvis.HealthCheck()
		fmt.Printf("Engine: %s (%s)\n", health.Engine.Status, health.Engine.Model)
		if health.Engine.Error != "" {
			fmt.Printf("Error: %s\n", health.Engine.Error)
		}

	default:
		fmt.Printf("Unknown command %s. Try /help.\n", command)
	}

	fmt.Println()
	return true
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
