package engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const DefaultGeminiModel = "gemini-1.5-flash"

type GeminiEngine struct {
	llm         *googleai.GoogleAI
	model       string
	maxTokens   int
	temperature float64
}

func NewGeminiEngine(apiKey, model string, maxTokens int, temperature float64) (*GeminiEngine, error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	llm, err := googleai.New(context.Background(),
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEngine{
		llm:         llm,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

func (e *GeminiEngine) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, e.llm, prompt,
		llms.WithMaxTokens(e.maxTokens),
		llms.WithTemperature(e.temperature),
	)
	if err != nil {
		if isSafetyBlock(err) {
			log.Printf("[WARN] Gemini blocked prompt on safety grounds")
			return SafetyRefusal, nil
		}
		log.Printf("[ERROR] Gemini generation failed: %v", err)
		return "", describeError(err)
	}

	if strings.TrimSpace(completion) == "" {
		return emptyCompletion, nil
	}
	return completion, nil
}

func (e *GeminiEngine) GenerateStream(ctx context.Context, prompt string, onChunk func(chunk string)) error {
	_, err := llms.GenerateFromSinglePrompt(ctx, e.llm, prompt,
		llms.WithMaxTokens(e.maxTokens),
		llms.WithTemperature(e.temperature),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			onChunk(string(chunk))
			return nil
		}),
	)
	if err != nil {
		log.Printf("[ERROR] Gemini streaming generation failed: %v", err)
		return describeError(err)
	}
	return nil
}

func (e *GeminiEngine) ModelName() string {
	return e.model
}
