package engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const DefaultOpenAIModel = "gpt-4o-mini"

type OpenAIEngine struct {
	llm         *openai.LLM
	model       string
	maxTokens   int
	temperature float64
}

func NewOpenAIEngine(apiKey, model string, maxTokens int, temperature float64) (*OpenAIEngine, error) {
	if model == "" {
		model = DefaultOpenAIModel
	}

	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIEngine{
		llm:         llm,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

func (e *OpenAIEngine) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, e.llm, prompt,
		llms.WithMaxTokens(e.maxTokens),
		llms.WithTemperature(e.temperature),
	)
	if err != nil {
		if isSafetyBlock(err) {
			return SafetyRefusal, nil
		}
		log.Printf("[ERROR] OpenAI generation failed: %v", err)
		return "", describeError(err)
	}

	if strings.TrimSpace(completion) == "" {
		return emptyCompletion, nil
	}
	return completion, nil
}

func (e *OpenAIEngine) GenerateStream(ctx context.Context, prompt string, onChunk func(chunk string)) error {
	_, err := llms.GenerateFromSinglePrompt(ctx, e.llm, prompt,
		llms.WithMaxTokens(e.maxTokens),
		llms.WithTemperature(e.temperature),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			onChunk(string(chunk))
			return nil
		}),
	)
	if err != nil {
		log.Printf("[ERROR] OpenAI streaming generation failed: %v", err)
		return describeError(err)
	}
	return nil
}

func (e *OpenAIEngine) ModelName() string {
	return e.model
}
