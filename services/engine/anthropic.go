package engine

import (
	"context"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultAnthropicModel = string(anthropic.ModelClaude4Sonnet20250514)

type AnthropicEngine struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	temperature float64
}

func NewAnthropicEngine(apiKey, model string, maxTokens int, temperature float64) (*AnthropicEngine, error) {
	if model == "" {
		model = DefaultAnthropicModel
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AnthropicEngine{
		client:      &client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

func (e *AnthropicEngine) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(e.model),
		MaxTokens:   int64(e.maxTokens),
		Temperature: anthropic.Float(e.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		if isSafetyBlock(err) {
			return SafetyRefusal, nil
		}
		log.Printf("[ERROR] Anthropic generation failed: %v", err)
		return "", describeError(err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(textBlock.Text)
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return emptyCompletion, nil
	}
	return text.String(), nil
}

func (e *AnthropicEngine) GenerateStream(ctx context.Context, prompt string, onChunk func(chunk string)) error {
	stream := e.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(e.model),
		MaxTokens:   int64(e.maxTokens),
		Temperature: anthropic.Float(e.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	for stream.Next() {
		event := stream.Current()
		if deltaEvent, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
			if textDelta, ok := deltaEvent.Delta.AsAny().(anthropic.TextDelta); ok {
				onChunk(textDelta.Text)
			}
		}
	}

	if err := stream.Err(); err != nil {
		log.Printf("[ERROR] Anthropic streaming generation failed: %v", err)
		return describeError(err)
	}
	return nil
}

func (e *AnthropicEngine) ModelName() string {
	return e.model
}
