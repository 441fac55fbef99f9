package engine

import (
	"context"
	"fmt"
	"strings"
)

// SafetyRefusal is returned as a normal completion when the provider
// blocks a request on safety grounds; a filtered prompt is not an error.
const SafetyRefusal = "I cannot provide a response to that request due to safety guidelines."

const emptyCompletion = "I apologize, but I couldn't generate a response. Please try again."

// Engine is the completion provider boundary. GenerateStream forwards
// fragments through onChunk in generation order and returns only after
// the stream is exhausted or fails.
type Engine interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStream(ctx context.Context, prompt string, onChunk func(chunk string)) error
	ModelName() string
}

// describeError turns raw provider failures into user-comprehensible
// generation errors.
func describeError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "401"):
		return fmt.Errorf("invalid API key, please check your configuration")
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "429"):
		return fmt.Errorf("API quota exceeded, please try again later")
	default:
		return fmt.Errorf("generation failed: %w", err)
	}
}

func isSafetyBlock(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "safety")
}
