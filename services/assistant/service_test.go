package assistant

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"jarvis/models"
)

// stubEngine scripts the completion boundary.
type stubEngine struct {
	response  string
	err       error
	chunks    []string
	streamErr error
	calls     int
}

func (e *stubEngine) Generate(ctx context.Context, prompt string) (string, error) {
	e.calls++
	if e.err != nil {
		return "", e.err
	}
	return e.response, nil
}

func (e *stubEngine) GenerateStream(ctx context.Context, prompt string, onChunk func(chunk string)) error {
	e.calls++
	for _, chunk := range e.chunks {
		onChunk(chunk)
	}
	return e.streamErr
}

func (e *stubEngine) ModelName() string { return "stub-model" }

func newServiceForTest(t *testing.T, eng *stubEngine) *Service {
	t.Helper()
	service, err := NewService(eng, newTestTranscript(t), "general")
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return service
}

func TestNewServiceRejectsUnknownDefaultRole(t *testing.T) {
	_, err := NewService(&stubEngine{}, newTestTranscript(t), "wizard")
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("NewService error = %v, expected ErrUnknownRole", err)
	}
}

func TestRespondEmptyInput(t *testing.T) {
	eng := &stubEngine{response: "should not be used"}
	service := newServiceForTest(t, eng)
	before := service.Statistics()

	for _, input := range []string{"", "   ", "\n\t"} {
		got := service.Respond(input)
		if got != noInputMessage {
			t.Errorf("Respond(%q) = %q, expected the no-input message", input, got)
		}
	}

	if eng.calls != 0 {
		t.Errorf("engine was called %d times for empty input", eng.calls)
	}
	if after := service.Statistics(); after != before {
		t.Errorf("statistics changed on empty input: before %+v, after %+v", before, after)
	}
}

func TestRespondPersistsExchange(t *testing.T) {
	eng := &stubEngine{response: "Hello! How can I help?"}
	service := newServiceForTest(t, eng)

	got := service.Respond("hi")
	if got != "Hello! How can I help?" {
		t.Errorf("Respond = %q", got)
	}

	history := service.History(10)
	if len(history) != 2 {
		t.Fatalf("transcript has %d messages after a turn, expected 2", len(history))
	}
	if history[0].Role != models.RoleUser || history[0].Message != "hi" {
		t.Errorf("first persisted message = %+v", history[0])
	}
	if history[1].Role != models.RoleAssistant || history[1].Message != "Hello! How can I help?" {
		t.Errorf("second persisted message = %+v", history[1])
	}
}

func TestRespondGenerationFailure(t *testing.T) {
	eng := &stubEngine{err: fmt.Errorf("API quota exceeded, please try again later")}
	service := newServiceForTest(t, eng)

	got := service.Respond("hi")
	if !strings.Contains(got, "I apologize, but I encountered an issue") {
		t.Errorf("Respond on failure = %q, expected the apology template", got)
	}
	if !strings.Contains(got, "API quota exceeded") {
		t.Errorf("apology does not embed the failure detail: %q", got)
	}

	if got := service.Statistics().TotalMessages; got != 0 {
		t.Errorf("failed exchange was persisted: %d messages", got)
	}
}

func TestRespondStreamForwardsChunksInOrder(t *testing.T) {
	eng := &stubEngine{chunks: []string{"Hel", "lo ", "there"}}
	service := newServiceForTest(t, eng)

	var received []string
	service.RespondStream("hi", func(chunk string) {
		received = append(received, chunk)
	})

	if !reflect.DeepEqual(received, eng.chunks) {
		t.Errorf("received chunks %v, expected %v", received, eng.chunks)
	}

	history := service.History(10)
	if len(history) != 2 {
		t.Fatalf("transcript has %d messages after stream, expected 2", len(history))
	}
	if history[1].Message != "Hello there" {
		t.Errorf("persisted assistant turn = %q, expected concatenation of chunks", history[1].Message)
	}
}

func TestRespondStreamFailure(t *testing.T) {
	eng := &stubEngine{
		chunks:    []string{"partial "},
		streamErr: fmt.Errorf("generation failed: connection reset"),
	}
	service := newServiceForTest(t, eng)

	var received []string
	service.RespondStream("hi", func(chunk string) {
		received = append(received, chunk)
	})

	last := received[len(received)-1]
	if !strings.Contains(last, "I apologize, but I encountered an issue") {
		t.Errorf("final fragment = %q, expected the apology", last)
	}

	if got := service.Statistics().TotalMessages; got != 0 {
		t.Errorf("partial exchange was persisted: %d messages", got)
	}
}

func TestRespondStreamEmptyInput(t *testing.T) {
	eng := &stubEngine{chunks: []string{"unused"}}
	service := newServiceForTest(t, eng)

	var received []string
	service.RespondStream("  ", func(chunk string) {
		received = append(received, chunk)
	})

	if len(received) != 1 || received[0] != noInputMessage {
		t.Errorf("received %v, expected only the no-input message", received)
	}
	if eng.calls != 0 {
		t.Error("engine was called for empty streaming input")
	}
}

func TestChangeRole(t *testing.T) {
	service := newServiceForTest(t, &stubEngine{})

	if err := service.ChangeRole("coder"); err != nil {
		t.Fatalf("ChangeRole(coder) returned error: %v", err)
	}
	if got := service.CurrentRole().Key; got != "coder" {
		t.Errorf("current role = %q, expected coder", got)
	}

	err := service.ChangeRole("wizard")
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("ChangeRole(wizard) error = %v, expected ErrUnknownRole", err)
	}
	if got := service.CurrentRole().Key; got != "coder" {
		t.Errorf("role changed despite rejection: %q", got)
	}
}

func TestStartConversation(t *testing.T) {
	service := newServiceForTest(t, &stubEngine{})
	service.ChangeRole("coder")

	greeting := service.StartConversation()
	if !strings.Contains(greeting, "JARVIS (Coding Assistant)") {
		t.Errorf("greeting = %q", greeting)
	}
	if greeting != service.StartConversation() {
		t.Error("greeting is not deterministic")
	}
	if got := service.Statistics().TotalMessages; got != 0 {
		t.Errorf("greeting was persisted: %d messages", got)
	}
}

func TestClearHistory(t *testing.T) {
	eng := &stubEngine{response: "ok"}
	service := newServiceForTest(t, eng)
	service.Respond("hi")

	msg := service.ClearHistory()
	if !strings.Contains(msg, "cleared") {
		t.Errorf("ClearHistory message = %q", msg)
	}
	if got := service.Statistics().TotalMessages; got != 0 {
		t.Errorf("transcript has %d messages after clear", got)
	}
}

func TestHealthCheck(t *testing.T) {
	eng := &stubEngine{response: strings.Repeat("x", 80)}
	service := newServiceForTest(t, eng)

	health := service.HealthCheck()
	if health.Engine.Status != "healthy" {
		t.Errorf("engine status = %q", health.Engine.Status)
	}
	if health.Engine.Model != "stub-model" {
		t.Errorf("engine model = %q", health.Engine.Model)
	}
	if len(health.Engine.TestResponse) != 53 {
		t.Errorf("test response not truncated: %d chars", len(health.Engine.TestResponse))
	}
	if got := service.Statistics().TotalMessages; got != 0 {
		t.Errorf("health check mutated the transcript: %d messages", got)
	}

	eng.err = fmt.Errorf("invalid API key, please check your configuration")
	health = service.HealthCheck()
	if health.Engine.Status != "unhealthy" || health.Engine.Error == "" {
		t.Errorf("unhealthy engine reported as %+v", health.Engine)
	}
}
