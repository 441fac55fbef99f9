package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jarvis/models"
	"jarvis/services"
	"jarvis/services/engine"
)

const noInputMessage = "I didn't receive any input. Please tell me how I can help you."

// Service coordinates the role catalog, prompt assembly, the completion
// engine and the transcript store. One turn is processed at a time.
type Service struct {
	engine     engine.Engine
	transcript *services.TranscriptService
	roleKey    string
	started    bool
}

func NewService(eng engine.Engine, transcript *services.TranscriptService, defaultRole string) (*Service, error) {
	if _, err := RoleByKey(defaultRole); err != nil {
		return nil, fmt.Errorf("invalid default role %q: %w", defaultRole, err)
	}

	return &Service{
		engine:     eng,
		transcript: transcript,
		roleKey:    defaultRole,
	}, nil
}

// StartConversation returns the active role's greeting. The greeting is
// system-generated and is not written to the transcript.
func (s *Service) StartConversation() string {
	s.started = true
	role, _ := RoleByKey(s.roleKey)
	return Greeting(role)
}

// Respond runs one turn: assemble the prompt, call the engine, persist
// both halves of the exchange. A failed exchange is never persisted.
func (s *Service) Respond(userInput string) string {
	if strings.TrimSpace(userInput) == "" {
		return noInputMessage
	}

	role, _ := RoleByKey(s.roleKey)
	prompt := BuildPrompt(role, userInput, s.transcript, DefaultContextDepth)

	log.Printf("[INFO] Generating response as %s", role.Name)
	response, err := s.engine.Generate(context.Background(), prompt)
	if err != nil {
		log.Printf("[ERROR] Turn failed, exchange not persisted: %v", err)
		return FormatErrorResponse(err.Error())
	}

	s.transcript.Add(models.RoleUser, userInput)
	s.transcript.Add(models.RoleAssistant, response)
	return response
}

// RespondStream runs one turn with incremental output, forwarding each
// fragment to onChunk in arrival order. The exchange is persisted only
// after the stream completes cleanly; on failure the apology is emitted
// as one final fragment and nothing is persisted.
func (s *Service) RespondStream(userInput string, onChunk func(chunk string)) {
	if strings.TrimSpace(userInput) == "" {
		onChunk(noInputMessage)
		return
	}

	role, _ := RoleByKey(s.roleKey)
	prompt := BuildPrompt(role, userInput, s.transcript, DefaultContextDepth)

	log.Printf("[INFO] Generating streaming response as %s", role.Name)
	var full strings.Builder
	err := s.engine.GenerateStream(context.Background(), prompt, func(chunk string) {
		full.WriteString(chunk)
		onChunk(chunk)
	})
	if err != nil {
		log.Printf("[ERROR] Streaming turn failed, exchange not persisted: %v", err)
		onChunk(FormatErrorResponse(err.Error()))
		return
	}

	s.transcript.Add(models.RoleUser, userInput)
	s.transcript.Add(models.RoleAssistant, full.String())
}

// ChangeRole switches the active role. Unknown keys leave the previous
// role in place.
func (s *Service) ChangeRole(key string) error {
	if _, err := RoleByKey(key); err != nil {
		log.Printf("[ERROR] Rejected role change to unknown role %q", key)
		return fmt.Errorf("%w: %s", ErrUnknownRole, key)
	}

	s.roleKey = key
	log.Printf("[INFO] Role changed to %s", key)
	return nil
}

func (s *Service) CurrentRole() models.Role {
	role, _ := RoleByKey(s.roleKey)
	return role
}

func (s *Service) ClearHistory() string {
	s.transcript.Clear()
	return "Conversation history cleared. Starting fresh!"
}

func (s *Service) Statistics() models.ConversationStats {
	return s.transcript.Statistics()
}

func (s *Service) Export(filename string) (string, error) {
	return s.transcript.Export(filename)
}

func (s *Service) History(lastN int) []models.Message {
	return s.transcript.History(lastN)
}

func (s *Service) FormattedHistory(lastN int) string {
	return s.transcript.FormattedHistory(lastN)
}

// HealthCheck probes the engine with a trivial prompt and reports
// component status without touching conversation state.
func (s *Service) HealthCheck() models.HealthStatus {
	health := models.EngineHealth{
		Status: "healthy",
		Model:  s.engine.ModelName(),
	}

	testResponse, err := s.engine.Generate(context.Background(), "Hello")
	if err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
	} else {
		if len(testResponse) > 50 {
			testResponse = testResponse[:50] + "..."
		}
		health.TestResponse = testResponse
	}

	return models.HealthStatus{
		Engine:              health,
		Memory:              s.transcript.Statistics(),
		CurrentRole:         s.CurrentRole(),
		ConversationStarted: s.started,
	}
}
