package models

type EngineHealth struct {
	Status       string `json:"status"`
	Model        string `json:"model"`
	TestResponse string `json:"test_response,omitempty"`
	Error        string `json:"error,omitempty"`
}

type HealthStatus struct {
	Engine              EngineHealth      `json:"engine"`
	Memory              ConversationStats `json:"memory"`
	CurrentRole         Role              `json:"current_role"`
	ConversationStarted bool              `json:"conversation_started"`
}
