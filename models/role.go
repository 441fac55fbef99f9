package models

// Role is a named persona configuration. The catalog is static and
// seeded at process start; instances are never mutated.
type Role struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	SystemPrompt     string `json:"-"`
	GreetingTemplate string `json:"-"`
}
