package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"jarvis/services/assistant"

	"github.com/gorilla/mux"
)

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Role     string `json:"role"`
}

type RoleRequest struct {
	Role string `json:"role"`
}

type ExportRequest struct {
	Filename string `json:"filename,omitempty"`
}

type AssistantHandler struct {
	service *assistant.Service
}

func NewAssistantHandler(service *assistant.Service) *AssistantHandler {
	return &AssistantHandler{service: service}
}

func (h *AssistantHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/chat", h.Chat).Methods("POST")
	router.HandleFunc("/chat/stream", h.ChatStream).Methods("POST")
	router.HandleFunc("/roles", h.ListRoles).Methods("GET")
	router.HandleFunc("/role", h.CurrentRole).Methods("GET")
	router.HandleFunc("/role", h.ChangeRole).Methods("PUT")
	router.HandleFunc("/greeting", h.Greeting).Methods("GET")
	router.HandleFunc("/history", h.History).Methods("GET")
	router.HandleFunc("/history/clear", h.ClearHistory).Methods("POST")
	router.HandleFunc("/export", h.Export).Methods("POST")
	router.HandleFunc("/stats", h.Statistics).Methods("GET")
	router.HandleFunc("/health", h.Health).Methods("GET")
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received chat request")

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode chat request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	response := h.service.Respond(req.Message)

	h.writeJSONResponse(w, http.StatusOK, ChatResponse{
		Response: response,
		Role:     h.service.CurrentRole().Key,
	})
}

func (h *AssistantHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received streaming chat request")

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode streaming chat request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	h.service.RespondStream(req.Message, func(chunk string) {
		w.Write([]byte(chunk))
		flusher.Flush()
	})
}

func (h *AssistantHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"roles":   assistant.AvailableRoles(),
		"current": h.service.CurrentRole().Key,
	})
}

func (h *AssistantHandler) CurrentRole(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.service.CurrentRole())
}

func (h *AssistantHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode role request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	key := req.Role
	if _, err := assistant.RoleByKey(key); err != nil {
		// Loose input like a display-name fragment is resolved here, at
		// the presentation edge; the core only accepts exact keys.
		matched, ok := assistant.MatchRole(req.Role)
		if !ok {
			h.writeErrorResponse(w, http.StatusBadRequest, "Unknown role: "+req.Role)
			return
		}
		key = matched
	}

	if err := h.service.ChangeRole(key); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	role := h.service.CurrentRole()
	h.writeJSONResponse(w, http.StatusOK, map[string]string{
		"message": "Role changed to: " + role.Name + " - " + role.Description,
		"role":    role.Key,
	})
}

func (h *AssistantHandler) Greeting(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]string{
		"greeting": h.service.StartConversation(),
	})
}

func (h *AssistantHandler) History(w http.ResponseWriter, r *http.Request) {
	lastN := 50
	if raw := r.URL.Query().Get("last_n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "Invalid last_n parameter")
			return
		}
		lastN = parsed
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"messages": h.service.History(lastN),
	})
}

func (h *AssistantHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]string{
		"message": h.service.ClearHistory(),
	})
}

func (h *AssistantHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("[ERROR] Failed to decode export request JSON: %v", err)
			h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}
	}

	path, err := h.service.Export(req.Filename)
	if err != nil {
		log.Printf("[ERROR] Conversation export failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]string{
		"message": "Conversation exported to: " + path,
		"file":    path,
	})
}

func (h *AssistantHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.service.Statistics())
}

func (h *AssistantHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.service.HealthCheck()
	status := http.StatusOK
	if health.Engine.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	h.writeJSONResponse(w, status, health)
}

func (h *AssistantHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *AssistantHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
