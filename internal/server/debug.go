package server

import (
	"encoding/json"
	"net/http"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сессий
type DebugHandler struct {
	srv *Server
}

func NewDebugHandler(s *Server) *DebugHandler {
	return &DebugHandler{srv: s}
}

// SessionSummary - строка списка /debug/sessions
type SessionSummary struct {
	ID          string `json:"id"`
	Active      bool   `json:"active"` // false - подключён, но NEW ещё не было
	Phase       string `json:"phase,omitempty"`
	Turn        int    `json:"turn"`
	Seed        int64  `json:"seed"`
	Level       int    `json:"level"`
	EntityCount int    `json:"entity_count"`
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
	mux.HandleFunc("/debug/queue", h.handleTurnQueue)
}

// /debug/sessions - список подключений и их партий
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	summary := make([]SessionSummary, 0)
	for _, c := range h.srv.listClients() {
		s, _ := c.status()
		summary = append(summary, s)
	}
	writeJSON(w, summary)
}

// /debug/queue?session=<id> - порядок ходов монстров
func (h *DebugHandler) handleTurnQueue(w http.ResponseWriter, r *http.Request) {
	c := h.srv.client(r.URL.Query().Get("session"))
	if c == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	dump, ok := c.turnQueue()
	if !ok {
		http.Error(w, "Session not started", http.StatusNotFound)
		return
	}
	writeJSON(w, dump)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустая очередь), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
