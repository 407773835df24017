package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"finagent/internal/agent"
	"finagent/internal/ledger"
)

type chatRequest struct {
	Message string `json:"message"`
}

// financialDataResponse is the dashboard payload. Error is set only on
// degraded responses.
type financialDataResponse struct {
	agent.Overview
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, agent.Response{
			Message:   "No message provided",
			Timestamp: time.Now(),
		})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, agent.Response{
			Message:   "Message is required",
			Timestamp: time.Now(),
		})
		return
	}

	response := s.agent.HandleMessage(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleFinancialData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	overview, err := s.agent.FinancialData(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Financial data read failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, financialDataResponse{
			Overview: agent.Overview{
				Expenses:     []ledger.Expense{},
				Bills:        []ledger.Bill{},
				SavingsGoals: []ledger.SavingsGoal{},
				Summary:      ledger.ZeroSnapshot(),
			},
			Timestamp: time.Now(),
			Error:     "Failed to load financial data",
		})
		return
	}

	writeJSON(w, http.StatusOK, financialDataResponse{
		Overview:  overview,
		Timestamp: time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
