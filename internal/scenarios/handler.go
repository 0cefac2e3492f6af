package scenarios

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cogniplay/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	scenario, err := h.engine.CreateScenario(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "type must be 'negotiation', 'problem_solving', 'social_interaction', 'leadership', or 'creative_thinking'"})
			return
		}
		log.Printf("[handler] CreateScenario error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create scenario"})
		return
	}

	writeJSON(w, http.StatusCreated, scenario)
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	scenarioID := mux.Vars(r)["id"]

	var req models.ProcessDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Decision == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "decision is required"})
		return
	}

	outcome, err := h.engine.ProcessDecision(r.Context(), userID, scenarioID, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Scenario not found"})
			return
		}
		log.Printf("[handler] ProcessDecision error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to process decision"})
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserID(r); !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	scenario, err := h.engine.Get(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Scenario not found"})
		return
	}

	writeJSON(w, http.StatusOK, scenario)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserID(r); !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	h.engine.Cancel(mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
