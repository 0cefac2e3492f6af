package difficulty

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cogniplay/backend/internal/models"
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

func (h *Handler) SetLevel(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SetLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	adjustment, err := h.engine.SetLevel(userID, req.Level, req.Reason)
	if err != nil {
		if errors.Is(err, ErrInvalidLevel) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "level must be between 1 and 5"})
			return
		}
		log.Printf("[handler] SetLevel error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to set difficulty level"})
		return
	}

	writeJSON(w, http.StatusOK, adjustment)
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	progress, err := h.engine.Progress(userID)
	if err != nil {
		log.Printf("[handler] DifficultyProgress error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load difficulty progress"})
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
