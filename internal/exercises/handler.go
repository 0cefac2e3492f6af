package exercises

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cogniplay/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.GenerateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !models.ValidCategories[req.Category] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "category must be 'memory', 'logic', 'problem_solving', 'pattern_recognition', or 'attention'"})
		return
	}

	exercise, err := h.service.GenerateExercise(r.Context(), userID, req)
	if err != nil {
		log.Printf("[handler] GenerateExercise error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate exercise"})
		return
	}

	writeJSON(w, http.StatusCreated, exercise)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.ExerciseID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "exercise_id is required"})
		return
	}

	resp, err := h.service.SubmitAnswer(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Exercise not found"})
			return
		}
		log.Printf("[handler] SubmitAnswer error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit answer"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
