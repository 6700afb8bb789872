package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"quiz-rank-service/internal/app"
	"quiz-rank-service/internal/domain"
)

// Handler wires the quiz use cases into a REST surface.
type Handler struct {
	service *app.QuizService
	logger  *slog.Logger
}

func NewHandler(service *app.QuizService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes builds the router. Field names on the wire follow the original
// client contract (userId, correctAnswers, timeSpent, ...).
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/quiz/submit", h.submit)
		r.Get("/quiz/attempts/{participantID}", h.attempts)
		r.Get("/leaderboard/{quizID}", h.leaderboard)
	})
	return r
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var input app.RegistrationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	participant, err := h.service.Register(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, participant)
}

type submitRequest struct {
	QuizID           int            `json:"quizId"`
	ParticipantID    string         `json:"userId"`
	Answers          map[string]int `json:"answers"`
	TimeSpentSeconds int            `json:"timeSpent"`
}

type submitResponse struct {
	AttemptID      string    `json:"attemptId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectCount   int       `json:"correctAnswers"`
	Percentage     int       `json:"percentage"`
	TimeSpent      int       `json:"timeSpent"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	answers, err := normalizeAnswers(req.Answers)
	if err != nil {
		h.writeError(w, err)
		return
	}

	attempt, err := h.service.SubmitAttempt(r.Context(), app.SubmissionInput{
		ParticipantID:    req.ParticipantID,
		QuizID:           req.QuizID,
		Answers:          answers,
		TimeSpentSeconds: req.TimeSpentSeconds,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, submitResponse{
		AttemptID:      attempt.ID,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		CorrectCount:   attempt.CorrectCount,
		Percentage:     attempt.Percentage,
		TimeSpent:      attempt.TimeSpentSeconds,
		SubmittedAt:    attempt.SubmittedAt,
	})
}

func (h *Handler) attempts(w http.ResponseWriter, r *http.Request) {
	participantID := chi.URLParam(r, "participantID")
	attempts, err := h.service.AttemptsByParticipant(r.Context(), participantID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, attempts)
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.Atoi(chi.URLParam(r, "quizID"))
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: invalid quiz id", domain.ErrInvalidInput))
		return
	}

	entries, err := h.service.Leaderboard(r.Context(), quizID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// normalizeAnswers converts JSON object keys into the canonical int question
// ids used everywhere inside the service. This is the only place a string
// representation of a question id exists.
func normalizeAnswers(raw map[string]int) (map[int]int, error) {
	answers := make(map[int]int, len(raw))
	for key, selected := range raw {
		questionID, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: answer key %q is not a question id", domain.ErrInvalidInput, key)
		}
		answers[questionID] = selected
	}
	return answers, nil
}

type errorResponse struct {
	Message string `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrDuplicateParticipant):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrQuizNotFound), errors.Is(err, domain.ErrParticipantNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	h.writeJSON(w, status, errorResponse{Message: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("write response", "error", err)
	}
}
