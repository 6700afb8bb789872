package memory

import (
	"context"
	"sync"

	"quiz-rank-service/internal/domain"
)

// AttemptRepository is an in-memory implementation of app.AttemptRepository.
// The log is append-only; records are returned as copies and never mutated.
type AttemptRepository struct {
	mu       sync.RWMutex
	attempts []domain.QuizAttempt
}

func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{}
}

func (r *AttemptRepository) Insert(_ context.Context, attempt domain.QuizAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *AttemptRepository) FindByQuiz(_ context.Context, quizID int) ([]domain.QuizAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.QuizAttempt, 0)
	for _, a := range r.attempts {
		if a.QuizID == quizID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AttemptRepository) FindByParticipant(_ context.Context, participantID string) ([]domain.QuizAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.QuizAttempt, 0)
	for _, a := range r.attempts {
		if a.ParticipantID == participantID {
			out = append(out, a)
		}
	}
	return out, nil
}
