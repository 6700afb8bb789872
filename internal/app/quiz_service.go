package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"quiz-rank-service/internal/domain"
	"quiz-rank-service/internal/leaderboard"
	"quiz-rank-service/internal/scoring"
)

// AttemptRepository abstracts the append-only attempt log (in-memory,
// Postgres, etc). Attempts are inserted once and never updated.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt domain.QuizAttempt) error
	FindByQuiz(ctx context.Context, quizID int) ([]domain.QuizAttempt, error)
	FindByParticipant(ctx context.Context, participantID string) ([]domain.QuizAttempt, error)
}

// ParticipantDirectory abstracts participant identity storage.
type ParticipantDirectory interface {
	Create(ctx context.Context, p domain.Participant) error
	FindByID(ctx context.Context, id string) (domain.Participant, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.Participant, error)
	ExistsByContact(ctx context.Context, email, phone string) (bool, error)
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID int) (domain.Quiz, error)
}

// RegistrationInput carries the fields a new participant registers with.
type RegistrationInput struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"required,numeric,min=10,max=11"`
	Email    string `json:"email" validate:"required,email"`
	Gender   string `json:"gender" validate:"required,oneof=male female other"`
	Unit     string `json:"unit" validate:"required"`
}

// SubmissionInput carries one completed answer set for scoring.
type SubmissionInput struct {
	ParticipantID    string
	QuizID           int
	Answers          map[int]int
	TimeSpentSeconds int
}

// QuizService contains the quiz use cases: registration, attempt submission,
// attempt history and leaderboard aggregation.
type QuizService struct {
	attempts     AttemptRepository
	participants ParticipantDirectory
	quizzes      QuizRepository
	validate     *validator.Validate
	now          func() time.Time
	newID        func() string
}

func NewQuizService(attempts AttemptRepository, participants ParticipantDirectory, quizzes QuizRepository) *QuizService {
	return &QuizService{
		attempts:     attempts,
		participants: participants,
		quizzes:      quizzes,
		validate:     validator.New(),
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// NewQuizServiceWithClock is test-only for deterministic timestamps and ids.
func NewQuizServiceWithClock(attempts AttemptRepository, participants ParticipantDirectory, quizzes QuizRepository, now func() time.Time, newID func() string) *QuizService {
	s := NewQuizService(attempts, participants, quizzes)
	s.now = now
	s.newID = newID
	return s
}

// Register creates a new participant. Email and phone must be unused.
func (s *QuizService) Register(ctx context.Context, input RegistrationInput) (domain.Participant, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Unit = strings.TrimSpace(input.Unit)

	if err := s.validate.Struct(input); err != nil {
		return domain.Participant{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	exists, err := s.participants.ExistsByContact(ctx, input.Email, input.Phone)
	if err != nil {
		return domain.Participant{}, err
	}
	if exists {
		return domain.Participant{}, domain.ErrDuplicateParticipant
	}

	p := domain.Participant{
		ID:        s.newID(),
		FullName:  input.FullName,
		Phone:     input.Phone,
		Email:     input.Email,
		Gender:    input.Gender,
		Unit:      input.Unit,
		CreatedAt: s.now(),
	}
	if err := s.participants.Create(ctx, p); err != nil {
		return domain.Participant{}, err
	}
	return p, nil
}

// SubmitAttempt scores one answer set against the quiz definition and appends
// the resulting attempt to the log. Concurrent submissions need no
// coordination: every call produces a new, distinct record.
func (s *QuizService) SubmitAttempt(ctx context.Context, input SubmissionInput) (domain.QuizAttempt, error) {
	if _, err := s.participants.FindByID(ctx, input.ParticipantID); err != nil {
		return domain.QuizAttempt{}, err
	}

	quiz, err := s.quizzes.GetQuiz(ctx, input.QuizID)
	if err != nil {
		return domain.QuizAttempt{}, err
	}

	result, err := scoring.Score(quiz.Questions, input.Answers, input.TimeSpentSeconds)
	if err != nil {
		return domain.QuizAttempt{}, err
	}

	attempt := domain.QuizAttempt{
		ID:               s.newID(),
		ParticipantID:    input.ParticipantID,
		QuizID:           input.QuizID,
		Answers:          input.Answers,
		CorrectCount:     result.CorrectCount,
		TotalQuestions:   result.TotalQuestions,
		Percentage:       result.Percentage,
		Score:            result.Score,
		TimeSpentSeconds: result.TimeSpentSeconds,
		SubmittedAt:      s.now(),
	}
	if err := s.attempts.Insert(ctx, attempt); err != nil {
		return domain.QuizAttempt{}, err
	}
	return attempt, nil
}

// Leaderboard recomputes the ranked standing for a quiz from the current
// attempt snapshot. An empty attempt log yields an empty board.
func (s *QuizService) Leaderboard(ctx context.Context, quizID int) ([]domain.LeaderboardEntry, error) {
	attempts, err := s.attempts.FindByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	ids := make([]string, 0, len(attempts))
	seen := make(map[string]struct{}, len(attempts))
	for _, a := range attempts {
		if _, ok := seen[a.ParticipantID]; ok {
			continue
		}
		seen[a.ParticipantID] = struct{}{}
		ids = append(ids, a.ParticipantID)
	}

	participants, err := s.participants.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return leaderboard.Rank(attempts, participants), nil
}

// AttemptsByParticipant returns all attempts of one participant, newest first.
func (s *QuizService) AttemptsByParticipant(ctx context.Context, participantID string) ([]domain.QuizAttempt, error) {
	if _, err := s.participants.FindByID(ctx, participantID); err != nil {
		return nil, err
	}
	attempts, err := s.attempts.FindByParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].SubmittedAt.After(attempts[j].SubmittedAt)
	})
	return attempts, nil
}
