package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-rank-service/internal/domain"
)

// AttemptRepository persists the append-only attempt log in Postgres.
// Rows are only ever inserted; there is no update or delete path.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

func (r *AttemptRepository) Insert(ctx context.Context, attempt domain.QuizAttempt) error {
	answers, err := json.Marshal(attempt.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO attempts
			(id, participant_id, quiz_id, answers, correct_count, total_questions,
			 percentage, score, time_spent_seconds, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		attempt.ID, attempt.ParticipantID, attempt.QuizID, answers,
		attempt.CorrectCount, attempt.TotalQuestions, attempt.Percentage,
		attempt.Score, attempt.TimeSpentSeconds, attempt.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *AttemptRepository) FindByQuiz(ctx context.Context, quizID int) ([]domain.QuizAttempt, error) {
	rows, err := r.pool.Query(ctx, selectAttempts+` WHERE quiz_id=$1`, quizID)
	if err != nil {
		return nil, fmt.Errorf("find attempts by quiz: %w", err)
	}
	return scanAttempts(rows)
}

func (r *AttemptRepository) FindByParticipant(ctx context.Context, participantID string) ([]domain.QuizAttempt, error) {
	rows, err := r.pool.Query(ctx, selectAttempts+` WHERE participant_id=$1 ORDER BY submitted_at DESC`, participantID)
	if err != nil {
		return nil, fmt.Errorf("find attempts by participant: %w", err)
	}
	return scanAttempts(rows)
}

const selectAttempts = `
	SELECT id, participant_id, quiz_id, answers, correct_count, total_questions,
	       percentage, score, time_spent_seconds, submitted_at
	FROM attempts`

func scanAttempts(rows pgx.Rows) ([]domain.QuizAttempt, error) {
	defer rows.Close()
	attempts := make([]domain.QuizAttempt, 0)
	for rows.Next() {
		var a domain.QuizAttempt
		var answers []byte
		if err := rows.Scan(&a.ID, &a.ParticipantID, &a.QuizID, &answers,
			&a.CorrectCount, &a.TotalQuestions, &a.Percentage, &a.Score,
			&a.TimeSpentSeconds, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal(answers, &a.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}
