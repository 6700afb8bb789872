// Package scoring converts a submitted answer set into a deterministic score.
package scoring

import (
	"fmt"

	"quiz-rank-service/internal/domain"
)

// Score evaluates answers against the quiz definition and returns the result.
// totalQuestions is taken from the definition, so unanswered questions count
// against the candidate. Answers keyed by unknown question ids are ignored.
// Pure function: no I/O, no hidden state.
func Score(questions []domain.Question, answers map[int]int, timeSpentSeconds int) (domain.ScoreResult, error) {
	if len(questions) == 0 {
		return domain.ScoreResult{}, fmt.Errorf("%w: quiz has no questions", domain.ErrInvalidInput)
	}
	if timeSpentSeconds < 0 {
		return domain.ScoreResult{}, fmt.Errorf("%w: negative time spent %d", domain.ErrInvalidInput, timeSpentSeconds)
	}

	correct := 0
	for _, q := range questions {
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectOption {
			correct++
		}
	}

	total := len(questions)
	percentage := roundHalfUp(100*correct, total)
	return domain.ScoreResult{
		CorrectCount:     correct,
		TotalQuestions:   total,
		Percentage:       percentage,
		Score:            percentage * 10,
		TimeSpentSeconds: timeSpentSeconds,
	}, nil
}

// roundHalfUp divides num by den and rounds half up, in integer arithmetic so
// no float precision can shift a .5 boundary.
func roundHalfUp(num, den int) int {
	return (2*num + den) / (2 * den)
}
