package leaderboard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-rank-service/internal/domain"
	"quiz-rank-service/internal/leaderboard"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func attempt(participantID string, score, timeSpent int, submittedAt time.Time) domain.QuizAttempt {
	return domain.QuizAttempt{
		ID:               participantID + "-" + submittedAt.Format("150405"),
		ParticipantID:    participantID,
		QuizID:           1,
		CorrectCount:     score / 10 / 5, // arbitrary but stable per score
		TotalQuestions:   20,
		Percentage:       score / 10,
		Score:            score,
		TimeSpentSeconds: timeSpent,
		SubmittedAt:      submittedAt,
	}
}

func directory(ids ...string) map[string]domain.Participant {
	m := make(map[string]domain.Participant, len(ids))
	for _, id := range ids {
		m[id] = domain.Participant{ID: id, FullName: "Name " + id, Unit: "Unit " + id}
	}
	return m
}

func TestRankBestAttemptPerParticipant(t *testing.T) {
	attempts := []domain.QuizAttempt{
		attempt("a", 200, 30, base),
		attempt("a", 200, 25, base.Add(time.Minute)),
		attempt("b", 190, 10, base.Add(2*time.Minute)),
	}

	entries := leaderboard.Rank(attempts, directory("a", "b"))
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "a", entries[0].ParticipantID)
	assert.Equal(t, 200, entries[0].Score)
	assert.Equal(t, "00:00:25", entries[0].CompletionTime, "best attempt is the faster one of the tied pair")
	assert.Equal(t, 2, entries[0].Attempts)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "b", entries[1].ParticipantID)
	assert.Equal(t, 190, entries[1].Score)
	assert.Equal(t, 1, entries[1].Attempts)
}

func TestRankCompositeKeyOrdering(t *testing.T) {
	attempts := []domain.QuizAttempt{
		attempt("slow", 500, 90, base),
		attempt("fast", 500, 40, base.Add(time.Hour)),
		attempt("early", 500, 40, base.Add(-time.Hour)),
		attempt("top", 800, 300, base),
	}

	entries := leaderboard.Rank(attempts, directory("slow", "fast", "early", "top"))
	require.Len(t, entries, 4)

	var order []string
	for _, e := range entries {
		order = append(order, e.ParticipantID)
	}
	// Score wins over time; equal score falls back to time; equal time falls
	// back to earlier submission.
	assert.Equal(t, []string{"top", "early", "fast", "slow"}, order)
}

func TestRankDenseRanks(t *testing.T) {
	attempts := []domain.QuizAttempt{
		attempt("a", 300, 10, base),
		attempt("b", 300, 10, base), // full key tie with a
		attempt("c", 100, 5, base),
	}

	entries := leaderboard.Rank(attempts, directory("a", "b", "c"))
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank, "ranks are positional with no gaps or shares")
	}
}

func TestRankTruncatesToMaxEntries(t *testing.T) {
	var attempts []domain.QuizAttempt
	ids := make([]string, 0, 105)
	for i := 0; i < 105; i++ {
		id := fmt.Sprintf("p%03d", i)
		ids = append(ids, id)
		// Higher i, higher score: p104 should come out on top.
		attempts = append(attempts, attempt(id, 10*i, 60, base.Add(time.Duration(i)*time.Second)))
	}

	entries := leaderboard.Rank(attempts, directory(ids...))
	require.Len(t, entries, leaderboard.MaxEntries)

	assert.Equal(t, "p104", entries[0].ParticipantID)
	// The 5 lowest scores fall off the board.
	cutoff := entries[len(entries)-1].Score
	for _, excluded := range []int{0, 10, 20, 30, 40} {
		assert.Greater(t, cutoff, excluded)
	}
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRankAttemptCountsIgnoreTruncation(t *testing.T) {
	var attempts []domain.QuizAttempt
	ids := make([]string, 0, 101)
	for i := 0; i < 101; i++ {
		id := fmt.Sprintf("p%03d", i)
		ids = append(ids, id)
		attempts = append(attempts, attempt(id, 10*i, 60, base))
	}
	// The leader also has two throwaway attempts that sort below the cutoff.
	attempts = append(attempts,
		attempt("p100", 0, 70, base.Add(time.Minute)),
		attempt("p100", 0, 80, base.Add(2*time.Minute)),
	)

	entries := leaderboard.Rank(attempts, directory(ids...))
	require.Len(t, entries, leaderboard.MaxEntries)

	assert.Equal(t, "p100", entries[0].ParticipantID)
	assert.Equal(t, 3, entries[0].Attempts, "count covers all submissions, not just those above the cutoff")
	for _, e := range entries {
		assert.NotEqual(t, "p000", e.ParticipantID)
	}
}

func TestRankBestAttemptNeverDominated(t *testing.T) {
	attempts := []domain.QuizAttempt{
		attempt("a", 400, 50, base),
		attempt("a", 700, 200, base.Add(time.Minute)),
		attempt("a", 700, 45, base.Add(2*time.Minute)),
		attempt("a", 650, 5, base.Add(3*time.Minute)),
	}

	entries := leaderboard.Rank(attempts, directory("a"))
	require.Len(t, entries, 1)

	best := entries[0]
	selected := attempts[2] // score 700, 45s
	for _, other := range attempts {
		assert.False(t, leaderboard.Less(other, selected) && other.ID != selected.ID,
			"attempt %+v dominates selected best %+v", other, selected)
	}
	assert.Equal(t, 700, best.Score)
	assert.Equal(t, "00:00:45", best.CompletionTime)
	assert.Equal(t, 4, best.Attempts)
}

func TestRankOmitsUnresolvableParticipants(t *testing.T) {
	attempts := []domain.QuizAttempt{
		attempt("known", 300, 10, base),
		attempt("ghost", 900, 5, base),
	}

	entries := leaderboard.Rank(attempts, directory("known"))
	require.Len(t, entries, 1)
	assert.Equal(t, "known", entries[0].ParticipantID)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestRankEmptyInput(t *testing.T) {
	entries := leaderboard.Rank(nil, directory())
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{5, "00:00:05"},
		{65, "00:01:05"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
		{90061, "25:01:01"}, // hours do not wrap at 24
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, leaderboard.FormatElapsed(tt.seconds))
	}
}

func TestRankDecorationFields(t *testing.T) {
	attempts := []domain.QuizAttempt{attempt("a", 500, 30, base)}
	participants := map[string]domain.Participant{
		"a": {ID: "a", FullName: "Alice Nguyen", Unit: "Logistics"},
	}

	entries := leaderboard.Rank(attempts, participants)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alice Nguyen", entries[0].Name)
	assert.Equal(t, "Logistics", entries[0].Affiliation)
	assert.Equal(t, base, entries[0].SubmittedAt)
}
