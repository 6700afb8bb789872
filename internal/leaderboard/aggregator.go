// Package leaderboard aggregates stored quiz attempts into a ranked,
// deduplicated standing. It is a pure computation over already-fetched data;
// callers supply the attempts for one quiz plus a participant directory
// snapshot for display decoration.
package leaderboard

import (
	"fmt"
	"sort"

	"quiz-rank-service/internal/domain"
)

// MaxEntries caps the leaderboard at the top 100 participants.
const MaxEntries = 100

// Rank selects each participant's best attempt, orders participants by the
// composite key (score desc, time spent asc, submission time asc) and returns
// at most MaxEntries entries with dense 1-based ranks.
//
// An attempt whose participant is missing from the directory map is dropped
// from the result rather than failing the whole aggregation.
func Rank(attempts []domain.QuizAttempt, participants map[string]domain.Participant) []domain.LeaderboardEntry {
	if len(attempts) == 0 {
		return []domain.LeaderboardEntry{}
	}

	// Stable sort of the full attempt list by the composite key. This single
	// ordering drives both best-attempt selection and the final entry order:
	// the first occurrence of each participant in the sorted list is their
	// best attempt, and first occurrences appear in final leaderboard order.
	sorted := make([]domain.QuizAttempt, len(attempts))
	copy(sorted, attempts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})

	// Attempt counts reflect every submission, not just those surviving the
	// top-100 cutoff.
	counts := make(map[string]int, len(sorted))
	for _, a := range sorted {
		counts[a.ParticipantID]++
	}

	entries := make([]domain.LeaderboardEntry, 0, min(len(counts), MaxEntries))
	seen := make(map[string]struct{}, len(counts))
	for _, best := range sorted {
		if _, ok := seen[best.ParticipantID]; ok {
			continue
		}
		seen[best.ParticipantID] = struct{}{}

		p, ok := participants[best.ParticipantID]
		if !ok {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			ParticipantID:  best.ParticipantID,
			Name:           p.FullName,
			Affiliation:    p.Unit,
			CorrectCount:   best.CorrectCount,
			Attempts:       counts[best.ParticipantID],
			CompletionTime: FormatElapsed(best.TimeSpentSeconds),
			Score:          best.Score,
			Percentage:     best.Percentage,
			SubmittedAt:    best.SubmittedAt,
		})
		if len(entries) == MaxEntries {
			break
		}
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Less reports whether attempt a sorts before attempt b under the composite
// key: score descending, then time spent ascending, then submission time
// ascending. The time comparison uses the integer seconds directly, never a
// formatted display string.
func Less(a, b domain.QuizAttempt) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.TimeSpentSeconds != b.TimeSpentSeconds {
		return a.TimeSpentSeconds < b.TimeSpentSeconds
	}
	return a.SubmittedAt.Before(b.SubmittedAt)
}

// FormatElapsed renders seconds as zero-padded HH:MM:SS for display.
func FormatElapsed(seconds int) string {
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}
