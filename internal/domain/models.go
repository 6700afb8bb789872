package domain

import "time"

// Participant is an identity record owned by the registration flow.
// Display fields may change on re-registration; the ID never does.
type Participant struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID            int      `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
}

// Quiz is an ordered collection of questions.
type Quiz struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// ScoreResult is the outcome of scoring a single answer set.
type ScoreResult struct {
	CorrectCount     int `json:"correctAnswers"`
	TotalQuestions   int `json:"totalQuestions"`
	Percentage       int `json:"percentage"`
	Score            int `json:"score"`
	TimeSpentSeconds int `json:"timeSpent"`
}

// QuizAttempt is one submission event. Attempts are append-only: created
// exactly once, never mutated or deleted.
type QuizAttempt struct {
	ID               string      `json:"attemptId"`
	ParticipantID    string      `json:"userId"`
	QuizID           int         `json:"quizId"`
	Answers          map[int]int `json:"answers"`
	CorrectCount     int         `json:"correctAnswers"`
	TotalQuestions   int         `json:"totalQuestions"`
	Percentage       int         `json:"percentage"`
	Score            int         `json:"score"`
	TimeSpentSeconds int         `json:"timeSpent"`
	SubmittedAt      time.Time   `json:"submittedAt"`
}

// LeaderboardEntry is a derived view: one row per participant per quiz,
// recomputed on every request and never persisted.
type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	ParticipantID  string    `json:"userId"`
	Name           string    `json:"name"`
	Affiliation    string    `json:"affiliation"`
	CorrectCount   int       `json:"correctAnswers"`
	Attempts       int       `json:"attempts"`
	CompletionTime string    `json:"completionTime"`
	Score          int       `json:"score"`
	Percentage     int       `json:"percentage"`
	SubmittedAt    time.Time `json:"submittedAt"`
}
