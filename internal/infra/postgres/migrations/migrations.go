package migrations

import (
	_ "embed"

	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_participants.sql
var createParticipantsSQL string

//go:embed 0002_create_quizzes.sql
var createQuizzesSQL string

//go:embed 0003_create_attempts.sql
var createAttemptsSQL string

var Migrations = migrate.NewMigrations()
