package memory

import (
	"context"
	"testing"

	"quiz-rank-service/internal/domain"
)

func TestParticipantDirectory(t *testing.T) {
	ctx := context.Background()
	dir := NewParticipantDirectory()

	alice := domain.Participant{ID: "u1", FullName: "Alice", Email: "alice@example.com", Phone: "0901234567", Unit: "HQ"}
	if err := dir.Create(ctx, alice); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := dir.Create(ctx, domain.Participant{ID: "u2", Email: "alice@example.com", Phone: "0999999999"}); err != domain.ErrDuplicateParticipant {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
	if err := dir.Create(ctx, domain.Participant{ID: "u3", Email: "other@example.com", Phone: "0901234567"}); err != domain.ErrDuplicateParticipant {
		t.Fatalf("expected duplicate phone error, got %v", err)
	}

	got, err := dir.FindByID(ctx, "u1")
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.FullName != "Alice" {
		t.Fatalf("expected Alice, got %+v", got)
	}

	if _, err := dir.FindByID(ctx, "missing"); err != domain.ErrParticipantNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	batch, err := dir.FindByIDs(ctx, []string{"u1", "missing"})
	if err != nil {
		t.Fatalf("find by ids: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("expected 1 resolved participant, got %d", len(batch))
	}

	exists, err := dir.ExistsByContact(ctx, "alice@example.com", "0000000000")
	if err != nil || !exists {
		t.Fatalf("expected contact to exist, got exists=%v err=%v", exists, err)
	}
	exists, err = dir.ExistsByContact(ctx, "nobody@example.com", "0000000000")
	if err != nil || exists {
		t.Fatalf("expected contact to be free, got exists=%v err=%v", exists, err)
	}
}
