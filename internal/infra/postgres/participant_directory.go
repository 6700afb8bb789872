package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-rank-service/internal/domain"
)

const uniqueViolation = "23505"

// ParticipantDirectory stores participant identity records in Postgres.
type ParticipantDirectory struct {
	pool *pgxpool.Pool
}

func NewParticipantDirectory(pool *pgxpool.Pool) *ParticipantDirectory {
	return &ParticipantDirectory{pool: pool}
}

func (d *ParticipantDirectory) Create(ctx context.Context, p domain.Participant) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO participants (id, full_name, phone, email, gender, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.FullName, p.Phone, p.Email, p.Gender, p.Unit, p.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateParticipant
	}
	if err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

func (d *ParticipantDirectory) FindByID(ctx context.Context, id string) (domain.Participant, error) {
	var p domain.Participant
	err := d.pool.QueryRow(ctx, `
		SELECT id, full_name, phone, email, gender, unit, created_at
		FROM participants WHERE id=$1`, id,
	).Scan(&p.ID, &p.FullName, &p.Phone, &p.Email, &p.Gender, &p.Unit, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	if err != nil {
		return domain.Participant{}, fmt.Errorf("find participant: %w", err)
	}
	return p, nil
}

func (d *ParticipantDirectory) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Participant, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, full_name, phone, email, gender, unit, created_at
		FROM participants WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("find participants: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Participant, len(ids))
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.FullName, &p.Phone, &p.Email, &p.Gender, &p.Unit, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return out, nil
}

func (d *ParticipantDirectory) ExistsByContact(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := d.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM participants WHERE email=$1 OR phone=$2)`,
		email, phone,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check contact: %w", err)
	}
	return exists, nil
}
