package memory

import (
	"context"
	"sync"

	"quiz-rank-service/internal/domain"
)

// ParticipantDirectory is an in-memory implementation of
// app.ParticipantDirectory with email/phone uniqueness indexes.
type ParticipantDirectory struct {
	mu      sync.RWMutex
	byID    map[string]domain.Participant
	byEmail map[string]string
	byPhone map[string]string
}

func NewParticipantDirectory() *ParticipantDirectory {
	return &ParticipantDirectory{
		byID:    make(map[string]domain.Participant),
		byEmail: make(map[string]string),
		byPhone: make(map[string]string),
	}
}

func (d *ParticipantDirectory) Create(_ context.Context, p domain.Participant) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byEmail[p.Email]; ok {
		return domain.ErrDuplicateParticipant
	}
	if _, ok := d.byPhone[p.Phone]; ok {
		return domain.ErrDuplicateParticipant
	}
	d.byID[p.ID] = p
	d.byEmail[p.Email] = p.ID
	d.byPhone[p.Phone] = p.ID
	return nil
}

func (d *ParticipantDirectory) FindByID(_ context.Context, id string) (domain.Participant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.byID[id]
	if !ok {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	return p, nil
}

func (d *ParticipantDirectory) FindByIDs(_ context.Context, ids []string) (map[string]domain.Participant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]domain.Participant, len(ids))
	for _, id := range ids {
		if p, ok := d.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (d *ParticipantDirectory) ExistsByContact(_ context.Context, email, phone string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if _, ok := d.byEmail[email]; ok {
		return true, nil
	}
	_, ok := d.byPhone[phone]
	return ok, nil
}
