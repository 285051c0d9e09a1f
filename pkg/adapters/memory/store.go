package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/meihua/pkg/domain"
)

// Journal implements ports.Journal in memory.
// Safe for concurrent use.
type Journal struct {
	data map[string]*domain.Reading
	mu   sync.RWMutex
}

// NewJournal creates a new in-memory journal.
func NewJournal() *Journal {
	return &Journal{
		data: make(map[string]*domain.Reading),
	}
}

// clone copies the reading including its slices and pointers, so neither the
// caller nor the journal can mutate the other's copy.
func clone(r *domain.Reading) *domain.Reading {
	c := *r
	c.Inputs = append([]int(nil), r.Inputs...)
	if r.Hint.Secondary != nil {
		d := *r.Hint.Secondary
		c.Hint.Secondary = &d
	}
	return &c
}

// Save stores a copy of the reading.
func (j *Journal) Save(ctx context.Context, reading *domain.Reading) error {
	c := clone(reading)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.data[reading.ID] = c
	return nil
}

// Load returns a copy of the stored reading.
func (j *Journal) Load(ctx context.Context, id string) (*domain.Reading, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	r, ok := j.data[id]
	if !ok {
		return nil, domain.ErrReadingNotFound
	}
	return clone(r), nil
}

// Delete removes the reading.
func (j *Journal) Delete(ctx context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.data, id)
	return nil
}

// List returns readings newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]*domain.Reading, error) {
	j.mu.RLock()
	out := make([]*domain.Reading, 0, len(j.data))
	for _, r := range j.data {
		out = append(out, clone(r))
	}
	j.mu.RUnlock()

	sort.Slice(out, func(a, b int) bool {
		if out[a].CastAt.Equal(out[b].CastAt) {
			return out[a].ID > out[b].ID
		}
		return out[a].CastAt.After(out[b].CastAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
