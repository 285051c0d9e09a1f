package ports

import (
	"context"

	"github.com/aretw0/meihua/pkg/domain"
)

// Journal persists past readings so they can be listed and revisited.
type Journal interface {
	// Save persists a reading under its ID. Saving an existing ID replaces it.
	Save(ctx context.Context, reading *domain.Reading) error

	// Load retrieves a reading by ID.
	// Returns domain.ErrReadingNotFound if the reading does not exist.
	Load(ctx context.Context, id string) (*domain.Reading, error)

	// Delete removes a reading. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit readings, newest first. A limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*domain.Reading, error)
}
