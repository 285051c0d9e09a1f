package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/meihua/pkg/domain"
)

// Journal implements ports.Journal using the local filesystem.
// Each reading is stored as a JSON file named after its ID.
type Journal struct {
	BasePath string
}

// NewJournal creates a file journal rooted at basePath.
// If basePath is empty, it defaults to ".meihua/journal".
func NewJournal(basePath string) *Journal {
	if basePath == "" {
		basePath = filepath.Join(".meihua", "journal")
	}
	return &Journal{BasePath: basePath}
}

func (j *Journal) path(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("reading id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("reading id %q is not a valid file name", id)
	}
	return filepath.Join(j.BasePath, id+".json"), nil
}

// Save writes the reading to <BasePath>/<id>.json.
func (j *Journal) Save(ctx context.Context, reading *domain.Reading) error {
	filePath, err := j.path(reading.ID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(j.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure journal directory: %w", err)
	}

	data, err := json.MarshalIndent(reading, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated reading behind.
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write reading file: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		return fmt.Errorf("failed to commit reading file: %w", err)
	}
	return nil
}

// Load reads a reading back from disk.
func (j *Journal) Load(ctx context.Context, id string) (*domain.Reading, error) {
	filePath, err := j.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrReadingNotFound
		}
		return nil, fmt.Errorf("failed to read reading file: %w", err)
	}

	var r domain.Reading
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reading: %w", err)
	}
	return &r, nil
}

// Delete removes the reading file.
func (j *Journal) Delete(ctx context.Context, id string) error {
	filePath, err := j.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete reading file: %w", err)
	}
	return nil
}

// List loads every reading in the directory, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]*domain.Reading, error) {
	entries, err := os.ReadDir(j.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Reading{}, nil
		}
		return nil, fmt.Errorf("failed to read journal directory: %w", err)
	}

	out := make([]*domain.Reading, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		r, err := j.Load(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

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
