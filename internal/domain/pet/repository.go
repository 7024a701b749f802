package pet

import (
	"context"

	"github.com/google/uuid"
)

// SpeciesCount is one row of the species statistics projection.
type SpeciesCount struct {
	Species Species `json:"species"`
	Count   int64   `json:"count"`
}

// Repository defines persistence operations for pets.
type Repository interface {
	Save(ctx context.Context, pet *Pet) error
	FindByID(ctx context.Context, id uuid.UUID) (*Pet, error)
	FindAll(ctx context.Context) ([]*Pet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	FindBySpecies(ctx context.Context, species Species) ([]*Pet, error)
	FindByOwnerName(ctx context.Context, ownerName string) ([]*Pet, error)
	FindByName(ctx context.Context, name string) ([]*Pet, error)
	Search(ctx context.Context, query string) ([]*Pet, error)
	SpeciesStatistics(ctx context.Context) ([]SpeciesCount, error)
}
