package vet

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for vet profiles.
type Repository interface {
	Save(ctx context.Context, vet *Vet) error
	FindByID(ctx context.Context, id uuid.UUID) (*Vet, error)
	FindAll(ctx context.Context) ([]*Vet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	FindByAvailable(ctx context.Context, available bool) ([]*Vet, error)
	FindBySpecialization(ctx context.Context, specialization string) ([]*Vet, error)
	FindByName(ctx context.Context, name string) ([]*Vet, error)
	Search(ctx context.Context, query string) ([]*Vet, error)
	DistinctSpecializations(ctx context.Context) ([]string, error)
}
