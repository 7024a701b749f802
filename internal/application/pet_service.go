package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/datavet/pet-service/internal/domain"
	petDomain "github.com/datavet/pet-service/internal/domain/pet"
	"github.com/datavet/pet-service/internal/events"
)

// PetRequest is the request DTO for creating or replacing a pet. Updates are
// full replacements: any field left out of the payload is cleared on the
// stored record.
type PetRequest struct {
	Name         string `json:"name" binding:"required"`
	Species      string `json:"species" binding:"required"`
	Breed        string `json:"breed"`
	Age          *int   `json:"age"`
	OwnerName    string `json:"ownerName" binding:"required"`
	OwnerEmail   string `json:"ownerEmail"`
	OwnerPhone   string `json:"ownerPhone"`
	MedicalNotes string `json:"medicalNotes"`
}

// PetDTO is the API representation of a pet. Wire names stay camelCase to
// preserve the existing API contract.
type PetDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Species      string    `json:"species"`
	Breed        string    `json:"breed,omitempty"`
	Age          *int      `json:"age,omitempty"`
	OwnerName    string    `json:"ownerName"`
	OwnerEmail   string    `json:"ownerEmail,omitempty"`
	OwnerPhone   string    `json:"ownerPhone,omitempty"`
	MedicalNotes string    `json:"medicalNotes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PetStatsDTO is the aggregate statistics payload for pets.
type PetStatsDTO struct {
	TotalPets        int64                    `json:"totalPets"`
	SpeciesBreakdown []petDomain.SpeciesCount `json:"speciesBreakdown"`
}

// PetService implements use cases for pet management.
type PetService struct {
	repo     petDomain.Repository
	producer *events.PetEventProducer
	logger   *zap.Logger
}

// NewPetService creates a new PetService.
func NewPetService(repo petDomain.Repository, producer *events.PetEventProducer, logger *zap.Logger) *PetService {
	return &PetService{repo: repo, producer: producer, logger: logger}
}

// Create registers a new pet and emits a PET_CREATED notification. A failed
// emission never fails the create.
func (s *PetService) Create(ctx context.Context, req PetRequest) (*PetDTO, error) {
	species, err := petDomain.ParseSpecies(req.Species)
	if err != nil {
		return nil, err
	}

	p, err := petDomain.NewPet(
		req.Name, species, req.Breed, req.Age,
		req.OwnerName, req.OwnerEmail, req.OwnerPhone, req.MedicalNotes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.producer.PetCreated(p)
	s.logger.Info("pet created",
		zap.String("pet_id", p.ID().String()),
		zap.String("species", string(p.Species())),
	)
	result := toPetDTO(p)
	return &result, nil
}

// GetAll returns every pet.
func (s *PetService) GetAll(ctx context.Context) ([]PetDTO, error) {
	pets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pets: %w", err)
	}
	return toPetDTOList(pets), nil
}

// GetByID returns a single pet.
func (s *PetService) GetByID(ctx context.Context, id uuid.UUID) (*PetDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toPetDTO(p)
	return &result, nil
}

// Update replaces every mutable field of the pet with the request values and
// emits a PET_UPDATED notification.
func (s *PetService) Update(ctx context.Context, id uuid.UUID, req PetRequest) (*PetDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	species, err := petDomain.ParseSpecies(req.Species)
	if err != nil {
		return nil, err
	}
	if err := existing.Replace(
		req.Name, species, req.Breed, req.Age,
		req.OwnerName, req.OwnerEmail, req.OwnerPhone, req.MedicalNotes,
	); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		s.logger.Error("failed to update pet", zap.Error(err))
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}

	s.producer.PetUpdated(existing)
	s.logger.Info("pet updated", zap.String("pet_id", id.String()))
	result := toPetDTO(existing)
	return &result, nil
}

// Delete removes the pet and emits a PET_DELETED notification. Deleting a
// missing id reports false without emitting anything.
func (s *PetService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete pet", zap.Error(err))
		return false, fmt.Errorf("failed to delete pet: %w", err)
	}

	s.producer.PetDeleted(id)
	s.logger.Info("pet deleted", zap.String("pet_id", id.String()))
	return true, nil
}

// GetBySpecies returns pets of the given species.
func (s *PetService) GetBySpecies(ctx context.Context, species petDomain.Species) ([]PetDTO, error) {
	pets, err := s.repo.FindBySpecies(ctx, species)
	if err != nil {
		return nil, fmt.Errorf("failed to get pets by species: %w", err)
	}
	return toPetDTOList(pets), nil
}

// Search returns pets whose name, breed or owner name contains the query,
// case-insensitively.
func (s *PetService) Search(ctx context.Context, query string) ([]PetDTO, error) {
	pets, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search pets: %w", err)
	}
	return toPetDTOList(pets), nil
}

// GetByOwner returns pets whose owner name contains the given value.
func (s *PetService) GetByOwner(ctx context.Context, ownerName string) ([]PetDTO, error) {
	pets, err := s.repo.FindByOwnerName(ctx, ownerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get pets by owner: %w", err)
	}
	return toPetDTOList(pets), nil
}

// SpeciesStatistics returns the count of pets per species, descending by
// count.
func (s *PetService) SpeciesStatistics(ctx context.Context) ([]petDomain.SpeciesCount, error) {
	stats, err := s.repo.SpeciesStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get species statistics: %w", err)
	}
	return stats, nil
}

// Stats returns the aggregate statistics payload for the stats endpoint.
func (s *PetService) Stats(ctx context.Context) (*PetStatsDTO, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pets: %w", err)
	}
	breakdown, err := s.SpeciesStatistics(ctx)
	if err != nil {
		return nil, err
	}
	return &PetStatsDTO{TotalPets: total, SpeciesBreakdown: breakdown}, nil
}

func toPetDTO(p *petDomain.Pet) PetDTO {
	return PetDTO{
		ID:           p.ID(),
		Name:         p.Name(),
		Species:      string(p.Species()),
		Breed:        p.Breed(),
		Age:          p.Age(),
		OwnerName:    p.OwnerName(),
		OwnerEmail:   p.OwnerEmail(),
		OwnerPhone:   p.OwnerPhone(),
		MedicalNotes: p.MedicalNotes(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func toPetDTOList(pets []*petDomain.Pet) []PetDTO {
	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		dtos[i] = toPetDTO(p)
	}
	return dtos
}
