package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/datavet/pet-service/internal/domain"
	vetDomain "github.com/datavet/pet-service/internal/domain/vet"
)

// VetRequest is the request DTO for creating or replacing a vet profile.
// Updates are full replacements: omitted fields are cleared or reset to
// scheduling defaults.
type VetRequest struct {
	Name                string `json:"name" binding:"required"`
	Specialization      string `json:"specialization" binding:"required"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Bio                 string `json:"bio"`
	ImageURL            string `json:"imageUrl"`
	Available           *bool  `json:"available"`
	WorkingHoursStart   string `json:"workingHoursStart"`
	WorkingHoursEnd     string `json:"workingHoursEnd"`
	WorkingDays         string `json:"workingDays"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
}

// VetDTO is the API representation of a vet profile.
type VetDTO struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Specialization      string    `json:"specialization"`
	Email               string    `json:"email,omitempty"`
	Phone               string    `json:"phone,omitempty"`
	Bio                 string    `json:"bio,omitempty"`
	ImageURL            string    `json:"imageUrl,omitempty"`
	Available           bool      `json:"available"`
	WorkingHoursStart   string    `json:"workingHoursStart"`
	WorkingHoursEnd     string    `json:"workingHoursEnd"`
	WorkingDays         string    `json:"workingDays"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// VetStatsDTO is the aggregate statistics payload for vets.
type VetStatsDTO struct {
	TotalVets       int64    `json:"totalVets"`
	AvailableVets   int      `json:"availableVets"`
	Specializations []string `json:"specializations"`
}

// VetService implements use cases for vet profile management. Unlike pets,
// vet mutations emit no notifications.
type VetService struct {
	repo   vetDomain.Repository
	logger *zap.Logger
}

// NewVetService creates a new VetService.
func NewVetService(repo vetDomain.Repository, logger *zap.Logger) *VetService {
	return &VetService{repo: repo, logger: logger}
}

// Create registers a new vet profile.
func (s *VetService) Create(ctx context.Context, req VetRequest) (*VetDTO, error) {
	v, err := vetDomain.NewVet(
		req.Name, req.Specialization, req.Email, req.Phone, req.Bio, req.ImageURL,
		req.Available,
		req.WorkingHoursStart, req.WorkingHoursEnd, req.WorkingDays,
		req.SlotDurationMinutes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, v); err != nil {
		s.logger.Error("failed to create vet", zap.Error(err))
		return nil, fmt.Errorf("failed to create vet: %w", err)
	}

	s.logger.Info("vet created",
		zap.String("vet_id", v.ID().String()),
		zap.String("specialization", v.Specialization()),
	)
	result := toVetDTO(v)
	return &result, nil
}

// GetAll returns every vet profile.
func (s *VetService) GetAll(ctx context.Context) ([]VetDTO, error) {
	vets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get vets: %w", err)
	}
	return toVetDTOList(vets), nil
}

// GetByID returns a single vet profile.
func (s *VetService) GetByID(ctx context.Context, id uuid.UUID) (*VetDTO, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toVetDTO(v)
	return &result, nil
}

// Update replaces every mutable field of the vet profile with the request
// values, including availability and scheduling.
func (s *VetService) Update(ctx context.Context, id uuid.UUID, req VetRequest) (*VetDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := existing.Replace(
		req.Name, req.Specialization, req.Email, req.Phone, req.Bio, req.ImageURL,
		req.Available,
		req.WorkingHoursStart, req.WorkingHoursEnd, req.WorkingDays,
		req.SlotDurationMinutes,
	); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		s.logger.Error("failed to update vet", zap.Error(err))
		return nil, fmt.Errorf("failed to update vet: %w", err)
	}

	s.logger.Info("vet updated", zap.String("vet_id", id.String()))
	result := toVetDTO(existing)
	return &result, nil
}

// Delete removes the vet profile. Deleting a missing id reports false.
func (s *VetService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete vet", zap.Error(err))
		return false, fmt.Errorf("failed to delete vet: %w", err)
	}

	s.logger.Info("vet deleted", zap.String("vet_id", id.String()))
	return true, nil
}

// GetAvailable returns vets currently accepting appointments.
func (s *VetService) GetAvailable(ctx context.Context) ([]VetDTO, error) {
	vets, err := s.repo.FindByAvailable(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get available vets: %w", err)
	}
	return toVetDTOList(vets), nil
}

// GetBySpecialization returns vets whose stored specialization matches
// exactly.
func (s *VetService) GetBySpecialization(ctx context.Context, specialization string) ([]VetDTO, error) {
	vets, err := s.repo.FindBySpecialization(ctx, specialization)
	if err != nil {
		return nil, fmt.Errorf("failed to get vets by specialization: %w", err)
	}
	return toVetDTOList(vets), nil
}

// Search returns vets whose name or specialization contains the query,
// case-insensitively.
func (s *VetService) Search(ctx context.Context, query string) ([]VetDTO, error) {
	vets, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search vets: %w", err)
	}
	return toVetDTOList(vets), nil
}

// Specializations returns the distinct specializations present in the store.
func (s *VetService) Specializations(ctx context.Context) ([]string, error) {
	specs, err := s.repo.DistinctSpecializations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get specializations: %w", err)
	}
	return specs, nil
}

// Stats returns the aggregate statistics payload for the stats endpoint.
func (s *VetService) Stats(ctx context.Context) (*VetStatsDTO, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count vets: %w", err)
	}
	available, err := s.repo.FindByAvailable(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get available vets: %w", err)
	}
	specs, err := s.repo.DistinctSpecializations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get specializations: %w", err)
	}
	return &VetStatsDTO{
		TotalVets:       total,
		AvailableVets:   len(available),
		Specializations: specs,
	}, nil
}

func toVetDTO(v *vetDomain.Vet) VetDTO {
	return VetDTO{
		ID:                  v.ID(),
		Name:                v.Name(),
		Specialization:      v.Specialization(),
		Email:               v.Email(),
		Phone:               v.Phone(),
		Bio:                 v.Bio(),
		ImageURL:            v.ImageURL(),
		Available:           v.Available(),
		WorkingHoursStart:   v.WorkingHoursStart(),
		WorkingHoursEnd:     v.WorkingHoursEnd(),
		WorkingDays:         v.WorkingDays(),
		SlotDurationMinutes: v.SlotDurationMinutes(),
		CreatedAt:           v.CreatedAt(),
		UpdatedAt:           v.UpdatedAt(),
	}
}

func toVetDTOList(vets []*vetDomain.Vet) []VetDTO {
	dtos := make([]VetDTO, len(vets))
	for i, v := range vets {
		dtos[i] = toVetDTO(v)
	}
	return dtos
}
