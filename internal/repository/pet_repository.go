package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/datavet/pet-service/internal/domain"
	petDomain "github.com/datavet/pet-service/internal/domain/pet"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Species      string    `gorm:"type:varchar(20);not null;index"`
	Breed        string    `gorm:"type:varchar(100)"`
	Age          *int      `gorm:"type:int"`
	OwnerName    string    `gorm:"type:varchar(100);not null"`
	OwnerEmail   string    `gorm:"type:varchar(255)"`
	OwnerPhone   string    `gorm:"type:varchar(50)"`
	MedicalNotes string    `gorm:"type:varchar(1000)"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (PetModel) TableName() string { return "pets" }

// GormPetRepository implements pet.Repository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

// Save upserts the pet row by primary key.
func (r *GormPetRepository) Save(ctx context.Context, p *petDomain.Pet) error {
	return r.db.WithContext(ctx).Save(toPetModel(p)).Error
}

func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Pet", id.String())
		}
		return nil, err
	}
	return toPetDomain(&model), nil
}

func (r *GormPetRepository) FindAll(ctx context.Context) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toPetDomainList(models), nil
}

func (r *GormPetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&PetModel{}).Error
}

func (r *GormPetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PetModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPetRepository) FindBySpecies(ctx context.Context, species petDomain.Species) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where("species = ?", string(species)).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toPetDomainList(models), nil
}

func (r *GormPetRepository) FindByOwnerName(ctx context.Context, ownerName string) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(owner_name) LIKE ?", containsPattern(ownerName)).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toPetDomainList(models), nil
}

func (r *GormPetRepository) FindByName(ctx context.Context, name string) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", containsPattern(name)).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toPetDomainList(models), nil
}

// Search matches the query case-insensitively against name, breed or owner
// name.
func (r *GormPetRepository) Search(ctx context.Context, query string) ([]*petDomain.Pet, error) {
	pattern := containsPattern(query)
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(breed) LIKE ? OR LOWER(owner_name) LIKE ?",
			pattern, pattern, pattern).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toPetDomainList(models), nil
}

// SpeciesStatistics counts pets per species, descending by count. Ties are
// broken by species name ascending so the projection is deterministic.
func (r *GormPetRepository) SpeciesStatistics(ctx context.Context) ([]petDomain.SpeciesCount, error) {
	var rows []petDomain.SpeciesCount
	if err := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Select("species, COUNT(*) AS count").
		Group("species").
		Order("count DESC, species ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// containsPattern builds a lowercase LIKE pattern for substring matching.
func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// --- Conversions ---

func toPetModel(p *petDomain.Pet) *PetModel {
	return &PetModel{
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

func toPetDomain(m *PetModel) *petDomain.Pet {
	return petDomain.Reconstruct(
		m.ID,
		m.Name,
		petDomain.Species(m.Species),
		m.Breed,
		m.Age,
		m.OwnerName, m.OwnerEmail, m.OwnerPhone, m.MedicalNotes,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toPetDomainList(models []PetModel) []*petDomain.Pet {
	pets := make([]*petDomain.Pet, len(models))
	for i, m := range models {
		pets[i] = toPetDomain(&m)
	}
	return pets
}
