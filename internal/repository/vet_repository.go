package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/datavet/pet-service/internal/domain"
	vetDomain "github.com/datavet/pet-service/internal/domain/vet"
)

// VetModel is the GORM model for the vets table.
type VetModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"type:varchar(100);not null"`
	Specialization      string    `gorm:"type:varchar(100);not null;index"`
	Email               string    `gorm:"type:varchar(255)"`
	Phone               string    `gorm:"type:varchar(50)"`
	Bio                 string    `gorm:"type:varchar(500)"`
	ImageURL            string    `gorm:"type:text"`
	Available           bool      `gorm:"not null;default:true"`
	WorkingHoursStart   string    `gorm:"type:varchar(5);not null;default:'09:00'"`
	WorkingHoursEnd     string    `gorm:"type:varchar(5);not null;default:'17:00'"`
	WorkingDays         string    `gorm:"type:varchar(50);not null;default:'MON,TUE,WED,THU,FRI'"`
	SlotDurationMinutes int       `gorm:"not null;default:30"`
	CreatedAt           time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt           time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (VetModel) TableName() string { return "vets" }

// GormVetRepository implements vet.Repository using GORM.
type GormVetRepository struct {
	db *gorm.DB
}

func NewGormVetRepository(db *gorm.DB) *GormVetRepository {
	return &GormVetRepository{db: db}
}

// Save upserts the vet row by primary key.
func (r *GormVetRepository) Save(ctx context.Context, v *vetDomain.Vet) error {
	return r.db.WithContext(ctx).Save(toVetModel(v)).Error
}

func (r *GormVetRepository) FindByID(ctx context.Context, id uuid.UUID) (*vetDomain.Vet, error) {
	var model VetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Vet", id.String())
		}
		return nil, err
	}
	return toVetDomain(&model), nil
}

func (r *GormVetRepository) FindAll(ctx context.Context) ([]*vetDomain.Vet, error) {
	var models []VetModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toVetDomainList(models), nil
}

func (r *GormVetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&VetModel{}).Error
}

func (r *GormVetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&VetModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormVetRepository) FindByAvailable(ctx context.Context, available bool) ([]*vetDomain.Vet, error) {
	var models []VetModel
	if err := r.db.WithContext(ctx).
		Where("available = ?", available).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toVetDomainList(models), nil
}

// FindBySpecialization matches the stored string exactly, case-sensitively.
func (r *GormVetRepository) FindBySpecialization(ctx context.Context, specialization string) ([]*vetDomain.Vet, error) {
	var models []VetModel
	if err := r.db.WithContext(ctx).
		Where("specialization = ?", specialization).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toVetDomainList(models), nil
}

func (r *GormVetRepository) FindByName(ctx context.Context, name string) ([]*vetDomain.Vet, error) {
	var models []VetModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", containsPattern(name)).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toVetDomainList(models), nil
}

// Search matches the query case-insensitively against name or specialization.
func (r *GormVetRepository) Search(ctx context.Context, query string) ([]*vetDomain.Vet, error) {
	pattern := containsPattern(query)
	var models []VetModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(specialization) LIKE ?", pattern, pattern).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toVetDomainList(models), nil
}

// DistinctSpecializations returns the distinct specializations present in the
// store, sorted ascending for determinism.
func (r *GormVetRepository) DistinctSpecializations(ctx context.Context) ([]string, error) {
	var specs []string
	if err := r.db.WithContext(ctx).
		Model(&VetModel{}).
		Distinct("specialization").
		Order("specialization ASC").
		Pluck("specialization", &specs).Error; err != nil {
		return nil, err
	}
	return specs, nil
}

// --- Conversions ---

func toVetModel(v *vetDomain.Vet) *VetModel {
	return &VetModel{
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

func toVetDomain(m *VetModel) *vetDomain.Vet {
	return vetDomain.Reconstruct(
		m.ID,
		m.Name, m.Specialization, m.Email, m.Phone, m.Bio, m.ImageURL,
		m.Available,
		m.WorkingHoursStart, m.WorkingHoursEnd, m.WorkingDays,
		m.SlotDurationMinutes,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toVetDomainList(models []VetModel) []*vetDomain.Vet {
	vets := make([]*vetDomain.Vet, len(models))
	for i, m := range models {
		vets[i] = toVetDomain(&m)
	}
	return vets
}
