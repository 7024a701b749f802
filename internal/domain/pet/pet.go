package pet

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/datavet/pet-service/internal/domain"
)

// Species classifies a pet. Stored as its string form.
type Species string

const (
	SpeciesDog     Species = "DOG"
	SpeciesCat     Species = "CAT"
	SpeciesBird    Species = "BIRD"
	SpeciesRabbit  Species = "RABBIT"
	SpeciesHamster Species = "HAMSTER"
	SpeciesFish    Species = "FISH"
	SpeciesReptile Species = "REPTILE"
	SpeciesOther   Species = "OTHER"
)

// AllSpecies lists every recognized species.
var AllSpecies = []Species{
	SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit,
	SpeciesHamster, SpeciesFish, SpeciesReptile, SpeciesOther,
}

// IsValid returns true if the species is recognized.
func (s Species) IsValid() bool {
	for _, known := range AllSpecies {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSpecies converts a string (any case) into a Species.
func ParseSpecies(raw string) (Species, error) {
	s := Species(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", domain.NewValidationError("invalid species: " + raw)
	}
	return s, nil
}

// Pet is the aggregate root for a registered pet.
type Pet struct {
	id           uuid.UUID
	name         string
	species      Species
	breed        string
	age          *int
	ownerName    string
	ownerEmail   string
	ownerPhone   string
	medicalNotes string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPet creates a new pet record with validated fields.
func NewPet(
	name string,
	species Species,
	breed string,
	age *int,
	ownerName, ownerEmail, ownerPhone, medicalNotes string,
) (*Pet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("pet name is required")
	}
	if !species.IsValid() {
		return nil, domain.NewValidationError("invalid species: " + string(species))
	}
	if strings.TrimSpace(ownerName) == "" {
		return nil, domain.NewValidationError("owner name is required")
	}

	now := time.Now().UTC()
	return &Pet{
		id:           uuid.New(),
		name:         name,
		species:      species,
		breed:        breed,
		age:          age,
		ownerName:    ownerName,
		ownerEmail:   ownerEmail,
		ownerPhone:   ownerPhone,
		medicalNotes: medicalNotes,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name string,
	species Species,
	breed string,
	age *int,
	ownerName, ownerEmail, ownerPhone, medicalNotes string,
	createdAt, updatedAt time.Time,
) *Pet {
	return &Pet{
		id:           id,
		name:         name,
		species:      species,
		breed:        breed,
		age:          age,
		ownerName:    ownerName,
		ownerEmail:   ownerEmail,
		ownerPhone:   ownerPhone,
		medicalNotes: medicalNotes,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

// ID returns the pet's unique identifier.
func (p *Pet) ID() uuid.UUID { return p.id }

// Name returns the pet's name.
func (p *Pet) Name() string { return p.name }

// Species returns the pet's species.
func (p *Pet) Species() Species { return p.species }

// Breed returns the breed, or empty if unknown.
func (p *Pet) Breed() string { return p.breed }

// Age returns the age in years, or nil if unknown.
func (p *Pet) Age() *int { return p.age }

// OwnerName returns the owner's name.
func (p *Pet) OwnerName() string { return p.ownerName }

// OwnerEmail returns the owner's email, or empty if not given.
func (p *Pet) OwnerEmail() string { return p.ownerEmail }

// OwnerPhone returns the owner's phone number, or empty if not given.
func (p *Pet) OwnerPhone() string { return p.ownerPhone }

// MedicalNotes returns free-text medical notes.
func (p *Pet) MedicalNotes() string { return p.medicalNotes }

// CreatedAt returns when the record was created.
func (p *Pet) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns when the record was last modified.
func (p *Pet) UpdatedAt() time.Time { return p.updatedAt }

// Replace overwrites every mutable field with the incoming values. Fields
// omitted by the caller are cleared, not preserved; id and createdAt never
// change.
func (p *Pet) Replace(
	name string,
	species Species,
	breed string,
	age *int,
	ownerName, ownerEmail, ownerPhone, medicalNotes string,
) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("pet name is required")
	}
	if !species.IsValid() {
		return domain.NewValidationError("invalid species: " + string(species))
	}
	if strings.TrimSpace(ownerName) == "" {
		return domain.NewValidationError("owner name is required")
	}

	p.name = name
	p.species = species
	p.breed = breed
	p.age = age
	p.ownerName = ownerName
	p.ownerEmail = ownerEmail
	p.ownerPhone = ownerPhone
	p.medicalNotes = medicalNotes
	p.updatedAt = time.Now().UTC()
	return nil
}
