package vet

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/datavet/pet-service/internal/domain"
)

// Suggested specializations. The field itself is an open string so existing
// free-text filtering keeps working; these values are used for seeding and
// documentation only.
const (
	SpecializationGeneralPractice = "GENERAL_PRACTICE"
	SpecializationSurgery         = "SURGERY"
	SpecializationDentistry       = "DENTISTRY"
	SpecializationDermatology     = "DERMATOLOGY"
	SpecializationCardiology      = "CARDIOLOGY"
	SpecializationOrthopedics     = "ORTHOPEDICS"
	SpecializationOncology        = "ONCOLOGY"
	SpecializationEmergency       = "EMERGENCY"
	SpecializationExoticAnimals   = "EXOTIC_ANIMALS"
	SpecializationBehavior        = "BEHAVIOR"
)

// Defaults applied when a new vet omits scheduling fields.
const (
	DefaultWorkingHoursStart   = "09:00"
	DefaultWorkingHoursEnd     = "17:00"
	DefaultWorkingDays         = "MON,TUE,WED,THU,FRI"
	DefaultSlotDurationMinutes = 30
)

var workingHoursPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Vet is the aggregate root for a veterinarian profile.
type Vet struct {
	id                  uuid.UUID
	name                string
	specialization      string
	email               string
	phone               string
	bio                 string
	imageURL            string
	available           bool
	workingHoursStart   string
	workingHoursEnd     string
	workingDays         string
	slotDurationMinutes int
	createdAt           time.Time
	updatedAt           time.Time
}

// NewVet creates a new vet profile, filling scheduling defaults for any
// omitted field.
func NewVet(
	name, specialization, email, phone, bio, imageURL string,
	available *bool,
	workingHoursStart, workingHoursEnd, workingDays string,
	slotDurationMinutes int,
) (*Vet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("vet name is required")
	}
	if strings.TrimSpace(specialization) == "" {
		return nil, domain.NewValidationError("specialization is required")
	}

	if workingHoursStart == "" {
		workingHoursStart = DefaultWorkingHoursStart
	}
	if workingHoursEnd == "" {
		workingHoursEnd = DefaultWorkingHoursEnd
	}
	if err := validateWorkingHours(workingHoursStart, workingHoursEnd); err != nil {
		return nil, err
	}
	if workingDays == "" {
		workingDays = DefaultWorkingDays
	}
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = DefaultSlotDurationMinutes
	}

	isAvailable := true
	if available != nil {
		isAvailable = *available
	}

	now := time.Now().UTC()
	return &Vet{
		id:                  uuid.New(),
		name:                name,
		specialization:      specialization,
		email:               email,
		phone:               phone,
		bio:                 bio,
		imageURL:            imageURL,
		available:           isAvailable,
		workingHoursStart:   workingHoursStart,
		workingHoursEnd:     workingHoursEnd,
		workingDays:         workingDays,
		slotDurationMinutes: slotDurationMinutes,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

// Reconstruct rebuilds a Vet from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name, specialization, email, phone, bio, imageURL string,
	available bool,
	workingHoursStart, workingHoursEnd, workingDays string,
	slotDurationMinutes int,
	createdAt, updatedAt time.Time,
) *Vet {
	return &Vet{
		id:                  id,
		name:                name,
		specialization:      specialization,
		email:               email,
		phone:               phone,
		bio:                 bio,
		imageURL:            imageURL,
		available:           available,
		workingHoursStart:   workingHoursStart,
		workingHoursEnd:     workingHoursEnd,
		workingDays:         workingDays,
		slotDurationMinutes: slotDurationMinutes,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// --- Getters ---

// ID returns the vet's unique identifier.
func (v *Vet) ID() uuid.UUID { return v.id }

// Name returns the vet's display name.
func (v *Vet) Name() string { return v.name }

// Specialization returns the vet's specialization.
func (v *Vet) Specialization() string { return v.specialization }

// Email returns the contact email, or empty if not given.
func (v *Vet) Email() string { return v.email }

// Phone returns the contact phone number, or empty if not given.
func (v *Vet) Phone() string { return v.phone }

// Bio returns the free-text biography.
func (v *Vet) Bio() string { return v.bio }

// ImageURL returns the profile image URL, or empty if not given.
func (v *Vet) ImageURL() string { return v.imageURL }

// Available reports whether the vet currently accepts appointments.
func (v *Vet) Available() bool { return v.available }

// WorkingHoursStart returns the daily start of working hours (HH:MM).
func (v *Vet) WorkingHoursStart() string { return v.workingHoursStart }

// WorkingHoursEnd returns the daily end of working hours (HH:MM).
func (v *Vet) WorkingHoursEnd() string { return v.workingHoursEnd }

// WorkingDays returns the comma-separated working day codes.
func (v *Vet) WorkingDays() string { return v.workingDays }

// SlotDurationMinutes returns the appointment slot length in minutes.
func (v *Vet) SlotDurationMinutes() int { return v.slotDurationMinutes }

// CreatedAt returns when the profile was created.
func (v *Vet) CreatedAt() time.Time { return v.createdAt }

// UpdatedAt returns when the profile was last modified.
func (v *Vet) UpdatedAt() time.Time { return v.updatedAt }

// Replace overwrites every mutable field with the incoming values, including
// availability and scheduling. Omitted fields are cleared or reset to
// defaults; id and createdAt never change.
func (v *Vet) Replace(
	name, specialization, email, phone, bio, imageURL string,
	available *bool,
	workingHoursStart, workingHoursEnd, workingDays string,
	slotDurationMinutes int,
) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("vet name is required")
	}
	if strings.TrimSpace(specialization) == "" {
		return domain.NewValidationError("specialization is required")
	}

	if workingHoursStart == "" {
		workingHoursStart = DefaultWorkingHoursStart
	}
	if workingHoursEnd == "" {
		workingHoursEnd = DefaultWorkingHoursEnd
	}
	if err := validateWorkingHours(workingHoursStart, workingHoursEnd); err != nil {
		return err
	}
	if workingDays == "" {
		workingDays = DefaultWorkingDays
	}
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = DefaultSlotDurationMinutes
	}

	isAvailable := true
	if available != nil {
		isAvailable = *available
	}

	v.name = name
	v.specialization = specialization
	v.email = email
	v.phone = phone
	v.bio = bio
	v.imageURL = imageURL
	v.available = isAvailable
	v.workingHoursStart = workingHoursStart
	v.workingHoursEnd = workingHoursEnd
	v.workingDays = workingDays
	v.slotDurationMinutes = slotDurationMinutes
	v.updatedAt = time.Now().UTC()
	return nil
}

func validateWorkingHours(start, end string) error {
	if !workingHoursPattern.MatchString(start) {
		return domain.NewValidationError("working hours start must be HH:MM: " + start)
	}
	if !workingHoursPattern.MatchString(end) {
		return domain.NewValidationError("working hours end must be HH:MM: " + end)
	}
	return nil
}
