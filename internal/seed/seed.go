package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	petDomain "github.com/datavet/pet-service/internal/domain/pet"
	vetDomain "github.com/datavet/pet-service/internal/domain/vet"
)

// Run loads sample pets and vets when the respective tables are empty. It is
// idempotent across restarts and irrelevant to steady-state behavior.
func Run(ctx context.Context, pets petDomain.Repository, vets vetDomain.Repository, log *zap.Logger) error {
	if err := seedPets(ctx, pets, log); err != nil {
		return fmt.Errorf("seed pets: %w", err)
	}
	if err := seedVets(ctx, vets, log); err != nil {
		return fmt.Errorf("seed vets: %w", err)
	}
	return nil
}

type samplePet struct {
	name    string
	species petDomain.Species
	breed   string
	age     int
	owner   string
}

var samplePets = []samplePet{
	{"Max", petDomain.SpeciesDog, "Golden Retriever", 5, "John Smith"},
	{"Whiskers", petDomain.SpeciesCat, "Persian", 3, "Jane Doe"},
	{"Buddy", petDomain.SpeciesDog, "Labrador", 2, "Bob Wilson"},
	{"Tweety", petDomain.SpeciesBird, "Canary", 1, "Alice Brown"},
	{"Snowball", petDomain.SpeciesRabbit, "Holland Lop", 2, "Charlie Davis"},
	{"Nemo", petDomain.SpeciesFish, "Clownfish", 1, "Eva Martinez"},
	{"Rocky", petDomain.SpeciesDog, "German Shepherd", 4, "Frank Johnson"},
	{"Luna", petDomain.SpeciesCat, "Siamese", 2, "Grace Lee"},
}

func seedPets(ctx context.Context, repo petDomain.Repository, log *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Info("loading sample pet data")
	for _, s := range samplePets {
		age := s.age
		p, err := petDomain.NewPet(s.name, s.species, s.breed, &age, s.owner, "", "", "")
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, p); err != nil {
			return err
		}
	}
	log.Info("sample pet data loaded", zap.Int("pets", len(samplePets)))
	return nil
}

type sampleVet struct {
	name       string
	spec       string
	email      string
	phone      string
	bio        string
	hoursStart string
	hoursEnd   string
	days       string
	slot       int
}

var sampleVets = []sampleVet{
	{
		name: "Dr. Sarah Mitchell", spec: vetDomain.SpecializationGeneralPractice,
		email: "sarah.mitchell@datavet.com", phone: "555-0101",
		bio:        "Experienced general practitioner with 15 years of experience in small animal care.",
		hoursStart: "08:00", hoursEnd: "16:00", slot: 30,
	},
	{
		name: "Dr. James Rodriguez", spec: vetDomain.SpecializationSurgery,
		email: "james.rodriguez@datavet.com", phone: "555-0102",
		bio:        "Board-certified veterinary surgeon specializing in orthopedic procedures.",
		hoursStart: "09:00", hoursEnd: "17:00", slot: 60,
	},
	{
		name: "Dr. Emily Chen", spec: vetDomain.SpecializationDentistry,
		email: "emily.chen@datavet.com", phone: "555-0103",
		bio:        "Dental specialist focusing on preventive care and oral surgery.",
		hoursStart: "10:00", hoursEnd: "18:00", slot: 45,
	},
	{
		name: "Dr. Michael Thompson", spec: vetDomain.SpecializationEmergency,
		email: "michael.thompson@datavet.com", phone: "555-0104",
		bio:        "Emergency medicine specialist available for critical care.",
		hoursStart: "06:00", hoursEnd: "14:00", days: "MON,TUE,WED,THU,FRI,SAT,SUN", slot: 30,
	},
	{
		name: "Dr. Lisa Park", spec: vetDomain.SpecializationDermatology,
		email: "lisa.park@datavet.com", phone: "555-0105",
		bio:        "Dermatology expert treating skin conditions, allergies, and coat problems.",
		hoursStart: "09:00", hoursEnd: "17:00", slot: 30,
	},
	{
		name: "Dr. Robert Williams", spec: vetDomain.SpecializationExoticAnimals,
		email: "robert.williams@datavet.com", phone: "555-0106",
		bio:        "Specialist in exotic pets including reptiles, birds, and small mammals.",
		hoursStart: "10:00", hoursEnd: "18:00", days: "TUE,WED,THU,FRI,SAT", slot: 45,
	},
}

func seedVets(ctx context.Context, repo vetDomain.Repository, log *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Info("loading sample vet data")
	for _, s := range sampleVets {
		v, err := vetDomain.NewVet(
			s.name, s.spec, s.email, s.phone, s.bio, "",
			nil,
			s.hoursStart, s.hoursEnd, s.days, s.slot,
		)
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, v); err != nil {
			return err
		}
	}
	log.Info("sample vet data loaded", zap.Int("vets", len(sampleVets)))
	return nil
}
