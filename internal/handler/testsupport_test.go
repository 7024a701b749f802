package handler_test

import (
	"context"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/datavet/pet-service/internal/application"
	"github.com/datavet/pet-service/internal/domain"
	petDomain "github.com/datavet/pet-service/internal/domain/pet"
	vetDomain "github.com/datavet/pet-service/internal/domain/vet"
	"github.com/datavet/pet-service/internal/events"
	"github.com/datavet/pet-service/internal/handler"
)

// memPetRepo is an in-memory pet.Repository for handler tests.
type memPetRepo struct {
	mu   sync.Mutex
	pets map[uuid.UUID]*petDomain.Pet
}

func newMemPetRepo() *memPetRepo {
	return &memPetRepo{pets: make(map[uuid.UUID]*petDomain.Pet)}
}

func (r *memPetRepo) Save(_ context.Context, p *petDomain.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pets[p.ID()] = p
	return nil
}

func (r *memPetRepo) FindByID(_ context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pets[id]; ok {
		return p, nil
	}
	return nil, domain.NewNotFoundError("Pet", id.String())
}

func (r *memPetRepo) FindAll(_ context.Context) ([]*petDomain.Pet, error) {
	return r.filter(func(*petDomain.Pet) bool { return true }), nil
}

func (r *memPetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pets, id)
	return nil
}

func (r *memPetRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.pets)), nil
}

func (r *memPetRepo) FindBySpecies(_ context.Context, species petDomain.Species) ([]*petDomain.Pet, error) {
	return r.filter(func(p *petDomain.Pet) bool { return p.Species() == species }), nil
}

func (r *memPetRepo) FindByOwnerName(_ context.Context, owner string) ([]*petDomain.Pet, error) {
	return r.filter(func(p *petDomain.Pet) bool { return containsFold(p.OwnerName(), owner) }), nil
}

func (r *memPetRepo) FindByName(_ context.Context, name string) ([]*petDomain.Pet, error) {
	return r.filter(func(p *petDomain.Pet) bool { return containsFold(p.Name(), name) }), nil
}

func (r *memPetRepo) Search(_ context.Context, q string) ([]*petDomain.Pet, error) {
	return r.filter(func(p *petDomain.Pet) bool {
		return containsFold(p.Name(), q) || containsFold(p.Breed(), q) || containsFold(p.OwnerName(), q)
	}), nil
}

func (r *memPetRepo) SpeciesStatistics(_ context.Context) ([]petDomain.SpeciesCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[petDomain.Species]int64)
	for _, p := range r.pets {
		counts[p.Species()]++
	}
	stats := make([]petDomain.SpeciesCount, 0, len(counts))
	for s, c := range counts {
		stats = append(stats, petDomain.SpeciesCount{Species: s, Count: c})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Species < stats[j].Species
	})
	return stats, nil
}

func (r *memPetRepo) filter(keep func(*petDomain.Pet) bool) []*petDomain.Pet {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*petDomain.Pet
	for _, p := range r.pets {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out
}

// memVetRepo is an in-memory vet.Repository for handler tests.
type memVetRepo struct {
	mu   sync.Mutex
	vets map[uuid.UUID]*vetDomain.Vet
}

func newMemVetRepo() *memVetRepo {
	return &memVetRepo{vets: make(map[uuid.UUID]*vetDomain.Vet)}
}

func (r *memVetRepo) Save(_ context.Context, v *vetDomain.Vet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vets[v.ID()] = v
	return nil
}

func (r *memVetRepo) FindByID(_ context.Context, id uuid.UUID) (*vetDomain.Vet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vets[id]; ok {
		return v, nil
	}
	return nil, domain.NewNotFoundError("Vet", id.String())
}

func (r *memVetRepo) FindAll(_ context.Context) ([]*vetDomain.Vet, error) {
	return r.filter(func(*vetDomain.Vet) bool { return true }), nil
}

func (r *memVetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vets, id)
	return nil
}

func (r *memVetRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.vets)), nil
}

func (r *memVetRepo) FindByAvailable(_ context.Context, available bool) ([]*vetDomain.Vet, error) {
	return r.filter(func(v *vetDomain.Vet) bool { return v.Available() == available }), nil
}

func (r *memVetRepo) FindBySpecialization(_ context.Context, spec string) ([]*vetDomain.Vet, error) {
	return r.filter(func(v *vetDomain.Vet) bool { return v.Specialization() == spec }), nil
}

func (r *memVetRepo) FindByName(_ context.Context, name string) ([]*vetDomain.Vet, error) {
	return r.filter(func(v *vetDomain.Vet) bool { return containsFold(v.Name(), name) }), nil
}

func (r *memVetRepo) Search(_ context.Context, q string) ([]*vetDomain.Vet, error) {
	return r.filter(func(v *vetDomain.Vet) bool {
		return containsFold(v.Name(), q) || containsFold(v.Specialization(), q)
	}), nil
}

func (r *memVetRepo) DistinctSpecializations(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var specs []string
	for _, v := range r.vets {
		if !seen[v.Specialization()] {
			seen[v.Specialization()] = true
			specs = append(specs, v.Specialization())
		}
	}
	sort.Strings(specs)
	return specs, nil
}

func (r *memVetRepo) filter(keep func(*vetDomain.Vet) bool) []*vetDomain.Vet {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*vetDomain.Vet
	for _, v := range r.vets {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out
}

// captureSender records published pet events for assertions.
type captureSender struct {
	ch chan events.PetEvent
}

func newCaptureSender() *captureSender {
	return &captureSender{ch: make(chan events.PetEvent, 16)}
}

func (s *captureSender) Publish(_ context.Context, _, _ string, payload interface{}) error {
	s.ch <- payload.(events.PetEvent)
	return nil
}

func (s *captureSender) waitEvent(t *testing.T) events.PetEvent {
	t.Helper()
	select {
	case evt := <-s.ch:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for pet event")
		return events.PetEvent{}
	}
}

func (s *captureSender) assertNoEvent(t *testing.T) {
	t.Helper()
	select {
	case evt := <-s.ch:
		t.Fatalf("unexpected event published: %s", evt.EventType)
	case <-time.After(100 * time.Millisecond):
	}
}

// newTestRouter wires the full handler stack over in-memory repositories.
func newTestRouter(t *testing.T) (*gin.Engine, *memPetRepo, *memVetRepo, *captureSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	petRepo := newMemPetRepo()
	vetRepo := newMemVetRepo()
	sender := newCaptureSender()

	petService := application.NewPetService(petRepo, events.NewPetEventProducer(sender, log), log)
	vetService := application.NewVetService(vetRepo, log)

	router := gin.New()
	handler.NewPetHandler(petService).RegisterRoutes(&router.RouterGroup)
	handler.NewVetHandler(vetService).RegisterRoutes(&router.RouterGroup)
	return router, petRepo, vetRepo, sender
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
