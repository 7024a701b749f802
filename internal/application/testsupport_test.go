package application_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/datavet/pet-service/internal/domain"
	petDomain "github.com/datavet/pet-service/internal/domain/pet"
	vetDomain "github.com/datavet/pet-service/internal/domain/vet"
	"github.com/datavet/pet-service/internal/events"
)

// fakePetRepo is an in-memory pet.Repository.
type fakePetRepo struct {
	mu   sync.Mutex
	pets map[uuid.UUID]*petDomain.Pet
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{pets: make(map[uuid.UUID]*petDomain.Pet)}
}

func (r *fakePetRepo) Save(_ context.Context, p *petDomain.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pets[p.ID()] = p
	return nil
}

func (r *fakePetRepo) FindByID(_ context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pets[id]
	if !ok {
		return nil, domain.NewNotFoundError("Pet", id.String())
	}
	return p, nil
}

func (r *fakePetRepo) FindAll(_ context.Context) ([]*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r *fakePetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pets, id)
	return nil
}

func (r *fakePetRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.pets)), nil
}

func (r *fakePetRepo) FindBySpecies(_ context.Context, species petDomain.Species) ([]*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*petDomain.Pet
	for _, p := range r.sorted() {
		if p.Species() == species {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePetRepo) FindByOwnerName(_ context.Context, ownerName string) ([]*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*petDomain.Pet
	for _, p := range r.sorted() {
		if containsFold(p.OwnerName(), ownerName) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePetRepo) FindByName(_ context.Context, name string) ([]*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*petDomain.Pet
	for _, p := range r.sorted() {
		if containsFold(p.Name(), name) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePetRepo) Search(_ context.Context, query string) ([]*petDomain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*petDomain.Pet
	for _, p := range r.sorted() {
		if containsFold(p.Name(), query) ||
			containsFold(p.Breed(), query) ||
			containsFold(p.OwnerName(), query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePetRepo) SpeciesStatistics(_ context.Context) ([]petDomain.SpeciesCount, error) {
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

func (r *fakePetRepo) sorted() []*petDomain.Pet {
	out := make([]*petDomain.Pet, 0, len(r.pets))
	for _, p := range r.pets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out
}

// fakeVetRepo is an in-memory vet.Repository.
type fakeVetRepo struct {
	mu   sync.Mutex
	vets map[uuid.UUID]*vetDomain.Vet
}

func newFakeVetRepo() *fakeVetRepo {
	return &fakeVetRepo{vets: make(map[uuid.UUID]*vetDomain.Vet)}
}

func (r *fakeVetRepo) Save(_ context.Context, v *vetDomain.Vet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vets[v.ID()] = v
	return nil
}

func (r *fakeVetRepo) FindByID(_ context.Context, id uuid.UUID) (*vetDomain.Vet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vets[id]
	if !ok {
		return nil, domain.NewNotFoundError("Vet", id.String())
	}
	return v, nil
}

func (r *fakeVetRepo) FindAll(_ context.Context) ([]*vetDomain.Vet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r *fakeVetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vets, id)
	return nil
}

func (r *fakeVetRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.vets)), nil
}

func (r *fakeVetRepo) FindByAvailable(_ context.Context, available bool) ([]*vetDomain.Vet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*vetDomain.Vet
	for _, v := range r.sorted() {
		if v.Available() == available {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVetRepo) FindBySpecialization(_ context.Context, specialization string) ([]*vetDomain.Vet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*vetDomain.Vet
	for _, v := range r.sorted() {
		if v.Specialization() == specialization {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVetRepo) FindByName(_ context.Context, name string) ([]*vetDomain.Vet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*vetDomain.Vet
	for _, v := range r.sorted() {
		if containsFold(v.Name(), name) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVetRepo) Search(_ context.Context, query string) ([]*vetDomain.Vet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*vetDomain.Vet
	for _, v := range r.sorted() {
		if containsFold(v.Name(), query) || containsFold(v.Specialization(), query) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVetRepo) DistinctSpecializations(_ context.Context) ([]string, error) {
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

func (r *fakeVetRepo) sorted() []*vetDomain.Vet {
	out := make([]*vetDomain.Vet, 0, len(r.vets))
	for _, v := range r.vets {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out
}

// sentEvent records one message handed to the fake sender.
type sentEvent struct {
	Topic string
	Key   string
	Event events.PetEvent
}

// fakeSender captures published events, or fails every publish when err is
// set.
type fakeSender struct {
	err error
	ch  chan sentEvent
}

func newFakeSender() *fakeSender {
	return &fakeSender{ch: make(chan sentEvent, 16)}
}

func (f *fakeSender) Publish(_ context.Context, topic, key string, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.ch <- sentEvent{Topic: topic, Key: key, Event: payload.(events.PetEvent)}
	return nil
}

// waitForEvent blocks until the sender captured an event or the test times
// out. Event dispatch is asynchronous by design.
func waitForEvent(t *testing.T, sender *fakeSender) sentEvent {
	t.Helper()
	select {
	case evt := <-sender.ch:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for pet event")
		return sentEvent{}
	}
}

// assertNoEvent verifies that no event arrives within a short grace period.
func assertNoEvent(t *testing.T, sender *fakeSender) {
	t.Helper()
	select {
	case evt := <-sender.ch:
		t.Fatalf("unexpected event published: %s", evt.Event.EventType)
	case <-time.After(100 * time.Millisecond):
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
