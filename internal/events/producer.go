package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	petDomain "github.com/datavet/pet-service/internal/domain/pet"
)

// TopicPetEvents is the topic carrying pet mutation notifications.
const TopicPetEvents = "pet-events"

// Pet event types.
const (
	PetCreated = "PET_CREATED"
	PetUpdated = "PET_UPDATED"
	PetDeleted = "PET_DELETED"
)

// PetEvent is the flat notification payload consumed downstream. Created and
// updated events carry the pet snapshot fields; deleted events carry only the
// id. Timestamp is delivery time, not domain time.
type PetEvent struct {
	EventType string    `json:"eventType"`
	PetID     uuid.UUID `json:"petId"`
	PetName   string    `json:"petName,omitempty"`
	Species   string    `json:"species,omitempty"`
	OwnerName string    `json:"ownerName,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sender is the outbound message channel the producer publishes through.
type Sender interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// PetEventProducer emits best-effort pet mutation notifications. Delivery is
// fire-and-forget: the caller never waits, failures are logged and dropped.
// The store is the record of truth, not the event stream.
type PetEventProducer struct {
	sender  Sender
	logger  *zap.Logger
	timeout time.Duration
}

// NewPetEventProducer creates a PetEventProducer.
func NewPetEventProducer(sender Sender, logger *zap.Logger) *PetEventProducer {
	return &PetEventProducer{
		sender:  sender,
		logger:  logger,
		timeout: 10 * time.Second,
	}
}

// PetCreated emits a PET_CREATED notification for the given pet.
func (p *PetEventProducer) PetCreated(pet *petDomain.Pet) {
	p.dispatch(snapshotEvent(PetCreated, pet))
}

// PetUpdated emits a PET_UPDATED notification for the given pet.
func (p *PetEventProducer) PetUpdated(pet *petDomain.Pet) {
	p.dispatch(snapshotEvent(PetUpdated, pet))
}

// PetDeleted emits a PET_DELETED notification carrying only the pet id.
func (p *PetEventProducer) PetDeleted(petID uuid.UUID) {
	p.dispatch(PetEvent{
		EventType: PetDeleted,
		PetID:     petID,
		Timestamp: time.Now().UTC(),
	})
}

// dispatch hands the event to the sender on a background goroutine so the
// request path never blocks on the broker.
func (p *PetEventProducer) dispatch(event PetEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		if err := p.sender.Publish(ctx, TopicPetEvents, event.PetID.String(), event); err != nil {
			p.logger.Warn("pet event not delivered, dropping",
				zap.String("event_type", event.EventType),
				zap.String("pet_id", event.PetID.String()),
				zap.Error(err),
			)
			return
		}
		p.logger.Info("pet event published",
			zap.String("event_type", event.EventType),
			zap.String("pet_id", event.PetID.String()),
		)
	}()
}

func snapshotEvent(eventType string, pet *petDomain.Pet) PetEvent {
	return PetEvent{
		EventType: eventType,
		PetID:     pet.ID(),
		PetName:   pet.Name(),
		Species:   string(pet.Species()),
		OwnerName: pet.OwnerName(),
		Timestamp: time.Now().UTC(),
	}
}
