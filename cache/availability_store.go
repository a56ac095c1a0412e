package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tutorhive/booking_gateway/models"
)

type entry struct {
	slots     []models.AvailabilitySlot
	fetchedAt time.Time
}

// AvailabilityStore keeps the most recently projected slots per tutor.
// Entries older than the TTL are treated as absent; the refresh job
// overwrites whatever is cached regardless of age.
type AvailabilityStore struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[uuid.UUID]entry
	now func() time.Time
}

func NewAvailabilityStore(ttl time.Duration) *AvailabilityStore {
	return &AvailabilityStore{
		ttl: ttl,
		m:   make(map[uuid.UUID]entry),
		now: time.Now,
	}
}

// Get returns a copy of the cached projection if it is still fresh.
func (s *AvailabilityStore) Get(tutorID uuid.UUID) ([]models.AvailabilitySlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[tutorID]
	if !ok || s.now().Sub(e.fetchedAt) > s.ttl {
		return nil, false
	}
	return cloneSlots(e.slots), true
}

func (s *AvailabilityStore) Put(tutorID uuid.UUID, slots []models.AvailabilitySlot) {
	stored := cloneSlots(slots)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[tutorID] = entry{slots: stored, fetchedAt: s.now()}
}

// cloneSlots detaches a slot slice from its source, including the
// RecurrenceEndDate pointers, so neither side can reach the other's data.
func cloneSlots(slots []models.AvailabilitySlot) []models.AvailabilitySlot {
	out := make([]models.AvailabilitySlot, len(slots))
	copy(out, slots)
	for i := range out {
		if out[i].RecurrenceEndDate != nil {
			until := *out[i].RecurrenceEndDate
			out[i].RecurrenceEndDate = &until
		}
	}
	return out
}

// Tutors lists every tutor with a cached entry, fresh or stale, so the
// refresh job knows whose slots to re-fetch.
func (s *AvailabilityStore) Tutors() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(s.m))
	for id := range s.m {
		ids = append(ids, id)
	}
	return ids
}
