package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhive/booking_gateway/availability"
	"github.com/tutorhive/booking_gateway/cache"
	"github.com/tutorhive/booking_gateway/models"
)

// SlotFetcher is the slice of the backend client the refresh job needs.
type SlotFetcher interface {
	GetAvailableSlots(ctx context.Context, tutorID uuid.UUID, from, to time.Time) ([]models.AvailabilitySlot, error)
}

// RefreshAvailability re-fetches and re-projects the slots of every tutor
// currently cached, so projections viewed once stay warm without each page
// load paying for a backend round trip. A failed tutor is skipped, not
// retried; the next run or the next cache miss picks it up.
func RefreshAvailability(api SlotFetcher, store *cache.AvailabilityStore, lookahead time.Duration, log *zap.Logger) {
	log.Debug("running job: RefreshAvailability")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	for _, tutorID := range store.Tutors() {
		slots, err := api.GetAvailableSlots(ctx, tutorID, now, now.Add(lookahead))
		if err != nil {
			log.Warn("failed to refresh tutor availability",
				zap.String("tutor_id", tutorID.String()),
				zap.Error(err),
			)
			continue
		}
		store.Put(tutorID, availability.Project(slots))
	}
}
