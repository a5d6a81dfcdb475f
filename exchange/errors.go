package exchange

import "fmt"

// OrphanOfferError reports a resting row whose owning facility cannot be
// loaded. The match that hit it is rolled back; the book itself is left
// untouched so the orphaned row can be inspected or repaired.
type OrphanOfferError struct {
	OfferID    int64
	EntityType int
	EntityID   int64
}

func (e *OrphanOfferError) Error() string {
	return fmt.Sprintf("exchange: offer %d references missing facility (type %d, id %d)",
		e.OfferID, e.EntityType, e.EntityID)
}
