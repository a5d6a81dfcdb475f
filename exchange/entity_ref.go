package exchange

import "github.com/openmercato/mercato/models"

// EntityRef is the handle an order holds on its facility. A borrowed handle
// wraps a value the caller still observes after Submit returns, an owned
// handle wraps a counterparty the engine loaded from storage for the
// duration of one match. Both expose the same capability surface; the flag
// records who else may be holding the value.
type EntityRef struct {
	facility models.Facility
	owned    bool
}

// Borrow wraps a caller-held facility. The engine mutates it in place and
// persists its final state, but the caller keeps using the same value.
func Borrow(f models.Facility) EntityRef {
	return EntityRef{facility: f}
}

// Own wraps a facility the engine materialized itself; nothing outside the
// current match references it.
func Own(f models.Facility) EntityRef {
	return EntityRef{facility: f, owned: true}
}

func (r EntityRef) Facility() models.Facility {
	return r.facility
}

func (r EntityRef) Owned() bool {
	return r.owned
}
