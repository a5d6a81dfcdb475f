package materials

// Inventory tracks on-hand quantities per material. Absent materials count as
// zero. A nil Inventory is read-only; allocate with NewInventory before
// calling Add or Sub.
type Inventory map[Material]int64

func NewInventory() Inventory {
	return make(Inventory)
}

func (inv Inventory) Get(m Material) int64 {
	return inv[m]
}

func (inv Inventory) Add(m Material, qty int64) {
	inv[m] += qty
}

// Sub removes up to qty units, flooring at zero.
func (inv Inventory) Sub(m Material, qty int64) {
	if inv[m] <= qty {
		inv[m] = 0
		return
	}

	inv[m] -= qty
}

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for m, qty := range inv {
		out[m] = qty
	}

	return out
}
