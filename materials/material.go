package materials

import "fmt"

// Material is the closed set of tradeable goods. The string key of each
// material is the storage identifier used by offer rows and facility data
// documents, so keys must stay stable across releases.
type Material uint8

const (
	Grain Material = iota
	Electricity
	Water
	Food
)

var all = []Material{Grain, Electricity, Water, Food}

var keys = map[Material]string{
	Grain:       "Grain",
	Electricity: "Electricity",
	Water:       "Water",
	Food:        "Food",
}

var units = map[Material]string{
	Grain:       "kg",
	Electricity: "kWh",
	Water:       "liters",
	Food:        "meals",
}

// UnknownKeyError reports a persisted material key that is not part of the
// catalog, typically a row written by a newer or corrupted build.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("materials: unknown material key %q", e.Key)
}

// All returns every material in catalog order.
func All() []Material {
	out := make([]Material, len(all))
	copy(out, all)
	return out
}

// Key returns the stable storage identifier of the material.
func (m Material) Key() string {
	return keys[m]
}

// Unit returns the unit of measure used when displaying the material.
func (m Material) Unit() string {
	return units[m]
}

func (m Material) String() string {
	return fmt.Sprintf("%s (%s)", keys[m], units[m])
}

// MarshalText renders the material as its storage key, which also makes it
// usable as a JSON map key inside facility data documents.
func (m Material) MarshalText() ([]byte, error) {
	return []byte(m.Key()), nil
}

func (m *Material) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// Parse resolves a storage key back to its Material.
func Parse(key string) (Material, error) {
	for _, m := range all {
		if keys[m] == key {
			return m, nil
		}
	}

	return 0, &UnknownKeyError{Key: key}
}
