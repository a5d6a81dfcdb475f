package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// TypeTag distinguishes the concrete facility kinds sharing the companies
// table. Tags are persisted, never renumber them.
type TypeTag int

const (
	TypeTagTierOne TypeTag = 1
	TypeTagTierTwo TypeTag = 2
)

// Side of an offer. Stored as a boolean column with Buy = true.
type Side bool

const (
	SideBuy  Side = true
	SideSell Side = false
)

func (s Side) Opposite() Side {
	return !s
}

func (s Side) String() string {
	if s == SideBuy {
		return "buy"
	}

	return "sell"
}

// MarshalJSON renders the side as "buy"/"sell" on API surfaces; the storage
// representation stays boolean.
func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(raw []byte) error {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return err
	}

	side, err := ParseSide(text)
	if err != nil {
		return err
	}

	*s = side
	return nil
}

func ParseSide(raw string) (Side, error) {
	switch raw {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	default:
		return SideSell, fmt.Errorf("models: unknown order side %q", raw)
	}
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Player{}, &Company{}, &Offer{}, &Trade{})
}
