package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openmercato/mercato/materials"
)

// FacilitySchemaVersion is bumped whenever the layout of the data document
// changes. Loads reject documents written with a different version.
const FacilitySchemaVersion = 1

// WorkerSlot is one roster entry: the hired player and whether they already
// worked the current shift cycle.
type WorkerSlot struct {
	PlayerID int64 `json:"player_id"`
	Worked   bool  `json:"worked"`
}

// FacilityData is the structured document stored in the companies.data
// column. It carries everything about a facility that does not live in its
// own column: balance, inventory, the worker roster, production rates and,
// for manufacturers, the recipe.
type FacilityData struct {
	SchemaVersion   int                 `json:"schema_version"`
	Balance         decimal.Decimal     `json:"balance"`
	Inventory       materials.Inventory `json:"inventory"`
	Creates         string              `json:"creates,omitempty"`
	HumanProdRate   int64               `json:"human_prod_rate,omitempty"`
	RobotProdRate   int64               `json:"robot_prod_rate,omitempty"`
	MaxHumanWorkers int                 `json:"max_human_workers"`
	MaxRobotWorkers int                 `json:"max_robot_workers"`
	HumanWorkers    []WorkerSlot        `json:"human_workers"`
	RobotWorkers    []WorkerSlot        `json:"robot_workers"`
	Recipe          *materials.Recipe   `json:"recipe,omitempty"`
}

func (d FacilityData) Validate() error {
	if d.SchemaVersion != FacilitySchemaVersion {
		return fmt.Errorf("models: facility data schema version %d, want %d", d.SchemaVersion, FacilitySchemaVersion)
	}

	if d.Balance.IsNegative() {
		return fmt.Errorf("models: facility data has negative balance %s", d.Balance)
	}

	for m, qty := range d.Inventory {
		if qty < 0 {
			return fmt.Errorf("models: facility data has negative inventory %d for %s", qty, m.Key())
		}
	}

	if d.Creates != "" {
		if _, err := materials.Parse(d.Creates); err != nil {
			return err
		}
	}

	return nil
}

func (d FacilityData) Value() (driver.Value, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}

	return string(raw), nil
}

func (d *FacilityData) Scan(value interface{}) error {
	var raw []byte

	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into FacilityData", value)
	}

	if err := json.Unmarshal(raw, d); err != nil {
		return fmt.Errorf("models: decode facility data: %w", err)
	}

	return d.Validate()
}
