package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openmercato/mercato/config"
	"github.com/openmercato/mercato/materials"
)

// Facility is any party that can hold currency and a material inventory.
// The matching engine depends only on this capability set; it never needs to
// know which concrete kind it is settling against.
type Facility interface {
	GetID() int64
	GetName() string
	TypeTag() TypeTag
	Balance() decimal.Decimal
	Earn(amount decimal.Decimal)
	Spend(amount decimal.Decimal)
	AddMaterial(m materials.Material, qty int64)
	Inventory() materials.Inventory
	Save(db *gorm.DB) (int64, error)
}

// Company is the persisted shape shared by every facility kind: identity
// columns plus the versioned data document.
type Company struct {
	ID        int64        `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name"`
	OwnerID   int64        `json:"owner_id"`
	TypeTag   TypeTag      `json:"type_tag"`
	Data      FacilityData `json:"data" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// facilityState carries the fields and behaviour common to all facility
// kinds. IDs are assigned by the store on first save and never change.
type facilityState struct {
	ID              int64
	Name            string
	OwnerID         int64
	Funds           decimal.Decimal
	Owns            materials.Inventory
	HumanWorkers    []WorkerSlot
	RobotWorkers    []WorkerSlot
	MaxHumanWorkers int
	MaxRobotWorkers int
}

func (f *facilityState) GetID() int64 {
	return f.ID
}

func (f *facilityState) GetName() string {
	return f.Name
}

func (f *facilityState) Balance() decimal.Decimal {
	return f.Funds
}

func (f *facilityState) Earn(amount decimal.Decimal) {
	f.Funds = f.Funds.Add(amount)
}

// Spend floors the balance at zero; the caller is expected to have checked
// affordability first.
func (f *facilityState) Spend(amount decimal.Decimal) {
	if amount.GreaterThan(f.Funds) {
		config.Logger.Warnf("facility %d tried to spend %s but only has %s", f.ID, amount, f.Funds)
		f.Funds = decimal.Zero
		return
	}

	f.Funds = f.Funds.Sub(amount)
}

func (f *facilityState) AddMaterial(m materials.Material, qty int64) {
	f.Owns.Add(m, qty)
}

func (f *facilityState) Inventory() materials.Inventory {
	return f.Owns
}

// HireWorker adds a player to the human roster.
func (f *facilityState) HireWorker(playerID int64) error {
	if len(f.HumanWorkers) >= f.MaxHumanWorkers {
		return fmt.Errorf("models: no open worker slots at %q", f.Name)
	}

	for _, slot := range f.HumanWorkers {
		if slot.PlayerID == playerID {
			return fmt.Errorf("models: player %d is already hired at %q", playerID, f.Name)
		}
	}

	f.HumanWorkers = append(f.HumanWorkers, WorkerSlot{PlayerID: playerID})
	return nil
}

// ResetShifts clears the worked flag on every roster entry, opening the next
// shift cycle.
func (f *facilityState) ResetShifts() {
	for i := range f.HumanWorkers {
		f.HumanWorkers[i].Worked = false
	}
	for i := range f.RobotWorkers {
		f.RobotWorkers[i].Worked = false
	}
}

// saveCompany persists the row and assigns the ID on first insert.
func (f *facilityState) saveCompany(db *gorm.DB, tag TypeTag, data FacilityData) (int64, error) {
	row := &Company{
		ID:      f.ID,
		Name:    f.Name,
		OwnerID: f.OwnerID,
		TypeTag: tag,
		Data:    data,
	}

	if err := db.Save(row).Error; err != nil {
		return 0, fmt.Errorf("models: save company %q: %w", f.Name, err)
	}

	f.ID = row.ID
	return f.ID, nil
}

// LoadFacility materializes the facility behind a (type tag, id) reference.
// A missing row surfaces as gorm.ErrRecordNotFound so callers can tell an
// orphaned reference apart from an I/O failure.
func LoadFacility(db *gorm.DB, tag TypeTag, id int64) (Facility, error) {
	switch tag {
	case TypeTagTierOne:
		f, err := LoadTierOne(db, id)
		if err != nil {
			return nil, err
		}
		return f, nil
	case TypeTagTierTwo:
		f, err := LoadTierTwo(db, id)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("models: unknown facility type tag %d", tag)
	}
}

func loadCompany(db *gorm.DB, tag TypeTag, id int64) (*Company, error) {
	var row Company

	if err := db.Where("type_tag = ?", tag).First(&row, id).Error; err != nil {
		return nil, err
	}

	return &row, nil
}

func stateFromCompany(row *Company) facilityState {
	inv := row.Data.Inventory
	if inv == nil {
		inv = materials.NewInventory()
	}

	return facilityState{
		ID:              row.ID,
		Name:            row.Name,
		OwnerID:         row.OwnerID,
		Funds:           row.Data.Balance,
		Owns:            inv,
		HumanWorkers:    row.Data.HumanWorkers,
		RobotWorkers:    row.Data.RobotWorkers,
		MaxHumanWorkers: row.Data.MaxHumanWorkers,
		MaxRobotWorkers: row.Data.MaxRobotWorkers,
	}
}

func (f *facilityState) baseData() FacilityData {
	return FacilityData{
		SchemaVersion:   FacilitySchemaVersion,
		Balance:         f.Funds,
		Inventory:       f.Owns,
		MaxHumanWorkers: f.MaxHumanWorkers,
		MaxRobotWorkers: f.MaxRobotWorkers,
		HumanWorkers:    f.HumanWorkers,
		RobotWorkers:    f.RobotWorkers,
	}
}
