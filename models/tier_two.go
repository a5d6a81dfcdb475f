package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openmercato/mercato/materials"
)

// TierTwoFacility is a manufacturer: it consumes a recipe's worth of inputs
// from its inventory and produces the recipe output.
type TierTwoFacility struct {
	facilityState

	Recipe materials.Recipe
}

// NewTierTwoFacility builds a manufacturer against the owner's funds.
// Returns nil without error when the owner cannot afford it.
func NewTierTwoFacility(db *gorm.DB, name string, recipe materials.Recipe, cost decimal.Decimal, owner *Player) (*TierTwoFacility, error) {
	if owner.Funds.LessThan(cost) {
		return nil, nil
	}

	owner.Spend(cost)

	f := &TierTwoFacility{
		facilityState: facilityState{
			Name:            name,
			OwnerID:         owner.ID,
			Funds:           decimal.Zero,
			Owns:            materials.NewInventory(),
			MaxHumanWorkers: 10,
			MaxRobotWorkers: 1,
		},
		Recipe: recipe,
	}

	id, err := f.Save(db)
	if err != nil {
		return nil, err
	}

	owner.EditShares(id, 10000)
	if err := owner.Save(db); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *TierTwoFacility) TypeTag() TypeTag {
	return TypeTagTierTwo
}

// Produce consumes inputs for the given number of output units and credits
// the output. Fails without mutating anything when inputs are short.
func (f *TierTwoFacility) Produce(units int64) error {
	if units <= 0 {
		return fmt.Errorf("models: cannot produce %d units", units)
	}

	for _, in := range f.Recipe.Inputs {
		needed := in.Amount * units
		if f.Owns.Get(in.Material) < needed {
			return fmt.Errorf("models: %q is short of %s: need %d, have %d",
				f.Name, in.Material.Key(), needed, f.Owns.Get(in.Material))
		}
	}

	for _, in := range f.Recipe.Inputs {
		f.Owns.Sub(in.Material, in.Amount*units)
	}

	f.Owns.Add(f.Recipe.Output, units)
	return nil
}

func (f *TierTwoFacility) Save(db *gorm.DB) (int64, error) {
	data := f.baseData()
	recipe := f.Recipe
	data.Recipe = &recipe

	return f.saveCompany(db, TypeTagTierTwo, data)
}

func LoadTierTwo(db *gorm.DB, id int64) (*TierTwoFacility, error) {
	row, err := loadCompany(db, TypeTagTierTwo, id)
	if err != nil {
		return nil, err
	}

	if row.Data.Recipe == nil {
		return nil, fmt.Errorf("models: tier-two facility %d has no recipe in its data document", id)
	}

	return &TierTwoFacility{
		facilityState: stateFromCompany(row),
		Recipe:        *row.Data.Recipe,
	}, nil
}
