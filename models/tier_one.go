package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openmercato/mercato/materials"
)

// TierOneBase is the blueprint a tier-one facility is built from.
type TierOneBase struct {
	TypeName        string
	HumanProdRate   int64
	RobotProdRate   int64
	Creates         materials.Material
	MaxHumanWorkers int
	MaxRobotWorkers int
	Cost            decimal.Decimal
}

func NewTierOneBase(typeName string, humanProdRate int64, creates materials.Material) TierOneBase {
	return TierOneBase{
		TypeName:        typeName,
		HumanProdRate:   humanProdRate,
		RobotProdRate:   humanProdRate * 2,
		Creates:         creates,
		MaxHumanWorkers: 10,
		MaxRobotWorkers: 1,
		Cost:            decimal.NewFromInt(200),
	}
}

// TierOneFacility is a raw producer: worker shifts turn directly into units
// of one material.
type TierOneFacility struct {
	facilityState

	Creates       materials.Material
	HumanProdRate int64
	RobotProdRate int64
}

// NewTierOneFacility builds a facility against the owner's funds. Returns
// nil without error when the owner cannot afford the base cost.
func NewTierOneFacility(db *gorm.DB, base TierOneBase, name string, owner *Player) (*TierOneFacility, error) {
	if owner.Funds.LessThan(base.Cost) {
		return nil, nil
	}

	owner.Spend(base.Cost)

	f := &TierOneFacility{
		facilityState: facilityState{
			Name:            name,
			OwnerID:         owner.ID,
			Funds:           decimal.Zero,
			Owns:            materials.NewInventory(),
			MaxHumanWorkers: base.MaxHumanWorkers,
			MaxRobotWorkers: base.MaxRobotWorkers,
		},
		Creates:       base.Creates,
		HumanProdRate: base.HumanProdRate,
		RobotProdRate: base.RobotProdRate,
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

func (f *TierOneFacility) TypeTag() TypeTag {
	return TypeTagTierOne
}

// WorkShift records one worked shift for the player and credits the produced
// material. A player can work at most once per shift cycle.
func (f *TierOneFacility) WorkShift(player *Player) error {
	for i := range f.HumanWorkers {
		slot := &f.HumanWorkers[i]
		if slot.PlayerID != player.ID {
			continue
		}

		if slot.Worked {
			return fmt.Errorf("models: player %d already worked this cycle at %q", player.ID, f.Name)
		}

		if player.Energy < shiftEnergyCost {
			return fmt.Errorf("models: player %d does not have enough energy", player.ID)
		}

		slot.Worked = true
		player.Energy -= shiftEnergyCost
		f.Owns.Add(f.Creates, f.HumanProdRate)
		return nil
	}

	return fmt.Errorf("models: player %d is not hired at %q", player.ID, f.Name)
}

func (f *TierOneFacility) Save(db *gorm.DB) (int64, error) {
	data := f.baseData()
	data.Creates = f.Creates.Key()
	data.HumanProdRate = f.HumanProdRate
	data.RobotProdRate = f.RobotProdRate

	return f.saveCompany(db, TypeTagTierOne, data)
}

func LoadTierOne(db *gorm.DB, id int64) (*TierOneFacility, error) {
	row, err := loadCompany(db, TypeTagTierOne, id)
	if err != nil {
		return nil, err
	}

	creates, err := materials.Parse(row.Data.Creates)
	if err != nil {
		return nil, err
	}

	return &TierOneFacility{
		facilityState: stateFromCompany(row),
		Creates:       creates,
		HumanProdRate: row.Data.HumanProdRate,
		RobotProdRate: row.Data.RobotProdRate,
	}, nil
}
