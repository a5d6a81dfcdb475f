package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openmercato/mercato/config"
)

// shiftEnergyCost is what one worked shift takes out of a player.
const shiftEnergyCost = 4

// ShareLedger maps facility id to the number of shares held.
type ShareLedger map[int64]int64

func (l ShareLedger) Value() (driver.Value, error) {
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}

	return string(raw), nil
}

func (l *ShareLedger) Scan(value interface{}) error {
	var raw []byte

	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into ShareLedger", value)
	}

	return json.Unmarshal(raw, l)
}

// Player owns facilities and works shifts. Only the pieces the exchange's
// collaborators need are modelled here.
type Player struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	Username  string          `json:"username" gorm:"uniqueIndex"`
	Funds     decimal.Decimal `json:"funds" gorm:"type:numeric"`
	Energy    int             `json:"energy" gorm:"default:10"`
	Shares    ShareLedger     `json:"shares" gorm:"type:text"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (p *Player) Earn(amount decimal.Decimal) {
	p.Funds = p.Funds.Add(amount)
}

// Spend floors the balance at zero, mirroring facility spending.
func (p *Player) Spend(amount decimal.Decimal) {
	if amount.GreaterThan(p.Funds) {
		config.Logger.Warnf("player %d tried to spend %s but only has %s", p.ID, amount, p.Funds)
		p.Funds = decimal.Zero
		return
	}

	p.Funds = p.Funds.Sub(amount)
}

// EditShares adjusts the player's holding in a facility by delta shares.
func (p *Player) EditShares(facilityID int64, delta int64) {
	if p.Shares == nil {
		p.Shares = make(ShareLedger)
	}

	p.Shares[facilityID] += delta
}

func (p *Player) Save(db *gorm.DB) error {
	return db.Save(p).Error
}

func LoadPlayer(db *gorm.DB, id int64) (*Player, error) {
	var player Player

	if err := db.First(&player, id).Error; err != nil {
		return nil, err
	}

	return &player, nil
}
