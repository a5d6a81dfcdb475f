package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openmercato/mercato/materials"
)

// Offer is one resting order on the book. A row exists only while the order
// is live: fully filled orders are deleted, partial fills update Amount in
// place, and the row id is stable in between.
type Offer struct {
	ID         int64           `json:"id" gorm:"primaryKey"`
	UUID       uuid.UUID       `json:"uuid" gorm:"type:text"`
	Item       string          `json:"item" validate:"required"`
	Side       Side            `json:"side"`
	Amount     int64           `json:"amount" validate:"required|ValidateAmount"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:numeric" validate:"ValidateUnitPrice"`
	EntityID   int64           `json:"entity_id" validate:"required"`
	EntityType TypeTag         `json:"entity_type" validate:"required"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (o Offer) ValidateAmount(amount int64) bool {
	return amount > 0
}

func (o Offer) ValidateUnitPrice(price decimal.Decimal) bool {
	return !price.IsNegative()
}

// Material resolves the stored item key against the catalog.
func (o *Offer) Material() (materials.Material, error) {
	return materials.Parse(o.Item)
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.Amount <= 0 {
		return fmt.Errorf("models: refusing to persist offer with amount %d", o.Amount)
	}

	if o.UnitPrice.IsNegative() {
		return fmt.Errorf("models: refusing to persist offer with negative price %s", o.UnitPrice)
	}

	if o.UUID == uuid.Nil {
		o.UUID = uuid.New()
	}

	return nil
}

// Insert appends the offer as a new resting row after running the struct
// validators.
func (o *Offer) Insert(db *gorm.DB) error {
	if v := validate.Struct(o); !v.Validate() {
		return fmt.Errorf("models: invalid offer: %s", v.Errors.One())
	}

	return db.Create(o).Error
}

// UpdateAmount writes the offer's current Amount back to its row.
func (o *Offer) UpdateAmount(db *gorm.DB) error {
	return db.Model(o).Update("amount", o.Amount).Error
}

// Delete removes the resting row, used when the offer is fully filled.
func (o *Offer) Delete(db *gorm.DB) error {
	return db.Delete(o).Error
}

// FindCrossing returns the resting rows a taker order can trade against, in
// price-priority order: ascending price for a buy taker (cheapest sellers
// first), descending for a sell taker (highest bidders first). Rows tied on
// price come back earliest-inserted first.
func FindCrossing(db *gorm.DB, item materials.Material, taker Side, price decimal.Decimal) ([]*Offer, error) {
	tx := db.Where("item = ? AND side = ?", item.Key(), bool(taker.Opposite()))

	if taker == SideBuy {
		tx = tx.Where("unit_price <= ?", price).Order("unit_price ASC, id ASC")
	} else {
		tx = tx.Where("unit_price >= ?", price).Order("unit_price DESC, id ASC")
	}

	var offers []*Offer
	if err := tx.Find(&offers).Error; err != nil {
		return nil, err
	}

	return offers, nil
}

// BestBid returns the highest resting buy price for the item. The second
// return is false when no buy interest rests on the book.
func BestBid(db *gorm.DB, item materials.Material) (decimal.Decimal, bool, error) {
	return bestPrice(db, item, SideBuy)
}

// BestAsk returns the lowest resting sell price for the item.
func BestAsk(db *gorm.DB, item materials.Material) (decimal.Decimal, bool, error) {
	return bestPrice(db, item, SideSell)
}

func bestPrice(db *gorm.DB, item materials.Material, side Side) (decimal.Decimal, bool, error) {
	ordering := "unit_price ASC"
	if side == SideBuy {
		ordering = "unit_price DESC"
	}

	var offer Offer
	err := db.Where("item = ? AND side = ?", item.Key(), bool(side)).Order(ordering).First(&offer).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	return offer.UnitPrice, true, nil
}

// RestingOffers returns every live row for an item, used to build depth
// views.
func RestingOffers(db *gorm.DB, item materials.Material) ([]*Offer, error) {
	var offers []*Offer

	if err := db.Where("item = ?", item.Key()).Order("id ASC").Find(&offers).Error; err != nil {
		return nil, err
	}

	return offers, nil
}
