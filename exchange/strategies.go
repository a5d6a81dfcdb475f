package exchange

import (
	"math"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openmercato/mercato/config"
	"github.com/openmercato/mercato/materials"
	"github.com/openmercato/mercato/models"
)

// QuickBuy submits a buy order for the facility at the caller's price.
func QuickBuy(db *gorm.DB, f models.Facility, item materials.Material, price decimal.Decimal, amount int64) error {
	order := &Order{
		Entity:   Borrow(f),
		Item:     item,
		Side:     models.SideBuy,
		Quantity: amount,
		Price:    price,
	}

	return order.Submit(db)
}

// QuickSell submits a sell order for the facility at the caller's price.
func QuickSell(db *gorm.DB, f models.Facility, item materials.Material, price decimal.Decimal, amount int64) error {
	order := &Order{
		Entity:   Borrow(f),
		Item:     item,
		Side:     models.SideSell,
		Quantity: amount,
		Price:    price,
	}

	return order.Submit(db)
}

// SellAll lists the facility's entire holding of every material at the best
// resting bid. Materials with no buy interest are skipped and reported.
func SellAll(db *gorm.DB, f models.Facility) error {
	for _, item := range materials.All() {
		held := f.Inventory().Get(item)
		if held == 0 {
			continue
		}

		price, ok, err := models.BestBid(db, item)
		if err != nil {
			return err
		}
		if !ok {
			config.Logger.Infof("exchange: no resting buy interest for %s, skipping", item.Key())
			continue
		}

		if err := QuickSell(db, f, item, price, held); err != nil {
			return err
		}
	}

	return nil
}

// BuyNeeded covers the facility's shortfall for producing unitsWorthOf units
// of the recipe, buying each missing input at the best resting ask.
// Materials with no sell interest are skipped and reported.
func BuyNeeded(db *gorm.DB, f models.Facility, recipe materials.Recipe, unitsWorthOf int64) error {
	for _, in := range recipe.Inputs {
		needed := saturatingMul(in.Amount, unitsWorthOf)

		held := f.Inventory().Get(in.Material)
		if needed <= held {
			continue
		}
		shortfall := needed - held

		price, ok, err := models.BestAsk(db, in.Material)
		if err != nil {
			return err
		}
		if !ok {
			config.Logger.Infof("exchange: no resting sell interest for %s, skipping", in.Material.Key())
			continue
		}

		if err := QuickBuy(db, f, in.Material, price, shortfall); err != nil {
			return err
		}
	}

	return nil
}

// saturatingMul multiplies non-negative quantities, clamping at MaxInt64
// instead of overflowing.
func saturatingMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}

	if a > math.MaxInt64/b {
		return math.MaxInt64
	}

	return a * b
}
