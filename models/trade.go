package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Trade is the settlement journal: one row per executed leg and always
// priced at the maker's resting price.
type Trade struct {
	ID         int64           `json:"id" gorm:"primaryKey"`
	Item       string          `json:"item"`
	Price      decimal.Decimal `json:"price" gorm:"type:numeric"`
	Amount     int64           `json:"amount"`
	Total      decimal.Decimal `json:"total" gorm:"type:numeric"`
	BuyerID    int64           `json:"buyer_id"`
	BuyerType  TypeTag         `json:"buyer_type"`
	SellerID   int64           `json:"seller_id"`
	SellerType TypeTag         `json:"seller_type"`
	TakerSide  Side            `json:"taker_side"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RecentTrades returns the newest legs for an item.
func RecentTrades(db *gorm.DB, item string, limit int) ([]*Trade, error) {
	var trades []*Trade

	if err := db.Where("item = ?", item).Order("id DESC").Limit(limit).Find(&trades).Error; err != nil {
		return nil, err
	}

	return trades, nil
}
