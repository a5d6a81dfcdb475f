package helpers

import (
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"

	"github.com/openmercato/mercato/materials"
	"github.com/openmercato/mercato/models"
)

type CreateOrderParams struct {
	FacilityID   int64           `json:"facility_id" form:"facility_id" validate:"required"`
	FacilityType int             `json:"facility_type" form:"facility_type" validate:"required|ValidateFacilityType"`
	Item         string          `json:"item" form:"item" validate:"required|ValidateItem"`
	Side         string          `json:"side" form:"side" validate:"required|ValidateSide"`
	Amount       int64           `json:"amount" form:"amount" validate:"required|ValidateAmount"`
	Price        decimal.Decimal `json:"price" form:"price" validate:"ValidatePrice"`
}

func (p CreateOrderParams) Messages() map[string]string {
	invalidMessage := "market.order.invalid_{field}"

	return validate.MS{
		"required":             invalidMessage,
		"ValidateFacilityType": invalidMessage,
		"ValidateItem":         "market.order.unknown_item",
		"ValidateSide":         invalidMessage,
		"ValidateAmount":       "market.order.non_positive_amount",
		"ValidatePrice":        "market.order.negative_price",
	}
}

func (p CreateOrderParams) ValidateFacilityType(tag int) bool {
	return models.TypeTag(tag) == models.TypeTagTierOne || models.TypeTag(tag) == models.TypeTagTierTwo
}

func (p CreateOrderParams) ValidateItem(item string) bool {
	_, err := materials.Parse(item)
	return err == nil
}

func (p CreateOrderParams) ValidateSide(side string) bool {
	_, err := models.ParseSide(side)
	return err == nil
}

func (p CreateOrderParams) ValidateAmount(amount int64) bool {
	return amount > 0
}

func (p CreateOrderParams) ValidatePrice(price decimal.Decimal) bool {
	return !price.IsNegative()
}
