package exchange

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openmercato/mercato/config"
	"github.com/openmercato/mercato/materials"
	"github.com/openmercato/mercato/models"
)

// Order is a transient trade intent: one submission against the book. It
// ceases to matter once Submit returns; its persisted footprint is either
// nothing (fully filled), one new resting row (remainder), or the mutation
// of the rows it matched against.
type Order struct {
	Entity   EntityRef
	Item     materials.Material
	Side     models.Side
	Quantity int64
	Price    decimal.Decimal
}

// Valid reports whether the order may enter matching. A buy must be fully
// covered by the owner's balance at submission time; the engine does not
// re-check this per leg. A sell is accepted regardless of stock on hand.
func (o *Order) Valid() bool {
	return o.reasonInvalid() == ""
}

// reasonInvalid names the first failed precondition, empty when the order may
// enter matching.
func (o *Order) reasonInvalid() string {
	if o.Quantity <= 0 {
		return fmt.Sprintf("non-positive quantity %d", o.Quantity)
	}

	if o.Price.IsNegative() {
		return fmt.Sprintf("negative price %s", o.Price)
	}

	if o.Side == models.SideBuy {
		cost := o.Price.Mul(decimal.NewFromInt(o.Quantity))
		if o.Entity.Facility().Balance().LessThan(cost) {
			return fmt.Sprintf("cost %s exceeds balance %s", cost, o.Entity.Facility().Balance())
		}
	}

	return ""
}

// Submit runs the order through the matching engine. An invalid order is a
// clean no-op: nothing is persisted and no error is returned. The whole
// match, every settled leg plus the resting remainder, commits or rolls
// back as one transaction; on error the in-memory facility mutations are
// stale and callers should reload before reusing the value.
func (o *Order) Submit(db *gorm.DB) error {
	facility := o.Entity.Facility()

	if reason := o.reasonInvalid(); reason != "" {
		config.Logger.Warnf("exchange: rejecting %s order from facility %d for %d %s at %s: %s",
			o.Side, facility.GetID(), o.Quantity, o.Item.Key(), o.Price, reason)
		return nil
	}

	if o.Side == models.SideSell {
		if held := facility.Inventory().Get(o.Item); held < o.Quantity {
			// Listing unbacked stock is accepted but worth flagging:
			// nothing stops the seller from over-committing inventory.
			config.Logger.Warnf("exchange: facility %d lists %d %s but holds only %d",
				facility.GetID(), o.Quantity, o.Item.Key(), held)
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return o.match(tx)
	})
}

func (o *Order) match(tx *gorm.DB) error {
	candidates, err := models.FindCrossing(tx, o.Item, o.Side, o.Price)
	if err != nil {
		return fmt.Errorf("exchange: query crossing offers: %w", err)
	}

	taker := o.Entity.Facility()

	for _, candidate := range candidates {
		if o.Quantity == 0 {
			break
		}

		var maker EntityRef
		if candidate.EntityID == taker.GetID() && candidate.EntityType == taker.TypeTag() {
			// The taker crossed its own resting offer. Loading a second
			// copy of the row would let the final taker save clobber the
			// maker-side mutations, so both legs run on the live value.
			maker = o.Entity
		} else {
			counterparty, err := models.LoadFacility(tx, candidate.EntityType, candidate.EntityID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &OrphanOfferError{
					OfferID:    candidate.ID,
					EntityType: int(candidate.EntityType),
					EntityID:   candidate.EntityID,
				}
			}
			if err != nil {
				return fmt.Errorf("exchange: load facility for offer %d: %w", candidate.ID, err)
			}

			maker = Own(counterparty)
		}

		tradeQty := min64(o.Quantity, candidate.Amount)

		// Settlement is always at the maker's resting price; price
		// improvement accrues to the taker.
		if err := o.settleLeg(tx, maker, tradeQty, candidate.UnitPrice); err != nil {
			return err
		}

		o.Quantity -= tradeQty
		candidate.Amount -= tradeQty

		if candidate.Amount == 0 {
			if err := candidate.Delete(tx); err != nil {
				return fmt.Errorf("exchange: delete filled offer %d: %w", candidate.ID, err)
			}
		} else {
			if err := candidate.UpdateAmount(tx); err != nil {
				return fmt.Errorf("exchange: update offer %d: %w", candidate.ID, err)
			}
		}

		config.Logger.Infof("exchange: traded %d %s at %s, facility %d with facility %d",
			tradeQty, o.Item.Key(), candidate.UnitPrice, taker.GetID(), maker.Facility().GetID())
	}

	if o.Quantity > 0 {
		resting := &models.Offer{
			Item:       o.Item.Key(),
			Side:       o.Side,
			Amount:     o.Quantity,
			UnitPrice:  o.Price,
			EntityID:   o.Entity.Facility().GetID(),
			EntityType: o.Entity.Facility().TypeTag(),
		}

		if err := resting.Insert(tx); err != nil {
			return fmt.Errorf("exchange: persist resting offer: %w", err)
		}

		config.Logger.Debugf("exchange: resting %s offer for %d %s at %s (facility %d)",
			o.Side, o.Quantity, o.Item.Key(), o.Price, o.Entity.Facility().GetID())
	}

	if _, err := o.Entity.Facility().Save(tx); err != nil {
		return fmt.Errorf("exchange: save taker facility: %w", err)
	}

	return nil
}

// settleLeg moves material and currency for one taker-maker pairing and
// persists the maker's facility right after its mutation. The taker's
// facility is saved once at the end of the match.
func (o *Order) settleLeg(tx *gorm.DB, maker EntityRef, qty int64, price decimal.Decimal) error {
	total := price.Mul(decimal.NewFromInt(qty))

	var buyer, seller models.Facility
	if o.Side == models.SideBuy {
		buyer = o.Entity.Facility()
		seller = maker.Facility()
	} else {
		buyer = maker.Facility()
		seller = o.Entity.Facility()
	}

	buyer.AddMaterial(o.Item, qty)
	seller.Earn(total)
	buyer.Spend(total)

	if _, err := maker.Facility().Save(tx); err != nil {
		return fmt.Errorf("exchange: save counterparty facility %d: %w", maker.Facility().GetID(), err)
	}

	leg := &models.Trade{
		Item:       o.Item.Key(),
		Price:      price,
		Amount:     qty,
		Total:      total,
		BuyerID:    buyer.GetID(),
		BuyerType:  buyer.TypeTag(),
		SellerID:   seller.GetID(),
		SellerType: seller.TypeTag(),
		TakerSide:  o.Side,
	}

	if err := tx.Create(leg).Error; err != nil {
		return fmt.Errorf("exchange: journal trade leg: %w", err)
	}

	return nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}

	return b
}
