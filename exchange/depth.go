package exchange

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openmercato/mercato/config"
	"github.com/openmercato/mercato/materials"
	"github.com/openmercato/mercato/models"
)

// PriceLevel aggregates the resting amount at one price on one side.
type PriceLevel struct {
	Side   models.Side
	Price  decimal.Decimal
	Amount int64
}

// Depth is a price-ordered view of the book for one material. Both trees are
// keyed so that iterating from the rightmost node yields the best price
// first: the lowest ask and the highest bid.
type Depth struct {
	Item materials.Material
	Asks *redblacktree.Tree
	Bids *redblacktree.Tree
}

func NewDepth(item materials.Material) *Depth {
	return &Depth{
		Item: item,
		Asks: redblacktree.NewWith(makeComparator),
		Bids: redblacktree.NewWith(makeComparator),
	}
}

type priceLevelKey struct {
	Side  models.Side
	Price decimal.Decimal
}

func makeComparator(a, b interface{}) int {
	this := a.(*priceLevelKey)
	that := b.(*priceLevelKey)

	switch {
	case this.Side == models.SideSell && this.Price.LessThan(that.Price):
		return 1

	case this.Side == models.SideSell && this.Price.GreaterThan(that.Price):
		return -1

	case this.Side == models.SideBuy && this.Price.LessThan(that.Price):
		return -1

	case this.Side == models.SideBuy && this.Price.GreaterThan(that.Price):
		return 1

	default:
		return 0
	}
}

func (d *Depth) Add(side models.Side, price decimal.Decimal, amount int64) {
	tree := d.Bids
	if side == models.SideSell {
		tree = d.Asks
	}

	key := &priceLevelKey{Side: side, Price: price}

	if value, found := tree.Get(key); found {
		value.(*PriceLevel).Amount += amount
		return
	}

	tree.Put(key, &PriceLevel{Side: side, Price: price, Amount: amount})
}

// BestBid returns the highest bid level, if any.
func (d *Depth) BestBid() (*PriceLevel, bool) {
	return best(d.Bids)
}

// BestAsk returns the lowest ask level, if any.
func (d *Depth) BestAsk() (*PriceLevel, bool) {
	return best(d.Asks)
}

func best(tree *redblacktree.Tree) (*PriceLevel, bool) {
	node := tree.Right()
	if node == nil {
		return nil, false
	}

	return node.Value.(*PriceLevel), true
}

// DepthJSON is the wire shape of a depth snapshot: [price, amount] pairs,
// best price first.
type DepthJSON struct {
	Item string              `json:"item"`
	Asks [][]decimal.Decimal `json:"asks"`
	Bids [][]decimal.Decimal `json:"bids"`
}

func (d *Depth) ToJSON() DepthJSON {
	result := DepthJSON{
		Item: d.Item.Key(),
		Asks: make([][]decimal.Decimal, 0),
		Bids: make([][]decimal.Decimal, 0),
	}

	ait := d.Asks.Iterator()
	ait.End()
	for ait.Prev() {
		pl := ait.Value().(*PriceLevel)
		result.Asks = append(result.Asks, []decimal.Decimal{pl.Price, decimal.NewFromInt(pl.Amount)})
	}

	bit := d.Bids.Iterator()
	bit.End()
	for bit.Prev() {
		pl := bit.Value().(*PriceLevel)
		result.Bids = append(result.Bids, []decimal.Decimal{pl.Price, decimal.NewFromInt(pl.Amount)})
	}

	return result
}

// BuildDepth aggregates the resting rows for an item into a Depth. Rows with
// a material key the catalog no longer knows are logged and skipped rather
// than failing the whole view.
func BuildDepth(db *gorm.DB, item materials.Material) (*Depth, error) {
	offers, err := models.RestingOffers(db, item)
	if err != nil {
		return nil, err
	}

	depth := NewDepth(item)
	for _, offer := range offers {
		if _, err := offer.Material(); err != nil {
			config.Logger.Warnf("exchange: skipping offer %d: %s", offer.ID, err)
			continue
		}

		depth.Add(offer.Side, offer.UnitPrice, offer.Amount)
	}

	return depth, nil
}
