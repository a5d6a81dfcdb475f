package exchange

import (
	"testing"

	"github.com/openmercato/mercato/materials"
	"github.com/openmercato/mercato/models"
)

func TestBuildDepth(t *testing.T) {
	db := testDB(t)

	rows := []struct {
		side   models.Side
		price  string
		amount int64
	}{
		{models.SideSell, "0.30", 10},
		{models.SideSell, "0.20", 5},
		{models.SideSell, "0.20", 7},
		{models.SideBuy, "0.10", 7},
		{models.SideBuy, "0.05", 3},
	}
	for _, r := range rows {
		offer := &models.Offer{
			Item:       materials.Grain.Key(),
			Side:       r.side,
			Amount:     r.amount,
			UnitPrice:  dec(t, r.price),
			EntityID:   1,
			EntityType: models.TypeTagTierOne,
		}
		if err := offer.Insert(db); err != nil {
			t.Fatal(err)
		}
	}

	depth, err := BuildDepth(db, materials.Grain)
	if err != nil {
		t.Fatal(err)
	}

	ask, ok := depth.BestAsk()
	if !ok {
		t.Fatal("no best ask")
	}
	if !ask.Price.Equal(dec(t, "0.20")) || ask.Amount != 12 {
		t.Errorf("best ask = %d @%s, want aggregated 12 @0.20", ask.Amount, ask.Price)
	}

	bid, ok := depth.BestBid()
	if !ok {
		t.Fatal("no best bid")
	}
	if !bid.Price.Equal(dec(t, "0.10")) || bid.Amount != 7 {
		t.Errorf("best bid = %d @%s, want 7 @0.10", bid.Amount, bid.Price)
	}
}

func TestDepthToJSONOrdersBestFirst(t *testing.T) {
	depth := NewDepth(materials.Water)
	depth.Add(models.SideSell, dec(t, "0.30"), 10)
	depth.Add(models.SideSell, dec(t, "0.20"), 5)
	depth.Add(models.SideBuy, dec(t, "0.10"), 7)
	depth.Add(models.SideBuy, dec(t, "0.05"), 3)

	view := depth.ToJSON()

	if view.Item != "Water" {
		t.Errorf("item = %q, want Water", view.Item)
	}

	if len(view.Asks) != 2 || !view.Asks[0][0].Equal(dec(t, "0.20")) || !view.Asks[1][0].Equal(dec(t, "0.30")) {
		t.Errorf("asks = %v, want lowest first", view.Asks)
	}
	if len(view.Bids) != 2 || !view.Bids[0][0].Equal(dec(t, "0.10")) || !view.Bids[1][0].Equal(dec(t, "0.05")) {
		t.Errorf("bids = %v, want highest first", view.Bids)
	}
}

func TestDepthEmpty(t *testing.T) {
	depth := NewDepth(materials.Food)

	if _, ok := depth.BestAsk(); ok {
		t.Error("empty depth reported a best ask")
	}
	if _, ok := depth.BestBid(); ok {
		t.Error("empty depth reported a best bid")
	}

	view := depth.ToJSON()
	if len(view.Asks) != 0 || len(view.Bids) != 0 {
		t.Errorf("empty depth serialized to %v / %v", view.Asks, view.Bids)
	}
}
