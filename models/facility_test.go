package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openmercato/mercato/materials"
)

func TestNewTierOneFacilityChargesOwner(t *testing.T) {
	db := testDB(t)
	owner := testPlayer(t, db, 1000)

	base := NewTierOneBase("GrainFarm", 10, materials.Grain)
	f, err := NewTierOneFacility(db, base, "North Farm", owner)
	if err != nil {
		t.Fatal(err)
	}
	if f == nil {
		t.Fatal("expected facility, owner could afford it")
	}

	if f.GetID() == 0 {
		t.Error("expected id assigned on first save")
	}
	if !owner.Funds.Equal(decimal.NewFromInt(800)) {
		t.Errorf("owner funds = %s, want 800", owner.Funds)
	}
	if owner.Shares[f.GetID()] != 10000 {
		t.Errorf("owner shares = %d, want 10000", owner.Shares[f.GetID()])
	}
}

func TestNewTierOneFacilityUnaffordable(t *testing.T) {
	db := testDB(t)
	owner := testPlayer(t, db, 100)

	base := NewTierOneBase("GrainFarm", 10, materials.Grain)
	f, err := NewTierOneFacility(db, base, "North Farm", owner)
	if err != nil {
		t.Fatal(err)
	}
	if f != nil {
		t.Fatal("expected nil facility when owner cannot afford it")
	}
	if !owner.Funds.Equal(decimal.NewFromInt(100)) {
		t.Errorf("owner funds changed to %s", owner.Funds)
	}
}

func TestTierOneSaveLoadRoundTrip(t *testing.T) {
	db := testDB(t)
	owner := testPlayer(t, db, 1000)

	base := NewTierOneBase("WaterPlant", 8, materials.Water)
	f, err := NewTierOneFacility(db, base, "Pumping Station", owner)
	if err != nil {
		t.Fatal(err)
	}

	f.Earn(dec(t, "12.50"))
	f.AddMaterial(materials.Water, 40)
	if err := f.HireWorker(owner.ID); err != nil {
		t.Fatal(err)
	}

	id, err := f.Save(db)
	if err != nil {
		t.Fatal(err)
	}
	if id != f.GetID() {
		t.Errorf("save returned id %d, facility has %d", id, f.GetID())
	}

	loaded, err := LoadTierOne(db, id)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.GetID() != id {
		t.Errorf("id changed across save/load: %d, want %d", loaded.GetID(), id)
	}
	if !loaded.Balance().Equal(dec(t, "12.50")) {
		t.Errorf("balance = %s, want 12.50", loaded.Balance())
	}
	if loaded.Inventory().Get(materials.Water) != 40 {
		t.Errorf("inventory = %d, want 40", loaded.Inventory().Get(materials.Water))
	}
	if loaded.Creates != materials.Water {
		t.Errorf("creates = %v, want Water", loaded.Creates)
	}
	if len(loaded.HumanWorkers) != 1 || loaded.HumanWorkers[0].PlayerID != owner.ID {
		t.Errorf("worker roster lost: %+v", loaded.HumanWorkers)
	}
}

func TestLoadFacilityMissingRow(t *testing.T) {
	db := testDB(t)

	_, err := LoadFacility(db, TypeTagTierOne, 424242)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestWorkShiftProducesAndSpendsEnergy(t *testing.T) {
	db := testDB(t)
	owner := testPlayer(t, db, 1000)

	base := NewTierOneBase("GrainFarm", 10, materials.Grain)
	f, err := NewTierOneFacility(db, base, "South Farm", owner)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.WorkShift(owner); err == nil {
		t.Fatal("expected error: player not hired yet")
	}

	if err := f.HireWorker(owner.ID); err != nil {
		t.Fatal(err)
	}
	if err := f.HireWorker(owner.ID); err == nil {
		t.Fatal("expected error hiring the same player twice")
	}

	if err := f.WorkShift(owner); err != nil {
		t.Fatal(err)
	}
	if f.Inventory().Get(materials.Grain) != 10 {
		t.Errorf("produced %d grain, want 10", f.Inventory().Get(materials.Grain))
	}
	if owner.Energy != 6 {
		t.Errorf("player energy = %d, want 6", owner.Energy)
	}

	if err := f.WorkShift(owner); err == nil {
		t.Fatal("expected error working twice in one cycle")
	}

	f.ResetShifts()
	if err := f.WorkShift(owner); err != nil {
		t.Fatalf("work after shift reset: %s", err)
	}
}

func TestTierTwoProduce(t *testing.T) {
	db := testDB(t)
	owner := testPlayer(t, db, 1000)

	f, err := NewTierTwoFacility(db, "Cannery", materials.FoodRecipe(), decimal.NewFromInt(500), owner)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.Produce(2); err == nil {
		t.Fatal("expected error: no inputs on hand")
	}

	f.AddMaterial(materials.Electricity, 20)
	f.AddMaterial(materials.Water, 10)
	f.AddMaterial(materials.Grain, 10)

	if err := f.Produce(2); err != nil {
		t.Fatal(err)
	}

	if got := f.Inventory().Get(materials.Food); got != 2 {
		t.Errorf("food = %d, want 2", got)
	}
	if got := f.Inventory().Get(materials.Electricity); got != 0 {
		t.Errorf("electricity left = %d, want 0", got)
	}

	// Round trip keeps the recipe.
	id, err := f.Save(db)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadTierTwo(db, id)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Recipe.Output != materials.Food || len(loaded.Recipe.Inputs) != 3 {
		t.Errorf("recipe lost on reload: %+v", loaded.Recipe)
	}
}

func TestFacilityDataValidate(t *testing.T) {
	good := FacilityData{
		SchemaVersion: FacilitySchemaVersion,
		Balance:       decimal.Zero,
		Inventory:     materials.NewInventory(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid document rejected: %s", err)
	}

	wrongVersion := good
	wrongVersion.SchemaVersion = 99
	if err := wrongVersion.Validate(); err == nil {
		t.Error("expected version mismatch to be rejected")
	}

	negative := good
	negative.Balance = decimal.NewFromInt(-1)
	if err := negative.Validate(); err == nil {
		t.Error("expected negative balance to be rejected")
	}

	badCreates := good
	badCreates.Creates = "Unobtainium"
	if err := badCreates.Validate(); err == nil {
		t.Error("expected unknown creates key to be rejected")
	}
}

func TestFacilityDataScanRejectsBadDocument(t *testing.T) {
	var data FacilityData

	if err := data.Scan(`{"schema_version": 7}`); err == nil {
		t.Error("expected scan of wrong schema version to fail")
	}
	if err := data.Scan(`not json`); err == nil {
		t.Error("expected scan of malformed document to fail")
	}
}
