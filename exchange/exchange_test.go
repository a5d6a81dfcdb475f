package exchange

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openmercato/mercato/materials"
	"github.com/openmercato/mercato/models"
)

var playerSeq int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	if err != nil {
		t.Fatalf("open test database: %s", err)
	}

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %s", err)
	}

	return db
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %s", s, err)
	}

	return d
}

// newFacility builds a tier-one facility with the given funds already
// earned and persisted.
func newFacility(t *testing.T, db *gorm.DB, funds string) *models.TierOneFacility {
	t.Helper()

	seq := atomic.AddInt64(&playerSeq, 1)
	owner := &models.Player{
		Username: fmt.Sprintf("%s-%d", strings.ReplaceAll(t.Name(), "/", "_"), seq),
		Funds:    decimal.NewFromInt(1000),
		Energy:   10,
	}
	if err := owner.Save(db); err != nil {
		t.Fatalf("save owner: %s", err)
	}

	base := models.NewTierOneBase("GrainFarm", 10, materials.Grain)
	f, err := models.NewTierOneFacility(db, base, fmt.Sprintf("facility-%d", seq), owner)
	if err != nil {
		t.Fatalf("create facility: %s", err)
	}

	if funds != "" {
		f.Earn(dec(t, funds))
		if _, err := f.Save(db); err != nil {
			t.Fatalf("save facility: %s", err)
		}
	}

	return f
}

func reloadFacility(t *testing.T, db *gorm.DB, f models.Facility) models.Facility {
	t.Helper()

	loaded, err := models.LoadFacility(db, f.TypeTag(), f.GetID())
	if err != nil {
		t.Fatalf("reload facility %d: %s", f.GetID(), err)
	}

	return loaded
}

func countOffers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.Offer{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}

	return count
}

func countTrades(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.Trade{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}

	return count
}

func allTrades(t *testing.T, db *gorm.DB) []*models.Trade {
	t.Helper()

	var trades []*models.Trade
	if err := db.Order("id ASC").Find(&trades).Error; err != nil {
		t.Fatal(err)
	}

	return trades
}
