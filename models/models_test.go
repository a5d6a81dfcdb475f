package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %s", err)
	}

	return db
}

func testPlayer(t *testing.T, db *gorm.DB, funds int64) *Player {
	t.Helper()

	player := &Player{
		Username: strings.ReplaceAll(t.Name(), "/", "_"),
		Funds:    decimal.NewFromInt(funds),
		Energy:   10,
	}
	if err := player.Save(db); err != nil {
		t.Fatalf("save player: %s", err)
	}

	return player
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %s", s, err)
	}

	return d
}
