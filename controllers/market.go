package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/openmercato/mercato/config"
	"github.com/openmercato/mercato/controllers/helpers"
	"github.com/openmercato/mercato/exchange"
	"github.com/openmercato/mercato/materials"
	"github.com/openmercato/mercato/models"
)

// CreateOrder submits a limit order on behalf of a facility.
func CreateOrder(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	payload := new(helpers.CreateOrderParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errs)
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	facility, err := models.LoadFacility(config.DataBase, models.TypeTag(payload.FacilityType), payload.FacilityID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"market.order.facility_not_found"},
		})
	}
	if err != nil {
		config.Logger.Errorf("CreateOrder: %s", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	item, _ := materials.Parse(payload.Item)
	side, _ := models.ParseSide(payload.Side)

	order := &exchange.Order{
		Entity:   exchange.Borrow(facility),
		Item:     item,
		Side:     side,
		Quantity: payload.Amount,
		Price:    payload.Price,
	}

	if !order.Valid() {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"market.order.insufficient_balance"},
		})
	}

	if err := order.Submit(config.DataBase); err != nil {
		config.Logger.Errorf("CreateOrder: %s", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"remaining": order.Quantity,
	})
}

func loadFacilityFromParams(c *fiber.Ctx) (models.Facility, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return nil, err
	}

	tag, err := strconv.Atoi(c.Query("type", "1"))
	if err != nil {
		return nil, err
	}

	return models.LoadFacility(config.DataBase, models.TypeTag(tag), id)
}

// SellAll liquidates a facility's entire inventory at the best resting bids.
func SellAll(c *fiber.Ctx) error {
	facility, err := loadFacilityFromParams(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"market.order.facility_not_found"},
		})
	}
	if err != nil {
		return c.Status(400).JSON(helpers.Errors{
			Errors: []string{"market.order.invalid_facility"},
		})
	}

	if err := exchange.SellAll(config.DataBase, facility); err != nil {
		config.Logger.Errorf("SellAll: %s", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	return c.Status(200).JSON(fiber.Map{"ok": true})
}

// BuyNeeded covers the recipe shortfall for a tier-two facility.
func BuyNeeded(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(helpers.Errors{
			Errors: []string{"market.order.invalid_facility"},
		})
	}

	units, err := strconv.ParseInt(c.Query("units", "1"), 10, 64)
	if err != nil || units <= 0 {
		return c.Status(400).JSON(helpers.Errors{
			Errors: []string{"market.order.invalid_units"},
		})
	}

	facility, err := models.LoadTierTwo(config.DataBase, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"market.order.facility_not_found"},
		})
	}
	if err != nil {
		config.Logger.Errorf("BuyNeeded: %s", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	if err := exchange.BuyNeeded(config.DataBase, facility, facility.Recipe, units); err != nil {
		config.Logger.Errorf("BuyNeeded: %s", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	return c.Status(200).JSON(fiber.Map{"ok": true})
}
