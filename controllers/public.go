package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openmercato/mercato/config"
	"github.com/openmercato/mercato/controllers/helpers"
	"github.com/openmercato/mercato/exchange"
	"github.com/openmercato/mercato/materials"
	"github.com/openmercato/mercato/models"
)

func GetTimestamp(c *fiber.Ctx) error {
	return c.Status(200).JSON(time.Now().Unix())
}

func GetDepth(c *fiber.Ctx) error {
	item, err := materials.Parse(c.Params("item"))
	if err != nil {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"public.market.unknown_item"},
		})
	}

	depth, err := exchange.BuildDepth(config.DataBase, item)
	if err != nil {
		config.Logger.Errorf("GetDepth: %s", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	return c.Status(200).JSON(depth.ToJSON())
}

func GetTrades(c *fiber.Ctx) error {
	item, err := materials.Parse(c.Params("item"))
	if err != nil {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"public.market.unknown_item"},
		})
	}

	trades, err := models.RecentTrades(config.DataBase, item.Key(), 100)
	if err != nil {
		config.Logger.Errorf("GetTrades: %s", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	return c.Status(200).JSON(trades)
}
