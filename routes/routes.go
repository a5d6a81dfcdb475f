package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openmercato/mercato/controllers"
)

func SetupRouter() *fiber.App {
	app := fiber.New()

	app.Get("/api/v2/public/timestamp", controllers.GetTimestamp)
	app.Get("/api/v2/public/markets/:item/depth", controllers.GetDepth)
	app.Get("/api/v2/public/markets/:item/trades", controllers.GetTrades)

	app.Post("/api/v2/market/orders", controllers.CreateOrder)
	app.Post("/api/v2/market/facilities/:id/sell_all", controllers.SellAll)
	app.Post("/api/v2/market/facilities/:id/buy_needed", controllers.BuyNeeded)

	return app
}
