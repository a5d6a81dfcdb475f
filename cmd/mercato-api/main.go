package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/openmercato/mercato/config"
	"github.com/openmercato/mercato/models"
	"github.com/openmercato/mercato/routes"
)

func main() {
	godotenv.Load()

	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := models.Migrate(config.DataBase); err != nil {
		fmt.Println(err.Error())
		return
	}

	r := routes.SetupRouter()
	r.Listen(":" + config.App.Server.Port)
}
