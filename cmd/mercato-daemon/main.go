package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/openmercato/mercato/config"
	"github.com/openmercato/mercato/models"
	"github.com/openmercato/mercato/workers/daemons"
)

func CreateWorker(id string) daemons.Worker {
	switch id {
	case "cron_job":
		return daemons.NewCronJob()
	default:
		return nil
	}
}

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

	for _, id := range os.Args[1:] {
		fmt.Println("Start mercato-daemon: " + id)
		worker := CreateWorker(id)
		if worker == nil {
			fmt.Println("Unknown worker: " + id)
			continue
		}

		worker.Start()
	}
}
