package cron

import (
	"github.com/jasonlvhit/gocron"

	"github.com/openmercato/mercato/config"
	"github.com/openmercato/mercato/models"
)

// ShiftResetJob reopens worker shifts once a day: every roster entry's
// worked flag is cleared so players can work the next cycle.
type ShiftResetJob struct {
}

func (j *ShiftResetJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Day().At("00:00:00").Do(resetShifts)
	<-s.Start()
}

func resetShifts() {
	var rows []*models.Company

	if err := config.DataBase.Find(&rows).Error; err != nil {
		config.Logger.Errorf("shift reset: list companies: %s", err)
		return
	}

	for _, row := range rows {
		facility, err := models.LoadFacility(config.DataBase, row.TypeTag, row.ID)
		if err != nil {
			config.Logger.Errorf("shift reset: load facility %d: %s", row.ID, err)
			continue
		}

		switch f := facility.(type) {
		case *models.TierOneFacility:
			f.ResetShifts()
		case *models.TierTwoFacility:
			f.ResetShifts()
		}

		if _, err := facility.Save(config.DataBase); err != nil {
			config.Logger.Errorf("shift reset: save facility %d: %s", row.ID, err)
		}
	}

	config.Logger.Infof("shift reset: reopened shifts for %d facilities", len(rows))
}
