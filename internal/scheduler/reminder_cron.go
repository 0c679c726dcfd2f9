package scheduler

import (
	"context"

	"github.com/devconnect-app/backend/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartReminderCron schedules the daily pending-request reminder.
func StartReminderCron(reminder *jobs.RequestReminder) *cron.Cron {
	c := cron.New()

	// Morning reminder for users with requests awaiting review
	c.AddFunc("0 9 * * *", func() {
		if err := reminder.Run(context.Background()); err != nil {
			logrus.WithError(err).Error("Pending request reminder failed")
		}
	})

	c.Start()
	return c
}
