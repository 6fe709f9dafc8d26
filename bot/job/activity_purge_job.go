package job

import (
	"time"

	"pd-bot/database"
	"pd-bot/logger"
)

// Activity records only serve quota counting and audit; anything older than
// the retention window is garbage.
const activityRetention = 5 * 7 * 24 * time.Hour

// ActivityPurgeJob deletes activity records older than the retention
// window. Runs monthly.
type ActivityPurgeJob struct{}

func NewActivityPurgeJob() *ActivityPurgeJob {
	return &ActivityPurgeJob{}
}

func (j *ActivityPurgeJob) Run() {
	runWithRetry("activity-purge", 300*time.Second, func() error {
		cutoff := time.Now().UTC().Add(-activityRetention)
		deleted, err := database.PurgeActivityOlderThan(cutoff)
		if err != nil {
			return err
		}
		logger.Infof("Purged %d activity records older than %s", deleted, cutoff.Format("2006-01-02"))
		return nil
	})
}
