package job

import (
	"time"

	"pd-bot/logger"
)

// runWithRetry keeps attempting fn until it succeeds, sleeping a fixed
// interval between attempts. Scheduled transitions must never skip an
// occurrence, so a failed attempt is retried for the same occurrence rather
// than waiting for the next cron fire.
func runWithRetry(name string, interval time.Duration, fn func() error) {
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				logger.Infof("job %s succeeded after %d attempts", name, attempt)
			}
			return
		}
		logger.Warningf("job %s failed (attempt %d), retrying in %s: %v", name, attempt, interval, err)
		time.Sleep(interval)
	}
}
