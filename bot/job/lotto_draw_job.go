package job

import (
	"time"

	"pd-bot/database"
	"pd-bot/logger"
)

// LottoDrawJob generates the week's winning numbers every Monday 00:00 UTC.
// The draw is idempotent per (year, week), so a retried or repeated run
// never produces a second draw.
type LottoDrawJob struct{}

func NewLottoDrawJob() *LottoDrawJob {
	return &LottoDrawJob{}
}

func (j *LottoDrawJob) Run() {
	runWithRetry("lotto-draw", 60*time.Second, database.UpsertWeeklyDraw)
	logger.Info("Weekly lotto draw is in place")
}
