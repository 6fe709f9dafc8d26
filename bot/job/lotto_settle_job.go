package job

import (
	"time"

	"pd-bot/bot/service"
)

// LottoSettleJob settles the prior week's lottery: DM each winner, flip the
// guess's dm_sent flag and credit the reward. Guesses already flagged are
// never reprocessed, so retries cannot double-credit.
type LottoSettleJob struct {
	tgbotService *service.Tgbot
}

func NewLottoSettleJob(tgbotService *service.Tgbot) *LottoSettleJob {
	return &LottoSettleJob{tgbotService: tgbotService}
}

func (j *LottoSettleJob) Run() {
	runWithRetry("lotto-settle", 60*time.Second, j.tgbotService.SettlePrevWeek)
}
