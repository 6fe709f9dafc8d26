package job

import (
	"time"

	"pd-bot/bot/service"
)

// LottoAnnounceJob posts the prior week's public results summary shortly
// after settlement. At-least-once: a retried run may repost the summary.
type LottoAnnounceJob struct {
	tgbotService *service.Tgbot
}

func NewLottoAnnounceJob(tgbotService *service.Tgbot) *LottoAnnounceJob {
	return &LottoAnnounceJob{tgbotService: tgbotService}
}

func (j *LottoAnnounceJob) Run() {
	runWithRetry("lotto-announce", 120*time.Second, j.tgbotService.AnnouncePrevWeek)
}
