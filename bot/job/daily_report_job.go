package job

import (
	"time"

	"pd-bot/bot/service"
)

// DailyReportJob posts the daily status message every morning.
type DailyReportJob struct {
	tgbotService *service.Tgbot
}

func NewDailyReportJob(tgbotService *service.Tgbot) *DailyReportJob {
	return &DailyReportJob{tgbotService: tgbotService}
}

func (j *DailyReportJob) Run() {
	runWithRetry("daily-report", 300*time.Second, j.tgbotService.SendDailyReport)
}
