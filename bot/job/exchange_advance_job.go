package job

import (
	"time"

	"pd-bot/database"
	"pd-bot/logger"
)

// ExchangeProcessingJob moves every Submitted exchange request to
// Processing. Runs weekly on ticket-delivery day; the transition is global
// and idempotent.
type ExchangeProcessingJob struct{}

func NewExchangeProcessingJob() *ExchangeProcessingJob {
	return &ExchangeProcessingJob{}
}

func (j *ExchangeProcessingJob) Run() {
	runWithRetry("exchange-processing", 120*time.Second, database.AdvanceAllSubmittedToProcessing)
	logger.Info("Advanced all submitted exchange requests to processing")
}

// ExchangeCompletedJob moves every Processing exchange request to
// Completed, one day after ExchangeProcessingJob.
type ExchangeCompletedJob struct{}

func NewExchangeCompletedJob() *ExchangeCompletedJob {
	return &ExchangeCompletedJob{}
}

func (j *ExchangeCompletedJob) Run() {
	runWithRetry("exchange-completed", 120*time.Second, database.AdvanceAllProcessingToCompleted)
	logger.Info("Advanced all processing exchange requests to completed")
}
