package database

import (
	"time"

	"pd-bot/database/model"

	"github.com/google/uuid"
)

// AddExchangeRecord inserts a freshly submitted exchange request. A request
// UUID is assigned when the caller did not set one, so users have a stable
// reference independent of the row id.
func AddExchangeRecord(record *model.ExchangeRequest) error {
	now := time.Now().UTC()
	if record.RequestID == "" {
		record.RequestID = uuid.NewString()
	}
	if record.Status == "" {
		record.Status = model.ExchangeSubmitted
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	return db.Create(record).Error
}

// GetUserRecords returns the user's 8 most recently updated exchange
// requests, newest first, with only the user-facing fields populated.
func GetUserRecords(userID string) ([]*model.ExchangeRequest, error) {
	var records []*model.ExchangeRequest
	err := db.Select("request_id", "username", "item", "quantity", "status", "updated_at").
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Limit(8).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// AdvanceAllSubmittedToProcessing moves every Submitted request to
// Processing and stamps updated_at. Running it again once everything has
// moved on is a no-op.
func AdvanceAllSubmittedToProcessing() error {
	return advanceAll(model.ExchangeSubmitted, model.ExchangeProcessing)
}

// AdvanceAllProcessingToCompleted moves every Processing request to
// Completed. Idempotent in the same way.
func AdvanceAllProcessingToCompleted() error {
	return advanceAll(model.ExchangeProcessing, model.ExchangeCompleted)
}

func advanceAll(from, to model.ExchangeStatus) error {
	return db.Model(&model.ExchangeRequest{}).
		Where("status = ?", from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now().UTC(),
		}).Error
}
