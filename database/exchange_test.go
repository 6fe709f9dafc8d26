package database

import (
	"testing"
	"time"

	"pd-bot/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddExchangeRecordFillsDefaults(t *testing.T) {
	setupTestDB(t)

	record := &model.ExchangeRequest{
		UserID:        "u1",
		Username:      "alice",
		WalletAddress: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		Item:          "ticket",
		Quantity:      3,
	}
	require.NoError(t, AddExchangeRecord(record))

	assert.NotEmpty(t, record.RequestID)
	assert.Equal(t, model.ExchangeSubmitted, record.Status)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestExchangeLifecycleAdvancesAndIsIdempotent(t *testing.T) {
	setupTestDB(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, AddExchangeRecord(&model.ExchangeRequest{
			UserID: "u1", Item: "ticket", Quantity: 1,
		}))
	}

	countByStatus := func(status model.ExchangeStatus) int64 {
		var n int64
		require.NoError(t, db.Model(&model.ExchangeRequest{}).
			Where("status = ?", status).Count(&n).Error)
		return n
	}

	require.NoError(t, AdvanceAllSubmittedToProcessing())
	assert.EqualValues(t, 0, countByStatus(model.ExchangeSubmitted))
	assert.EqualValues(t, 3, countByStatus(model.ExchangeProcessing))

	// A request submitted between the two transitions stays put on the
	// second one.
	require.NoError(t, AddExchangeRecord(&model.ExchangeRequest{
		UserID: "u2", Item: "ticket", Quantity: 1,
	}))

	require.NoError(t, AdvanceAllProcessingToCompleted())
	assert.EqualValues(t, 1, countByStatus(model.ExchangeSubmitted))
	assert.EqualValues(t, 0, countByStatus(model.ExchangeProcessing))
	assert.EqualValues(t, 3, countByStatus(model.ExchangeCompleted))

	// Re-running once everything has moved on changes nothing.
	require.NoError(t, AdvanceAllProcessingToCompleted())
	assert.EqualValues(t, 3, countByStatus(model.ExchangeCompleted))
}

func TestGetUserRecordsNewestFirstCapped(t *testing.T) {
	setupTestDB(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		require.NoError(t, AddExchangeRecord(&model.ExchangeRequest{
			UserID:    "u1",
			Item:      "ticket",
			Quantity:  int64(i + 1),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
		// Spread updated_at so ordering is deterministic.
		require.NoError(t, db.Model(&model.ExchangeRequest{}).
			Where("quantity = ?", i+1).
			Update("updated_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
	require.NoError(t, AddExchangeRecord(&model.ExchangeRequest{
		UserID: "someone-else", Item: "ticket", Quantity: 99,
	}))

	records, err := GetUserRecords("u1")
	require.NoError(t, err)
	require.Len(t, records, 8)
	assert.EqualValues(t, 10, records[0].Quantity)
	assert.EqualValues(t, 3, records[7].Quantity)
}
