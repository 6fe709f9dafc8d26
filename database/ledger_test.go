package database

import (
	"sync"
	"testing"
	"time"

	"pd-bot/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustPointsCreatesAndAccumulates(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, AdjustPoints("u1", "alice", 50))
	require.NoError(t, AdjustPoints("u1", "alice", 15))

	points, err := GetPoints("u1")
	require.NoError(t, err)
	assert.Equal(t, 65, points)
}

func TestAdjustPointsClampsPositiveAtCeiling(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, AdjustPoints("u1", "alice", model.MaxPoints-100))
	require.NoError(t, AdjustPoints("u1", "alice", 500))

	points, err := GetPoints("u1")
	require.NoError(t, err)
	assert.Equal(t, model.MaxPoints, points)

	// Already at the ceiling, a further credit succeeds and changes nothing.
	require.NoError(t, AdjustPoints("u1", "alice", 10))
	points, err = GetPoints("u1")
	require.NoError(t, err)
	assert.Equal(t, model.MaxPoints, points)
}

func TestAdjustPointsNegativeUnclamped(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, AdjustPoints("u1", "alice", model.MaxPoints))
	require.NoError(t, AdjustPoints("u1", "alice", -300))

	points, err := GetPoints("u1")
	require.NoError(t, err)
	assert.Equal(t, model.MaxPoints-300, points)

	// Penalties may push a balance below zero.
	require.NoError(t, AdjustPoints("u2", "bob", -10))
	points, err = GetPoints("u2")
	require.NoError(t, err)
	assert.Equal(t, -10, points)
}

func TestAdjustPointsInitialCreditClamped(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, AdjustPoints("u1", "alice", model.MaxPoints+5000))

	points, err := GetPoints("u1")
	require.NoError(t, err)
	assert.Equal(t, model.MaxPoints, points)
}

func TestAdjustPointsConcurrent(t *testing.T) {
	setupTestDB(t)

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = AdjustPoints("u1", "alice", 10)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	points, err := GetPoints("u1")
	require.NoError(t, err)
	assert.Equal(t, workers*10, points)
}

func TestGetPointsMissingUser(t *testing.T) {
	setupTestDB(t)

	points, err := GetPoints("nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, points)
}

func TestSpendPoints(t *testing.T) {
	setupTestDB(t)

	// No record at all.
	ok, err := SpendPoints("u1", 1000)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, AdjustPoints("u1", "alice", 1500))

	ok, err = SpendPoints("u1", 1000)
	require.NoError(t, err)
	assert.True(t, ok)

	points, err := GetPoints("u1")
	require.NoError(t, err)
	assert.Equal(t, 500, points)

	// Insufficient balance leaves the row untouched.
	ok, err = SpendPoints("u1", 1000)
	require.NoError(t, err)
	assert.False(t, ok)

	points, err = GetPoints("u1")
	require.NoError(t, err)
	assert.Equal(t, 500, points)
}

func TestRecordPollActivityDedupAndQuota(t *testing.T) {
	setupTestDB(t)

	poll := func(messageID int64) (bool, error) {
		return RecordPollActivity(&model.Activity{
			UserID:    "u1",
			Kind:      model.ActivityPoll,
			Reward:    15,
			MessageID: messageID,
		})
	}

	ok, err := poll(100)
	require.NoError(t, err)
	assert.True(t, ok)

	// Same poll message again.
	ok, err = poll(100)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = poll(101)
	require.NoError(t, err)
	assert.True(t, ok)

	// Third distinct poll of the day exceeds the quota.
	ok, err = poll(102)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordReactionActivityQuota(t *testing.T) {
	setupTestDB(t)

	for i := 0; i < 5; i++ {
		ok, err := RecordReactionActivity(&model.Activity{
			UserID: "u1",
			Kind:   model.ActivityReact,
			Reward: 3,
		})
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := RecordReactionActivity(&model.Activity{
		UserID: "u1",
		Kind:   model.ActivityReact,
		Reward: 3,
	})
	require.NoError(t, err)
	assert.False(t, ok)

	// The receive quota counts independently of the react quota.
	ok, err = RecordReactionActivity(&model.Activity{
		UserID: "u1",
		Kind:   model.ActivityReceive,
		Reward: 10,
	})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRecordReactionActivityRejectsOtherKinds(t *testing.T) {
	setupTestDB(t)

	_, err := RecordReactionActivity(&model.Activity{
		UserID: "u1",
		Kind:   model.ActivityAttend,
	})
	assert.Error(t, err)
}

func TestRecordAttendActivityOncePerDay(t *testing.T) {
	setupTestDB(t)

	ok, err := RecordAttendActivity(&model.Activity{UserID: "u1", Kind: model.ActivityAttend, Reward: 50})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = RecordAttendActivity(&model.Activity{UserID: "u1", Kind: model.ActivityAttend, Reward: 50})
	require.NoError(t, err)
	assert.False(t, ok)

	// Other users are unaffected.
	ok, err = RecordAttendActivity(&model.Activity{UserID: "u2", Kind: model.ActivityAttend, Reward: 50})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPurgeActivityOlderThan(t *testing.T) {
	setupTestDB(t)

	now := time.Now().UTC()
	old := &model.Activity{UserID: "u1", Kind: model.ActivityAttend, CreatedAt: now.AddDate(0, 0, -40)}
	recent := &model.Activity{UserID: "u1", Kind: model.ActivityAttend, CreatedAt: now.AddDate(0, 0, -1)}
	require.NoError(t, insertActivity(old))
	require.NoError(t, insertActivity(recent))

	deleted, err := PurgeActivityOlderThan(now.AddDate(0, 0, -35))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var remaining int64
	require.NoError(t, db.Model(&model.Activity{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)
}

func TestGetTopBalancesAndRank(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, AdjustPoints("u1", "alice", 300))
	require.NoError(t, AdjustPoints("u2", "bob", 100))
	require.NoError(t, AdjustPoints("u3", "carol", 200))

	top, err := GetTopBalances(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "u1", top[0].UserID)
	assert.Equal(t, "u3", top[1].UserID)

	rank, points, err := GetUserRank("u3")
	require.NoError(t, err)
	assert.EqualValues(t, 2, rank)
	assert.Equal(t, 200, points)

	// A user with no record ranks behind every positive balance.
	rank, points, err = GetUserRank("nobody")
	require.NoError(t, err)
	assert.EqualValues(t, 4, rank)
	assert.Equal(t, 0, points)
}
