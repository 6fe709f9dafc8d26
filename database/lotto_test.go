package database

import (
	"testing"

	"pd-bot/database/model"
	"pd-bot/util/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertWeeklyDrawIdempotent(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, UpsertWeeklyDraw())

	year, week := common.WeekNumber()
	first, err := GetDraw(year, week)
	require.NoError(t, err)
	require.Len(t, first, 4)
	for _, d := range first {
		assert.GreaterOrEqual(t, d, 0)
		assert.LessOrEqual(t, d, 9)
	}

	// A repeated run keeps the existing numbers.
	require.NoError(t, UpsertWeeklyDraw())
	second, err := GetDraw(year, week)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, db.Model(&model.LottoDraw{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetDrawMissingWeek(t *testing.T) {
	setupTestDB(t)

	_, err := GetDraw(2020, 15)
	assert.ErrorIs(t, err, ErrDrawNotFound)
}

func TestRecordLottoGuessWeeklyLimit(t *testing.T) {
	setupTestDB(t)

	for i := 0; i < WeeklyGuessLimit; i++ {
		ok, err := RecordLottoGuess(&model.LottoGuess{
			UserID:     "u1",
			Numbers:    model.Digits{1, 2, 3, 4},
			Year:       2026,
			WeekNumber: 10,
		})
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := RecordLottoGuess(&model.LottoGuess{
		UserID:     "u1",
		Numbers:    model.Digits{1, 2, 3, 4},
		Year:       2026,
		WeekNumber: 10,
	})
	require.NoError(t, err)
	assert.False(t, ok)

	// A different week starts a fresh allowance.
	ok, err = RecordLottoGuess(&model.LottoGuess{
		UserID:     "u1",
		Numbers:    model.Digits{1, 2, 3, 4},
		Year:       2026,
		WeekNumber: 11,
	})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSettlementQueueAndMarkDmSent(t *testing.T) {
	setupTestDB(t)

	insert := func(userID string, matched int, dmSent bool) *model.LottoGuess {
		guess := &model.LottoGuess{
			UserID:       userID,
			Numbers:      model.Digits{1, 2, 3, 4},
			Year:         2026,
			WeekNumber:   10,
			MatchedCount: matched,
			AnyMatched:   matched > 0,
			Points:       matched * 100,
			DmSent:       dmSent,
		}
		ok, err := RecordLottoGuess(guess)
		require.NoError(t, err)
		require.True(t, ok)
		return guess
	}

	winner := insert("u1", 2, false)
	insert("u2", 0, false)      // no match, never settled
	insert("u3", 1, true)       // already notified
	winnerToo := insert("u4", 4, false)

	pending, err := GetMatchedUnnotifiedGuesses(2026, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	require.NoError(t, MarkDmSent(winner.Id))

	pending, err = GetMatchedUnnotifiedGuesses(2026, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, winnerToo.Id, pending[0].Id)

	// The flag only goes one way; marking again is a no-op.
	require.NoError(t, MarkDmSent(winner.Id))
}

func TestGetUserGuessesSpansYearBoundary(t *testing.T) {
	setupTestDB(t)

	add := func(year, week int) {
		ok, err := RecordLottoGuess(&model.LottoGuess{
			UserID:     "u1",
			Numbers:    model.Digits{5, 6, 7, 8},
			Year:       year,
			WeekNumber: week,
		})
		require.NoError(t, err)
		require.True(t, ok)
	}

	add(2025, 52) // last ISO week of 2025
	add(2026, 1)
	add(2026, 10) // out of the window

	guesses, err := GetUserGuesses("u1", 2026, 1)
	require.NoError(t, err)
	require.Len(t, guesses, 2)
}

func TestCountWinnersByMatch(t *testing.T) {
	setupTestDB(t)

	add := func(userID string, matched int) {
		ok, err := RecordLottoGuess(&model.LottoGuess{
			UserID:       userID,
			Numbers:      model.Digits{1, 2, 3, 4},
			Year:         2026,
			WeekNumber:   10,
			MatchedCount: matched,
			AnyMatched:   matched > 0,
		})
		require.NoError(t, err)
		require.True(t, ok)
	}

	add("u1", 2)
	add("u2", 2)
	add("u3", 4)
	add("u4", 0)

	counts, err := CountWinnersByMatch(2026, 10)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, 4, counts[0].MatchedCount)
	assert.EqualValues(t, 1, counts[0].Winners)
	assert.Equal(t, 2, counts[1].MatchedCount)
	assert.EqualValues(t, 2, counts[1].Winners)
}
