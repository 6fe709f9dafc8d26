package database

import (
	"errors"
	"time"

	"pd-bot/database/model"
	"pd-bot/util/common"
)

// ErrDrawNotFound reports that no draw exists for the requested week. It is
// distinct from store-level failures so callers can abort cleanly.
var ErrDrawNotFound = errors.New("no lotto draw for the requested week")

// WeeklyGuessLimit caps entries per user per ISO week.
const WeeklyGuessLimit = 5

// UpsertWeeklyDraw generates this week's 4 winning digits unless a draw for
// the current (year, week) already exists. Find-before-insert keeps the call
// idempotent.
func UpsertWeeklyDraw() error {
	year, week := common.WeekNumber()

	var existing model.LottoDraw
	err := db.Where("year = ? AND week_number = ?", year, week).First(&existing).Error
	if err == nil {
		return nil
	}
	if !IsNotFound(err) {
		return err
	}

	draw := model.LottoDraw{
		Numbers:    common.RandomDigits(4),
		Year:       year,
		WeekNumber: week,
		DrawnAt:    time.Now().UTC(),
	}
	return db.Create(&draw).Error
}

// GetDraw returns the winning digits for (year, week), or ErrDrawNotFound.
func GetDraw(year, week int) (model.Digits, error) {
	var draw model.LottoDraw
	err := db.Where("year = ? AND week_number = ?", year, week).First(&draw).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrDrawNotFound
		}
		return nil, err
	}
	return draw.Numbers, nil
}

// RecordLottoGuess inserts the guess unless the user has already played
// WeeklyGuessLimit times in that (year, week). Returns false, without
// inserting, on rejection.
func RecordLottoGuess(guess *model.LottoGuess) (bool, error) {
	var count int64
	err := db.Model(&model.LottoGuess{}).
		Where("user_id = ? AND year = ? AND week_number = ?",
			guess.UserID, guess.Year, guess.WeekNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count >= WeeklyGuessLimit {
		return false, nil
	}

	now := time.Now().UTC()
	if guess.CreatedAt.IsZero() {
		guess.CreatedAt = now
	}
	guess.UpdatedAt = now
	return true, db.Create(guess).Error
}

// GetMatchedUnnotifiedGuesses returns the week's winning guesses whose
// direct message has not been sent yet. The settlement job drains this set.
func GetMatchedUnnotifiedGuesses(year, week int) ([]*model.LottoGuess, error) {
	var guesses []*model.LottoGuess
	err := db.Where("year = ? AND week_number = ? AND any_matched = ? AND dm_sent = ?",
		year, week, true, false).
		Find(&guesses).Error
	if err != nil {
		return nil, err
	}
	return guesses, nil
}

// MarkDmSent flips the guess's dm_sent flag. The flag only ever goes
// false -> true; a second call finds no matching row and changes nothing.
func MarkDmSent(guessID int64) error {
	return db.Model(&model.LottoGuess{}).
		Where("id = ? AND dm_sent = ?", guessID, false).
		Updates(map[string]any{
			"dm_sent":    true,
			"updated_at": time.Now().UTC(),
		}).Error
}

// GetUserGuesses lists the user's guesses for the given week and the week
// immediately before it (wrapping across the year boundary), newest first,
// capped at 8, with only the user-facing fields populated.
func GetUserGuesses(userID string, year, week int) ([]*model.LottoGuess, error) {
	prevYear, prevWeek := common.PrevWeek(year, week)

	var guesses []*model.LottoGuess
	err := db.Select("numbers", "year", "week_number", "created_at").
		Where("user_id = ? AND ((year = ? AND week_number = ?) OR (year = ? AND week_number = ?))",
			userID, year, week, prevYear, prevWeek).
		Order("created_at desc").
		Limit(8).
		Find(&guesses).Error
	if err != nil {
		return nil, err
	}
	return guesses, nil
}

// WinnerCount is one row of the weekly results aggregate.
type WinnerCount struct {
	MatchedCount int
	Winners      int64
}

// CountWinnersByMatch aggregates the week's winning guesses by matched-count
// for the public results announcement.
func CountWinnersByMatch(year, week int) ([]WinnerCount, error) {
	var counts []WinnerCount
	err := db.Model(&model.LottoGuess{}).
		Select("matched_count, COUNT(*) as winners").
		Where("year = ? AND week_number = ? AND any_matched = ?", year, week, true).
		Group("matched_count").
		Order("matched_count desc").
		Find(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
