package database

import (
	"time"

	"pd-bot/database/model"
	"pd-bot/util/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Daily quota per activity kind, counted over the UTC calendar day.
const (
	attendDailyLimit  = 1
	pollDailyLimit    = 2
	reactDailyLimit   = 5
	receiveDailyLimit = 10
)

// AdjustPoints applies a signed point delta to the user's balance as one
// conditional upsert. Positive deltas are clamped so the balance never
// exceeds model.MaxPoints; a balance already at the ceiling is left untouched
// and the call still succeeds. Negative deltas apply unmodified. The whole
// adjustment is a single statement, so concurrent calls for the same user
// cannot lose updates.
func AdjustPoints(userID string, username string, delta int) error {
	now := time.Now().UTC()

	initial := delta
	if initial > model.MaxPoints {
		initial = model.MaxPoints
	}

	assignments := map[string]any{
		"points": gorm.Expr(
			"CASE WHEN ? > 0 THEN MAX(points, MIN(points + ?, ?)) ELSE points + ? END",
			delta, delta, model.MaxPoints, delta,
		),
		"updated_at": now,
	}
	if username != "" {
		assignments["username"] = username
	}

	balance := &model.UserBalance{
		UserID:    userID,
		Username:  username,
		Points:    initial,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(balance).Error
}

// GetPoints returns the user's current balance, or 0 when no record exists.
func GetPoints(userID string) (int, error) {
	var balance model.UserBalance
	err := db.Select("points").Where("user_id = ?", userID).First(&balance).Error
	if err != nil {
		if IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return balance.Points, nil
}

// SpendPoints debits cost from the user's balance only when the balance
// covers it, as one conditional update. Returns false without touching the
// row when the balance is insufficient or the user has no record.
func SpendPoints(userID string, cost int) (bool, error) {
	result := db.Model(&model.UserBalance{}).
		Where("user_id = ? AND points >= ?", userID, cost).
		Updates(map[string]any{
			"points":     gorm.Expr("points - ?", cost),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func countActivitiesSince(userID string, kind model.ActivityType, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&model.Activity{}).
		Where("user_id = ? AND kind = ? AND created_at >= ?", userID, kind, since).
		Count(&count).Error
	return count, err
}

// RecordPollActivity inserts a poll participation record unless the user has
// reached the daily poll quota or already has a poll record for the same
// message (dedup key). Returns false, without inserting, on rejection.
func RecordPollActivity(activity *model.Activity) (bool, error) {
	today := common.DayStartUTC(time.Now())

	countToday, err := countActivitiesSince(activity.UserID, model.ActivityPoll, today)
	if err != nil {
		return false, err
	}
	if countToday >= pollDailyLimit {
		return false, nil
	}

	var sameMessage int64
	err = db.Model(&model.Activity{}).
		Where("user_id = ? AND kind = ? AND message_id = ?",
			activity.UserID, model.ActivityPoll, activity.MessageID).
		Count(&sameMessage).Error
	if err != nil {
		return false, err
	}
	if sameMessage > 0 {
		return false, nil
	}

	return true, insertActivity(activity)
}

// RecordReactionActivity inserts a react or receive record unless the
// per-kind daily quota is already met. The count is taken live at write time;
// concurrent writers may transiently overshoot the limit, which is accepted.
func RecordReactionActivity(activity *model.Activity) (bool, error) {
	var limit int64
	switch activity.Kind {
	case model.ActivityReact:
		limit = reactDailyLimit
	case model.ActivityReceive:
		limit = receiveDailyLimit
	default:
		return false, common.NewError("unexpected reaction activity kind:", activity.Kind)
	}

	today := common.DayStartUTC(time.Now())
	count, err := countActivitiesSince(activity.UserID, activity.Kind, today)
	if err != nil {
		return false, err
	}
	if count >= limit {
		return false, nil
	}

	return true, insertActivity(activity)
}

// RecordAttendActivity inserts the daily check-in record, at most once per
// UTC day.
func RecordAttendActivity(activity *model.Activity) (bool, error) {
	today := common.DayStartUTC(time.Now())
	count, err := countActivitiesSince(activity.UserID, model.ActivityAttend, today)
	if err != nil {
		return false, err
	}
	if count >= attendDailyLimit {
		return false, nil
	}

	return true, insertActivity(activity)
}

func insertActivity(activity *model.Activity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	return db.Create(activity).Error
}

// PurgeActivityOlderThan deletes activity records created before the cutoff
// and returns the number of deleted rows.
func PurgeActivityOlderThan(cutoff time.Time) (int64, error) {
	result := db.Where("created_at < ?", cutoff).Delete(&model.Activity{})
	return result.RowsAffected, result.Error
}

// GetTopBalances returns the n highest balances for the leaderboard.
func GetTopBalances(n int) ([]*model.UserBalance, error) {
	var balances []*model.UserBalance
	err := db.Order("points desc").Limit(n).Find(&balances).Error
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// GetUserRank returns the user's 1-based position on the point leaderboard
// together with the current balance. Users with no record rank last among
// zero-point holders.
func GetUserRank(userID string) (int64, int, error) {
	points, err := GetPoints(userID)
	if err != nil {
		return 0, 0, err
	}
	var ahead int64
	err = db.Model(&model.UserBalance{}).Where("points > ?", points).Count(&ahead).Error
	if err != nil {
		return 0, 0, err
	}
	return ahead + 1, points, nil
}
