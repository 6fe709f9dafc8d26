package model

import (
	"time"
)

// MaxPoints is the balance ceiling. Additive adjustments never push a user
// past it; subtractive adjustments are applied unclamped.
const MaxPoints = 200000

type ActivityType string

const (
	ActivityAttend  ActivityType = "attend"
	ActivityReact   ActivityType = "react"
	ActivityReceive ActivityType = "receive"
	ActivityAwaken  ActivityType = "awaken"
	ActivityPoll    ActivityType = "poll"
	ActivityLotto   ActivityType = "lotto"
)

type ExchangeStatus string

const (
	ExchangeSubmitted  ExchangeStatus = "Submitted"
	ExchangeProcessing ExchangeStatus = "Processing"
	ExchangeCompleted  ExchangeStatus = "Completed"
)

// UserBalance tracks one user's point balance. Rows are created lazily on the
// first point adjustment and never deleted.
type UserBalance struct {
	UserID    string    `gorm:"primaryKey;type:varchar(64)"`
	Username  string    `gorm:"type:varchar(255)"`
	Points    int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Activity records one rewarded or penalized action. Immutable once written;
// only used for quota counting and audit, and garbage-collected after five
// weeks.
type Activity struct {
	Id        int64        `gorm:"primaryKey;autoIncrement"`
	UserID    string       `gorm:"type:varchar(64);not null;index"`
	Username  string       `gorm:"type:varchar(255)"`
	ChatID    int64        ``
	Kind      ActivityType `gorm:"type:varchar(16);not null;index"`
	Reward    int          `gorm:"not null"`
	MessageID int64        ``
	Emoji     string       `gorm:"type:varchar(64)"`
	CreatedAt time.Time    `gorm:"not null;index"`
}

// ExchangeRequest tracks a redemption of points for an external item through
// the Submitted -> Processing -> Completed lifecycle. Status never regresses
// and rows are never deleted.
type ExchangeRequest struct {
	Id            int64          `gorm:"primaryKey;autoIncrement"`
	RequestID     string         `gorm:"type:varchar(36);uniqueIndex"`
	UserID        string         `gorm:"type:varchar(64);not null;index"`
	Username      string         `gorm:"type:varchar(255)"`
	WalletAddress string         `gorm:"type:varchar(64);not null"`
	Item          string         `gorm:"type:varchar(64);not null"`
	Quantity      int64          `gorm:"not null"`
	Status        ExchangeStatus `gorm:"type:varchar(16);not null;index"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
}

// LottoDraw is the winning digit sequence of one ISO week. At most one row
// exists per (year, week).
type LottoDraw struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	Numbers    Digits    `gorm:"type:text;not null"`
	Year       int       `gorm:"not null;index:idx_draw_week"`
	WeekNumber int       `gorm:"not null;index:idx_draw_week"`
	DrawnAt    time.Time `gorm:"not null"`
}

// LottoGuess is one weekly entry. Scoring fields are fixed at insert time;
// only DmSent may change afterwards, false -> true exactly once.
type LottoGuess struct {
	Id           int64     `gorm:"primaryKey;autoIncrement"`
	UserID       string    `gorm:"type:varchar(64);not null;index"`
	Username     string    `gorm:"type:varchar(255)"`
	Numbers      Digits    `gorm:"type:text;not null"`
	Year         int       `gorm:"not null;index:idx_guess_week"`
	WeekNumber   int       `gorm:"not null;index:idx_guess_week"`
	MatchedCount int       `gorm:"not null"`
	AnyMatched   bool      `gorm:"not null"`
	Points       int       `gorm:"not null"`
	DmSent       bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}
