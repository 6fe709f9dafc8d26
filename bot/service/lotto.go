package service

import (
	"fmt"
	"strconv"

	"pd-bot/database"
	"pd-bot/logger"
	"pd-bot/util/common"
)

// Reward table indexed by the number of positional matches.
var lottoRewards = [5]int{0, 400, 1000, 5000, 100000}

// MatchCount returns the number of positions where guess and draw hold the
// same digit. Value matches in the wrong position do not count.
func MatchCount(guess, draw []int) int {
	matches := 0
	for i := 0; i < len(guess) && i < len(draw); i++ {
		if guess[i] == draw[i] {
			matches++
		}
	}
	return matches
}

// LottoReward returns the points awarded for the given match count.
func LottoReward(matches int) int {
	if matches < 0 || matches >= len(lottoRewards) {
		return 0
	}
	return lottoRewards[matches]
}

// SettlePrevWeek notifies and credits the prior week's winners. Each guess
// is settled at most once: the dm_sent flag is flipped before the credit,
// and only unflagged guesses are picked up again on retry. A guess whose DM
// cannot be delivered is skipped and reported so the job retries it later
// without touching the already-settled ones.
func (t *Tgbot) SettlePrevWeek() error {
	year, week := common.PrevWeekNumber()

	guesses, err := database.GetMatchedUnnotifiedGuesses(year, week)
	if err != nil {
		return err
	}

	var errs []error
	for _, guess := range guesses {
		userID, err := strconv.ParseInt(guess.UserID, 10, 64)
		if err != nil {
			logger.Warningf("settlement: bad user id %q on guess %d", guess.UserID, guess.Id)
			continue
		}

		msg := t.I18nBot("bot.messages.settlementDm",
			"Numbers=="+guess.Numbers.String(),
			"Week=="+strconv.Itoa(guess.WeekNumber),
			"Matched=="+strconv.Itoa(guess.MatchedCount),
			"Points=="+formatPoints(guess.Points),
		)
		if err := t.SendDM(userID, msg); err != nil {
			errs = append(errs, fmt.Errorf("dm to %s: %w", guess.UserID, err))
			continue
		}
		if err := database.MarkDmSent(guess.Id); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := database.AdjustPoints(guess.UserID, guess.Username, guess.Points); err != nil {
			// The flag is already set, so a retry will not revisit this
			// guess; surface the lost credit loudly instead.
			logger.Errorf("settlement: credit of %d points to %s failed: %v",
				guess.Points, guess.UserID, err)
		}
	}
	return common.Combine(errs...)
}

// AnnouncePrevWeek posts the prior week's results summary to the lotto
// chat. At-least-once: re-running reposts the same summary.
func (t *Tgbot) AnnouncePrevWeek() error {
	year, week := common.PrevWeekNumber()

	draw, err := database.GetDraw(year, week)
	if err != nil {
		if err == database.ErrDrawNotFound {
			// Nothing was drawn last week (fresh deployment); nothing to
			// announce.
			logger.Warningf("announcement: no draw for week %d of %d", week, year)
			return nil
		}
		return err
	}

	counts, err := database.CountWinnersByMatch(year, week)
	if err != nil {
		return err
	}

	text := t.I18nBot("bot.messages.announceHeader",
		"Year=="+strconv.Itoa(year),
		"Week=="+strconv.Itoa(week),
		"Numbers=="+draw.String(),
	)
	if len(counts) == 0 {
		text += "\n" + t.I18nBot("bot.messages.announceNoWinners")
	} else {
		for _, count := range counts {
			text += fmt.Sprintf("\n• %d matching number(s): %d winner(s) — %s points each",
				count.MatchedCount, count.Winners, formatPoints(LottoReward(count.MatchedCount)))
		}
	}
	return t.SendMessage(t.cfg.LottoChatID, text)
}
