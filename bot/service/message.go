package service

import (
	"fmt"
	"strconv"

	"pd-bot/database"
	"pd-bot/database/model"
	"pd-bot/logger"

	"github.com/mymmrac/telego"
)

const (
	attendPoints    = 50
	leaderboardSize = 10
)

// cmdAttend handles "!attend", the daily check-in worth attendPoints. One
// check-in per UTC day.
func (t *Tgbot) cmdAttend(message *telego.Message) {
	if message.From == nil || !t.isGuildChat(message.Chat.ID) {
		return
	}
	if message.Chat.ID != t.cfg.ActivityChatID {
		t.sendEphemeral(message, t.I18nBot("bot.messages.wrongChannelPoints"))
		return
	}

	user := message.From
	userID := strconv.FormatInt(user.ID, 10)
	activity := &model.Activity{
		UserID:   userID,
		Username: displayName(user),
		ChatID:   message.Chat.ID,
		Kind:     model.ActivityAttend,
		Reward:   attendPoints,
	}

	added, err := database.RecordAttendActivity(activity)
	if err != nil {
		logger.Error("Error recording attendance:", err)
		return
	}
	if !added {
		t.sendEphemeral(message, t.I18nBot("bot.messages.attendDup"))
		return
	}

	if err := database.AdjustPoints(userID, displayName(user), attendPoints); err != nil {
		logger.Error("Error awarding attendance points:", err)
		return
	}
	t.SendMsgToChat(t.cfg.ActivityChatID, t.I18nBot("bot.messages.attendOk",
		"Name=="+displayName(user),
		"Points=="+strconv.Itoa(attendPoints),
	))
}

// cmdCheckPoints handles "!cp".
func (t *Tgbot) cmdCheckPoints(message *telego.Message) {
	if message.From == nil || !t.isGuildChat(message.Chat.ID) {
		return
	}

	user := message.From
	points, err := database.GetPoints(strconv.FormatInt(user.ID, 10))
	if err != nil {
		logger.Error("Error fetching user points:", err)
		return
	}

	if message.Chat.ID != t.cfg.ActivityChatID {
		t.sendEphemeral(message, t.I18nBot("bot.messages.wrongChannelPoints"))
		return
	}
	t.SendMsgToChat(t.cfg.ActivityChatID, t.I18nBot("bot.messages.pointsBalance",
		"Name=="+displayName(user),
		"Points=="+formatPoints(points),
	))
}

// cmdCheckRecords handles "!cr": the user's recent exchange requests.
func (t *Tgbot) cmdCheckRecords(message *telego.Message) {
	if message.From == nil || !t.isGuildChat(message.Chat.ID) {
		return
	}
	if message.Chat.ID != t.cfg.ActivityChatID {
		t.sendEphemeral(message, t.I18nBot("bot.messages.wrongChannelPoints"))
		return
	}

	user := message.From
	userID := strconv.FormatInt(user.ID, 10)

	points, err := database.GetPoints(userID)
	if err != nil {
		logger.Error("Error fetching user points:", err)
		return
	}
	records, err := database.GetUserRecords(userID)
	if err != nil {
		logger.Error("Error fetching exchange records:", err)
		return
	}
	if len(records) == 0 {
		t.sendEphemeral(message, t.I18nBot("bot.messages.noRecords"))
		return
	}

	text := t.I18nBot("bot.messages.recordsHeader",
		"Name=="+displayName(user),
		"Points=="+formatPoints(points),
	)
	for _, record := range records {
		text += fmt.Sprintf("\n• %d %s(s) 🎟️ — %s — %s (UTC)",
			record.Quantity, record.Item, record.Status,
			record.UpdatedAt.Format("2006-01-02 15:04"))
	}
	t.sendEphemeral(message, text)
}

// cmdRank handles "!rank": the public TOP 10 leaderboard.
func (t *Tgbot) cmdRank(message *telego.Message) {
	if message.From == nil || message.Chat.ID != t.cfg.ActivityChatID {
		return
	}

	top, err := database.GetTopBalances(leaderboardSize)
	if err != nil {
		logger.Error("Error fetching leaderboard:", err)
		return
	}

	text := t.I18nBot("bot.messages.rankHeader", "Count=="+strconv.Itoa(leaderboardSize))
	for i, balance := range top {
		name := balance.Username
		if name == "" {
			name = balance.UserID
		}
		text += fmt.Sprintf("\n%d. %s — %s", i+1, name, formatPoints(balance.Points))
	}
	t.SendMsgToChat(t.cfg.ActivityChatID, text)
}

// cmdMyRank handles "!myrank".
func (t *Tgbot) cmdMyRank(message *telego.Message) {
	if message.From == nil || !t.isGuildChat(message.Chat.ID) {
		return
	}

	user := message.From
	rank, points, err := database.GetUserRank(strconv.FormatInt(user.ID, 10))
	if err != nil {
		logger.Error("Error fetching user rank:", err)
		return
	}
	t.sendEphemeral(message, t.I18nBot("bot.messages.myRank",
		"Name=="+displayName(user),
		"Rank=="+strconv.FormatInt(rank, 10),
		"Points=="+formatPoints(points),
	))
}
