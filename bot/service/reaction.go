package service

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"pd-bot/database"
	"pd-bot/database/model"
	"pd-bot/logger"

	"github.com/mymmrac/telego"
)

const (
	reactPoints     = 3
	receivePoints   = 10
	pollPoints      = 15
	badEmojiPenalty = -10
)

// Reactions that cost points instead of earning them.
var badEmoji = map[string]struct{}{
	"👎": {},
	"💩": {},
	"🤮": {},
	"🖕": {},
}

// Reaction updates do not carry the reacted-to message, so authors are
// remembered from the message stream and looked up by (chat, message).
// Entries older than the TTL are pruned on insert.
var (
	authorCache     = make(map[string]cachedAuthor)
	authorCacheLock sync.RWMutex
)

type cachedAuthor struct {
	user *telego.User
	seen time.Time
}

const (
	authorCacheTTL     = 48 * time.Hour
	authorCachePruneAt = 4096
)

func authorCacheKey(chatID int64, messageID int) string {
	return fmt.Sprintf("%d:%d", chatID, messageID)
}

func rememberAuthor(message *telego.Message) {
	if message == nil || message.From == nil {
		return
	}
	authorCacheLock.Lock()
	defer authorCacheLock.Unlock()

	if len(authorCache) >= authorCachePruneAt {
		cutoff := time.Now().Add(-authorCacheTTL)
		for key, entry := range authorCache {
			if entry.seen.Before(cutoff) {
				delete(authorCache, key)
			}
		}
	}
	authorCache[authorCacheKey(message.Chat.ID, message.MessageID)] = cachedAuthor{
		user: message.From,
		seen: time.Now(),
	}
}

func lookupAuthor(chatID int64, messageID int) *telego.User {
	authorCacheLock.RLock()
	defer authorCacheLock.RUnlock()

	entry, ok := authorCache[authorCacheKey(chatID, messageID)]
	if !ok || time.Since(entry.seen) > authorCacheTTL {
		return nil
	}
	return entry.user
}

// answerReaction awards points for emoji reactions: the reactor earns react
// points (or a penalty for bad emoji), the message author earns receive
// points, and reactions on the poll bot's messages count as poll
// participation.
func (t *Tgbot) answerReaction(reaction *telego.MessageReactionUpdated) {
	if reaction == nil || reaction.User == nil || reaction.User.IsBot {
		return
	}
	if !t.isGuildChat(reaction.Chat.ID) {
		return
	}

	emoji := addedEmoji(reaction)
	if emoji == "" {
		return
	}

	user := reaction.User
	userID := strconv.FormatInt(user.ID, 10)

	// Penalty path: no quota, straight deduction.
	if _, bad := badEmoji[emoji]; bad {
		if err := database.AdjustPoints(userID, displayName(user), badEmojiPenalty); err != nil {
			logger.Error("Error deducting reaction penalty:", err)
			return
		}
		t.SendMsgToChat(t.cfg.ActivityChatID, t.I18nBot("bot.messages.reactPenalty",
			"Name=="+displayName(user),
			"Emoji=="+emoji,
			"Points=="+strconv.Itoa(-badEmojiPenalty),
		))
		return
	}

	author := lookupAuthor(reaction.Chat.ID, reaction.MessageID)

	// Poll participation: reactions on the quiz/poll bot's messages.
	if author != nil && t.cfg.PollBotID != 0 && author.ID == t.cfg.PollBotID {
		t.pollReaction(reaction, user)
		return
	}

	// No reaction farming inside the activity chat itself.
	if reaction.Chat.ID == t.cfg.ActivityChatID {
		return
	}

	activity := &model.Activity{
		UserID:    userID,
		Username:  displayName(user),
		ChatID:    reaction.Chat.ID,
		Kind:      model.ActivityReact,
		Reward:    reactPoints,
		MessageID: int64(reaction.MessageID),
		Emoji:     emoji,
	}
	added, err := database.RecordReactionActivity(activity)
	if err != nil {
		logger.Error("Error recording react activity:", err)
	} else if added {
		if err := database.AdjustPoints(userID, displayName(user), reactPoints); err != nil {
			logger.Error("Error awarding react points:", err)
		} else {
			t.SendMsgToChat(t.cfg.ActivityChatID, t.I18nBot("bot.messages.reactAward",
				"Name=="+displayName(user),
				"Emoji=="+emoji,
				"Points=="+strconv.Itoa(reactPoints),
			))
		}
	}

	// The author of the reacted-to message earns receive points, unless
	// unknown, a bot, or self-reacting.
	if author == nil || author.IsBot || author.ID == user.ID {
		return
	}
	authorID := strconv.FormatInt(author.ID, 10)
	received := &model.Activity{
		UserID:    authorID,
		Username:  displayName(author),
		ChatID:    reaction.Chat.ID,
		Kind:      model.ActivityReceive,
		Reward:    receivePoints,
		MessageID: int64(reaction.MessageID),
		Emoji:     emoji,
	}
	added, err = database.RecordReactionActivity(received)
	if err != nil {
		logger.Error("Error recording receive activity:", err)
		return
	}
	if added {
		if err := database.AdjustPoints(authorID, displayName(author), receivePoints); err != nil {
			logger.Error("Error awarding receive points:", err)
			return
		}
		t.SendMsgToChat(t.cfg.ActivityChatID, t.I18nBot("bot.messages.receiveAward",
			"Name=="+displayName(author),
			"Emoji=="+emoji,
			"Points=="+strconv.Itoa(receivePoints),
		))
	}
}

func (t *Tgbot) pollReaction(reaction *telego.MessageReactionUpdated, user *telego.User) {
	userID := strconv.FormatInt(user.ID, 10)
	activity := &model.Activity{
		UserID:    userID,
		Username:  displayName(user),
		ChatID:    reaction.Chat.ID,
		Kind:      model.ActivityPoll,
		Reward:    pollPoints,
		MessageID: int64(reaction.MessageID),
	}

	added, err := database.RecordPollActivity(activity)
	if err != nil {
		logger.Error("Error recording poll activity:", err)
		return
	}
	if !added {
		return
	}
	if err := database.AdjustPoints(userID, displayName(user), pollPoints); err != nil {
		logger.Error("Error awarding poll points:", err)
		return
	}
	t.SendMsgToChat(t.cfg.ActivityChatID, t.I18nBot("bot.messages.pollAward",
		"Name=="+displayName(user),
		"Points=="+strconv.Itoa(pollPoints),
	))
}

// addedEmoji returns the newly added reaction emoji, or "" when the update
// is a removal or an unsupported reaction type.
func addedEmoji(reaction *telego.MessageReactionUpdated) string {
	if len(reaction.NewReaction) <= len(reaction.OldReaction) {
		return ""
	}
	last := reaction.NewReaction[len(reaction.NewReaction)-1]
	if emojiReaction, ok := last.(*telego.ReactionTypeEmoji); ok {
		return emojiReaction.Emoji
	}
	return ""
}
