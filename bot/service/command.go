package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pd-bot/database"
	"pd-bot/database/model"
	"pd-bot/logger"
	"pd-bot/util/common"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	itemTicket           = "ticket"
	pointsPerTicket      = 1000
	maxTicketsPerRequest = 256
)

// cmdExchange handles "/exchange <wallet_address> <number_of_tickets>":
// validate, debit, record, confirm. The debit happens before the record is
// written; losing the record afterwards is a known operational gap handled
// out of band.
func (t *Tgbot) cmdExchange(message *telego.Message) {
	if message.From == nil || !t.isGuildChat(message.Chat.ID) {
		return
	}
	if message.Chat.ID != t.cfg.ActivityChatID {
		t.sendEphemeral(message, t.I18nBot("bot.messages.wrongChannelExchange"))
		return
	}
	// Tickets are delivered on Thursdays; no new submissions that day.
	if time.Now().UTC().Weekday() == time.Thursday {
		t.sendEphemeral(message, t.I18nBot("bot.messages.exchangeClosed"))
		return
	}

	_, _, args := tu.ParseCommand(message.Text)
	if len(args) != 2 {
		t.sendEphemeral(message, t.I18nBot("bot.messages.exchangeUsage"))
		return
	}

	wallet, ok := common.ChecksumAddress(args[0])
	if !ok {
		t.sendEphemeral(message, t.I18nBot("bot.messages.invalidWallet"))
		return
	}

	tickets, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || tickets < 1 || tickets > maxTicketsPerRequest {
		t.sendEphemeral(message, t.I18nBot("bot.messages.invalidTickets"))
		return
	}

	user := message.From
	userID := strconv.FormatInt(user.ID, 10)
	required := int(tickets) * pointsPerTicket

	debited, err := database.SpendPoints(userID, required)
	if err != nil {
		logger.Error("Error debiting exchange points:", err)
		return
	}
	if !debited {
		t.sendEphemeral(message, t.I18nBot("bot.messages.notEnoughPoints"))
		return
	}

	record := &model.ExchangeRequest{
		UserID:        userID,
		Username:      displayName(user),
		WalletAddress: wallet,
		Item:          itemTicket,
		Quantity:      tickets,
		Status:        model.ExchangeSubmitted,
	}
	if err := database.AddExchangeRecord(record); err != nil {
		logger.Error("Error adding exchange record after debit:", err)
	}

	t.sendEphemeral(message, t.I18nBot("bot.messages.exchangeReceived",
		"Name=="+displayName(user),
		"Tickets=="+strconv.FormatInt(tickets, 10),
		"Wallet=="+wallet,
		"Ref=="+record.RequestID,
	))
	t.sendWalletQr(user.ID, wallet, record.RequestID)
	t.SendMsgToChat(t.cfg.ActivityChatID, t.I18nBot("bot.messages.exchangePublic",
		"Name=="+displayName(user),
		"Points=="+formatPoints(required),
		"Tickets=="+strconv.FormatInt(tickets, 10),
	))
}

// sendWalletQr DMs a QR code of the delivery wallet so users can double
// check the address their tickets will go to.
func (t *Tgbot) sendWalletQr(userID int64, wallet string, ref string) {
	png, err := qrcode.Encode(wallet, qrcode.Medium, 256)
	if err != nil {
		logger.Warning("Failed to encode wallet QR:", err)
		return
	}
	params := &telego.SendPhotoParams{
		ChatID:  tu.ID(userID),
		Photo:   tu.File(tu.NameReader(bytes.NewReader(png), "wallet.png")),
		Caption: t.I18nBot("bot.messages.walletQrCaption", "Ref=="+ref),
	}
	if _, err := bot.SendPhoto(context.Background(), params); err != nil {
		logger.Warning("Failed to send wallet QR:", err)
	}
}

// cmdLotto handles "/lotto <n1> <n2> <n3> <n4>": score against this week's
// draw and record the guess, subject to the weekly entry limit.
func (t *Tgbot) cmdLotto(message *telego.Message) {
	if message.From == nil || !t.isGuildChat(message.Chat.ID) {
		return
	}
	if message.Chat.ID != t.cfg.LottoChatID {
		t.sendEphemeral(message, t.I18nBot("bot.messages.wrongChannelLotto"))
		return
	}

	_, _, args := tu.ParseCommand(message.Text)
	if len(args) != 4 {
		t.sendEphemeral(message, t.I18nBot("bot.messages.lottoUsage"))
		return
	}
	numbers := make(model.Digits, 4)
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 || n > 9 {
			t.sendEphemeral(message, t.I18nBot("bot.messages.lottoUsage"))
			return
		}
		numbers[i] = n
	}

	year, week := common.WeekNumber()
	draw, err := database.GetDraw(year, week)
	if err != nil {
		if errors.Is(err, database.ErrDrawNotFound) {
			t.sendEphemeral(message, t.I18nBot("bot.messages.lottoNoDraw"))
			return
		}
		logger.Error("Error fetching lotto draw:", err)
		return
	}

	user := message.From
	matches := MatchCount(numbers, draw)
	guess := &model.LottoGuess{
		UserID:       strconv.FormatInt(user.ID, 10),
		Username:     displayName(user),
		Numbers:      numbers,
		Year:         year,
		WeekNumber:   week,
		MatchedCount: matches,
		AnyMatched:   matches > 0,
		Points:       LottoReward(matches),
	}

	added, err := database.RecordLottoGuess(guess)
	if err != nil {
		logger.Error("Error adding lotto guess:", err)
		return
	}
	if !added {
		t.sendEphemeral(message, t.I18nBot("bot.messages.lottoLimit",
			"Limit=="+strconv.Itoa(database.WeeklyGuessLimit)))
		return
	}

	t.sendEphemeral(message, t.I18nBot("bot.messages.lottoChosen",
		"Numbers=="+numbers.String()))
	t.SendMsgToChat(t.cfg.LottoChatID, t.I18nBot("bot.messages.lottoPublic",
		"Name=="+displayName(user)))
}

// cmdCheckLotto lists the user's entries for the current and previous week.
func (t *Tgbot) cmdCheckLotto(message *telego.Message) {
	if message.From == nil || !t.isGuildChat(message.Chat.ID) {
		return
	}

	user := message.From
	year, week := common.WeekNumber()
	guesses, err := database.GetUserGuesses(strconv.FormatInt(user.ID, 10), year, week)
	if err != nil {
		logger.Error("Error fetching lotto guesses:", err)
		return
	}
	if len(guesses) == 0 {
		t.sendEphemeral(message, t.I18nBot("bot.messages.checkLottoEmpty"))
		return
	}

	text := t.I18nBot("bot.messages.checkLottoHeader")
	for _, guess := range guesses {
		text += fmt.Sprintf("\n• [%s] — week %d — %s (UTC)",
			guess.Numbers, guess.WeekNumber, guess.CreatedAt.Format("2006-01-02 15:04"))
	}
	t.sendEphemeral(message, text)
}

func (t *Tgbot) isGuildChat(chatID int64) bool {
	return chatID == t.cfg.GuildChatID ||
		chatID == t.cfg.ActivityChatID ||
		chatID == t.cfg.LottoChatID
}
