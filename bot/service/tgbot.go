package service

import (
	"context"
	"net/url"
	"strings"

	"pd-bot/bot/locale"
	"pd-bot/config"
	"pd-bot/logger"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpproxy"
	"go.uber.org/atomic"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	bot        *telego.Bot
	botHandler *th.BotHandler
	isRunning  = atomic.NewBool(false)

	// Grouped-digit formatting for point totals in outbound text.
	numPrinter = message.NewPrinter(language.English)
)

// Tgbot is the chat gateway service: it owns the Telegram long-polling
// lifecycle and every inbound handler. The struct is cheap to copy; all
// heavyweight state lives in package globals, shared with the cron jobs.
type Tgbot struct {
	cfg *config.Config
}

func NewTgbot(cfg *config.Config) *Tgbot {
	return &Tgbot{cfg: cfg}
}

func (t *Tgbot) I18nBot(name string, params ...string) string {
	return locale.I18n(locale.Bot, name, params...)
}

func (t *Tgbot) Start() error {
	if err := locale.InitLocalizer(); err != nil {
		return err
	}

	var err error
	bot, err = t.NewBot(t.cfg.BotToken, t.cfg.TgProxy)
	if err != nil {
		logger.Error("Failed to initialize Telegram bot API:", err)
		return err
	}

	err = bot.SetMyCommands(context.Background(), &telego.SetMyCommandsParams{
		Commands: []telego.BotCommand{
			{Command: "exchange", Description: t.I18nBot("bot.commands.exchangeDesc")},
			{Command: "lotto", Description: t.I18nBot("bot.commands.lottoDesc")},
			{Command: "checklotto", Description: t.I18nBot("bot.commands.checkLottoDesc")},
			{Command: "lottoguide", Description: t.I18nBot("bot.commands.lottoGuideDesc")},
			{Command: "attendguide", Description: t.I18nBot("bot.commands.attendGuideDesc")},
		},
	})
	if err != nil {
		logger.Warning("Failed to set bot commands:", err)
	}

	if !isRunning.Load() {
		logger.Info("Telegram bot receiver started")
		go t.OnReceive()
		isRunning.Store(true)
	}

	return nil
}

// NewBot builds the telego instance, optionally dialing the Bot API through
// a socks5 proxy.
func (t *Tgbot) NewBot(token string, proxyUrl string) (*telego.Bot, error) {
	if proxyUrl == "" {
		return telego.NewBot(token)
	}

	if !strings.HasPrefix(proxyUrl, "socks5://") {
		logger.Warning("Invalid socks5 URL, using default")
		return telego.NewBot(token)
	}

	if _, err := url.Parse(proxyUrl); err != nil {
		logger.Warningf("Can't parse proxy URL, using default instance for tgbot: %v", err)
		return telego.NewBot(token)
	}

	return telego.NewBot(token, telego.WithFastHTTPClient(&fasthttp.Client{
		Dial: fasthttpproxy.FasthttpSocksDialer(proxyUrl),
	}))
}

func (t *Tgbot) IsRunning() bool {
	return isRunning.Load()
}

func (t *Tgbot) Stop() {
	if botHandler != nil {
		botHandler.Stop()
	}
	logger.Info("Stop Telegram receiver ...")
	isRunning.Store(false)
}

func (t *Tgbot) OnReceive() {
	params := telego.GetUpdatesParams{
		Timeout:        10,
		AllowedUpdates: []string{"message", "message_reaction"},
	}

	updates, _ := bot.UpdatesViaLongPolling(context.Background(), &params)

	botHandler, _ = th.NewBotHandler(bot, updates)

	botHandler.HandleMessage(func(ctx *th.Context, message telego.Message) error {
		t.answerCommand(&message)
		return nil
	}, th.AnyCommand())

	botHandler.HandleMessage(func(ctx *th.Context, message telego.Message) error {
		t.answerTextCommand(&message)
		return nil
	}, anyBangCommand)

	botHandler.Handle(func(ctx *th.Context, update telego.Update) error {
		t.answerReaction(update.MessageReaction)
		return nil
	}, anyMessageReaction)

	// Catch-all: remember message authors so reaction updates can credit
	// them later.
	botHandler.HandleMessage(func(ctx *th.Context, message telego.Message) error {
		rememberAuthor(&message)
		return nil
	}, th.AnyMessage())

	botHandler.Start()
}

func anyMessageReaction(_ context.Context, update telego.Update) bool {
	return update.MessageReaction != nil
}

func anyBangCommand(_ context.Context, update telego.Update) bool {
	return update.Message != nil && strings.HasPrefix(update.Message.Text, "!")
}

// answerCommand routes a slash command to its handler.
func (t *Tgbot) answerCommand(message *telego.Message) {
	rememberAuthor(message)
	command, _, _ := tu.ParseCommand(message.Text)

	switch command {
	case "exchange":
		t.cmdExchange(message)
	case "lotto":
		t.cmdLotto(message)
	case "checklotto":
		t.cmdCheckLotto(message)
	case "lottoguide":
		t.sendEphemeral(message, t.I18nBot("bot.guide.lotto"))
	case "attendguide":
		t.sendEphemeral(message, t.I18nBot("bot.guide.attend"))
	default:
		logger.Debug("Command not found:", command)
	}
}

// answerTextCommand routes the legacy "!" text commands.
func (t *Tgbot) answerTextCommand(message *telego.Message) {
	rememberAuthor(message)
	switch strings.TrimSpace(message.Text) {
	case "!attend":
		t.cmdAttend(message)
	case "!cp", "!check-points":
		t.cmdCheckPoints(message)
	case "!cr", "!check-records":
		t.cmdCheckRecords(message)
	case "!rank":
		t.cmdRank(message)
	case "!myrank":
		t.cmdMyRank(message)
	}
}

// SendMessage posts a plain message to a chat and reports the failure, for
// callers (the scheduled jobs) that need to retry.
func (t *Tgbot) SendMessage(chatID int64, msg string) error {
	_, err := bot.SendMessage(context.Background(), tu.Message(tu.ID(chatID), msg))
	return err
}

// SendMsgToChat posts a plain message to a group chat. Failures are logged
// and swallowed; interactive notifications are not retried.
func (t *Tgbot) SendMsgToChat(chatID int64, msg string) {
	if msg == "" {
		return
	}
	if err := t.SendMessage(chatID, msg); err != nil {
		logger.Warning("Error sending telegram message:", err)
	}
}

// SendDM sends a private message to the user. Telegram DMs only work after
// the user has started the bot, so the error is returned for the caller to
// decide on a fallback.
func (t *Tgbot) SendDM(userID int64, msg string) error {
	return t.SendMessage(userID, msg)
}

// sendEphemeral answers an invoking user privately, falling back to an
// in-chat reply when the DM cannot be delivered.
func (t *Tgbot) sendEphemeral(message *telego.Message, msg string) {
	if message.From != nil {
		if err := t.SendDM(message.From.ID, msg); err == nil {
			return
		}
	}
	params := tu.Message(tu.ID(message.Chat.ID), msg)
	params.ReplyParameters = &telego.ReplyParameters{MessageID: message.MessageID}
	if _, err := bot.SendMessage(context.Background(), params); err != nil {
		logger.Warning("Error sending telegram reply:", err)
	}
}

func displayName(user *telego.User) string {
	if user == nil {
		return ""
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return name
}

func formatPoints(points int) string {
	return numPrinter.Sprintf("%d", points)
}
