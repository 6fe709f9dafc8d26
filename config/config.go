package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the immutable runtime profile. It is loaded once at startup
// and passed by reference to every component that needs it.
type Config struct {
	// Telegram bot API token.
	BotToken string `toml:"bot_token"`
	// Path of the sqlite database file.
	DBPath string `toml:"db_path"`
	// The only group chat the bot serves. Events from other chats are ignored.
	GuildChatID int64 `toml:"guild_chat_id"`
	// Group chat for attendance / point activity notifications.
	ActivityChatID int64 `toml:"activity_chat_id"`
	// Group chat for the weekly lotto game.
	LottoChatID int64 `toml:"lotto_chat_id"`
	// User ID of the quiz/poll bot whose messages award poll points.
	PollBotID int64 `toml:"poll_bot_id"`
	// Optional socks5 proxy URL for reaching the Bot API.
	TgProxy string `toml:"tg_proxy"`
}

// profiles mirrors the layout of the config file: one table per environment.
type profiles struct {
	Development Config `toml:"development"`
	Production  Config `toml:"production"`
}

// Load reads the TOML config file and returns the profile selected by the
// APP_ENV environment variable ("development" or anything else = production).
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var p profiles
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	cfg := p.Production
	if IsDebug() {
		cfg = p.Development
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("config %s: bot_token is empty", filePath)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "pd-bot.db"
	}
	return &cfg, nil
}

// IsDebug reports whether the process runs under the development profile.
func IsDebug() bool {
	return os.Getenv("APP_ENV") == "development"
}

func GetVersion() string {
	return "1.2.0"
}

func GetName() string {
	return "pd-bot"
}
