package main

import (
	"os"
	"os/signal"
	"syscall"

	"pd-bot/bot"
	"pd-bot/config"
	"pd-bot/database"
	"pd-bot/logger"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
)

func main() {
	_ = godotenv.Load()

	if config.IsDebug() {
		logger.InitLogger(logging.DEBUG)
	} else {
		logger.InitLogger(logging.INFO)
	}

	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("Failed to load config %s: %v", configPath, err)
	}

	if err := database.InitDB(cfg.DBPath); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	server := bot.NewServer(cfg)
	if err := server.Start(); err != nil {
		logger.Fatalf("Failed to start: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down ...")
	server.Stop()
}
