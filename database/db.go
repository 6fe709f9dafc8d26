package database

import (
	"errors"
	"fmt"
	"os"
	"path"

	"pd-bot/config"
	"pd-bot/database/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels() error {
	models := []any{
		&model.UserBalance{},
		&model.Activity{},
		&model.ExchangeRequest{},
		&model.LottoDraw{},
		&model.LottoGuess{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}
	return nil
}

// InitDB opens (and if needed creates) the sqlite database and migrates the
// schema. The resulting handle is shared by all handlers and jobs; sqlite
// serializes writes, and WAL plus a busy timeout keep concurrent use safe.
func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	var gormLogger gormlogger.Interface
	if config.IsDebug() {
		gormLogger = gormlogger.Default
	} else {
		gormLogger = gormlogger.Discard
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL", dbPath)
	var err error
	db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return err
	}

	return initModels()
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
