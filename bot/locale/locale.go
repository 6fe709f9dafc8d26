package locale

import (
	"embed"
	"strings"

	"pd-bot/logger"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed translation/*
var i18nFS embed.FS

type I18nType string

const (
	Bot I18nType = "bot"
)

var (
	i18nBundle   *i18n.Bundle
	localizerBot *i18n.Localizer
)

// InitLocalizer loads the embedded message catalog. Must run before any
// I18n call.
func InitLocalizer() error {
	i18nBundle = i18n.NewBundle(language.MustParse("en-US"))
	i18nBundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if _, err := i18nBundle.LoadMessageFileFS(i18nFS, "translation/en.toml"); err != nil {
		return err
	}

	localizerBot = i18n.NewLocalizer(i18nBundle, "en-US")
	return nil
}

// I18n renders the catalog message for key. Template parameters are passed
// as "Name==value" strings.
func I18n(i18nType I18nType, key string, params ...string) string {
	templateData := map[string]any{}
	for _, param := range params {
		parts := strings.SplitN(param, "==", 2)
		if len(parts) != 2 {
			continue
		}
		templateData[parts[0]] = parts[1]
	}

	localizer := localizerBot
	if localizer == nil {
		logger.Error("I18n called before InitLocalizer")
		return ""
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		logger.Errorf("Failed to localize message %s: %v", key, err)
		return ""
	}
	return msg
}
