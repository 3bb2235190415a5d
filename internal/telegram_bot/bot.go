package telegram_bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"authservice/internal/config"
	"authservice/internal/models"
)

// Bot notifies a configured Telegram chat about account activity.
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
	chatID int64
}

// NewBot creates a new Telegram bot instance. Returns (nil, nil) when
// notifications are disabled; a nil *Bot is safe to use.
func NewBot(cfg *config.Config, logger *zap.Logger) (*Bot, error) {
	if !cfg.Notifications.Enabled || cfg.Notifications.TelegramBotToken == "" {
		logger.Info("Telegram bot is disabled (notifications.enabled=false or token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Notifications.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", botAPI.Self.UserName))

	return &Bot{
		api:    botAPI,
		logger: logger,
		chatID: cfg.Notifications.TelegramChatID,
	}, nil
}

// NotifyUserRegistered sends a short registration notice to the configured
// chat. Delivery failures are logged, never surfaced to the request that
// triggered them.
func (b *Bot) NotifyUserRegistered(user *models.User) {
	if b == nil {
		return // Bot is disabled
	}

	text := fmt.Sprintf("New user registered: %s (role: %s)", user.Username, user.RoleName)
	msg := tgbotapi.NewMessage(b.chatID, text)

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send registration notification",
			zap.String("username", user.Username),
			zap.Error(err),
		)
	}
}
