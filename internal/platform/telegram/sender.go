// Package telegram delivers alert messages to a Telegram group or channel.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"stock_notifier/internal/feature/alerts/usecase"
)

// ErrMissingCredentials is returned when the bot token or the group id is empty.
var ErrMissingCredentials = errors.New("telegram bot token and group id are required")

// Config holds the Telegram bot settings.
type Config struct {
	BotToken    string
	GroupID     string // Numeric chat id (e.g., "-1001234") or channel username (e.g., "@alerts")
	APIEndpoint string // Defaults to tgbotapi.APIEndpoint
}

// Sender implements usecase.MessageSink with the Telegram Bot API.
type Sender struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	channel string
}

var _ usecase.MessageSink = (*Sender)(nil)

// NewSender authenticates the bot and returns a sender bound to cfg.GroupID.
func NewSender(cfg Config, client *http.Client) (*Sender, error) {
	if cfg.BotToken == "" || strings.TrimSpace(cfg.GroupID) == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = tgbotapi.APIEndpoint
	}
	if client == nil {
		client = &http.Client{}
	}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, cfg.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}

	s := &Sender{bot: bot}
	group := strings.TrimSpace(cfg.GroupID)
	if id, err := strconv.ParseInt(group, 10, 64); err == nil {
		s.chatID = id
	} else {
		if !strings.HasPrefix(group, "@") {
			group = "@" + group
		}
		s.channel = group
	}
	return s, nil
}

// Send posts text to the configured chat. Any failure wraps usecase.ErrDeliveryFailed.
func (s *Sender) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", usecase.ErrDeliveryFailed, err)
	}

	var msg tgbotapi.MessageConfig
	if s.channel != "" {
		msg = tgbotapi.NewMessageToChannel(s.channel, text)
	} else {
		msg = tgbotapi.NewMessage(s.chatID, text)
	}
	msg.DisableWebPagePreview = true

	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("%w: %w", usecase.ErrDeliveryFailed, err)
	}
	return nil
}
