package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"signal_bot/pkg/logger"
)

// Notifier delivers a formatted alert to the configured channel.
type Notifier interface {
	Send(ctx context.Context, msg string) error
}

// NotifyError is a failed delivery. It is logged by the caller and never retried.
type NotifyError struct {
	Destination string
	Err         error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notify %s: %v", e.Destination, e.Err)
}

func (e *NotifyError) Unwrap() error { return e.Err }

// Telegram sends alerts to one chat or channel.
type Telegram struct {
	bot         *tgbot.BotAPI
	destination string
	chatID      int64
	channel     string
}

// NewTelegram talks to the public Bot API; every HTTP call is bounded by timeout.
func NewTelegram(token, destination string, timeout time.Duration) (*Telegram, error) {
	return NewTelegramWithEndpoint(token, destination, tgbot.APIEndpoint, &http.Client{Timeout: timeout})
}

// NewTelegramWithEndpoint points the bot at a custom Bot API endpoint
// (format "https://host/bot%s/%s").
func NewTelegramWithEndpoint(token, destination, endpoint string, client tgbot.HTTPClient) (*Telegram, error) {
	t := &Telegram{destination: strings.TrimSpace(destination)}
	if t.destination == "" {
		return nil, errors.New("telegram: empty destination")
	}
	if id, err := strconv.ParseInt(t.destination, 10, 64); err == nil {
		t.chatID = id
	} else {
		t.channel = t.destination
		if !strings.HasPrefix(t.channel, "@") {
			t.channel = "@" + t.channel
		}
	}

	b, err := tgbot.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, errors.Wrap(err, "telegram: init bot")
	}
	t.bot = b
	return t, nil
}

// Send posts msg with Markdown formatting. It returns when ctx is done even if
// the Bot API has not answered yet.
func (t *Telegram) Send(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return &NotifyError{Destination: t.destination, Err: err}
	}

	var cfg tgbot.MessageConfig
	if t.channel != "" {
		cfg = tgbot.NewMessageToChannel(t.channel, msg)
	} else {
		cfg = tgbot.NewMessage(t.chatID, msg)
	}
	cfg.ParseMode = tgbot.ModeMarkdown
	cfg.DisableWebPagePreview = true

	done := make(chan error, 1)
	go func() {
		_, err := t.bot.Send(cfg)
		done <- err
	}()

	select {
	case <-ctx.Done():
		return &NotifyError{Destination: t.destination, Err: ctx.Err()}
	case err := <-done:
		if err != nil {
			return &NotifyError{Destination: t.destination, Err: err}
		}
	}
	logger.Debug("[NOTIFY] sent to %s", t.destination)
	return nil
}

// Stdout only logs; used when no bot is wired (dry runs).
type Stdout struct{}

func NewStdout() *Stdout { return &Stdout{} }

func (s *Stdout) Send(_ context.Context, msg string) error {
	logger.Info("[NOTIFY] %s", msg)
	return nil
}
