package bot

import (
	"context"
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/example/flashbot/internal/database"
	"github.com/example/flashbot/internal/srs"
)

// MenuButton represents a button in an inline menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Bot represents the Telegram front end. It owns no scheduling logic:
// every learning decision goes through the review engine.
type Bot struct {
	api       *tgbotapi.BotAPI
	engine    *srs.Engine
	users     *database.UserRepository
	sets      *database.SetRepository
	cards     *database.CardRepository
	progress  *database.ProgressRepository
	reviewLog *database.ReviewLogRepository
	config    *BotConfig
	log       *logrus.Entry
}

// New creates a new bot instance
func New(engine *srs.Engine) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	return &Bot{
		api:       api,
		engine:    engine,
		users:     database.NewUserRepository(),
		sets:      database.NewSetRepository(),
		cards:     database.NewCardRepository(),
		progress:  database.NewProgressRepository(),
		reviewLog: database.NewReviewLogRepository(),
		config:    DefaultConfig(),
		log:       logrus.WithField("component", "bot"),
	}, nil
}

// Start begins processing Telegram updates until the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.config.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	b.log.WithField("username", b.api.Self.UserName).Info("bot started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

// Stop shuts down the update channel
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	}
}

// send delivers a message and logs delivery failures instead of
// propagating them; a lost message must not wedge the update loop.
func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).Error("failed to send message")
	}
}

// SendReminder notifies a user about due cards; used by the scheduler
func (b *Bot) SendReminder(telegramID int64, dueCount int) error {
	text := fmt.Sprintf("You have %d card(s) waiting for review. Send /learn to continue.", dueCount)
	_, err := b.api.Send(tgbotapi.NewMessage(telegramID, text))
	return err
}
