package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/flashbot/internal/srs"
	"github.com/example/flashbot/pkg/models"
)

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	user, err := b.users.GetOrCreateByTelegramID(
		msg.Chat.ID, msg.From.UserName, msg.From.FirstName, msg.From.LastName)
	if err != nil {
		b.log.WithError(err).Error("failed to load user")
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Something went wrong, please try again."))
		return
	}
	if err := b.users.TouchLastSeen(user.ID, time.Now().Unix()); err != nil {
		b.log.WithError(err).Warn("failed to update last_seen")
	}

	switch msg.Command() {
	case "start", "help":
		b.sendWelcome(user)
	case "learn":
		b.sendNextCard(user)
	case "sets":
		b.sendSetMenu(user)
	case "mode":
		b.sendModeMenu(user)
	case "score":
		b.sendScore(user)
	default:
		b.send(tgbotapi.NewMessage(user.TelegramID, "Unknown command. Try /learn, /sets, /mode or /score."))
	}
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	// Acknowledge immediately so the client stops its spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.WithError(err).Warn("failed to answer callback")
	}

	user, err := b.users.GetByTelegramID(cq.Message.Chat.ID)
	if err != nil {
		b.log.WithError(err).Error("callback from unknown user")
		return
	}
	if err := b.users.TouchLastSeen(user.ID, time.Now().Unix()); err != nil {
		b.log.WithError(err).Warn("failed to update last_seen")
	}

	parts := strings.Split(cq.Data, ":")
	switch parts[0] {
	case "learn":
		b.sendNextCard(user)
	case "reveal":
		if len(parts) == 2 {
			b.revealCard(user, cq.Message, parts[1])
		}
	case "resp":
		if len(parts) == 3 {
			b.applyResponse(user, parts[1], parts[2])
		}
	case "skip":
		if len(parts) == 2 {
			b.skipCard(user, parts[1])
		}
	case "set":
		if len(parts) == 2 {
			b.selectSet(user, parts[1])
		}
	case "mode":
		if len(parts) == 2 {
			b.selectMode(user, parts[1])
		}
	}
}

func (b *Bot) sendWelcome(user *models.User) {
	text := fmt.Sprintf(
		"Hi %s! I schedule your flashcard reviews.\n\n"+
			"/learn - review the next card\n"+
			"/sets - choose a card set\n"+
			"/mode - choose a learning mode\n"+
			"/score - your score",
		user.FirstName)
	b.send(tgbotapi.NewMessage(user.TelegramID, text))
}

// sendNextCard asks the engine for a card and presents it, or tells the
// user when to come back.
func (b *Bot) sendNextCard(user *models.User) {
	mode, _ := srs.ParseMode(user.CurrentMode)
	sel, err := b.engine.NextCard(user.ID, 0, mode)
	if errors.Is(err, srs.ErrSetRequired) {
		b.send(tgbotapi.NewMessage(user.TelegramID, "This mode needs a card set. Pick one with /sets."))
		return
	}
	if err != nil {
		b.log.WithError(err).Error("failed to pick next card")
		b.send(tgbotapi.NewMessage(user.TelegramID, "Something went wrong, please try again."))
		return
	}

	if !sel.Found() {
		loc := time.FixedZone("user", user.TimezoneOffset*3600)
		at := time.Unix(sel.WaitUntil, 0).In(loc)
		text := fmt.Sprintf("Nothing to review right now. Come back at %s.", at.Format("15:04, Jan 2"))
		b.send(tgbotapi.NewMessage(user.TelegramID, text))
		return
	}

	if sel.Progress.ReviewCount == 0 {
		b.presentNewCard(user, sel)
		return
	}
	b.presentReviewCard(user, sel)
}

// presentNewCard shows both sides at once; the user just acknowledges it
func (b *Bot) presentNewCard(user *models.User, sel *srs.Selection) {
	text := fmt.Sprintf("New card!\n\n%s\n\n%s", cardFront(sel.Card), sel.Card.Back)
	msg := tgbotapi.NewMessage(user.TelegramID, text)
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "Got it, continue", CallbackData: fmt.Sprintf("resp:%d:%d", sel.Progress.ID, srs.ResponseNewCard)}},
	})
	b.send(msg)
}

// presentReviewCard shows the front and a reveal button
func (b *Bot) presentReviewCard(user *models.User, sel *srs.Selection) {
	msg := tgbotapi.NewMessage(user.TelegramID, cardFront(sel.Card))
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "Show answer", CallbackData: fmt.Sprintf("reveal:%d", sel.Progress.ID)}},
		{{Text: "Skip this card", CallbackData: fmt.Sprintf("skip:%d", sel.Progress.ID)}},
	})
	b.send(msg)
}

// revealCard edits the presented message to include the back side and the
// grading buttons.
func (b *Bot) revealCard(user *models.User, msg *tgbotapi.Message, progressIDArg string) {
	progressID, err := strconv.ParseInt(progressIDArg, 10, 64)
	if err != nil {
		return
	}
	progress, err := b.progress.GetByID(progressID)
	if err != nil {
		b.log.WithError(err).Error("failed to load progress for reveal")
		return
	}
	card, err := b.cards.GetByID(progress.FlashcardID)
	if err != nil {
		b.log.WithError(err).Error("failed to load card for reveal")
		return
	}

	text := fmt.Sprintf("%s\n\n%s", cardFront(card), card.Back)
	if card.Example != "" {
		text += "\n\n" + card.Example
	}
	edit := tgbotapi.NewEditMessageText(user.TelegramID, msg.MessageID, text)
	keyboard := createKeyboard([][]MenuButton{
		{
			{Text: "✗ Wrong", CallbackData: fmt.Sprintf("resp:%d:%d", progressID, srs.ResponseIncorrect)},
			{Text: "~ Vague", CallbackData: fmt.Sprintf("resp:%d:%d", progressID, srs.ResponseVague)},
			{Text: "✓ Correct", CallbackData: fmt.Sprintf("resp:%d:%d", progressID, srs.ResponseCorrect)},
		},
	})
	edit.ReplyMarkup = &keyboard
	b.send(edit)
}

// applyResponse records the grade, credits the score, logs the review and
// moves on to the next card.
func (b *Bot) applyResponse(user *models.User, progressIDArg, responseArg string) {
	progressID, err := strconv.ParseInt(progressIDArg, 10, 64)
	if err != nil {
		return
	}
	responseValue, err := strconv.Atoi(responseArg)
	if err != nil {
		return
	}
	resp := srs.Response(responseValue)

	result, err := b.engine.RecordResponse(user.ID, progressID, resp)
	if err != nil {
		if errors.Is(err, models.ErrProgressNotFound) {
			b.send(tgbotapi.NewMessage(user.TelegramID, "That card is gone, let's pick another one."))
			b.sendNextCard(user)
			return
		}
		b.log.WithError(err).Error("failed to record response")
		b.send(tgbotapi.NewMessage(user.TelegramID, "Something went wrong, please try again."))
		return
	}

	if err := b.users.AddScore(user.ID, result.ScoreDelta); err != nil {
		b.log.WithError(err).Error("failed to add score")
	}
	if card, err := b.cards.GetByID(result.Progress.FlashcardID); err == nil {
		entry := &models.ReviewLogEntry{
			UserID:      user.ID,
			FlashcardID: card.ID,
			SetID:       card.SetID,
			ReviewedAt:  time.Now().Unix(),
			Response:    int(resp),
			ScoreChange: result.ScoreDelta,
		}
		if err := b.reviewLog.Append(entry); err != nil {
			b.log.WithError(err).Warn("failed to append review log")
		}
	}

	b.sendNextCard(user)
}

// skipCard flags the record so due-based modes stop offering it
func (b *Bot) skipCard(user *models.User, progressIDArg string) {
	progressID, err := strconv.ParseInt(progressIDArg, 10, 64)
	if err != nil {
		return
	}
	if err := b.progress.SetSkipped(progressID, true); err != nil {
		b.log.WithError(err).Error("failed to skip card")
		return
	}
	b.sendNextCard(user)
}

func (b *Bot) sendSetMenu(user *models.User) {
	sets, err := b.sets.GetAll()
	if err != nil {
		b.log.WithError(err).Error("failed to list sets")
		b.send(tgbotapi.NewMessage(user.TelegramID, "Something went wrong, please try again."))
		return
	}
	if len(sets) == 0 {
		b.send(tgbotapi.NewMessage(user.TelegramID, "No card sets yet."))
		return
	}
	var rows [][]MenuButton
	for _, set := range sets {
		rows = append(rows, []MenuButton{{Text: set.Name, CallbackData: fmt.Sprintf("set:%d", set.ID)}})
	}
	msg := tgbotapi.NewMessage(user.TelegramID, "Choose a card set:")
	msg.ReplyMarkup = createKeyboard(rows)
	b.send(msg)
}

func (b *Bot) selectSet(user *models.User, setIDArg string) {
	setID, err := strconv.ParseInt(setIDArg, 10, 64)
	if err != nil {
		return
	}
	set, err := b.sets.GetByID(setID)
	if err != nil {
		b.send(tgbotapi.NewMessage(user.TelegramID, "That set no longer exists."))
		return
	}
	if err := b.users.SetCurrentSet(user.ID, set.ID); err != nil {
		b.log.WithError(err).Error("failed to select set")
		return
	}
	b.send(tgbotapi.NewMessage(user.TelegramID, fmt.Sprintf("Selected set: %s. Send /learn to start.", set.Name)))
}

func (b *Bot) sendModeMenu(user *models.User) {
	var rows [][]MenuButton
	for _, mode := range srs.AllModes() {
		rows = append(rows, []MenuButton{{Text: mode.DisplayName(), CallbackData: "mode:" + mode.String()}})
	}
	msg := tgbotapi.NewMessage(user.TelegramID, "Choose a learning mode:")
	msg.ReplyMarkup = createKeyboard(rows)
	b.send(msg)
}

func (b *Bot) selectMode(user *models.User, name string) {
	mode, ok := srs.ParseMode(name)
	if !ok {
		return
	}
	if err := b.users.SetCurrentMode(user.ID, mode.String()); err != nil {
		b.log.WithError(err).Error("failed to select mode")
		return
	}
	b.send(tgbotapi.NewMessage(user.TelegramID, fmt.Sprintf("Mode set to %s. Send /learn to start.", mode.DisplayName())))
}

func (b *Bot) sendScore(user *models.User) {
	leaders, err := b.users.Leaderboard(b.config.LeaderboardLimit)
	if err != nil {
		b.log.WithError(err).Error("failed to load leaderboard")
		b.send(tgbotapi.NewMessage(user.TelegramID, fmt.Sprintf("Your score: %d", user.Score)))
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Your score: %d\n\nLeaderboard:\n", user.Score)
	for i, leader := range leaders {
		name := leader.FirstName
		if name == "" {
			name = leader.Username
		}
		fmt.Fprintf(&sb, "%d. %s: %d\n", i+1, name, leader.Score)
	}
	b.send(tgbotapi.NewMessage(user.TelegramID, sb.String()))
}

func cardFront(card *models.Flashcard) string {
	if card.Pronunciation != "" {
		return fmt.Sprintf("%s [%s]", card.Front, card.Pronunciation)
	}
	return card.Front
}
