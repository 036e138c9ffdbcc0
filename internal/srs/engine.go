package srs

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/flashbot/pkg/models"
)

// Engine schedules flashcard reviews. It decides which card a user sees
// next for a given mode and folds graded responses back into the per-card
// progress state. Calls for different users are independent; calls for the
// same user rely on the store's per-row atomicity, not on the engine.
type Engine struct {
	users    UserStore
	cards    CardStore
	progress ProgressStore
	cfg      Config
	log      *logrus.Entry

	now func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// New creates a review engine over the given stores
func New(users UserStore, cards CardStore, progress ProgressStore, cfg Config) *Engine {
	return &Engine{
		users:    users,
		cards:    cards,
		progress: progress,
		cfg:      cfg,
		log:      logrus.WithField("component", "srs"),
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Selection is the outcome of NextCard: either a card to present together
// with its progress record, or a hint that nothing is available before
// WaitUntil.
type Selection struct {
	Card     *models.Flashcard
	Progress *models.CardProgress
	// WaitUntil is the Unix timestamp at which retrying makes sense.
	// Set only when Card is nil.
	WaitUntil int64
}

// Found reports whether the selection carries a card
func (s *Selection) Found() bool {
	return s.Card != nil
}

// ReviewResult is the outcome of RecordResponse
type ReviewResult struct {
	Progress *models.CardProgress
	// ScoreDelta is the score change to credit the user. The engine only
	// emits it; persisting the total is the caller's concern.
	ScoreDelta int
}

// selectionContext carries the per-call inputs every strategy receives
type selectionContext struct {
	user     *models.User
	setID    int64 // 0 = all sets
	now      int64
	midnight int64 // today's midnight in the user's timezone
}

// NextCard picks the next card for the user under the given mode. setID
// overrides the user's currently selected set when non-zero; modes that
// span all sets ignore it. Returns ErrSetRequired when the mode needs a
// set and none is selected.
func (e *Engine) NextCard(userID, setID int64, mode Mode) (*Selection, error) {
	user, err := e.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	scope := setID
	if scope == 0 && user.CurrentSetID != nil {
		scope = *user.CurrentSetID
	}
	if mode.RequiresSet() {
		if scope == 0 {
			return nil, ErrSetRequired
		}
	} else {
		scope = 0
	}

	now := e.now().Unix()
	ctx := &selectionContext{
		user:     user,
		setID:    scope,
		now:      now,
		midnight: midnightOf(now, user.TimezoneOffset),
	}

	log := e.log.WithFields(logrus.Fields{
		"user_id": userID,
		"mode":    mode.String(),
		"set_id":  scope,
	})

	sel, err := strategies[mode](e, ctx)
	if err != nil {
		return nil, err
	}
	if sel != nil {
		log.WithField("card_id", sel.Card.ID).Debug("selected card")
		return sel, nil
	}

	wait, err := e.resolveWait(user.ID, scope, user.TimezoneOffset, now)
	if err != nil {
		return nil, err
	}
	log.WithField("wait_until", wait).Info("no card available")
	return &Selection{WaitUntil: wait}, nil
}

// RecordResponse applies a graded response to the referenced progress
// record and returns the updated record plus the emitted score delta. The
// record is written back in a single store update, so a storage failure
// leaves it untouched.
func (e *Engine) RecordResponse(userID, progressID int64, resp Response) (*ReviewResult, error) {
	if !resp.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResponse, int(resp))
	}

	user, err := e.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	p, err := e.progress.GetByID(progressID)
	if err != nil {
		return nil, err
	}
	// A progress id belonging to another user is a stale reference
	if p.UserID != userID {
		return nil, models.ErrProgressNotFound
	}

	mode, _ := ParseMode(user.CurrentMode)
	now := e.now().Unix()
	delta, err := applyResponse(e.cfg, p, resp, mode.QuickReview(), now, user.TimezoneOffset)
	if err != nil {
		return nil, err
	}
	if err := e.progress.Update(p); err != nil {
		return nil, fmt.Errorf("failed to save progress %d: %w", p.ID, err)
	}

	e.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"progress_id": progressID,
		"response":    resp.String(),
		"streak":      p.CorrectStreak,
		"due_time":    p.DueTime,
		"score_delta": delta,
	}).Info("recorded response")

	return &ReviewResult{Progress: p, ScoreDelta: delta}, nil
}

// pick returns a uniformly random index below n
func (e *Engine) pick(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

// newProgress builds the initial record for a card being presented for the
// first time: due shortly, learned today, all counters zero.
func (e *Engine) newProgress(userID, cardID, nowTS int64, tzOffsetHours int) *models.CardProgress {
	midnight := midnightOf(nowTS, tzOffsetHours)
	return &models.CardProgress{
		UserID:      userID,
		FlashcardID: cardID,
		DueTime:     nowTS + int64(e.cfg.NewRetryMinutes)*60,
		LearnedDate: &midnight,
	}
}

// ensureProgress returns the existing record for the (user, card) pair or
// creates the initial one. A concurrent create is resolved by re-reading
// after the store reports a duplicate.
func (e *Engine) ensureProgress(userID, cardID, nowTS int64, tzOffsetHours int) (*models.CardProgress, error) {
	p, err := e.progress.GetByUserAndCard(userID, cardID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, models.ErrProgressNotFound) {
		return nil, err
	}
	p = e.newProgress(userID, cardID, nowTS, tzOffsetHours)
	err = e.progress.Create(p)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, models.ErrDuplicateProgress) {
		return e.progress.GetByUserAndCard(userID, cardID)
	}
	return nil, fmt.Errorf("failed to create progress for card %d: %w", cardID, err)
}
