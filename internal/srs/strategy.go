package srs

import (
	"fmt"

	"github.com/example/flashbot/pkg/models"
)

// strategyFunc picks a card for one learning mode. A nil selection with a
// nil error means "no candidate now"; the facade then resolves a wait
// hint.
type strategyFunc func(*Engine, *selectionContext) (*Selection, error)

// strategies maps every mode to its selection strategy
var strategies = map[Mode]strategyFunc{
	ModeSequentialInterspersed: func(e *Engine, c *selectionContext) (*Selection, error) {
		return e.selectInterspersed(c, false)
	},
	ModeRandomInterspersed: func(e *Engine, c *selectionContext) (*Selection, error) {
		return e.selectInterspersed(c, true)
	},
	ModeNewSequential: func(e *Engine, c *selectionContext) (*Selection, error) {
		return e.selectNew(c, false)
	},
	ModeNewRandom: func(e *Engine, c *selectionContext) (*Selection, error) {
		return e.selectNew(c, true)
	},
	ModeDueOnlyRandom: (*Engine).selectDue,
	ModeReviewAllDue:  (*Engine).selectDue,
	ModeReviewHardest: (*Engine).selectHardest,
	ModeCramSet:       (*Engine).selectCram,
	ModeCramAll:       (*Engine).selectCram,
}

// selectDue picks uniformly at random among non-skipped records that are due
func (e *Engine) selectDue(c *selectionContext) (*Selection, error) {
	pool, err := e.progress.DuePool(c.user.ID, c.setID, c.now)
	if err != nil {
		return nil, fmt.Errorf("failed to query due cards: %w", err)
	}
	if len(pool) == 0 {
		return nil, nil
	}
	chosen := pool[e.pick(len(pool))]
	return e.selectionFor(&chosen)
}

// selectHardest picks among due cards the one with the most wrong answers,
// breaking ties uniformly at random.
func (e *Engine) selectHardest(c *selectionContext) (*Selection, error) {
	pool, err := e.progress.DuePool(c.user.ID, c.setID, c.now)
	if err != nil {
		return nil, fmt.Errorf("failed to query due cards: %w", err)
	}
	if len(pool) == 0 {
		return nil, nil
	}
	hardest := pool[:0:0]
	worst := -1
	for i := range pool {
		switch {
		case pool[i].IncorrectCount > worst:
			worst = pool[i].IncorrectCount
			hardest = append(hardest[:0], pool[i])
		case pool[i].IncorrectCount == worst:
			hardest = append(hardest, pool[i])
		}
	}
	chosen := hardest[e.pick(len(hardest))]
	return e.selectionFor(&chosen)
}

// selectNew picks a never-answered card, sequentially by id or uniformly
// at random, provided the daily quota allows one more new card.
func (e *Engine) selectNew(c *selectionContext, random bool) (*Selection, error) {
	ok, err := e.canShowNewCard(c.user, c.midnight)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	pool, err := e.cards.UnseenPool(c.user.ID, c.setID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unseen cards: %w", err)
	}
	if len(pool) == 0 {
		return nil, nil
	}
	idx := 0
	if random {
		idx = e.pick(len(pool))
	}
	card := pool[idx]
	progress, err := e.ensureProgress(c.user.ID, card.ID, c.now, c.user.TimezoneOffset)
	if err != nil {
		return nil, err
	}
	return &Selection{Card: &card, Progress: progress}, nil
}

// selectInterspersed tries the due pool first and falls back to new cards,
// the only composite strategy.
func (e *Engine) selectInterspersed(c *selectionContext, randomNew bool) (*Selection, error) {
	sel, err := e.selectDue(c)
	if err != nil || sel != nil {
		return sel, err
	}
	return e.selectNew(c, randomNew)
}

// selectCram drills already-started cards regardless of schedule. Cards
// answered within the recency window are held back; if that empties the
// pool the filter is dropped, and if the user has started nothing in scope
// a card is promoted straight from the catalog.
func (e *Engine) selectCram(c *selectionContext) (*Selection, error) {
	started, err := e.progress.StartedPool(c.user.ID, c.setID)
	if err != nil {
		return nil, fmt.Errorf("failed to query started cards: %w", err)
	}

	cutoff := c.now - int64(e.cfg.CramRecencyMinutes)*60
	fresh := started[:0:0]
	for i := range started {
		if started[i].LastReviewed != nil && *started[i].LastReviewed > cutoff {
			continue
		}
		fresh = append(fresh, started[i])
	}
	if len(fresh) == 0 {
		fresh = started
	}
	if len(fresh) > 0 {
		chosen := fresh[e.pick(len(fresh))]
		return e.selectionFor(&chosen)
	}

	// Nothing started in scope: promote any catalog card, creating its
	// record on the spot
	pool, err := e.cards.Pool(c.setID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	if len(pool) == 0 {
		return nil, nil
	}
	card := pool[e.pick(len(pool))]
	progress, err := e.ensureProgress(c.user.ID, card.ID, c.now, c.user.TimezoneOffset)
	if err != nil {
		return nil, err
	}
	return &Selection{Card: &card, Progress: progress}, nil
}

// selectionFor loads the card a progress record points at
func (e *Engine) selectionFor(p *models.CardProgress) (*Selection, error) {
	card, err := e.cards.GetByID(p.FlashcardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load card %d: %w", p.FlashcardID, err)
	}
	return &Selection{Card: card, Progress: p}, nil
}
