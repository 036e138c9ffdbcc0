package srs

import (
	"github.com/example/flashbot/pkg/models"
)

// nextReviewTime computes the due timestamp after a correct answer.
// streak is the consecutive-correct count before this answer: the first
// correct answer waits InitialIntervalHours, after that the interval
// doubles as 2^(streak-1) * 2 hours, capped at MaxIntervalDays. The
// result is always at least MinWaitSeconds ahead.
func (c Config) nextReviewTime(streak int, nowTS int64) int64 {
	hours := c.InitialIntervalHours
	maxHours := float64(c.MaxIntervalDays) * 24
	if streak > 0 {
		// Shifts beyond the cap would overflow long before the cap applies
		if streak-1 >= 20 {
			hours = maxHours
		} else {
			hours = float64(int64(1)<<uint(streak-1)) * 2
		}
	}
	if hours > maxHours {
		hours = maxHours
	}
	next := nowTS + int64(hours*3600)
	if min := nowTS + c.MinWaitSeconds; next < min {
		next = min
	}
	return next
}

// applyResponse folds a graded response into the progress record and
// returns the score delta to credit the user. The whole record is mutated
// in place so a single store write commits the update atomically.
// IsSkipped is never touched here.
//
// quick selects the reduced score table used by the drill modes; the
// scheduling update itself is identical in every mode.
func applyResponse(cfg Config, p *models.CardProgress, resp Response, quick bool, nowTS int64, tzOffsetHours int) (int, error) {
	if !resp.Valid() {
		return 0, ErrInvalidResponse
	}

	reviewed := nowTS
	p.LastReviewed = &reviewed
	p.ReviewCount++

	score := 0
	switch resp {
	case ResponseNewCard:
		p.DueTime = nowTS + int64(cfg.NewRetryMinutes)*60
		if p.LearnedDate == nil {
			midnight := midnightOf(nowTS, tzOffsetHours)
			p.LearnedDate = &midnight
		}
		score = cfg.ScoreNewCard
	case ResponseCorrect:
		previousStreak := p.CorrectStreak
		p.CorrectStreak++
		p.CorrectCount++
		p.DueTime = cfg.nextReviewTime(previousStreak, nowTS)
		if quick {
			score = cfg.ScoreQuickCorrect
		} else {
			score = cfg.ScoreCorrect
		}
	case ResponseVague:
		p.CorrectStreak = 0
		p.DueTime = nowTS + int64(cfg.HardRetryMinutes)*60
		if quick {
			score = cfg.ScoreQuickHard
		} else {
			score = cfg.ScoreHard
		}
	case ResponseIncorrect:
		// A lapse is a fall from a positive streak, not every wrong answer
		if p.CorrectStreak > 0 {
			p.LapseCount++
		}
		p.CorrectStreak = 0
		p.IncorrectCount++
		p.DueTime = nowTS + int64(cfg.WrongRetryMinutes)*60
	}
	return score, nil
}
