package srs

import (
	"fmt"

	"github.com/example/flashbot/pkg/models"
)

// canShowNewCard reports whether the user may be shown another never-seen
// card today. The count spans every set: one global daily budget. The
// check-then-create sequence is not serialized, so two truly concurrent
// sessions can overshoot the limit by one card; the store's uniqueness
// constraint still prevents duplicate records.
func (e *Engine) canShowNewCard(user *models.User, todayMidnight int64) (bool, error) {
	if user.HasPermission(models.PermUnlimitedNewCards) {
		return true, nil
	}
	limit := user.DailyNewLimit
	if limit <= 0 {
		limit = e.cfg.DefaultDailyLimit
	}
	learnedToday, err := e.progress.CountLearnedOn(user.ID, todayMidnight)
	if err != nil {
		return false, fmt.Errorf("failed to count cards learned today: %w", err)
	}
	return learnedToday < limit, nil
}
