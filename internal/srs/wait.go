package srs

import "fmt"

// resolveWait computes when retrying NextCard could produce a card: the
// earliest future due time in scope if that comes before midnight
// tomorrow (user's timezone), otherwise midnight tomorrow. The result is
// never closer than MinWaitSeconds.
func (e *Engine) resolveWait(userID, setID int64, tzOffsetHours int, nowTS int64) (int64, error) {
	wait := midnightTomorrow(nowTS, tzOffsetHours)
	nextDue, ok, err := e.progress.NextDueAfter(userID, setID, nowTS)
	if err != nil {
		return 0, fmt.Errorf("failed to find next due time: %w", err)
	}
	if ok && nextDue < wait {
		wait = nextDue
	}
	if min := nowTS + e.cfg.MinWaitSeconds; wait < min {
		wait = min
	}
	return wait, nil
}
