package srs

import (
	"testing"

	"github.com/example/flashbot/pkg/models"
)

func TestSelectDueSkipsNotDueAndSkipped(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeDueOnlyRandom)
	for _, id := range []int64{10, 11, 12} {
		f.addCard(id, 2)
	}
	f.addProgress(1, 10, testNow-60, nil)
	f.addProgress(1, 11, testNow+3600, nil)
	f.addProgress(1, 12, testNow-60, func(p *models.CardProgress) { p.IsSkipped = true })

	for i := 0; i < 10; i++ {
		sel, err := f.engine.NextCard(1, 0, ModeDueOnlyRandom)
		if err != nil {
			t.Fatalf("NextCard: %v", err)
		}
		if !sel.Found() || sel.Card.ID != 10 {
			t.Fatalf("selection = %+v, want the only due non-skipped card 10", sel)
		}
	}
}

func TestSelectDueScopesToSet(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeDueOnlyRandom)
	f.addCard(10, 2)
	f.addCard(20, 3)
	f.addProgress(1, 10, testNow-60, nil)
	f.addProgress(1, 20, testNow-60, nil)

	sel, err := f.engine.NextCard(1, 0, ModeDueOnlyRandom)
	if err != nil {
		t.Fatalf("NextCard: %v", err)
	}
	if sel.Card.ID != 10 {
		t.Fatalf("card = %d, want the in-set 10", sel.Card.ID)
	}
}

func TestReviewAllDueSpansSets(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 0, ModeReviewAllDue)
	f.addCard(20, 3)
	f.addProgress(1, 20, testNow-60, nil)

	sel, err := f.engine.NextCard(1, 0, ModeReviewAllDue)
	if err != nil {
		t.Fatalf("NextCard: %v", err)
	}
	if !sel.Found() || sel.Card.ID != 20 {
		t.Fatalf("selection = %+v, want card 20 with no set selected", sel)
	}
}

func TestSelectHardestPrefersMostWrong(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeReviewHardest)
	for _, id := range []int64{10, 11, 12} {
		f.addCard(id, 2)
	}
	f.addProgress(1, 10, testNow-60, func(p *models.CardProgress) { p.IncorrectCount = 1 })
	f.addProgress(1, 11, testNow-60, func(p *models.CardProgress) { p.IncorrectCount = 4 })
	f.addProgress(1, 12, testNow+3600, func(p *models.CardProgress) { p.IncorrectCount = 9 })

	sel, err := f.engine.NextCard(1, 0, ModeReviewHardest)
	if err != nil {
		t.Fatalf("NextCard: %v", err)
	}
	if sel.Card.ID != 11 {
		t.Fatalf("card = %d, want 11 (hardest among due, not the not-yet-due 12)", sel.Card.ID)
	}
}

func TestSelectHardestTieBreaksAcrossCandidates(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeReviewHardest)
	for _, id := range []int64{10, 11, 12} {
		f.addCard(id, 2)
		f.addProgress(1, id, testNow-60, func(p *models.CardProgress) { p.IncorrectCount = 3 })
	}

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		sel, err := f.engine.NextCard(1, 0, ModeReviewHardest)
		if err != nil {
			t.Fatalf("NextCard: %v", err)
		}
		seen[sel.Card.ID] = true
	}
	if len(seen) != 3 {
		t.Errorf("tie-break reached %d of 3 candidates: %v", len(seen), seen)
	}
}

func TestSelectNewSequentialOrder(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeNewSequential)
	f.addCard(12, 2)
	f.addCard(10, 2)
	f.addCard(11, 2)

	sel, err := f.engine.NextCard(1, 0, ModeNewSequential)
	if err != nil {
		t.Fatalf("NextCard: %v", err)
	}
	if sel.Card.ID != 10 {
		t.Fatalf("card = %d, want lowest id 10", sel.Card.ID)
	}
}

func TestSelectNewRandomCoversPool(t *testing.T) {
	f := newFixture(testNow)
	user := f.addUser(1, 2, ModeNewRandom)
	user.DailyNewLimit = 100
	f.users.add(user)
	for _, id := range []int64{10, 11, 12} {
		f.addCard(id, 2)
	}

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		sel, err := f.engine.NextCard(1, 0, ModeNewRandom)
		if err != nil {
			t.Fatalf("NextCard: %v", err)
		}
		seen[sel.Card.ID] = true
	}
	if len(seen) != 3 {
		t.Errorf("random pick reached %d of 3 unseen cards: %v", len(seen), seen)
	}
}

func TestInterspersedPrefersDue(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeSequentialInterspersed)
	f.addCard(10, 2)
	f.addCard(11, 2)
	f.addProgress(1, 10, testNow-60, nil)

	sel, err := f.engine.NextCard(1, 0, ModeSequentialInterspersed)
	if err != nil {
		t.Fatalf("NextCard: %v", err)
	}
	if sel.Card.ID != 10 {
		t.Fatalf("card = %d, want the due 10 before any new card", sel.Card.ID)
	}
}

func TestInterspersedFallsBackToNew(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeSequentialInterspersed)
	f.addCard(10, 2)
	f.addCard(11, 2)
	f.addProgress(1, 10, testNow+3600, nil)

	sel, err := f.engine.NextCard(1, 0, ModeSequentialInterspersed)
	if err != nil {
		t.Fatalf("NextCard: %v", err)
	}
	if sel.Card.ID != 11 {
		t.Fatalf("card = %d, want the unseen 11 when nothing is due", sel.Card.ID)
	}
}

func TestCramHoldsBackRecentlyReviewed(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeCramSet)
	f.addCard(10, 2)
	f.addCard(11, 2)
	recent := testNow - 60
	f.addProgress(1, 10, testNow+3600, func(p *models.CardProgress) { p.LastReviewed = &recent })
	f.addProgress(1, 11, testNow+3600, nil)

	for i := 0; i < 10; i++ {
		sel, err := f.engine.NextCard(1, 0, ModeCramSet)
		if err != nil {
			t.Fatalf("NextCard: %v", err)
		}
		if sel.Card.ID != 11 {
			t.Fatalf("card = %d, want 11 while 10 sits in the recency window", sel.Card.ID)
		}
	}
}

func TestCramFallsBackWhenAllRecent(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeCramSet)
	f.addCard(10, 2)
	recent := testNow - 60
	f.addProgress(1, 10, testNow+3600, func(p *models.CardProgress) { p.LastReviewed = &recent })

	sel, err := f.engine.NextCard(1, 0, ModeCramSet)
	if err != nil {
		t.Fatalf("NextCard: %v", err)
	}
	if !sel.Found() || sel.Card.ID != 10 {
		t.Fatalf("selection = %+v, want 10 once the window filter empties the pool", sel)
	}
}

func TestCramIgnoresSchedule(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeCramSet)
	f.addCard(10, 2)
	f.addProgress(1, 10, testNow+30*secondsPerDay, nil)

	sel, err := f.engine.NextCard(1, 0, ModeCramSet)
	if err != nil {
		t.Fatalf("NextCard: %v", err)
	}
	if !sel.Found() || sel.Card.ID != 10 {
		t.Fatalf("selection = %+v, want 10 regardless of its far-future due time", sel)
	}
}

func TestCramPromotesFromCatalog(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 2, ModeCramSet)
	f.addCard(10, 2)

	sel, err := f.engine.NextCard(1, 0, ModeCramSet)
	if err != nil {
		t.Fatalf("NextCard: %v", err)
	}
	if !sel.Found() || sel.Card.ID != 10 {
		t.Fatalf("selection = %+v, want catalog card 10 promoted", sel)
	}
	if sel.Progress == nil || sel.Progress.ID == 0 {
		t.Fatal("promoted card has no progress record")
	}
}

func TestCramAllSpansSets(t *testing.T) {
	f := newFixture(testNow)
	f.addUser(1, 0, ModeCramAll)
	f.addCard(10, 2)
	f.addCard(20, 3)
	f.addProgress(1, 20, testNow+3600, nil)

	sel, err := f.engine.NextCard(1, 0, ModeCramAll)
	if err != nil {
		t.Fatalf("NextCard: %v", err)
	}
	if sel.Card.ID != 20 {
		t.Fatalf("card = %d, want the started 20 across sets", sel.Card.ID)
	}
}
