package srs

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/example/flashbot/pkg/models"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (s *fakeUserStore) add(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *u
	s.users[u.ID] = &clone
}

func (s *fakeUserStore) GetByID(userID int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type fakeCardStore struct {
	mu       sync.Mutex
	cards    []models.Flashcard
	progress *fakeProgressStore
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{}
}

func (s *fakeCardStore) add(card models.Flashcard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append(s.cards, card)
	sort.Slice(s.cards, func(i, j int) bool { return s.cards[i].ID < s.cards[j].ID })
}

func (s *fakeCardStore) setOf(cardID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == cardID {
			return s.cards[i].SetID
		}
	}
	return 0
}

func (s *fakeCardStore) GetByID(cardID int64) (*models.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == cardID {
			clone := s.cards[i]
			return &clone, nil
		}
	}
	return nil, models.ErrCardNotFound
}

func (s *fakeCardStore) UnseenPool(userID, setID int64) ([]models.Flashcard, error) {
	s.mu.Lock()
	cards := append([]models.Flashcard(nil), s.cards...)
	s.mu.Unlock()
	var pool []models.Flashcard
	for _, card := range cards {
		if card.SetID != setID {
			continue
		}
		p := s.progress.find(userID, card.ID)
		if p == nil || p.ReviewCount == 0 {
			pool = append(pool, card)
		}
	}
	return pool, nil
}

func (s *fakeCardStore) Pool(setID int64) ([]models.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pool []models.Flashcard
	for _, card := range s.cards {
		if setID == 0 || card.SetID == setID {
			pool = append(pool, card)
		}
	}
	return pool, nil
}

type fakeProgressStore struct {
	mu      sync.Mutex
	seq     int64
	records map[int64]*models.CardProgress
	cards   *fakeCardStore
}

func newFakeProgressStore(cards *fakeCardStore) *fakeProgressStore {
	s := &fakeProgressStore{records: make(map[int64]*models.CardProgress), cards: cards}
	cards.progress = s
	return s
}

func cloneProgress(p *models.CardProgress) *models.CardProgress {
	clone := *p
	if p.LastReviewed != nil {
		v := *p.LastReviewed
		clone.LastReviewed = &v
	}
	if p.LearnedDate != nil {
		v := *p.LearnedDate
		clone.LearnedDate = &v
	}
	return &clone
}

// find returns the live record without copying; test helper only
func (s *fakeProgressStore) find(userID, cardID int64) *models.CardProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.records {
		if p.UserID == userID && p.FlashcardID == cardID {
			return p
		}
	}
	return nil
}

func (s *fakeProgressStore) add(p *models.CardProgress) *models.CardProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	clone := cloneProgress(p)
	clone.ID = s.seq
	s.records[clone.ID] = clone
	return cloneProgress(clone)
}

func (s *fakeProgressStore) GetByID(progressID int64) (*models.CardProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.records[progressID]
	if !ok {
		return nil, models.ErrProgressNotFound
	}
	return cloneProgress(p), nil
}

func (s *fakeProgressStore) GetByUserAndCard(userID, cardID int64) (*models.CardProgress, error) {
	if p := s.find(userID, cardID); p != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return cloneProgress(p), nil
	}
	return nil, models.ErrProgressNotFound
}

func (s *fakeProgressStore) Create(p *models.CardProgress) error {
	if existing := s.find(p.UserID, p.FlashcardID); existing != nil {
		return models.ErrDuplicateProgress
	}
	created := s.add(p)
	p.ID = created.ID
	return nil
}

func (s *fakeProgressStore) Update(p *models.CardProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[p.ID]; !ok {
		return models.ErrProgressNotFound
	}
	s.records[p.ID] = cloneProgress(p)
	return nil
}

// sortedRecords returns copies ordered by id so selection tests are
// deterministic under a seeded generator.
func (s *fakeProgressStore) sortedRecords() []*models.CardProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.CardProgress, 0, len(s.records))
	for _, p := range s.records {
		out = append(out, cloneProgress(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *fakeProgressStore) inScope(p *models.CardProgress, setID int64) bool {
	return setID == 0 || s.cards.setOf(p.FlashcardID) == setID
}

func (s *fakeProgressStore) DuePool(userID, setID, nowTS int64) ([]models.CardProgress, error) {
	var pool []models.CardProgress
	for _, p := range s.sortedRecords() {
		if p.UserID == userID && !p.IsSkipped && p.DueTime <= nowTS && s.inScope(p, setID) {
			pool = append(pool, *p)
		}
	}
	return pool, nil
}

func (s *fakeProgressStore) StartedPool(userID, setID int64) ([]models.CardProgress, error) {
	var pool []models.CardProgress
	for _, p := range s.sortedRecords() {
		if p.UserID == userID && !p.IsSkipped && s.inScope(p, setID) {
			pool = append(pool, *p)
		}
	}
	return pool, nil
}

func (s *fakeProgressStore) CountLearnedOn(userID, midnightTS int64) (int, error) {
	count := 0
	for _, p := range s.sortedRecords() {
		if p.UserID == userID && p.LearnedDate != nil && *p.LearnedDate == midnightTS {
			count++
		}
	}
	return count, nil
}

func (s *fakeProgressStore) NextDueAfter(userID, setID, nowTS int64) (int64, bool, error) {
	var next int64
	found := false
	for _, p := range s.sortedRecords() {
		if p.UserID != userID || p.IsSkipped || p.DueTime <= nowTS || !s.inScope(p, setID) {
			continue
		}
		if !found || p.DueTime < next {
			next = p.DueTime
			found = true
		}
	}
	return next, found, nil
}

// fixture wires an engine over fake stores with a frozen clock and a
// seeded generator.
type fixture struct {
	users    *fakeUserStore
	cards    *fakeCardStore
	progress *fakeProgressStore
	engine   *Engine
	now      int64
}

const fixtureTZ = 7

func newFixture(nowTS int64) *fixture {
	users := newFakeUserStore()
	cards := newFakeCardStore()
	progress := newFakeProgressStore(cards)
	engine := New(users, cards, progress, DefaultConfig())
	engine.now = func() time.Time { return time.Unix(nowTS, 0) }
	engine.rng = rand.New(rand.NewSource(1))
	return &fixture{users: users, cards: cards, progress: progress, engine: engine, now: nowTS}
}

func (f *fixture) addUser(id int64, setID int64, mode Mode) *models.User {
	user := &models.User{
		ID:             id,
		TelegramID:     id,
		Role:           models.RoleUser,
		TimezoneOffset: fixtureTZ,
		DailyNewLimit:  10,
		CurrentMode:    mode.String(),
	}
	if setID != 0 {
		user.CurrentSetID = &setID
	}
	f.users.add(user)
	return user
}

func (f *fixture) addCard(id, setID int64) {
	f.cards.add(models.Flashcard{ID: id, SetID: setID, Front: "front", Back: "back"})
}

// addProgress seeds a reviewed record; dueTime relative values are
// convenient for due/not-due setups.
func (f *fixture) addProgress(userID, cardID, dueTime int64, mutate func(*models.CardProgress)) *models.CardProgress {
	reviewed := f.now - 3600
	learned := midnightOf(f.now, fixtureTZ)
	p := &models.CardProgress{
		UserID:       userID,
		FlashcardID:  cardID,
		LastReviewed: &reviewed,
		DueTime:      dueTime,
		ReviewCount:  1,
		LearnedDate:  &learned,
	}
	if mutate != nil {
		mutate(p)
	}
	return f.progress.add(p)
}
