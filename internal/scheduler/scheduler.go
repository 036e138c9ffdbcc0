package scheduler

import (
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/example/flashbot/internal/database"
)

// Default notification window; outside it no reminders are sent
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Notifier delivers reminders to users
type Notifier interface {
	SendReminder(telegramID int64, dueCount int) error
}

// Scheduler runs the hourly reminder job
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	log       *logrus.Entry
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		log:       logrus.WithField("component", "scheduler"),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func notificationWindow() (int, int) {
	startHour := DefaultNotificationStartHour
	endHour := DefaultNotificationEndHour
	if v := os.Getenv("NOTIFICATION_START_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			startHour = h
		}
	}
	if v := os.Getenv("NOTIFICATION_END_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			endHour = h
		}
	}
	return startHour, endHour
}

// checkAndSendReminders notifies every user whose preferred hour matches
// the current hour in their timezone and who has due cards waiting.
func (s *Scheduler) checkAndSendReminders() {
	now := time.Now()
	startHour, endHour := notificationWindow()

	userRepo := database.NewUserRepository()
	progressRepo := database.NewProgressRepository()

	// Users store their preferred hour in their own timezone; walk every
	// offset that maps the current UTC hour onto a preferred hour
	for offset := -12; offset <= 14; offset++ {
		localHour := ((now.UTC().Hour()+offset)%24 + 24) % 24
		if localHour < startHour || localHour > endHour {
			continue
		}
		users, err := userRepo.GetUsersForNotification(localHour)
		if err != nil {
			s.log.WithError(err).Error("failed to get users for notification")
			return
		}
		for _, user := range users {
			if user.TimezoneOffset != offset {
				continue
			}
			due, err := progressRepo.DuePool(user.ID, 0, now.Unix())
			if err != nil {
				s.log.WithError(err).WithField("user_id", user.ID).Error("failed to count due cards")
				continue
			}
			if len(due) == 0 {
				continue
			}
			if err := s.notifier.SendReminder(user.TelegramID, len(due)); err != nil {
				s.log.WithError(err).WithField("user_id", user.ID).Error("failed to send reminder")
			}
		}
	}
}
