package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/models"
)

const (
	DefaultNotifyInterval     = time.Minute
	DefaultPeriodReminderDays = 2
	cycleNoticeHour           = 9
)

type ReminderScheduleRepository interface {
	ListEnabled() ([]models.Reminder, error)
	MarkFired(id string, firedOn string, disable bool) error
}

type SettingsReader interface {
	Load() (models.Settings, error)
}

type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

type NotificationConfig struct {
	Interval           time.Duration
	PeriodReminderDays int
	Location           *time.Location
}

type NotificationService struct {
	cycles     *CycleService
	reminders  ReminderScheduleRepository
	settings   SettingsReader
	translator Translator
	notifier   Notifier
	config     NotificationConfig

	mu                     sync.Mutex
	sentDailyNotifications map[string]cycle.Date
}

func NewNotificationService(
	cycles *CycleService,
	reminders ReminderScheduleRepository,
	settings SettingsReader,
	translator Translator,
	notifier Notifier,
	config NotificationConfig,
) *NotificationService {
	if config.Interval <= 0 {
		config.Interval = DefaultNotifyInterval
	}
	if config.PeriodReminderDays < 0 {
		config.PeriodReminderDays = DefaultPeriodReminderDays
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if notifier == nil {
		notifier = NewLogNotifier(nil)
	}

	return &NotificationService{
		cycles:                 cycles,
		reminders:              reminders,
		settings:               settings,
		translator:             translator,
		notifier:               notifier,
		config:                 config,
		sentDailyNotifications: make(map[string]cycle.Date),
	}
}

func (service *NotificationService) Start(ctx context.Context) {
	ticker := time.NewTicker(service.config.Interval)
	go func() {
		defer ticker.Stop()

		service.RunOnce(ctx, time.Now())
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.RunOnce(ctx, time.Now())
			}
		}
	}()
}

// RunOnce evaluates reminders and cycle notices at now and returns how many
// notices were delivered.
func (service *NotificationService) RunOnce(ctx context.Context, now time.Time) int {
	settings, err := service.settings.Load()
	if err != nil {
		log.Printf("notifications: load settings failed: %v", err)
		return 0
	}
	if !settings.NotificationsEnabled {
		return 0
	}

	now = now.In(service.config.Location)
	language := settings.Language
	sent := service.fireReminders(ctx, now, language)
	sent += service.sendCycleNotices(ctx, now, language)
	return sent
}

func (service *NotificationService) fireReminders(ctx context.Context, now time.Time, language string) int {
	reminders, err := service.reminders.ListEnabled()
	if err != nil {
		log.Printf("notifications: fetch reminders failed: %v", err)
		return 0
	}

	sent := 0
	for _, reminder := range reminders {
		occurrence, due := DueOccurrence(reminder, now)
		if !due {
			continue
		}

		notice := Notice{
			Key:   "reminder:" + reminder.ID,
			Title: reminder.Title,
			Body:  service.translator.Translate(language, "notification.body."+reminder.Type),
		}
		if err := service.notifier.Notify(ctx, notice); err != nil {
			log.Printf("notifications: send reminder %s failed: %v", reminder.ID, err)
			continue
		}
		sent++

		oneShot := reminder.Frequency == models.FrequencyCustom
		if err := service.reminders.MarkFired(reminder.ID, occurrence.Format("2006-01-02"), oneShot); err != nil {
			log.Printf("notifications: mark reminder %s fired failed: %v", reminder.ID, err)
		}
	}
	return sent
}

func (service *NotificationService) sendCycleNotices(ctx context.Context, now time.Time, language string) int {
	if now.Hour() < cycleNoticeHour {
		return 0
	}

	periods, averages, profile, err := service.cycles.LoadContext()
	if err != nil {
		log.Printf("notifications: load cycle context failed: %v", err)
		return 0
	}
	if !profile.OnboardingCompleted && len(periods) == 0 {
		return 0
	}

	today := cycle.DateOf(now)
	summary := cycle.Summarize(periods, averages, today)
	notices := make([]Notice, 0, 2)

	if next, ok := summary.NextPeriod.Get(); ok && next.DaysSince(today) == service.config.PeriodReminderDays {
		notices = append(notices, Notice{
			Key:   fmt.Sprintf("period:%s", today),
			Title: service.translator.Translate(language, "notification.period_soon.title"),
			Body:  service.translator.Translatef(language, "notification.period_soon.body", service.config.PeriodReminderDays),
		})
	}
	if ovulation, ok := summary.Ovulation.Get(); ok && ovulation.Equal(today) {
		notices = append(notices, Notice{
			Key:   fmt.Sprintf("ovulation:%s", today),
			Title: service.translator.Translate(language, "notification.ovulation.title"),
			Body:  service.translator.Translate(language, "notification.ovulation.body"),
		})
	}

	sent := 0
	for _, notice := range notices {
		if !service.shouldSend(notice.Key, today) {
			continue
		}
		if err := service.notifier.Notify(ctx, notice); err != nil {
			log.Printf("notifications: send %s failed: %v", notice.Key, err)
			service.forget(notice.Key)
			continue
		}
		sent++
	}
	return sent
}

func (service *NotificationService) shouldSend(key string, today cycle.Date) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if sentOn, ok := service.sentDailyNotifications[key]; ok && sentOn.Equal(today) {
		return false
	}

	service.sentDailyNotifications[key] = today
	if len(service.sentDailyNotifications) > 500 {
		service.sentDailyNotifications = map[string]cycle.Date{key: today}
	}
	return true
}

func (service *NotificationService) forget(key string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.sentDailyNotifications, key)
}
