package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/models"
)

type periodRepositoryStub struct {
	rows    map[string]models.Period
	listErr error
	saveErr error
}

func newPeriodRepositoryStub(rows ...models.Period) *periodRepositoryStub {
	stub := &periodRepositoryStub{rows: make(map[string]models.Period)}
	for _, row := range rows {
		stub.rows[row.ID] = row
	}
	return stub
}

func (stub *periodRepositoryStub) ListAll() ([]models.Period, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	rows := make([]models.Period, 0, len(stub.rows))
	for _, row := range stub.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].StartDate < rows[j].StartDate
	})
	return rows, nil
}

func (stub *periodRepositoryStub) FindByID(id string) (models.Period, bool, error) {
	if stub.listErr != nil {
		return models.Period{}, false, stub.listErr
	}
	row, ok := stub.rows[id]
	return row, ok, nil
}

func (stub *periodRepositoryStub) Create(period *models.Period) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	if _, exists := stub.rows[period.ID]; exists {
		return fmt.Errorf("duplicate id %s", period.ID)
	}
	stub.rows[period.ID] = *period
	return nil
}

func (stub *periodRepositoryStub) Save(period *models.Period) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.rows[period.ID] = *period
	return nil
}

func (stub *periodRepositoryStub) Delete(id string) (bool, error) {
	if stub.saveErr != nil {
		return false, stub.saveErr
	}
	if _, ok := stub.rows[id]; !ok {
		return false, nil
	}
	delete(stub.rows, id)
	return true, nil
}

type dayLogRepositoryStub struct {
	entries map[string]models.DailyLog
	findErr error
	saveErr error
}

func newDayLogRepositoryStub(entries ...models.DailyLog) *dayLogRepositoryStub {
	stub := &dayLogRepositoryStub{entries: make(map[string]models.DailyLog)}
	for _, entry := range entries {
		stub.entries[entry.Date] = entry
	}
	return stub
}

func (stub *dayLogRepositoryStub) ListAll() ([]models.DailyLog, error) {
	return stub.ListRange("0000-01-01", "9999-12-31")
}

func (stub *dayLogRepositoryStub) ListRange(from string, to string) ([]models.DailyLog, error) {
	if stub.findErr != nil {
		return nil, stub.findErr
	}
	logs := make([]models.DailyLog, 0)
	for date, entry := range stub.entries {
		if date >= from && date <= to {
			logs = append(logs, entry)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date < logs[j].Date
	})
	return logs, nil
}

func (stub *dayLogRepositoryStub) FindByDate(date string) (models.DailyLog, bool, error) {
	if stub.findErr != nil {
		return models.DailyLog{}, false, stub.findErr
	}
	entry, ok := stub.entries[date]
	return entry, ok, nil
}

func (stub *dayLogRepositoryStub) Upsert(entry *models.DailyLog) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.entries[entry.Date] = *entry
	return nil
}

func (stub *dayLogRepositoryStub) DeleteByDate(date string) (bool, error) {
	if stub.saveErr != nil {
		return false, stub.saveErr
	}
	if _, ok := stub.entries[date]; !ok {
		return false, nil
	}
	delete(stub.entries, date)
	return true, nil
}

type reminderRepositoryStub struct {
	rows    map[string]models.Reminder
	saveErr error
	fired   []string
}

func newReminderRepositoryStub(rows ...models.Reminder) *reminderRepositoryStub {
	stub := &reminderRepositoryStub{rows: make(map[string]models.Reminder)}
	for _, row := range rows {
		stub.rows[row.ID] = row
	}
	return stub
}

func (stub *reminderRepositoryStub) ListAll() ([]models.Reminder, error) {
	rows := make([]models.Reminder, 0, len(stub.rows))
	for _, row := range stub.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Time == rows[j].Time {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].Time < rows[j].Time
	})
	return rows, nil
}

func (stub *reminderRepositoryStub) ListEnabled() ([]models.Reminder, error) {
	all, _ := stub.ListAll()
	enabled := make([]models.Reminder, 0, len(all))
	for _, row := range all {
		if row.Enabled {
			enabled = append(enabled, row)
		}
	}
	return enabled, nil
}

func (stub *reminderRepositoryStub) FindByID(id string) (models.Reminder, bool, error) {
	row, ok := stub.rows[id]
	return row, ok, nil
}

func (stub *reminderRepositoryStub) Create(reminder *models.Reminder) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.rows[reminder.ID] = *reminder
	return nil
}

func (stub *reminderRepositoryStub) Save(reminder *models.Reminder) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.rows[reminder.ID] = *reminder
	return nil
}

func (stub *reminderRepositoryStub) MarkFired(id string, firedOn string, disable bool) error {
	row := stub.rows[id]
	row.LastFiredOn = firedOn
	if disable {
		row.Enabled = false
	}
	stub.rows[id] = row
	stub.fired = append(stub.fired, id)
	return nil
}

func (stub *reminderRepositoryStub) Delete(id string) (bool, error) {
	if _, ok := stub.rows[id]; !ok {
		return false, nil
	}
	delete(stub.rows, id)
	return true, nil
}

type profileRepositoryStub struct {
	profile models.Profile
	loadErr error
	saveErr error
}

func (stub *profileRepositoryStub) Load() (models.Profile, error) {
	if stub.loadErr != nil {
		return models.Profile{}, stub.loadErr
	}
	return stub.profile, nil
}

func (stub *profileRepositoryStub) Save(profile *models.Profile) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.profile = *profile
	return nil
}

type settingsRepositoryStub struct {
	settings models.Settings
	loadErr  error
	saveErr  error
}

func newSettingsRepositoryStub() *settingsRepositoryStub {
	return &settingsRepositoryStub{settings: models.DefaultSettings()}
}

func (stub *settingsRepositoryStub) Load() (models.Settings, error) {
	if stub.loadErr != nil {
		return models.Settings{}, stub.loadErr
	}
	return stub.settings, nil
}

func (stub *settingsRepositoryStub) Save(settings *models.Settings) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.settings = *settings
	return nil
}

type dataRepositoryStub struct {
	cleared        bool
	replaced       *models.DataSnapshot
	onboarded      *models.Profile
	seed           *models.Period
	notifications  bool
	err            error
	replaceCalls   int
	onboardedCalls int
}

func (stub *dataRepositoryStub) ClearAllData() error {
	if stub.err != nil {
		return stub.err
	}
	stub.cleared = true
	return nil
}

func (stub *dataRepositoryStub) ReplaceAll(snapshot models.DataSnapshot) error {
	stub.replaceCalls++
	if stub.err != nil {
		return stub.err
	}
	stub.replaced = &snapshot
	return nil
}

func (stub *dataRepositoryStub) CompleteOnboarding(profile models.Profile, seed *models.Period, notificationsEnabled bool) error {
	stub.onboardedCalls++
	if stub.err != nil {
		return stub.err
	}
	stub.onboarded = &profile
	stub.seed = seed
	stub.notifications = notificationsEnabled
	return nil
}

type translatorStub struct{}

func (translatorStub) Translate(language string, key string) string {
	return language + ":" + key
}

func (translatorStub) Translatef(language string, key string, args ...any) string {
	return fmt.Sprintf("%s:%s:%v", language, key, args)
}

type notifierStub struct {
	mu      sync.Mutex
	notices []Notice
	err     error
}

func (stub *notifierStub) Notify(_ context.Context, notice Notice) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.err != nil {
		return stub.err
	}
	stub.notices = append(stub.notices, notice)
	return nil
}

func (stub *notifierStub) keys() []string {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	keys := make([]string, 0, len(stub.notices))
	for _, notice := range stub.notices {
		keys = append(keys, notice.Key)
	}
	return keys
}

func periodRow(id string, start string, end string) models.Period {
	row := models.Period{ID: id, StartDate: start}
	if end != "" {
		row.EndDate = &end
	}
	return row
}

func mustDate(raw string) cycle.Date {
	return cycle.MustParseDate(raw)
}

func newCycleServiceForTest(periods *periodRepositoryStub, profile *profileRepositoryStub, logs *dayLogRepositoryStub) *CycleService {
	return NewCycleService(NewPeriodService(periods), profile, logs)
}
