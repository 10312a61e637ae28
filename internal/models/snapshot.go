package models

// DataSnapshot is the complete persisted state, used by backup restore.
type DataSnapshot struct {
	Periods   []Period
	DailyLogs []DailyLog
	Reminders []Reminder
	Profile   Profile
	Settings  Settings
}
