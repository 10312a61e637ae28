package models

import "time"

const (
	MoodHappy      = "happy"
	MoodSad        = "sad"
	MoodAnxious    = "anxious"
	MoodCalm       = "calm"
	MoodAngry      = "angry"
	MoodConfused   = "confused"
	MoodSleepy     = "sleepy"
	MoodDistracted = "distracted"
)

func Moods() []string {
	return []string{MoodHappy, MoodSad, MoodAnxious, MoodCalm, MoodAngry, MoodConfused, MoodSleepy, MoodDistracted}
}

type DailyLog struct {
	ID             uint     `gorm:"primaryKey"`
	Date           string   `gorm:"not null;uniqueIndex"`
	Mood           string   `gorm:"not null;default:''"`
	Flow           string   `gorm:"not null;default:''"`
	Symptoms       []string `gorm:"serializer:json"`
	Notes          string   `gorm:"not null;default:''"`
	SexualActivity *bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
