// Package ads decides when a banner may be shown. Frequency capping state lives
// in a Session owned by the caller; nothing here talks to an ad network.
package ads

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

type Frequency string

const (
	FrequencyLow    Frequency = "low"
	FrequencyMedium Frequency = "medium"
	FrequencyHigh   Frequency = "high"
)

type Placement string

const (
	PlacementHome       Placement = "home"
	PlacementCalendar   Placement = "calendar"
	PlacementStatistics Placement = "statistics"
	PlacementSettings   Placement = "settings"
)

type Reason string

const (
	ReasonAllowed    Reason = "allowed"
	ReasonDisabled   Reason = "disabled"
	ReasonPlacement  Reason = "placement_not_allowed"
	ReasonSessionCap Reason = "session_cap_reached"
	ReasonTooSoon    Reason = "too_soon"
)

type capping struct {
	minGap        time.Duration
	maxPerSession int
}

var cappingByFrequency = map[Frequency]capping{
	FrequencyLow:    {minGap: 5 * time.Minute, maxPerSession: 3},
	FrequencyMedium: {minGap: 3 * time.Minute, maxPerSession: 6},
	FrequencyHigh:   {minGap: 1 * time.Minute, maxPerSession: 10},
}

type Config struct {
	Enabled    bool
	Frequency  Frequency
	Placements []Placement
}

// DefaultConfig shows ads sparingly and only on screens without data entry.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Frequency:  FrequencyLow,
		Placements: []Placement{PlacementStatistics, PlacementSettings},
	}
}

func ParseFrequency(raw string) (Frequency, error) {
	frequency := Frequency(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := cappingByFrequency[frequency]; !ok {
		return "", fmt.Errorf("unknown ad frequency %q", raw)
	}
	return frequency, nil
}

func ParsePlacement(raw string) (Placement, error) {
	placement := Placement(strings.ToLower(strings.TrimSpace(raw)))
	switch placement {
	case PlacementHome, PlacementCalendar, PlacementStatistics, PlacementSettings:
		return placement, nil
	default:
		return "", fmt.Errorf("unknown ad placement %q", raw)
	}
}

type Clock func() time.Time

type Decision struct {
	Placement   Placement `json:"placement"`
	Show        bool      `json:"show"`
	Reason      Reason    `json:"reason"`
	Impressions int       `json:"impressions"`
	Remaining   int       `json:"remaining"`
}

type Session struct {
	mu          sync.Mutex
	config      Config
	clock       Clock
	impressions int
	lastShown   time.Time
}

func NewSession(config Config, clock Clock) *Session {
	if _, ok := cappingByFrequency[config.Frequency]; !ok {
		config.Frequency = FrequencyLow
	}
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		config: config,
		clock:  clock,
	}
}

func (session *Session) CanShow(placement Placement) bool {
	return session.Decide(placement).Show
}

// Decide reports whether placement may show an ad now and why not otherwise.
func (session *Session) Decide(placement Placement) Decision {
	session.mu.Lock()
	defer session.mu.Unlock()

	limits := cappingByFrequency[session.config.Frequency]
	decision := Decision{
		Placement:   placement,
		Impressions: session.impressions,
		Remaining:   max(0, limits.maxPerSession-session.impressions),
	}

	switch {
	case !session.config.Enabled:
		decision.Reason = ReasonDisabled
	case !slices.Contains(session.config.Placements, placement):
		decision.Reason = ReasonPlacement
	case session.impressions >= limits.maxPerSession:
		decision.Reason = ReasonSessionCap
	case !session.lastShown.IsZero() && session.clock().Sub(session.lastShown) < limits.minGap:
		decision.Reason = ReasonTooSoon
	default:
		decision.Show = true
		decision.Reason = ReasonAllowed
	}
	return decision
}

func (session *Session) RecordImpression() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.impressions++
	session.lastShown = session.clock()
}

func (session *Session) Reset() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.impressions = 0
	session.lastShown = time.Time{}
}
