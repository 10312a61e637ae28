package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/ciclo/internal/models"
)

const (
	maxProfileNameLength = 64
	maxProfileAge        = 120
	maxProfileWeight     = 500
	maxProfileHeight     = 300
)

var (
	ErrInvalidProfileAge    = errors.New("invalid profile age")
	ErrInvalidProfileWeight = errors.New("invalid profile weight")
	ErrInvalidProfileHeight = errors.New("invalid profile height")
)

// ProfileUpdate carries the fields to change. A zero average length clears
// the configured value so the computed one is used.
type ProfileUpdate struct {
	Name                *string
	Age                 *int
	Weight              *float64
	Height              *float64
	AverageCycleLength  *int
	AveragePeriodLength *int
}

func (service *SettingsService) LoadProfile() (models.Profile, error) {
	profile, err := service.profile.Load()
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	return profile, nil
}

func (service *SettingsService) UpdateProfile(update ProfileUpdate) (models.Profile, error) {
	profile, err := service.LoadProfile()
	if err != nil {
		return models.Profile{}, err
	}

	if update.Name != nil {
		profile.Name = SanitizeText(*update.Name, maxProfileNameLength)
	}
	if update.Age != nil {
		if *update.Age < 0 || *update.Age > maxProfileAge {
			return models.Profile{}, ErrInvalidProfileAge
		}
		profile.Age = *update.Age
	}
	if update.Weight != nil {
		if *update.Weight < 0 || *update.Weight > maxProfileWeight {
			return models.Profile{}, ErrInvalidProfileWeight
		}
		profile.Weight = *update.Weight
	}
	if update.Height != nil {
		if *update.Height < 0 || *update.Height > maxProfileHeight {
			return models.Profile{}, ErrInvalidProfileHeight
		}
		profile.Height = *update.Height
	}
	if update.AverageCycleLength != nil {
		profile.AverageCycleLength = *update.AverageCycleLength
	}
	if update.AveragePeriodLength != nil {
		profile.AveragePeriodLength = *update.AveragePeriodLength
	}
	if err := validateConfiguredAverages(profile.AverageCycleLength, profile.AveragePeriodLength); err != nil {
		return models.Profile{}, err
	}

	if err := service.profile.Save(&profile); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrSettingsSaveFailed, err)
	}
	return profile, nil
}

func validateConfiguredAverages(cycleLength int, periodLength int) error {
	switch {
	case cycleLength == 0 && periodLength == 0:
		return nil
	case cycleLength == 0:
		if periodLength < MinPeriodLength || periodLength > MaxPeriodLength {
			return ErrInvalidPeriodLength
		}
		return nil
	case periodLength == 0:
		if cycleLength < MinCycleLength || cycleLength > MaxCycleLength {
			return ErrInvalidCycleLength
		}
		return nil
	default:
		return ValidateCycleSettings(cycleLength, periodLength)
	}
}
