package services

import (
	"context"
	"time"

	"campusops/model"
)

// Risk thresholds for the wellness check-in alert. A simple rule, not a
// statistical model.
const (
	highStressThreshold = 4
	lowSleepThreshold   = 5.5
)

// WellnessStore persists check-in records and emergency cases. Reads never
// return soft-deleted rows.
type WellnessStore interface {
	RecordsByDate(date time.Time) ([]model.WellnessRecord, error)
	CreateRecord(record *model.WellnessRecord) error
	CreateCase(emergency *model.EmergencyCase) error
}

// WellnessNotifier is the slice of notification dispatch the wellness flow
// uses.
type WellnessNotifier interface {
	WellnessAlert(ctx context.Context, userID string) bool
	EmergencyAlert(ctx context.Context, userID, description string) bool
}

type WellnessService struct {
	records  WellnessStore
	notifier WellnessNotifier
}

func NewWellnessService(records WellnessStore, notifier WellnessNotifier) *WellnessService {
	return &WellnessService{records: records, notifier: notifier}
}

// CreateRecord enforces at most one check-in per user per date, scanning
// same-date records for a matching user id. A record that trips the risk
// thresholds triggers a best-effort alert to the user.
func (s *WellnessService) CreateRecord(ctx context.Context, userID string, date time.Time, stressLevel int, sleepHours float64, dietQuality int, comment string) (*model.WellnessRecord, error) {
	sameDate, err := s.records.RecordsByDate(date)
	if err != nil {
		return nil, err
	}
	for _, r := range sameDate {
		if r.UserID == userID {
			return nil, ErrDuplicateRecord
		}
	}

	record := &model.WellnessRecord{
		UserID:      userID,
		Date:        date,
		StressLevel: stressLevel,
		SleepHours:  sleepHours,
		DietQuality: dietQuality,
		Comment:     comment,
	}
	if err := s.records.CreateRecord(record); err != nil {
		return nil, err
	}

	if stressLevel >= highStressThreshold || sleepHours <= lowSleepThreshold {
		s.notifier.WellnessAlert(ctx, userID)
	}
	return record, nil
}

// CreateEmergencyCase opens a case. A nil userID means an anonymous
// submission; confidential defaults to true when omitted. Non-anonymous
// cases trigger a best-effort alert.
func (s *WellnessService) CreateEmergencyCase(ctx context.Context, channel, description string, confidential *bool, userID *string) (*model.EmergencyCase, error) {
	conf := true
	if confidential != nil {
		conf = *confidential
	}

	emergency := &model.EmergencyCase{
		UserID:       userID,
		Channel:      channel,
		Description:  description,
		Status:       model.EmergencyStatusOpen,
		Confidential: conf,
	}
	if err := s.records.CreateCase(emergency); err != nil {
		return nil, err
	}

	if userID != nil {
		s.notifier.EmergencyAlert(ctx, *userID, description)
	}
	return emergency, nil
}
