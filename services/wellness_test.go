package services

import (
	"context"
	"testing"
	"time"

	"campusops/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWellnessStore struct {
	records []model.WellnessRecord
	cases   []model.EmergencyCase
}

func (s *fakeWellnessStore) RecordsByDate(date time.Time) ([]model.WellnessRecord, error) {
	var out []model.WellnessRecord
	for _, r := range s.records {
		if r.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeWellnessStore) CreateRecord(record *model.WellnessRecord) error {
	if record.RecordID == "" {
		record.RecordID = uuid.NewString()
	}
	s.records = append(s.records, *record)
	return nil
}

func (s *fakeWellnessStore) CreateCase(emergency *model.EmergencyCase) error {
	if emergency.CaseID == "" {
		emergency.CaseID = uuid.NewString()
	}
	s.cases = append(s.cases, *emergency)
	return nil
}

type fakeWellnessNotifier struct {
	alerts      []string
	emergencies []string
}

func (n *fakeWellnessNotifier) WellnessAlert(ctx context.Context, userID string) bool {
	n.alerts = append(n.alerts, userID)
	return true
}

func (n *fakeWellnessNotifier) EmergencyAlert(ctx context.Context, userID, description string) bool {
	n.emergencies = append(n.emergencies, userID)
	return true
}

func checkinDate(day int) time.Time {
	return time.Date(2026, time.September, day, 0, 0, 0, 0, time.UTC)
}

func TestCreateRecordOncePerDay(t *testing.T) {
	store := &fakeWellnessStore{}
	wellness := NewWellnessService(store, &fakeWellnessNotifier{})

	_, err := wellness.CreateRecord(context.Background(), "user-1", checkinDate(1), 2, 7, 4, "")
	require.NoError(t, err)

	_, err = wellness.CreateRecord(context.Background(), "user-1", checkinDate(1), 3, 6, 3, "")
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	// Another user on the same day, and the same user on another day, are
	// both fine.
	_, err = wellness.CreateRecord(context.Background(), "user-2", checkinDate(1), 2, 7, 4, "")
	assert.NoError(t, err)
	_, err = wellness.CreateRecord(context.Background(), "user-1", checkinDate(2), 2, 7, 4, "")
	assert.NoError(t, err)
}

func TestCreateRecordRiskAlert(t *testing.T) {
	tests := []struct {
		name        string
		stressLevel int
		sleepHours  float64
		alert       bool
	}{
		{"calm and rested", 2, 8, false},
		{"high stress", 4, 8, true},
		{"low sleep", 1, 5.5, true},
		{"sleepless night", 1, 0, true},
		{"both indicators", 5, 3, true},
		{"just above sleep threshold", 3, 5.6, false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeWellnessNotifier{}
			wellness := NewWellnessService(&fakeWellnessStore{}, notifier)

			_, err := wellness.CreateRecord(context.Background(), "user-1", checkinDate(i+1),
				tt.stressLevel, tt.sleepHours, 3, "")
			require.NoError(t, err)

			if tt.alert {
				assert.Equal(t, []string{"user-1"}, notifier.alerts)
			} else {
				assert.Empty(t, notifier.alerts)
			}
		})
	}
}

func TestCreateEmergencyCaseDefaults(t *testing.T) {
	store := &fakeWellnessStore{}
	notifier := &fakeWellnessNotifier{}
	wellness := NewWellnessService(store, notifier)

	userID := uuid.NewString()
	emergency, err := wellness.CreateEmergencyCase(context.Background(),
		model.EmergencyChannelQuickHelp, "need help now", nil, &userID)
	require.NoError(t, err)
	assert.True(t, emergency.Confidential)
	assert.Equal(t, model.EmergencyStatusOpen, emergency.Status)
	assert.Equal(t, []string{userID}, notifier.emergencies)

	public := false
	emergency, err = wellness.CreateEmergencyCase(context.Background(),
		model.EmergencyChannelOther, "lost keys", &public, &userID)
	require.NoError(t, err)
	assert.False(t, emergency.Confidential)
}

func TestCreateEmergencyCaseAnonymous(t *testing.T) {
	store := &fakeWellnessStore{}
	notifier := &fakeWellnessNotifier{}
	wellness := NewWellnessService(store, notifier)

	emergency, err := wellness.CreateEmergencyCase(context.Background(),
		model.EmergencyChannelWellnessForm, "anonymous concern", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, emergency.UserID)
	assert.True(t, emergency.Confidential)

	// No recipient, no alert.
	assert.Empty(t, notifier.emergencies)
}
