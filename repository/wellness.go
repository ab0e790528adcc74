package repository

import (
	"time"

	"campusops/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WellnessRepository struct {
	db *gorm.DB
}

func NewWellnessRepository(db *gorm.DB) *WellnessRepository {
	return &WellnessRepository{db: db}
}

func (r *WellnessRepository) CreateRecord(record *model.WellnessRecord) error {
	if record.RecordID == "" {
		record.RecordID = uuid.NewString()
	}
	return r.db.Create(record).Error
}

func (r *WellnessRepository) RecordsByDate(date time.Time) ([]model.WellnessRecord, error) {
	var records []model.WellnessRecord
	err := r.db.Where("date = ? AND deleted_at IS NULL", date.Format("2006-01-02")).
		Find(&records).Error
	return records, err
}

func (r *WellnessRepository) RecordsByUser(userID string) ([]model.WellnessRecord, error) {
	var records []model.WellnessRecord
	err := r.db.Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *WellnessRepository) FindRecord(id string) (*model.WellnessRecord, error) {
	var record model.WellnessRecord
	if err := r.db.Where("record_id = ? AND deleted_at IS NULL", id).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *WellnessRepository) SaveRecord(record *model.WellnessRecord) error {
	return r.db.Save(record).Error
}

func (r *WellnessRepository) SoftDeleteRecord(id string) error {
	now := time.Now()
	return r.db.Model(&model.WellnessRecord{}).
		Where("record_id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}

// UserStats aggregates a user's non-deleted check-ins.
type UserStats struct {
	Count          int     `json:"count"`
	AvgStress      float64 `json:"avgStress"`
	AvgSleepHours  float64 `json:"avgSleepHours"`
	AvgDietQuality float64 `json:"avgDietQuality"`
	HighRiskDays   int     `json:"highRiskDays"`
}

func (r *WellnessRepository) StatsByUser(userID string) (*UserStats, error) {
	var stats UserStats
	err := r.db.Model(&model.WellnessRecord{}).
		Select(`COUNT(*) AS count,
			COALESCE(AVG(stress_level), 0) AS avg_stress,
			COALESCE(AVG(sleep_hours), 0) AS avg_sleep_hours,
			COALESCE(AVG(diet_quality), 0) AS avg_diet_quality,
			COALESCE(SUM(CASE WHEN stress_level >= 4 OR sleep_hours <= 5.5 THEN 1 ELSE 0 END), 0) AS high_risk_days`).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Scan(&stats).Error
	return &stats, err
}

func (r *WellnessRepository) CreateCase(emergency *model.EmergencyCase) error {
	if emergency.CaseID == "" {
		emergency.CaseID = uuid.NewString()
	}
	return r.db.Create(emergency).Error
}

func (r *WellnessRepository) FindCase(id string) (*model.EmergencyCase, error) {
	var emergency model.EmergencyCase
	if err := r.db.Where("case_id = ? AND deleted_at IS NULL", id).
		First(&emergency).Error; err != nil {
		return nil, err
	}
	return &emergency, nil
}

func (r *WellnessRepository) ListCases() ([]model.EmergencyCase, error) {
	var cases []model.EmergencyCase
	err := r.db.Where("deleted_at IS NULL").
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

func (r *WellnessRepository) SaveCase(emergency *model.EmergencyCase) error {
	return r.db.Save(emergency).Error
}

func (r *WellnessRepository) SoftDeleteCase(id string) error {
	now := time.Now()
	return r.db.Model(&model.EmergencyCase{}).
		Where("case_id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}
