package repository

import (
	"encoding/json"
	"time"

	"campusops/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create writes the report, its initial status history entry and a create
// audit record in one transaction, so the history endpoint always shows the
// full trail from pending onward.
func (r *ReportRepository) Create(report *model.FacilityReport) error {
	if report.ReportID == "" {
		report.ReportID = uuid.NewString()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}

		entry := &model.ReportStatusHistory{
			ReportID: report.ReportID,
			Status:   report.Status,
			ActorID:  report.UserID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return tx.Create(auditEntry(report.UserID, "facility_report", report.ReportID,
			model.AuditActionCreate, nil, report)).Error
	})
}

func (r *ReportRepository) FindByID(id string) (*model.FacilityReport, error) {
	var report model.FacilityReport
	if err := r.db.Preload("Facility").
		Where("report_id = ? AND deleted_at IS NULL", id).
		First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) List() ([]model.FacilityReport, error) {
	var reports []model.FacilityReport
	err := r.db.Preload("Facility").
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) ListByUser(userID string) ([]model.FacilityReport, error) {
	var reports []model.FacilityReport
	err := r.db.Preload("Facility").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) Save(report *model.FacilityReport) error {
	return r.db.Omit("Facility").Save(report).Error
}

// TransitionStatus saves the report's new status, appends the history entry
// and writes a status_change audit record atomically.
func (r *ReportRepository) TransitionStatus(report *model.FacilityReport, entry *model.ReportStatusHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Facility").Save(report).Error; err != nil {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Create(auditEntry(entry.ActorID, "facility_report", report.ReportID,
			model.AuditActionStatusChange, nil, report)).Error
	})
}

// History returns status entries oldest first.
func (r *ReportRepository) History(reportID string) ([]model.ReportStatusHistory, error) {
	var entries []model.ReportStatusHistory
	err := r.db.Where("report_id = ?", reportID).
		Order("created_at ASC, entry_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *ReportRepository) SoftDelete(id string, actorID *string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var report model.FacilityReport
		if err := tx.Where("report_id = ? AND deleted_at IS NULL", id).First(&report).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&model.FacilityReport{}).
			Where("report_id = ?", id).
			Update("deleted_at", now).Error; err != nil {
			return err
		}

		return tx.Create(auditEntry(actorID, "facility_report", id,
			model.AuditActionDelete, &report, nil)).Error
	})
}

func auditEntry(actorID *string, entity, entityID, action string, before, after interface{}) *model.AuditLog {
	entry := &model.AuditLog{
		ActorID:  actorID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
	}
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			entry.BeforeJSON = string(b)
		}
	}
	if after != nil {
		if b, err := json.Marshal(after); err == nil {
			entry.AfterJSON = string(b)
		}
	}
	return entry
}
