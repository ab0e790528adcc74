package model

import (
	"time"
)

// Report status values. The conventional forward path is
// pending -> in_progress -> resolved -> verified, with escalated reachable
// from any non-terminal state.
const (
	ReportStatusPending    = "pending"
	ReportStatusInProgress = "in_progress"
	ReportStatusResolved   = "resolved"
	ReportStatusVerified   = "verified"
	ReportStatusEscalated  = "escalated"
)

func IsValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved,
		ReportStatusVerified, ReportStatusEscalated:
		return true
	}
	return false
}

type FacilityReport struct {
	ReportID    string     `gorm:"column:report_id;type:char(36);primaryKey" json:"id"`
	FacilityID  string     `gorm:"column:facility_id;type:char(36);not null" json:"facilityId"`
	UserID      *string    `gorm:"column:user_id;type:char(36)" json:"userId,omitempty"`
	PriorityID  int        `gorm:"column:priority_id;not null" json:"priorityId"`
	Description string     `gorm:"column:description;type:text;not null" json:"description"`
	Status      string     `gorm:"column:status;type:enum('pending','in_progress','resolved','verified','escalated');default:'pending';not null" json:"status"`
	PhotoPath   string     `gorm:"column:photo_path;type:varchar(255)" json:"photoPath,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt   *time.Time `gorm:"column:deleted_at" json:"deletedAt,omitempty"`

	// Relations
	Facility Facility `gorm:"foreignKey:FacilityID;references:FacilityID" json:"facility,omitempty"`
}

func (FacilityReport) TableName() string {
	return "facility_reports"
}

// ReportStatusHistory is append-only: one row per committed status change,
// read oldest first.
type ReportStatusHistory struct {
	EntryID   int       `gorm:"column:entry_id;primaryKey;autoIncrement" json:"id"`
	ReportID  string    `gorm:"column:report_id;type:char(36);not null" json:"reportId"`
	Status    string    `gorm:"column:status;type:enum('pending','in_progress','resolved','verified','escalated');not null" json:"status"`
	Note      string    `gorm:"column:note;type:text" json:"note,omitempty"`
	ActorID   *string   `gorm:"column:actor_id;type:char(36)" json:"actorId,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (ReportStatusHistory) TableName() string {
	return "report_status_history"
}
