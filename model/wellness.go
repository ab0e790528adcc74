package model

import (
	"time"
)

type WellnessRecord struct {
	RecordID    string     `gorm:"column:record_id;type:char(36);primaryKey" json:"id"`
	UserID      string     `gorm:"column:user_id;type:char(36);not null" json:"userId"`
	Date        time.Time  `gorm:"column:date;type:date;not null" json:"date"`
	StressLevel int        `gorm:"column:stress_level;not null" json:"stressLevel"`
	SleepHours  float64    `gorm:"column:sleep_hours;not null" json:"sleepHours"`
	DietQuality int        `gorm:"column:diet_quality;not null" json:"dietQuality"`
	Comment     string     `gorm:"column:comment;type:text" json:"comment,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	DeletedAt   *time.Time `gorm:"column:deleted_at" json:"deletedAt,omitempty"`
}

func (WellnessRecord) TableName() string {
	return "wellness_records"
}

// Emergency case channels and statuses.
const (
	EmergencyChannelQuickHelp    = "quick_help"
	EmergencyChannelWellnessForm = "wellness_form"
	EmergencyChannelOther        = "other"

	EmergencyStatusOpen        = "open"
	EmergencyStatusInAttention = "in_attention"
	EmergencyStatusClosed      = "closed"
)

func IsValidEmergencyChannel(c string) bool {
	switch c {
	case EmergencyChannelQuickHelp, EmergencyChannelWellnessForm, EmergencyChannelOther:
		return true
	}
	return false
}

func IsValidEmergencyStatus(s string) bool {
	switch s {
	case EmergencyStatusOpen, EmergencyStatusInAttention, EmergencyStatusClosed:
		return true
	}
	return false
}

// EmergencyCase has an optional user: a nil UserID means the submission is
// anonymous.
type EmergencyCase struct {
	CaseID       string     `gorm:"column:case_id;type:char(36);primaryKey" json:"id"`
	UserID       *string    `gorm:"column:user_id;type:char(36)" json:"userId,omitempty"`
	Channel      string     `gorm:"column:channel;type:enum('quick_help','wellness_form','other');not null" json:"channel"`
	Description  string     `gorm:"column:description;type:text;not null" json:"description"`
	Status       string     `gorm:"column:status;type:enum('open','in_attention','closed');default:'open';not null" json:"status"`
	Confidential bool       `gorm:"column:confidential;default:true" json:"confidential"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deletedAt,omitempty"`
}

func (EmergencyCase) TableName() string {
	return "emergency_cases"
}
