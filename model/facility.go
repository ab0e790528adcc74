package model

import (
	"time"
)

type Facility struct {
	FacilityID  string     `gorm:"column:facility_id;type:char(36);primaryKey" json:"id"`
	Name        string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string     `gorm:"column:description;type:text" json:"description,omitempty"`
	Location    string     `gorm:"column:location;type:varchar(255)" json:"location,omitempty"`
	IsActive    bool       `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt   *time.Time `gorm:"column:deleted_at" json:"deletedAt,omitempty"`
}

func (Facility) TableName() string {
	return "facilities"
}

// SLAPolicy is static reference data for report resolution targets.
type SLAPolicy struct {
	PolicyID    int    `gorm:"column:policy_id;primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	TargetHours int    `gorm:"column:target_hours;not null" json:"targetHours"`
}

func (SLAPolicy) TableName() string {
	return "sla_policies"
}
