package model

import (
	"time"
)

const (
	AuditActionCreate       = "create"
	AuditActionUpdate       = "update"
	AuditActionDelete       = "delete"
	AuditActionStatusChange = "status_change"
)

// AuditLog keeps opaque before/after snapshots as JSON text.
type AuditLog struct {
	AuditID    int       `gorm:"column:audit_id;primaryKey;autoIncrement" json:"id"`
	ActorID    *string   `gorm:"column:actor_id;type:char(36)" json:"actorId,omitempty"`
	Entity     string    `gorm:"column:entity;type:varchar(100);not null" json:"entity"`
	EntityID   string    `gorm:"column:entity_id;type:varchar(100);not null" json:"entityId"`
	Action     string    `gorm:"column:action;type:enum('create','update','delete','status_change');not null" json:"action"`
	BeforeJSON string    `gorm:"column:before_json;type:text" json:"beforeJson,omitempty"`
	AfterJSON  string    `gorm:"column:after_json;type:text" json:"afterJson,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
