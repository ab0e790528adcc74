package model

import (
	"time"
)

const (
	NotificationChannelPush  = "push"
	NotificationChannelEmail = "email"

	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

func IsValidNotificationChannel(c string) bool {
	return c == NotificationChannelPush || c == NotificationChannelEmail
}

type Notification struct {
	NotificationID int        `gorm:"column:notification_id;primaryKey;autoIncrement" json:"id"`
	UserID         string     `gorm:"column:user_id;type:char(36);not null" json:"userId"`
	Channel        string     `gorm:"column:channel;type:enum('push','email');not null" json:"channel"`
	Title          string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Body           string     `gorm:"column:body;type:text;not null" json:"body"`
	Status         string     `gorm:"column:status;type:enum('pending','sent','failed');default:'pending';not null" json:"status"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	SentAt         *time.Time `gorm:"column:sent_at" json:"sentAt,omitempty"`
	ReadAt         *time.Time `gorm:"column:read_at" json:"readAt,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
