package repository

import (
	"time"

	"campusops/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) SetStatus(id int, status string, sentAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if sentAt != nil {
		updates["sent_at"] = *sentAt
	}
	return r.db.Model(&model.Notification{}).
		Where("notification_id = ?", id).
		Updates(updates).Error
}

func (r *NotificationRepository) FindByID(id int) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.First(&n, "notification_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) ListByUser(userID string) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *NotificationRepository) ListPending() ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.Where("status = ?", model.NotificationStatusPending).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *NotificationRepository) MarkRead(id int, userID string) error {
	now := time.Now()
	return r.db.Model(&model.Notification{}).
		Where("notification_id = ? AND user_id = ?", id, userID).
		Update("read_at", now).Error
}

func (r *NotificationRepository) MarkAllRead(userID string) error {
	now := time.Now()
	return r.db.Model(&model.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error
}

func (r *NotificationRepository) Delete(id int, userID string) error {
	return r.db.Where("notification_id = ? AND user_id = ?", id, userID).
		Delete(&model.Notification{}).Error
}

// Stats counts a user's notifications by read and delivery state.
type Stats struct {
	Total   int `json:"total"`
	Unread  int `json:"unread"`
	Pending int `json:"pending"`
}

func (r *NotificationRepository) StatsByUser(userID string) (*Stats, error) {
	var stats Stats
	err := r.db.Model(&model.Notification{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN read_at IS NULL THEN 1 ELSE 0 END), 0) AS unread,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending`).
		Where("user_id = ?", userID).
		Scan(&stats).Error
	return &stats, err
}
