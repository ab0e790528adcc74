package dto

type CreateNotificationRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Channel string `json:"channel" binding:"required,oneof=push email"`
	Title   string `json:"title" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type BulkNotificationRequest struct {
	Notifications []CreateNotificationRequest `json:"notifications" binding:"required,min=1,dive"`
}
