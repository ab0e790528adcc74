package notification

import (
	"errors"
	"strconv"

	"campusops/dto"
	"campusops/middleware"
	"campusops/model"
	"campusops/repository"
	"campusops/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NotificationController(router *gin.Engine, auth *services.AuthService, notifications *services.NotificationService, repo *repository.NotificationRepository) {
	routes := router.Group("/api/notifications", middleware.Auth(auth))
	{
		routes.POST("", func(c *gin.Context) {
			SendNotification(c, notifications)
		})
		routes.GET("", func(c *gin.Context) {
			ListNotifications(c, repo)
		})
		routes.GET("/stats", func(c *gin.Context) {
			NotificationStats(c, repo)
		})
		routes.GET("/admin/pending", middleware.RequireRole("admin"), func(c *gin.Context) {
			ListPending(c, repo)
		})
		routes.POST("/admin/bulk", middleware.RequireRole("admin"), func(c *gin.Context) {
			SendBulk(c, notifications)
		})
		routes.GET("/:id", func(c *gin.Context) {
			NotificationByID(c, repo)
		})
		routes.PUT("/:id/read", func(c *gin.Context) {
			MarkRead(c, repo)
		})
		routes.PUT("/read-all", func(c *gin.Context) {
			MarkAllRead(c, repo)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteNotification(c, repo)
		})
	}
}

func SendNotification(c *gin.Context, notifications *services.NotificationService) {
	var request dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	sent := notifications.Send(c.Request.Context(), request.UserID, request.Channel, request.Title, request.Body)
	c.JSON(201, gin.H{"sent": sent})
}

func ListNotifications(c *gin.Context, repo *repository.NotificationRepository) {
	userID := c.MustGet("userId").(string)
	list, err := repo.ListByUser(userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list notifications"})
		return
	}
	c.JSON(200, gin.H{"notifications": list})
}

func NotificationStats(c *gin.Context, repo *repository.NotificationRepository) {
	userID := c.MustGet("userId").(string)
	stats, err := repo.StatsByUser(userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(200, gin.H{"stats": stats})
}

func ListPending(c *gin.Context, repo *repository.NotificationRepository) {
	list, err := repo.ListPending()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list pending notifications"})
		return
	}
	c.JSON(200, gin.H{"notifications": list})
}

func SendBulk(c *gin.Context, notifications *services.NotificationService) {
	var request dto.BulkNotificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	items := make([]model.Notification, 0, len(request.Notifications))
	for _, n := range request.Notifications {
		items = append(items, model.Notification{
			UserID:  n.UserID,
			Channel: n.Channel,
			Title:   n.Title,
			Body:    n.Body,
		})
	}

	sent := notifications.SendBulk(c.Request.Context(), items)
	c.JSON(200, gin.H{"sent": sent, "total": len(items)})
}

func notificationID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid notification id"})
		return 0, false
	}
	return id, true
}

func NotificationByID(c *gin.Context, repo *repository.NotificationRepository) {
	id, ok := notificationID(c)
	if !ok {
		return
	}

	n, err := repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load notification"})
		return
	}

	user := middleware.CurrentUser(c)
	if n.UserID != user.UserID && !user.HasRole("admin") {
		c.JSON(403, gin.H{"error": "Forbidden"})
		return
	}
	c.JSON(200, gin.H{"notification": n})
}

func MarkRead(c *gin.Context, repo *repository.NotificationRepository) {
	id, ok := notificationID(c)
	if !ok {
		return
	}

	userID := c.MustGet("userId").(string)
	if err := repo.MarkRead(id, userID); err != nil {
		c.JSON(500, gin.H{"error": "Failed to mark notification as read"})
		return
	}
	c.JSON(200, gin.H{"message": "Notification marked as read"})
}

func MarkAllRead(c *gin.Context, repo *repository.NotificationRepository) {
	userID := c.MustGet("userId").(string)
	if err := repo.MarkAllRead(userID); err != nil {
		c.JSON(500, gin.H{"error": "Failed to mark notifications as read"})
		return
	}
	c.JSON(200, gin.H{"message": "All notifications marked as read"})
}

func DeleteNotification(c *gin.Context, repo *repository.NotificationRepository) {
	id, ok := notificationID(c)
	if !ok {
		return
	}

	userID := c.MustGet("userId").(string)
	if err := repo.Delete(id, userID); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete notification"})
		return
	}
	c.JSON(200, gin.H{"message": "Notification deleted"})
}
