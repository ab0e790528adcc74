package wellness

import (
	"errors"
	"time"

	"campusops/dto"
	"campusops/middleware"
	"campusops/model"
	"campusops/repository"
	"campusops/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func WellnessController(router *gin.Engine, auth *services.AuthService, wellness *services.WellnessService, repo *repository.WellnessRepository) {
	routes := router.Group("/api/wellness")
	{
		// Check-in records. /records is kept as an alias of /bienestar for
		// older clients.
		for _, path := range []string{"/bienestar", "/records"} {
			routes.POST(path, middleware.Auth(auth), func(c *gin.Context) {
				CreateRecord(c, wellness)
			})
			routes.GET(path, middleware.Auth(auth), func(c *gin.Context) {
				ListRecords(c, repo)
			})
		}
		routes.GET("/bienestar/stats", middleware.Auth(auth), func(c *gin.Context) {
			RecordStats(c, repo)
		})
		routes.GET("/bienestar/:id", middleware.Auth(auth), func(c *gin.Context) {
			RecordByID(c, repo)
		})
		routes.PUT("/bienestar/:id", middleware.Auth(auth), func(c *gin.Context) {
			UpdateRecord(c, repo)
		})
		routes.DELETE("/bienestar/:id", middleware.Auth(auth), func(c *gin.Context) {
			DeleteRecord(c, repo)
		})

		// Emergency cases. Submission may be anonymous; triage is staff-only.
		routes.POST("/emergencia", middleware.OptionalAuth(auth), func(c *gin.Context) {
			CreateEmergencyCase(c, wellness)
		})
		routes.GET("/emergencia", middleware.Auth(auth), middleware.RequireRole("admin", "bienestar"), func(c *gin.Context) {
			ListEmergencyCases(c, repo)
		})
		routes.GET("/emergencia/:id", middleware.Auth(auth), middleware.RequireRole("admin", "bienestar"), func(c *gin.Context) {
			EmergencyCaseByID(c, repo)
		})
		routes.PUT("/emergencia/:id", middleware.Auth(auth), middleware.RequireRole("admin", "bienestar"), func(c *gin.Context) {
			UpdateEmergencyCase(c, repo)
		})
		routes.DELETE("/emergencia/:id", middleware.Auth(auth), middleware.RequireRole("admin"), func(c *gin.Context) {
			DeleteEmergencyCase(c, repo)
		})
	}
}

func CreateRecord(c *gin.Context, wellness *services.WellnessService) {
	userID := c.MustGet("userId").(string)

	var request dto.CreateWellnessRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", request.Date)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	record, err := wellness.CreateRecord(c.Request.Context(), userID, date,
		*request.StressLevel, *request.SleepHours, request.DietQuality, request.Comment)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateRecord) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to create record"})
		return
	}
	c.JSON(201, gin.H{"record": record})
}

func ListRecords(c *gin.Context, repo *repository.WellnessRepository) {
	userID := c.MustGet("userId").(string)
	records, err := repo.RecordsByUser(userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list records"})
		return
	}
	c.JSON(200, gin.H{"records": records})
}

func RecordStats(c *gin.Context, repo *repository.WellnessRepository) {
	userID := c.MustGet("userId").(string)
	stats, err := repo.StatsByUser(userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(200, gin.H{"stats": stats})
}

// loadOwnedRecord fetches a record and enforces that the caller owns it or
// is wellness staff.
func loadOwnedRecord(c *gin.Context, repo *repository.WellnessRepository) *model.WellnessRecord {
	record, err := repo.FindRecord(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Record not found"})
			return nil
		}
		c.JSON(500, gin.H{"error": "Failed to load record"})
		return nil
	}

	user := middleware.CurrentUser(c)
	if record.UserID != user.UserID && !user.HasRole("admin") && !user.HasRole("bienestar") {
		c.JSON(403, gin.H{"error": "Forbidden"})
		return nil
	}
	return record
}

func RecordByID(c *gin.Context, repo *repository.WellnessRepository) {
	record := loadOwnedRecord(c, repo)
	if record == nil {
		return
	}
	c.JSON(200, gin.H{"record": record})
}

func UpdateRecord(c *gin.Context, repo *repository.WellnessRepository) {
	record := loadOwnedRecord(c, repo)
	if record == nil {
		return
	}

	var request dto.UpdateWellnessRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if request.StressLevel != nil {
		record.StressLevel = *request.StressLevel
	}
	if request.SleepHours != nil {
		record.SleepHours = *request.SleepHours
	}
	if request.DietQuality != nil {
		record.DietQuality = *request.DietQuality
	}
	if request.Comment != nil {
		record.Comment = *request.Comment
	}

	if err := repo.SaveRecord(record); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update record"})
		return
	}
	c.JSON(200, gin.H{"record": record})
}

func DeleteRecord(c *gin.Context, repo *repository.WellnessRepository) {
	record := loadOwnedRecord(c, repo)
	if record == nil {
		return
	}

	if err := repo.SoftDeleteRecord(record.RecordID); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete record"})
		return
	}
	c.JSON(200, gin.H{"message": "Record deleted"})
}

func CreateEmergencyCase(c *gin.Context, wellness *services.WellnessService) {
	var request dto.CreateEmergencyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	// Anonymous when no valid token accompanied the request.
	var userID *string
	if user := middleware.CurrentUser(c); user != nil {
		userID = &user.UserID
	}

	emergency, err := wellness.CreateEmergencyCase(c.Request.Context(),
		request.Channel, request.Description, request.Confidential, userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create emergency case"})
		return
	}
	c.JSON(201, gin.H{"case": emergency})
}

func ListEmergencyCases(c *gin.Context, repo *repository.WellnessRepository) {
	cases, err := repo.ListCases()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list cases"})
		return
	}
	c.JSON(200, gin.H{"cases": cases})
}

func EmergencyCaseByID(c *gin.Context, repo *repository.WellnessRepository) {
	emergency, err := repo.FindCase(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Case not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load case"})
		return
	}
	c.JSON(200, gin.H{"case": emergency})
}

func UpdateEmergencyCase(c *gin.Context, repo *repository.WellnessRepository) {
	emergency, err := repo.FindCase(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Case not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load case"})
		return
	}

	var request dto.UpdateEmergencyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if request.Status != nil {
		emergency.Status = *request.Status
	}
	if request.Confidential != nil {
		emergency.Confidential = *request.Confidential
	}

	if err := repo.SaveCase(emergency); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update case"})
		return
	}
	c.JSON(200, gin.H{"case": emergency})
}

func DeleteEmergencyCase(c *gin.Context, repo *repository.WellnessRepository) {
	if _, err := repo.FindCase(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Case not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load case"})
		return
	}
	if err := repo.SoftDeleteCase(c.Param("id")); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete case"})
		return
	}
	c.JSON(200, gin.H{"message": "Case deleted"})
}
