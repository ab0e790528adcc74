package report

import (
	"errors"

	"campusops/dto"
	"campusops/middleware"
	"campusops/model"
	"campusops/repository"
	"campusops/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ReportController(router *gin.Engine, auth *services.AuthService, reports *services.ReportService, repo *repository.ReportRepository, facilities *repository.FacilityRepository) {
	routes := router.Group("/api/reports")
	{
		// Public reference data
		routes.GET("/instalaciones", func(c *gin.Context) {
			ListFacilities(c, facilities)
		})
		routes.GET("/sla-politicas", func(c *gin.Context) {
			ListSLAPolicies(c, facilities)
		})

		routes.POST("/instalaciones", middleware.Auth(auth), middleware.RequireRole("admin"), func(c *gin.Context) {
			CreateFacility(c, facilities)
		})
		routes.DELETE("/instalaciones/:id", middleware.Auth(auth), middleware.RequireRole("admin"), func(c *gin.Context) {
			DeleteFacility(c, facilities)
		})

		routes.POST("", middleware.Auth(auth), func(c *gin.Context) {
			CreateReport(c, reports)
		})
		routes.GET("", middleware.Auth(auth), func(c *gin.Context) {
			ListReports(c, repo)
		})
		routes.GET("/:id", middleware.Auth(auth), func(c *gin.Context) {
			ReportByID(c, repo)
		})
		routes.PUT("/:id", middleware.Auth(auth), middleware.RequireRole("admin", "mantenimiento"), func(c *gin.Context) {
			UpdateReport(c, reports)
		})
		routes.PUT("/:id/status", middleware.Auth(auth), middleware.RequireRole("admin", "mantenimiento"), func(c *gin.Context) {
			UpdateReportStatus(c, reports)
		})
		routes.DELETE("/:id", middleware.Auth(auth), middleware.RequireRole("admin"), func(c *gin.Context) {
			DeleteReport(c, repo)
		})
		routes.GET("/:id/history", middleware.Auth(auth), func(c *gin.Context) {
			ReportHistory(c, reports)
		})
	}
}

func ListFacilities(c *gin.Context, facilities *repository.FacilityRepository) {
	list, err := facilities.List()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list facilities"})
		return
	}
	c.JSON(200, gin.H{"facilities": list})
}

func ListSLAPolicies(c *gin.Context, facilities *repository.FacilityRepository) {
	policies, err := facilities.SLAPolicies()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list SLA policies"})
		return
	}
	c.JSON(200, gin.H{"policies": policies})
}

func CreateFacility(c *gin.Context, facilities *repository.FacilityRepository) {
	var request dto.CreateFacilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	facility := &model.Facility{
		Name:        request.Name,
		Description: request.Description,
		Location:    request.Location,
		IsActive:    true,
	}
	if err := facilities.Create(facility); err != nil {
		c.JSON(500, gin.H{"error": "Failed to create facility"})
		return
	}
	c.JSON(201, gin.H{"facility": facility})
}

func DeleteFacility(c *gin.Context, facilities *repository.FacilityRepository) {
	if _, err := facilities.FindByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Facility not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load facility"})
		return
	}
	if err := facilities.SoftDelete(c.Param("id")); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete facility"})
		return
	}
	c.JSON(200, gin.H{"message": "Facility deleted"})
}

func CreateReport(c *gin.Context, reports *services.ReportService) {
	userID := c.MustGet("userId").(string)

	var request dto.CreateReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	report, err := reports.CreateReport(c.Request.Context(), request.FacilityID,
		request.Description, request.PriorityID, request.Photo, &userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create report"})
		return
	}
	c.JSON(201, gin.H{"report": report})
}

// ListReports returns every report for staff and only the caller's own
// reports otherwise. Authorization happens here regardless of what the
// client hides.
func ListReports(c *gin.Context, repo *repository.ReportRepository) {
	user := middleware.CurrentUser(c)

	if user.HasRole("admin") || user.HasRole("mantenimiento") {
		list, err := repo.List()
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to list reports"})
			return
		}
		c.JSON(200, gin.H{"reports": list})
		return
	}

	list, err := repo.ListByUser(user.UserID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list reports"})
		return
	}
	c.JSON(200, gin.H{"reports": list})
}

func ReportByID(c *gin.Context, repo *repository.ReportRepository) {
	report, err := repo.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load report"})
		return
	}
	c.JSON(200, gin.H{"report": report})
}

func UpdateReport(c *gin.Context, reports *services.ReportService) {
	userID := c.MustGet("userId").(string)

	var request dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	report, err := reports.UpdateReport(c.Request.Context(), c.Param("id"),
		request.Description, request.Status, request.Note, &userID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to update report"})
		return
	}
	c.JSON(200, gin.H{"report": report})
}

func UpdateReportStatus(c *gin.Context, reports *services.ReportService) {
	userID := c.MustGet("userId").(string)

	var request dto.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	report, err := reports.UpdateStatus(c.Request.Context(), c.Param("id"),
		request.Status, request.Note, &userID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to update report status"})
		return
	}
	c.JSON(200, gin.H{"report": report})
}

func DeleteReport(c *gin.Context, repo *repository.ReportRepository) {
	userID := c.MustGet("userId").(string)

	if err := repo.SoftDelete(c.Param("id"), &userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to delete report"})
		return
	}
	c.JSON(200, gin.H{"message": "Report deleted"})
}

func ReportHistory(c *gin.Context, reports *services.ReportService) {
	history, err := reports.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(200, gin.H{"history": history})
}
