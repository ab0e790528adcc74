package menu

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

func MenuController(router *gin.Engine, auth *services.AuthService, menus *services.MenuService, repo *repository.MenuRepository) {
	routes := router.Group("/api/menus")
	{
		// Public reads
		routes.GET("", func(c *gin.Context) {
			ListMenus(c, repo)
		})
		routes.GET("/fecha/:fecha", func(c *gin.Context) {
			MenuByDate(c, repo)
		})
		routes.GET("/:id", func(c *gin.Context) {
			MenuByID(c, repo)
		})
		routes.GET("/:id/ratings", func(c *gin.Context) {
			MenuRatings(c, repo)
		})
		routes.GET("/:id/stats", func(c *gin.Context) {
			MenuStats(c, menus)
		})

		// Authenticated ratings
		routes.POST("/rate", middleware.Auth(auth), func(c *gin.Context) {
			RateMenu(c, menus)
		})
		routes.GET("/my-ratings", middleware.Auth(auth), func(c *gin.Context) {
			MyRatings(c, repo)
		})

		// Administrative writes
		routes.POST("", middleware.Auth(auth), middleware.RequireRole("admin"), func(c *gin.Context) {
			CreateMenu(c, menus)
		})
		routes.PUT("/:id", middleware.Auth(auth), middleware.RequireRole("admin"), func(c *gin.Context) {
			UpdateMenu(c, menus)
		})
		routes.DELETE("/:id", middleware.Auth(auth), middleware.RequireRole("admin"), func(c *gin.Context) {
			DeleteMenu(c, repo)
		})
	}
}

func ListMenus(c *gin.Context, repo *repository.MenuRepository) {
	publishedOnly := c.Query("published") == "true"
	menus, err := repo.List(publishedOnly)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list menus"})
		return
	}
	c.JSON(200, gin.H{"menus": menus})
}

func MenuByDate(c *gin.Context, repo *repository.MenuRepository) {
	date, err := time.Parse("2006-01-02", c.Param("fecha"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	menu, err := repo.FindByDate(date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Menu not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(200, gin.H{"menu": menu})
}

func MenuByID(c *gin.Context, repo *repository.MenuRepository) {
	menu, err := repo.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Menu not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(200, gin.H{"menu": menu})
}

func MenuRatings(c *gin.Context, repo *repository.MenuRepository) {
	if _, err := repo.FindByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Menu not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load menu"})
		return
	}

	ratings, err := repo.Ratings(c.Param("id"))
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load ratings"})
		return
	}
	c.JSON(200, gin.H{"ratings": ratings})
}

func MenuStats(c *gin.Context, menus *services.MenuService) {
	average, count, err := menus.MenuStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(200, gin.H{"average": average, "count": count})
}

func RateMenu(c *gin.Context, menus *services.MenuService) {
	userID := c.MustGet("userId").(string)

	var request dto.RateMenuRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	rating, err := menus.RateMenu(c.Request.Context(), request.MenuID, userID, request.Score, request.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMenuNotFound):
			c.JSON(404, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAlreadyRated):
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": "Failed to save rating"})
		}
		return
	}
	c.JSON(201, gin.H{"rating": rating})
}

func MyRatings(c *gin.Context, repo *repository.MenuRepository) {
	userID := c.MustGet("userId").(string)
	ratings, err := repo.RatingsByUser(userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load ratings"})
		return
	}
	c.JSON(200, gin.H{"ratings": ratings})
}

func CreateMenu(c *gin.Context, menus *services.MenuService) {
	var request dto.CreateMenuRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", request.Date)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	published := request.Published != nil && *request.Published
	menu, err := menus.CreateMenu(c.Request.Context(), date, toDishes(request.Dishes), published)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateDate) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to create menu"})
		return
	}
	c.JSON(201, gin.H{"menu": menu})
}

func UpdateMenu(c *gin.Context, menus *services.MenuService) {
	var request dto.UpdateMenuRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var dishes []model.MenuDish
	if request.Dishes != nil {
		dishes = toDishes(request.Dishes)
	}

	menu, err := menus.UpdateMenu(c.Request.Context(), c.Param("id"), request.Published, dishes)
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to update menu"})
		return
	}
	c.JSON(200, gin.H{"menu": menu})
}

func DeleteMenu(c *gin.Context, repo *repository.MenuRepository) {
	if _, err := repo.FindByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Menu not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load menu"})
		return
	}

	if err := repo.SoftDelete(c.Param("id")); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete menu"})
		return
	}
	c.JSON(200, gin.H{"message": "Menu deleted"})
}

func toDishes(in []dto.MenuDishRequest) []model.MenuDish {
	dishes := make([]model.MenuDish, 0, len(in))
	for _, d := range in {
		dishes = append(dishes, model.MenuDish{Type: d.Type, Name: d.Name})
	}
	return dishes
}
