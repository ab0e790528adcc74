package auth

import (
	"errors"

	"campusops/dto"
	"campusops/middleware"
	"campusops/repository"
	"campusops/services"

	"github.com/gin-gonic/gin"
)

func AuthController(router *gin.Engine, auth *services.AuthService, users *repository.UserRepository) {
	routes := router.Group("/api/auth")
	{
		routes.POST("/register", func(c *gin.Context) {
			Register(c, auth)
		})
		routes.POST("/login", func(c *gin.Context) {
			Login(c, auth)
		})
		routes.POST("/refresh", func(c *gin.Context) {
			Refresh(c, auth)
		})
		routes.GET("/roles", func(c *gin.Context) {
			ListRoles(c, users)
		})
		routes.POST("/logout", middleware.Auth(auth), func(c *gin.Context) {
			Logout(c, auth)
		})
		routes.PUT("/change-password", middleware.Auth(auth), func(c *gin.Context) {
			ChangePassword(c, auth)
		})
		routes.GET("/me", middleware.Auth(auth), func(c *gin.Context) {
			Me(c)
		})
		routes.PUT("/me", middleware.Auth(auth), func(c *gin.Context) {
			UpdateProfile(c, users)
		})
		routes.DELETE("/me", middleware.Auth(auth), func(c *gin.Context) {
			DeleteAccount(c, users)
		})
	}
}

func Register(c *gin.Context, auth *services.AuthService) {
	var request dto.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	user, tokens, err := auth.Register(request.Name, request.Email, request.Password, request.RoleIDs)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(201, gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

func Login(c *gin.Context, auth *services.AuthService) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	user, tokens, err := auth.Login(request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrInactiveAccount) {
			c.JSON(401, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to log in"})
		return
	}

	c.JSON(200, gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

func Refresh(c *gin.Context, auth *services.AuthService) {
	var request dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	user, tokens, err := auth.RefreshToken(request.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(401, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to refresh token"})
		return
	}

	c.JSON(200, gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

func Logout(c *gin.Context, auth *services.AuthService) {
	userID := c.MustGet("userId").(string)
	auth.Logout(userID)
	c.JSON(200, gin.H{"message": "Logged out successfully"})
}

func ListRoles(c *gin.Context, users *repository.UserRepository) {
	roles, err := users.Roles()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list roles"})
		return
	}
	c.JSON(200, gin.H{"roles": roles})
}

func Me(c *gin.Context) {
	c.JSON(200, gin.H{"user": middleware.CurrentUser(c)})
}

func UpdateProfile(c *gin.Context, users *repository.UserRepository) {
	user := middleware.CurrentUser(c)

	var request dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if request.Name != nil {
		user.Name = *request.Name
	}
	if request.Email != nil && *request.Email != user.Email {
		if _, err := users.FindByEmail(*request.Email); err == nil {
			c.JSON(400, gin.H{"error": services.ErrDuplicateEmail.Error()})
			return
		}
		user.Email = *request.Email
	}

	if err := users.Save(user); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(200, gin.H{"user": user})
}

func DeleteAccount(c *gin.Context, users *repository.UserRepository) {
	userID := c.MustGet("userId").(string)
	if err := users.SoftDelete(userID); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete account"})
		return
	}
	c.JSON(200, gin.H{"message": "Account deleted"})
}

func ChangePassword(c *gin.Context, auth *services.AuthService) {
	userID := c.MustGet("userId").(string)

	var request dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := auth.ChangePassword(userID, request.CurrentPassword, request.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrIncorrectPassword):
			c.JSON(400, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(404, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": "Failed to change password"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "Password changed successfully"})
}
