package controllers

import (
	"errors"
	"log"

	"fitsyapi/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserMiddleware resolves the JWT subject into the current user and
// stores it under "currentUser" for the handlers downstream.
func UserMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		userRaw := c.Get("user")
		if userRaw == nil {
			return echo.ErrUnauthorized
		}
		user := userRaw.(*jwt.Token)
		claims := user.Claims.(jwt.MapClaims)
		userId := claims["sub"]
		if userId == nil || userId == "" {
			log.Println("Error while getting the token information!")
			return echo.ErrUnauthorized
		}

		var currentUser models.UserAccount
		result := db.Where("ID = ?", userId).Take(&currentUser)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return echo.ErrUnauthorized
		}
		if result.Error != nil {
			log.Printf("Error fetching user %v: %v", userId, result.Error)
			return echo.ErrInternalServerError
		}
		if currentUser.Banned {
			return echo.ErrForbidden
		}
		c.Set("currentUser", currentUser)
		return next(c)
	}
}
