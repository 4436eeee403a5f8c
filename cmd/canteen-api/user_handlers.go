package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/httpx"
	"github.com/campuscanteen/canteen-api/internal/menu"
	"github.com/campuscanteen/canteen-api/internal/user"
)

func getProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := httpx.CurrentUser(c)
		httpx.OK(c, http.StatusOK, "", gin.H{"user": userView(u)})
	}
}

func updateProfileHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd user.ProfileUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		u := httpx.CurrentUser(c)
		if err := users.UpdateProfile(c.Request.Context(), u.ID, upd); err != nil {
			httpx.Error(c, err)
			return
		}
		fresh, err := users.GetByID(c.Request.Context(), u.ID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "Profile updated successfully", gin.H{"user": userView(fresh)})
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func changePasswordHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.NewPassword) < 6 {
			httpx.Fail(c, http.StatusBadRequest, "new password must be at least 6 characters")
			return
		}
		u := httpx.CurrentUser(c)
		if !user.CheckPassword(u.Password, req.CurrentPassword) {
			httpx.Fail(c, http.StatusBadRequest, "current password is incorrect")
			return
		}
		hash, err := user.HashPassword(req.NewPassword)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := users.UpdatePassword(c.Request.Context(), u.ID, hash); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "Password updated successfully", nil)
	}
}

func listFavoritesHandler(users user.Repository, menuRepo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := httpx.CurrentUser(c)
		items := make([]menu.Item, 0, len(u.FavoriteItems))
		for _, id := range u.FavoriteItems {
			it, err := menuRepo.GetByID(c.Request.Context(), id)
			if err != nil {
				continue // favorite removed from the menu
			}
			items = append(items, *it)
		}
		httpx.OK(c, http.StatusOK, "", gin.H{"favorites": items})
	}
}

func addFavoriteHandler(users user.Repository, menuRepo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Menu item not found")
			return
		}
		if _, err := menuRepo.GetByID(c.Request.Context(), itemID); err != nil {
			httpx.Error(c, err)
			return
		}
		u := httpx.CurrentUser(c)
		if err := users.AddFavorite(c.Request.Context(), u.ID, itemID); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "Added to favorites", nil)
	}
}

func removeFavoriteHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Menu item not found")
			return
		}
		u := httpx.CurrentUser(c)
		if err := users.RemoveFavorite(c.Request.Context(), u.ID, itemID); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "Removed from favorites", nil)
	}
}
