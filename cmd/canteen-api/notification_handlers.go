package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/httpx"
	"github.com/campuscanteen/canteen-api/internal/notification"
)

func unreadNotificationsHandler(repo notification.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.Unread(c.Request.Context())
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if out == nil {
			out = []notification.Notification{}
		}
		httpx.OK(c, http.StatusOK, "", gin.H{"notifications": out})
	}
}

func markNotificationReadHandler(repo notification.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Notification not found")
			return
		}
		n, err := repo.MarkRead(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "", gin.H{"notification": n})
	}
}

func markAllNotificationsReadHandler(repo notification.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.MarkAllRead(c.Request.Context()); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "All notifications marked as read", nil)
	}
}

func deleteNotificationHandler(repo notification.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Notification not found")
			return
		}
		ok, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if !ok {
			httpx.Fail(c, http.StatusNotFound, "Notification not found")
			return
		}
		httpx.OK(c, http.StatusOK, "Notification deleted successfully", nil)
	}
}
