package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campuscanteen/canteen-api/internal/auth"
	"github.com/campuscanteen/canteen-api/internal/config"
	"github.com/campuscanteen/canteen-api/internal/httpx"
	"github.com/campuscanteen/canteen-api/internal/user"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userView is the outward shape of a user; the password hash never
// leaves the model's json:"-" boundary, this narrows further.
func userView(u *user.User) gin.H {
	return gin.H{
		"id":          u.ID.Hex(),
		"name":        u.Name,
		"email":       u.Email,
		"role":        u.Role,
		"phone":       u.Phone,
		"address":     u.Address,
		"preferences": u.Preferences,
	}
}

func setSessionCookie(c *gin.Context, cfg config.Config, token string) {
	c.SetCookie(httpx.CookieName, token, int(cfg.JWTExpire.Seconds()), "/", "", cfg.Production(), true)
}

func registerHandler(users user.Repository, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || len(req.Password) < 6 {
			httpx.Fail(c, http.StatusBadRequest, "name, email and a password of at least 6 characters are required")
			return
		}
		hash, err := user.HashPassword(req.Password)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		u := &user.User{
			Name:        req.Name,
			Email:       req.Email,
			Password:    hash,
			Phone:       req.Phone,
			Role:        user.RoleUser,
			Preferences: user.Preferences{Notifications: true},
		}
		if err := users.Create(c.Request.Context(), u); err != nil {
			httpx.Error(c, err)
			return
		}
		token, err := auth.Sign(cfg.JWTSecret, u.ID.Hex(), cfg.JWTExpire)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		setSessionCookie(c, cfg, token)
		httpx.OK(c, http.StatusCreated, "User registered successfully", gin.H{
			"token": token,
			"user":  userView(u),
		})
	}
}

func loginHandler(users user.Repository, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), req.Email)
		if err != nil || !user.CheckPassword(u.Password, req.Password) {
			httpx.Fail(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		token, err := auth.Sign(cfg.JWTSecret, u.ID.Hex(), cfg.JWTExpire)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		setSessionCookie(c, cfg, token)
		httpx.OK(c, http.StatusOK, "Login successful", gin.H{
			"token": token,
			"user":  userView(u),
		})
	}
}

func logoutHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(httpx.CookieName, "", -1, "/", "", cfg.Production(), true)
		httpx.OK(c, http.StatusOK, "Logged out successfully", nil)
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := httpx.CurrentUser(c)
		httpx.OK(c, http.StatusOK, "", gin.H{"user": userView(u)})
	}
}
