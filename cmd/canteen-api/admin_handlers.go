package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/archive"
	"github.com/campuscanteen/canteen-api/internal/httpx"
	"github.com/campuscanteen/canteen-api/internal/menu"
	"github.com/campuscanteen/canteen-api/internal/order"
	"github.com/campuscanteen/canteen-api/internal/report"
	"github.com/campuscanteen/canteen-api/internal/user"
)

type createMenuItemRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	Image           string  `json:"image"`
	IsVegetarian    bool    `json:"isVegetarian"`
	IsAvailable     *bool   `json:"isAvailable"`
	PreparationTime int     `json:"preparationTime"`
}

func createMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" || req.Description == "" || req.Price < 0 || req.PreparationTime <= 0 {
			httpx.Fail(c, http.StatusBadRequest, "name, description, non-negative price and preparation time are required")
			return
		}
		available := true
		if req.IsAvailable != nil {
			available = *req.IsAvailable
		}
		it := &menu.Item{
			Name:            req.Name,
			Description:     req.Description,
			Price:           req.Price,
			Category:        req.Category,
			Image:           req.Image,
			IsVegetarian:    req.IsVegetarian,
			IsAvailable:     available,
			PreparationTime: req.PreparationTime,
		}
		if err := repo.Create(c.Request.Context(), it); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusCreated, "Menu item added successfully", gin.H{"menuItem": it})
	}
}

func updateMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Menu item not found")
			return
		}
		var upd menu.ItemUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		it, err := repo.Update(c.Request.Context(), id, upd)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "Menu item updated successfully", gin.H{"menuItem": it})
	}
}

func deleteMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Menu item not found")
			return
		}
		ok, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if !ok {
			httpx.Fail(c, http.StatusNotFound, "Menu item not found")
			return
		}
		httpx.OK(c, http.StatusOK, "Menu item deleted successfully", nil)
	}
}

func adminOrdersHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := order.Query{}
		if s := c.Query("status"); s != "" {
			st, ok := order.ParseStatus(s)
			if !ok {
				httpx.Fail(c, http.StatusBadRequest, "unknown order status")
				return
			}
			q.Status = st
		}
		if d := c.Query("date"); d != "" {
			t, err := time.ParseInLocation("2006-01-02", d, time.Local)
			if err != nil {
				httpx.Fail(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
				return
			}
			q.Date = &t
		}
		out, err := orders.List(c.Request.Context(), q)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if out == nil {
			out = []order.Order{}
		}
		httpx.OK(c, http.StatusOK, "", gin.H{"count": len(out), "orders": out})
	}
}

func adminStatsHandler(orders order.Repository, users user.Repository, menuRepo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		st, err := orders.Stats(ctx, startOfDay)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		totalUsers, err := users.CountByRole(ctx, user.RoleUser)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		popular, err := menuRepo.Popular(ctx, 5)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "", gin.H{"stats": gin.H{
			"totalOrders":   st.TotalOrders,
			"todayOrders":   st.TodayOrders,
			"pendingOrders": st.PendingOrders,
			"totalRevenue":  st.TotalRevenue,
			"todayRevenue":  st.TodayRevenue,
			"totalUsers":    totalUsers,
			"popularItems":  popular,
		}})
	}
}

func dailyArchiveHandler(archives archive.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.Local)
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		a, err := archives.GetByDate(c.Request.Context(), day)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "", gin.H{"archive": a})
	}
}

func dailyReportHandler(archives archive.Repository, orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.Local)
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		ctx := c.Request.Context()
		a, err := archives.GetByDate(ctx, day)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		start := archive.Day(day)
		rows, err := orders.CreatedBetween(ctx, start, start.AddDate(0, 0, 1))
		if err != nil {
			httpx.Error(c, err)
			return
		}
		pdf, err := report.Daily(a, rows)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="daily-report-`+day.Format("2006-01-02")+`.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
