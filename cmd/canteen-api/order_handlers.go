package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/httpx"
	"github.com/campuscanteen/canteen-api/internal/order"
)

// placeOrderHandler is the order workflow entry point.
func placeOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.PlaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		u := httpx.CurrentUser(c)
		o, err := svc.Place(c.Request.Context(), u.ID, req)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusCreated, "Order placed successfully", gin.H{"order": o})
	}
}

func myOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := httpx.CurrentUser(c)
		orders, err := svc.ListByUser(c.Request.Context(), u.ID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if orders == nil {
			orders = []order.Order{}
		}
		httpx.OK(c, http.StatusOK, "", gin.H{"count": len(orders), "orders": orders})
	}
}

func getOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Order not found")
			return
		}
		u := httpx.CurrentUser(c)
		o, err := svc.Get(c.Request.Context(), u.ID, u.IsAdmin(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "", gin.H{"order": o})
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

func updateOrderStatusHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Order not found")
			return
		}
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		next, ok := order.ParseStatus(req.Status)
		if !ok {
			httpx.Fail(c, http.StatusBadRequest, "unknown order status")
			return
		}
		u := httpx.CurrentUser(c)
		o, err := svc.UpdateStatus(c.Request.Context(), u.ID, u.IsAdmin(), id, next)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "Order status updated successfully", gin.H{"order": o})
	}
}

func cancelOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Order not found")
			return
		}
		u := httpx.CurrentUser(c)
		o, err := svc.Cancel(c.Request.Context(), u.ID, u.IsAdmin(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "Order cancelled successfully", gin.H{"order": o})
	}
}
