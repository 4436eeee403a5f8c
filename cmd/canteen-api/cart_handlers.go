package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/cart"
	"github.com/campuscanteen/canteen-api/internal/httpx"
)

// Cart responses are the bare {items, totalAmount} shape the SPA consumes.

func getCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := httpx.CurrentUser(c)
		v, err := svc.Get(c.Request.Context(), u.ID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

type addCartRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func addToCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		itemID, err := primitive.ObjectIDFromHex(req.ItemID)
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Menu item not found")
			return
		}
		u := httpx.CurrentUser(c)
		v, err := svc.Add(c.Request.Context(), u.ID, itemID, req.Quantity)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Item not found in cart")
			return
		}
		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		u := httpx.CurrentUser(c)
		v, err := svc.SetQuantity(c.Request.Context(), u.ID, itemID, req.Quantity)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func removeCartItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Item not found in cart")
			return
		}
		u := httpx.CurrentUser(c)
		v, err := svc.Remove(c.Request.Context(), u.ID, itemID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func clearCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := httpx.CurrentUser(c)
		v, err := svc.Clear(c.Request.Context(), u.ID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}
