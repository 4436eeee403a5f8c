package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/httpx"
	"github.com/campuscanteen/canteen-api/internal/menu"
)

func listMenuHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := menu.Query{
			Category: c.Query("category"),
			Search:   c.Query("search"),
		}
		if c.Query("isVegetarian") == "true" {
			veg := true
			q.Vegetarian = &veg
		}
		items, err := repo.List(c.Request.Context(), q)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if items == nil {
			items = []menu.Item{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func menuCategoriesHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := repo.Categories(c.Request.Context())
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if cats == nil {
			cats = []string{}
		}
		c.JSON(http.StatusOK, cats)
	}
}

func getMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Menu item not found")
			return
		}
		it, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "", gin.H{"menuItem": it})
	}
}

type rateRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func rateMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "Menu item not found")
			return
		}
		var req rateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		u := httpx.CurrentUser(c)
		it, err := repo.SetRating(c.Request.Context(), id, menu.Rating{
			User:   u.ID,
			Rating: req.Rating,
			Review: req.Review,
		})
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, "Rating added successfully", gin.H{"menuItem": it})
	}
}
