package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campuscanteen/canteen-api/docs"
	"github.com/campuscanteen/canteen-api/internal/archive"
	"github.com/campuscanteen/canteen-api/internal/cart"
	"github.com/campuscanteen/canteen-api/internal/config"
	"github.com/campuscanteen/canteen-api/internal/httpx"
	"github.com/campuscanteen/canteen-api/internal/menu"
	"github.com/campuscanteen/canteen-api/internal/metrics"
	"github.com/campuscanteen/canteen-api/internal/notification"
	"github.com/campuscanteen/canteen-api/internal/order"
	"github.com/campuscanteen/canteen-api/internal/user"
)

type deps struct {
	cfg      config.Config
	users    user.Repository
	menu     menu.Repository
	orders   *order.Service
	orderRep order.Repository
	carts    *cart.Service
	notifs   notification.Repository
	archives archive.Repository
	metrics  *metrics.Metrics
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestID())
	r.Use(httpx.Logger())
	if d.metrics != nil {
		r.Use(d.metrics.Middleware())
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{d.cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	if d.metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := httpx.Auth(d.users, d.cfg.JWTSecret)
	admin := httpx.AdminOnly()

	api := r.Group("/api")

	a := api.Group("/auth")
	a.POST("/register", registerHandler(d.users, d.cfg))
	a.POST("/login", loginHandler(d.users, d.cfg))
	a.POST("/logout", logoutHandler(d.cfg))
	a.GET("/me", authed, meHandler())

	m := api.Group("/menu")
	m.GET("", listMenuHandler(d.menu))
	m.GET("/categories", menuCategoriesHandler(d.menu))
	m.GET("/:id", getMenuItemHandler(d.menu))
	m.POST("/:id/rate", authed, rateMenuItemHandler(d.menu))

	ct := api.Group("/cart", authed)
	ct.GET("", getCartHandler(d.carts))
	ct.POST("/add", addToCartHandler(d.carts))
	ct.PUT("/:itemId", updateCartItemHandler(d.carts))
	ct.DELETE("/:itemId", removeCartItemHandler(d.carts))
	ct.DELETE("", clearCartHandler(d.carts))

	o := api.Group("/orders", authed)
	o.POST("", placeOrderHandler(d.orders))
	o.GET("/my-orders", myOrdersHandler(d.orders))
	o.GET("/:id", getOrderHandler(d.orders))
	o.PUT("/:id/status", updateOrderStatusHandler(d.orders))
	o.POST("/:id/cancel", cancelOrderHandler(d.orders))

	us := api.Group("/users", authed)
	us.GET("/profile", getProfileHandler())
	us.PUT("/profile", updateProfileHandler(d.users))
	us.PUT("/password", changePasswordHandler(d.users))
	us.GET("/favorites", listFavoritesHandler(d.users, d.menu))
	us.POST("/favorites/:itemId", addFavoriteHandler(d.users, d.menu))
	us.DELETE("/favorites/:itemId", removeFavoriteHandler(d.users))

	ad := api.Group("/admin", authed, admin)
	ad.POST("/menu", createMenuItemHandler(d.menu))
	ad.PUT("/menu/:id", updateMenuItemHandler(d.menu))
	ad.DELETE("/menu/:id", deleteMenuItemHandler(d.menu))
	ad.GET("/orders", adminOrdersHandler(d.orderRep))
	ad.PUT("/orders/:id/status", updateOrderStatusHandler(d.orders))
	ad.GET("/stats", adminStatsHandler(d.orderRep, d.users, d.menu))
	ad.GET("/daily-archive/:date", dailyArchiveHandler(d.archives))
	ad.GET("/daily-report/:date", dailyReportHandler(d.archives, d.orderRep))

	n := api.Group("/notifications", authed, admin)
	n.GET("/unread", unreadNotificationsHandler(d.notifs))
	n.PUT("/mark-all-read", markAllNotificationsReadHandler(d.notifs))
	n.PUT("/:id/read", markNotificationReadHandler(d.notifs))
	n.DELETE("/:id", deleteNotificationHandler(d.notifs))

	return r
}
