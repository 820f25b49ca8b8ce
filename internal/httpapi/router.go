package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bazaar-orders/internal/broadcast"
	"bazaar-orders/internal/database"
	"bazaar-orders/internal/service"
	"bazaar-orders/internal/session"
)

type Deps struct {
	Auth     service.AuthService
	Products service.ProductService
	Orders   service.OrderService
	Stats    service.StatsService
	Sessions *session.Store
	Hub      *broadcast.Hub
	Health   database.Service

	UploadDir string
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = maxImageSize

	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	authHandler := NewAuthHandler(deps.Auth, deps.Sessions)
	productHandler := NewProductHandler(deps.Products, deps.UploadDir)
	orderHandler := NewOrderHandler(deps.Orders, deps.Stats)

	r.Static("/uploads", deps.UploadDir)
	r.GET("/ws", ServeWS(deps.Hub))

	api := r.Group("/api")
	if deps.Health != nil {
		api.GET("/health", func(c *gin.Context) { c.JSON(200, deps.Health.Health()) })
	}
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	authed := api.Group("", RequireAuth(deps.Sessions))
	authed.GET("/products", productHandler.List)
	authed.POST("/products", productHandler.Create)
	authed.PATCH("/products/:id", productHandler.Update)
	authed.DELETE("/products/:id", productHandler.Delete)

	authed.GET("/orders", orderHandler.List)
	authed.POST("/orders", orderHandler.Create)
	authed.PATCH("/orders/:id", orderHandler.UpdateStatus)

	authed.GET("/stats", orderHandler.Stats)

	return r
}
