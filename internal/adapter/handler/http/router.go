package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/config"
	"github.com/motoshop/motoshop/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	tokenService ports.TokenService,
	indexHandler *IndexHandler,
	userHandler *UserHandler,
	productHandler *ProductHandler,
	orderHandler *OrderHandler,
	postHandler *PostHandler,
	adminHandler *AdminHandler,
	mediaHandler *MediaHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	if cfg.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = cfg.MaxUploadBytes
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(templates)

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.AllowedOrigins != "*",
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", indexHandler.Index)
	router.GET("/media/*key", mediaHandler.Serve)

	auth := AuthMiddleware(tokenService)
	adminOnly := AdminMiddleware()

	// Auth routes
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", userHandler.Login)
	}

	// Users routes
	users := router.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateMe)
		users.PUT("/me/password", userHandler.ChangePassword)
		users.PUT("/me/photo", userHandler.UploadPhoto)
		users.GET("", adminOnly, userHandler.ListUsers)
		users.DELETE("/:id", adminOnly, userHandler.DeleteUser)
	}

	// Products routes
	products := router.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/choices", productHandler.Choices)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("", auth, adminOnly, productHandler.CreateProduct)
		products.PUT("/:id", auth, adminOnly, productHandler.UpdateProduct)
		products.PUT("/:id/cover", auth, adminOnly, productHandler.UploadCover)
		products.DELETE("/:id", auth, adminOnly, productHandler.DeleteProduct)
	}

	// Orders routes
	orders := router.Group("/orders")
	orders.Use(auth)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/my", orderHandler.GetMyOrders)
		orders.GET("", adminOnly, orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id", adminOnly, orderHandler.UpdateOrder)
		orders.PATCH("/:id/status", adminOnly, orderHandler.UpdateOrderStatus)
		orders.DELETE("/:id", adminOnly, orderHandler.DeleteOrder)
		orders.POST("/:id/lines", orderHandler.AddOrderLine)
		orders.DELETE("/:id/lines/:line_id", orderHandler.DeleteOrderLine)
	}

	// Posts routes
	posts := router.Group("/posts")
	{
		posts.GET("", postHandler.ListPosts)
		posts.GET("/:id", postHandler.GetPost)
		posts.POST("", auth, postHandler.CreatePost)
		posts.PUT("/:id", auth, postHandler.UpdatePost)
		posts.PUT("/:id/cover", auth, postHandler.UploadCover)
		posts.DELETE("/:id", auth, postHandler.DeletePost)
		posts.GET("/:id/comments", postHandler.ListComments)
		posts.POST("/:id/comments", auth, postHandler.AddComment)
		posts.DELETE("/:id/comments/:comment_id", auth, postHandler.DeleteComment)
	}

	// Admin routes
	adminGroup := router.Group("/admin")
	adminGroup.Use(auth, adminOnly)
	{
		adminGroup.GET("", adminHandler.Index)
		adminGroup.GET("/:model", adminHandler.Changelist)
	}

	return &Router{router: router}, nil
}

func (r *Router) Serve(addr string) error {
	return r.router.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
