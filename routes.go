package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), ErrorRecovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     AppConfig.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(NotFoundHandler)

	SetupRoutes(r)

	return r
}

func SetupRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "We Plan It API is running! Use /api for endpoints."})
	})

	api := r.Group("/api")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Welcome to We Plan It API"})
		})
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "ok",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/signup", Signup)
			auth.POST("/login", Login)
			auth.GET("/verify", AuthMiddleware(), Verify)
		}

		// Plans have no auth, matching the deployed behavior.
		plans := api.Group("/plans")
		{
			plans.GET("", GetPlans)
			plans.POST("", CreatePlan)
			plans.GET("/:id", GetPlan)
			plans.PUT("/:id", UpdatePlan)
			plans.PATCH("/:id/toggle", TogglePlan)
			plans.DELETE("/:id", DeletePlan)
		}

		events := api.Group("/events", AuthMiddleware())
		{
			events.GET("", GetEvents)
			events.POST("", CreateEvent)
			events.GET("/:id", GetEvent)
			events.PUT("/:id", UpdateEvent)
			events.DELETE("/:id", DeleteEvent)

			events.POST("/:id/attendees", AddAttendee)
			events.PUT("/:id/attendees", RespondAttendance)
			events.GET("/:id/attendees", GetEventAttendees)
		}

		tasks := api.Group("/tasks", AuthMiddleware())
		{
			tasks.GET("/event/:eventId", GetEventTasks)
			tasks.GET("/:id", GetTask)
			tasks.POST("", CreateTask)
			tasks.PUT("/:id", UpdateTask)
			tasks.PATCH("/:id/toggle", ToggleTask)
			tasks.DELETE("/:id", DeleteTask)
		}
	}
}
