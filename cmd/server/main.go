package main

import (
	"context"
	"log"

	"disparo-dashboard/internal/api"
	"disparo-dashboard/internal/auth"
	"disparo-dashboard/internal/automation"
	"disparo-dashboard/internal/config"
	"disparo-dashboard/internal/database"
	"disparo-dashboard/internal/importer"
	"disparo-dashboard/internal/schedule"
	"disparo-dashboard/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	database.Init(cfg)

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	hub := ws.NewHub()
	go hub.Run()

	automationClient := automation.NewClient(cfg)
	authService := auth.NewService(database.DB, cfg.JWTSecret, cfg.SessionTTL)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authService.EnsureUser(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Printf("Error seeding admin user: %v", err)
		}
	}

	controller := schedule.NewController(automationClient, api.GormParamsStore{})
	importService := importer.NewService(automationClient)

	authHandler := api.NewAuthHandler(authService)
	dashboardHandler := api.NewDashboardHandler()
	contactHandler := api.NewContactHandler()
	scheduleHandler := api.NewScheduleHandler(controller, hub)
	templateHandler := api.NewTemplateHandler(automationClient, hub)
	importHandler := api.NewImportHandler(importService, hub)
	instanceHandler := api.NewInstanceHandler(automationClient)
	settingsHandler := api.NewSettingsHandler(automationClient)

	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/ws", hub.ServeWS)

	apiGroup := r.Group("/api", authService.Middleware())
	{
		apiGroup.POST("/auth/logout", authHandler.Logout)

		apiGroup.GET("/dashboard/summary", dashboardHandler.GetSummary)

		apiGroup.GET("/contacts", contactHandler.GetContacts)

		apiGroup.GET("/schedule", scheduleHandler.GetSchedule)
		apiGroup.POST("/schedule/:id/action", scheduleHandler.PerformAction)

		apiGroup.GET("/templates", templateHandler.GetTemplates)
		apiGroup.POST("/templates", templateHandler.CreateTemplate)
		apiGroup.POST("/templates/:id/toggle", templateHandler.ToggleTemplate)
		apiGroup.DELETE("/templates/:id", templateHandler.DeleteTemplate)

		apiGroup.POST("/import", importHandler.ImportContacts)

		apiGroup.GET("/instances", instanceHandler.GetInstances)
		apiGroup.POST("/instances/connect", instanceHandler.Connect)

		apiGroup.POST("/settings/cadence", settingsHandler.SaveCadence)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
