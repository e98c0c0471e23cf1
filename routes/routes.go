package routes

import (
	"go.uber.org/zap"

	"github.com/nicoiwnl/NutriRenal/config"
	"github.com/nicoiwnl/NutriRenal/controllers"
	"github.com/nicoiwnl/NutriRenal/middlewares"
	"github.com/nicoiwnl/NutriRenal/services"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires every endpoint. The hub and push service are built in
// main and shared with the alert bus.
func SetupRouter(logger *zap.Logger, hub *services.RealtimeHub, push *services.PushService) *gin.Engine {
	r := gin.Default()

	db := config.DB

	foods := services.NewFoodService(db)
	recipes := services.NewRecipeService(db)
	plans := services.NewMealPlanService(db)
	logs := services.NewFoodLogService(db)
	profiles := services.NewProfileService(db, logger)
	restrictions := services.NewRestrictionService(db)
	vision := services.NewVisionService(services.VisionConfigFromEnv(), logger)
	analysis := services.NewAnalysisService(db, vision, logger)

	foodCtl := controllers.NewFoodController(foods)
	recipeCtl := controllers.NewRecipeController(recipes)
	planCtl := controllers.NewMealPlanController(plans)
	logCtl := controllers.NewFoodLogController(logs)
	profileCtl := controllers.NewMedicalProfileController(profiles, plans)
	restrictionCtl := controllers.NewRestrictionController(restrictions)
	analysisCtl := controllers.NewAnalysisController(analysis)
	realtimeCtl := controllers.NewRealtimeController(hub)
	deviceCtl := controllers.NewDeviceController(push)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Everything below requires a session token.
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		person := api.Group("/person")
		{
			person.GET("/profile", controllers.GetProfile)
			person.PUT("/profile", controllers.UpdateProfile)
			person.DELETE("/account", controllers.DeactivateAccount)
			person.GET("/caregivers", controllers.ListCaregivers)
			person.POST("/caregivers", controllers.LinkCaregiver)
			person.DELETE("/caregivers/:caregiverId", controllers.UnlinkCaregiver)
			person.GET("/patients", controllers.ListPatients)
		}

		medical := api.Group("/medical-profile")
		{
			medical.GET("", profileCtl.Get)
			medical.PUT("", profileCtl.Upsert)
			medical.GET("/metrics", profileCtl.Metrics)
			medical.GET("/suggested-plans", profileCtl.SuggestedPlans)
			medical.GET("/alerts", profileCtl.Alerts)
		}

		food := api.Group("/foods")
		{
			food.GET("/search", foodCtl.Search)
			food.GET("/categories", foodCtl.Categories)
			food.GET("/categories/:id", foodCtl.ByCategory)
			food.GET("/units", foodCtl.Units)
			food.POST("/preview", foodCtl.Preview)
			food.GET("/:id", foodCtl.Get)
		}

		recipe := api.Group("/recipes")
		{
			recipe.GET("", recipeCtl.List)
			recipe.GET("/:id", recipeCtl.Get)
			recipe.GET("/:id/nutrients", recipeCtl.Nutrients)
			recipe.GET("/:id/reconcile", recipeCtl.Reconcile)
		}

		plan := api.Group("/meal-plans")
		{
			plan.GET("/assignments", planCtl.Assignments)
			plan.GET("/assignments/active", planCtl.ActiveAssignment)
			plan.POST("/assignments", planCtl.Assign)
			plan.GET("/:id", planCtl.Get)
			plan.GET("/:id/nutrients", planCtl.Nutrients)
			plan.GET("/:id/compliance", planCtl.Compliance)
		}

		logGroup := api.Group("/food-logs")
		{
			logGroup.POST("", logCtl.Create)
			logGroup.GET("", logCtl.List)
			logGroup.GET("/summary", logCtl.Summary)
			logGroup.DELETE("/:id", logCtl.Delete)
		}

		restriction := api.Group("/restrictions")
		{
			restriction.GET("", restrictionCtl.List)
			restriction.GET("/:id", restrictionCtl.Get)
			restriction.POST("", restrictionCtl.Create)
			restriction.PUT("/:id/bounds", restrictionCtl.SetBound)
		}

		analysisGroup := api.Group("/analysis")
		{
			analysisGroup.POST("", analysisCtl.Analyze)
			analysisGroup.GET("", analysisCtl.List)
			analysisGroup.GET("/:id", analysisCtl.Get)
		}

		api.GET("/ws/alerts", realtimeCtl.AlertsWS)
		api.POST("/devices", deviceCtl.Register)
		api.POST("/notifications/toggle", controllers.ToggleNotifications)
	}

	return r
}
