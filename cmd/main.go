package main

import (
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/nicoiwnl/NutriRenal/config"
	"github.com/nicoiwnl/NutriRenal/routes"
	"github.com/nicoiwnl/NutriRenal/services"
	"github.com/nicoiwnl/NutriRenal/utils"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	config.InitDB()
	utils.InitS3()

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		logger.Fatal("failed to init push service", zap.Error(err))
	}
	services.InitAlertDeps(config.DB, hub, push)

	r := routes.SetupRouter(logger, hub, push)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
