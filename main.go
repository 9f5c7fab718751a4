package main

import (
	"github.com/watchable/watchable/config"
	"github.com/watchable/watchable/models"
	"github.com/watchable/watchable/routes"
	"github.com/watchable/watchable/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{})

	r, err := routes.SetupRouter(db)
	if err != nil {
		utils.Sugar.Fatalf("router setup failed: %v", err)
	}

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
