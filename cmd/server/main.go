package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"travel_planner/internal/app"
	"travel_planner/internal/config"
	"travel_planner/internal/logger"
	"travel_planner/internal/middleware"
	"travel_planner/internal/routes"
)

func main() {
	settings := config.Load()

	// Initialize structured logging to file
	accessLog := logger.Setup(settings)
	gin.DefaultWriter = accessLog

	if err := config.InitDB(settings); err != nil {
		log.Fatal(err)
	}
	if err := config.Migrate(config.DB); err != nil {
		log.Fatal(err)
	}

	middleware.SetSecret(settings.JWTSecret)

	svcs := app.NewServices(app.GormRepositories(config.DB), app.ImagesFor(settings))
	r := routes.SetupRouter(svcs.Controllers(), routes.Options{
		MediaRoot: settings.MediaRoot,
		AccessLog: accessLog,
	})

	addr := "0.0.0.0:" + settings.Port
	logrus.WithField("addr", addr).Info("server starting")
	log.Println("🚀 Server running at " + addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
