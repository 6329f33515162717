package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinevault/cinevault/internal/middleware"
)

func main() {
	InitializeLogger()
	InitializeConfig()
	InitializeStorage()
	InitializeServices()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(Logger))
	r.Use(middleware.Gzip())
	r.Use(middleware.CORS())

	ctx := context.Background()
	memoryCache.StartCleanup(ctx)
	serviceContainer.Cleanup.Start(ctx)

	handler.RegisterRoutes(r, middleware.AdminAuth(Config.AdminToken))

	if Config.AdminToken == "" {
		Logger.Warnf("[App] no admin token configured, mutating endpoints are unauthenticated")
	}

	Logger.Infof("[App] starting HTTP server on port %s", Config.Port)
	log.Fatal(http.ListenAndServe(":"+Config.Port, r))
}
