package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharpfade/barbershop-booking/internal/cache"
	"github.com/sharpfade/barbershop-booking/internal/config"
	dbpkg "github.com/sharpfade/barbershop-booking/internal/db"
	"github.com/sharpfade/barbershop-booking/internal/middleware"
	"github.com/sharpfade/barbershop-booking/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := cache.NewRedis(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
