package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/controllers"
	"bitbucket.org/mmdatafocus/bridal_backend/middlewares"
	"bitbucket.org/mmdatafocus/bridal_backend/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const defaultPort = "8080"

func corsConfig() cors.Config {
	corsCfg := cors.DefaultConfig()
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(origins, ",")
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return corsCfg
}

func setupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig()))
	r.Use(middlewares.AuthMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", controllers.LoginHandler)

	api := r.Group("/api", middlewares.RequireAuth())
	{
		api.POST("/users", middlewares.RequirePermission("users:manage"), controllers.CreateUserHandler)

		api.GET("/dresses", controllers.ListDressesHandler)
		api.POST("/dresses", controllers.CreateDressHandler)
		api.GET("/dresses/:id", controllers.GetDressHandler)
		api.PUT("/dresses/:id", controllers.UpdateDressHandler)
		api.PUT("/dresses/:id/status", controllers.SetDressStatusHandler)

		api.GET("/bookings", controllers.ListBookingsHandler)
		api.POST("/bookings", controllers.CreateBookingHandler)
		api.GET("/bookings/conflicts", controllers.CheckConflictHandler)
		api.GET("/bookings/:id", controllers.GetBookingHandler)
		api.PUT("/bookings/:id", controllers.UpdateBookingHandler)
		api.POST("/bookings/:id/deliver", controllers.DeliverBookingHandler)
		api.POST("/bookings/:id/return", controllers.ReturnBookingHandler)
		api.POST("/bookings/:id/cancel", controllers.CancelBookingHandler)
		api.DELETE("/bookings/:id", middlewares.RequirePermission("bookings:delete"), controllers.DeleteBookingHandler)

		api.GET("/sales", controllers.ListSaleOrdersHandler)
		api.POST("/sales", controllers.CreateSaleOrderHandler)
		api.GET("/sales/:id", controllers.GetSaleOrderHandler)
		api.PUT("/sales/:id", controllers.UpdateSaleOrderHandler)
		api.PUT("/sales/:id/status", controllers.SetSaleStatusHandler)
		api.POST("/sales/:id/pay-factory", middlewares.RequirePermission("finance:write"), controllers.PayFactoryHandler)
		api.POST("/sales/pay-factory", middlewares.RequirePermission("finance:write"), controllers.PayFactoryBulkHandler)
		api.DELETE("/sales/:id", middlewares.RequirePermission("sales:delete"), controllers.DeleteSaleOrderHandler)

		finance := api.Group("/finance", middlewares.RequirePermission("finance:read"))
		{
			finance.GET("/records", controllers.ListFinanceRecordsHandler)
			finance.POST("/records", middlewares.RequirePermission("finance:write"), controllers.CreateFinanceRecordHandler)
			finance.DELETE("/records/:id", middlewares.RequirePermission("finance:write"), controllers.DeleteFinanceRecordHandler)
			finance.GET("/summary", controllers.CashSummaryHandler)
			finance.GET("/export", controllers.ExportLedgerHandler)
		}

		admin := api.Group("/admin", middlewares.RequirePermission("admin"))
		{
			admin.POST("/reconcile", controllers.RunReconciliationHandler)
			admin.GET("/audit", controllers.ListAuditLogsHandler)
		}
	}

	return r
}

func main() {
	godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	config.ConnectDatabaseWithRetry()
	if err := models.MigrateAll(config.GetDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	config.ConnectRedis()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: setupRouter(),
	}

	go func() {
		log.Printf("listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
}
